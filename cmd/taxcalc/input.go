package main

import (
	"fmt"
	"os"

	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/pkg/fiscal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExampleCmd(a *app) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example taxpayer document",
		RunE: func(cmd *cobra.Command, args []string) error {
			example := config.NewInputParser(a.logger).CreateExampleInput()
			data, err := yaml.Marshal(example)
			if err != nil {
				return fmt.Errorf("failed to encode example: %w", err)
			}
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example taxpayer document written to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "file to write (defaults to stdout)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var inputPath, rulesFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a taxpayer document against the rules for its year",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser(a.logger)
			input, err := parser.LoadFromFile(inputPath)
			if err != nil {
				return err
			}
			rules, err := a.rules(rulesFile, input.Taxpayer.AssessmentYear)
			if err != nil {
				return err
			}
			ay, err := fiscal.ParseAssessmentYear(rules.AssessmentYear)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ %s is valid for AY %s (FY %s)\n", inputPath, ay, ay.FinancialYear())
			for _, c := range parser.ApplyDeductionCaps(input, rules) {
				fmt.Fprintf(w, "  note: section %s capped from %s to %s\n", c.Section, c.Requested, c.Allowed)
			}
			fmt.Fprintf(w, "  filing due date: %s\n", ay.FilingDueDate().Format("02 Jan 2006"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "taxpayer document (YAML)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "additional rules file (YAML)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
