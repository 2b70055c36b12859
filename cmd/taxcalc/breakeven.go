package main

import (
	"fmt"

	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/internal/output"
	"github.com/sahnico/taxcalc/pkg/money"
	"github.com/spf13/cobra"
)

func newBreakEvenCmd(a *app) *cobra.Command {
	var income, year, rulesFile string

	cmd := &cobra.Command{
		Use:     "breakeven",
		Short:   "Find the deductions needed for the old regime to match the new one",
		Example: "  taxcalc breakeven --income 12,00,000",
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := money.Parse(income)
			if err != nil {
				return fmt.Errorf("invalid income: %w", err)
			}
			rules, err := a.rules(rulesFile, year)
			if err != nil {
				return err
			}
			engine, err := calculation.NewEngine(rules)
			if err != nil {
				return err
			}

			be, ok := engine.BreakEvenDeduction(domain.IncomeProfile{Salary: gross.Decimal})
			if !ok {
				return fmt.Errorf("income must be positive")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Gross income %s (AY %s)\n", output.FormatRupees(be.GrossIncome), rules.AssessmentYear)
			fmt.Fprintf(w, "  %-30s %s\n", "New regime tax:", output.FormatRupees(be.NewRegimeTax))
			if be.OldAlwaysBetter {
				fmt.Fprintf(w, "  The old regime is no costlier even without deductions (%s)\n", output.FormatRupees(be.OldRegimeTax))
				return nil
			}
			fmt.Fprintf(w, "  %-30s %s\n", "Break-even deductions:", output.FormatRupees(be.Deduction))
			fmt.Fprintf(w, "  %-30s %s\n", "Old regime tax at break-even:", output.FormatRupees(be.OldRegimeTax))
			return nil
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "gross income in rupees")
	cmd.Flags().StringVar(&year, "year", "", "assessment year (defaults to the latest)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "additional rules file (YAML)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
