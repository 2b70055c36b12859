package main

import (
	"fmt"

	"github.com/sahnico/taxcalc/internal/output"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		inputPath string
		year      string
		rulesFile string
		format    string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare tax under both regimes for a taxpayer document",
		Example: `  taxcalc compare -i taxpayer.yaml
  taxcalc compare -i taxpayer.yaml -f pdf -o reports
  taxcalc compare -i taxpayer.yaml -f all --year 2024-25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.computeReport(inputPath, rulesFile, year)
			if err != nil {
				return err
			}

			if format == "" {
				format = a.settings.Output.Format
			}
			name := output.NormalizeFormatName(format)

			// Text formats go to stdout unless a directory was asked for
			if outDir == "" && name != "pdf" && name != "all" {
				f := output.GetFormatterByName(name)
				if f == nil {
					_, err := output.GenerateReport(report, format, "")
					return err
				}
				data, err := f.Format(report)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if outDir == "" {
				outDir = a.settings.Output.Directory
			}
			paths, err := output.GenerateReport(report, format, outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "taxpayer document (YAML)")
	cmd.Flags().StringVar(&year, "year", "", "assessment year, e.g. 2024-25 (defaults to the document's year)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "additional rules file (YAML)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: console, json, csv, pdf or all")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory to write the report into")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
