package main

import (
	"fmt"
	"io"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/internal/output"
	"github.com/spf13/cobra"
)

func newSlabsCmd(a *app) *cobra.Command {
	var year, rulesFile string

	cmd := &cobra.Command{
		Use:   "slabs",
		Short: "Print the slab, surcharge and cess tables for an assessment year",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules(rulesFile, year)
			if err != nil {
				return err
			}
			printRules(cmd.OutOrStdout(), rules)
			return nil
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "assessment year, e.g. 2024-25 (defaults to the latest)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "additional rules file (YAML)")
	return cmd
}

func printRules(w io.Writer, rules *domain.TaxRules) {
	fmt.Fprintf(w, "TAX RATES FOR AY %s\n", rules.AssessmentYear)
	if rules.Description != "" {
		fmt.Fprintln(w, rules.Description)
	}

	for _, regime := range []domain.Regime{domain.RegimeNew, domain.RegimeOld} {
		fmt.Fprintf(w, "\n%s\n", regime.Label())
		for _, slab := range rules.Slabs(regime) {
			c := domain.SlabContribution{Min: slab.Min, Max: slab.Max, Rate: slab.Rate}
			fmt.Fprintf(w, "  %-24s %6s\n", output.SlabLabel(c), output.RateLabel(slab.Rate))
		}
	}

	fmt.Fprintln(w, "\nSURCHARGE")
	if len(rules.Surcharge) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, band := range rules.Surcharge {
		fmt.Fprintf(w, "  Above %-18s %6s\n", output.FormatLakh(band.Above), output.RateLabel(band.Rate))
	}
	fmt.Fprintf(w, "\nHealth & Education Cess: %s of tax plus surcharge\n", output.RateLabel(rules.CessRate))
}
