package main

import (
	"fmt"

	"github.com/sahnico/taxcalc/internal/notify"
	"github.com/spf13/cobra"
)

func newNotifyCmd(a *app) *cobra.Command {
	var inputPath, to, year, rulesFile string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Email the regime comparison summary to the taxpayer",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.computeReport(inputPath, rulesFile, year)
			if err != nil {
				return err
			}
			if to == "" {
				to = report.Taxpayer.Email
			}
			if to == "" {
				return fmt.Errorf("no recipient: pass --to or set taxpayer.email in %s", inputPath)
			}

			mailer := notify.New(a.settings.Email, a.logger)
			n := notify.NewNotifier(mailer, a.settings.Email, a.settings.Firm, a.logger)
			if err := n.SendTaxSummary(cmd.Context(), to, report); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tax summary sent to %s\n", to)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "taxpayer document (YAML)")
	cmd.Flags().StringVar(&to, "to", "", "recipient address (defaults to the taxpayer's email)")
	cmd.Flags().StringVar(&year, "year", "", "assessment year (defaults to the document's year)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "additional rules file (YAML)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
