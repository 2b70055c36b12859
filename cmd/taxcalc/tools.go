package main

import (
	"fmt"

	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/output"
	"github.com/sahnico/taxcalc/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newGSTCmd() *cobra.Command {
	var (
		amount, rate string
		inclusive    bool
	)

	cmd := &cobra.Command{
		Use:     "gst",
		Short:   "Split an amount into base, CGST and SGST",
		Example: "  taxcalc gst --amount 10000 --rate 18\n  taxcalc gst --amount 11800 --rate 18 --inclusive",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := money.Parse(amount)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rate, err)
			}
			mode := calculation.GSTExclusive
			if inclusive {
				mode = calculation.GSTInclusive
			}

			res, err := calculation.CalculateGST(amt.Decimal, r, mode)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "GST @ %s (%s)\n", output.RateLabel(res.Rate), res.Mode)
			fmt.Fprintf(w, "  %-14s %s\n", "Base Amount:", output.FormatRupees(res.BaseAmount))
			fmt.Fprintf(w, "  %-14s %s\n", "CGST:", output.FormatRupees(res.CGST))
			fmt.Fprintf(w, "  %-14s %s\n", "SGST:", output.FormatRupees(res.SGST))
			fmt.Fprintf(w, "  %-14s %s\n", "Total GST:", output.FormatRupees(res.GSTAmount))
			fmt.Fprintf(w, "  %-14s %s\n", "Total Amount:", output.FormatRupees(res.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount in rupees")
	cmd.Flags().StringVar(&rate, "rate", "18", "GST rate in percent (common: 5, 12, 18, 28)")
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "the amount already includes GST")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newEMICmd() *cobra.Command {
	var (
		principal, rate string
		months          int
	)

	cmd := &cobra.Command{
		Use:     "emi",
		Short:   "Compute the monthly instalment of a loan",
		Example: "  taxcalc emi --principal 500000 --rate 10.5 --months 60",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := money.Parse(principal)
			if err != nil {
				return fmt.Errorf("invalid principal: %w", err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rate, err)
			}

			res, err := calculation.CalculateEMI(p.Decimal, r, months)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Loan of %s @ %s for %d months\n", output.FormatRupees(res.Principal), output.RateLabel(res.AnnualRate), res.Months)
			fmt.Fprintf(w, "  %-16s %s\n", "Monthly EMI:", output.FormatRupees(res.EMI))
			fmt.Fprintf(w, "  %-16s %s\n", "Total Interest:", output.FormatRupees(res.TotalInterest))
			fmt.Fprintf(w, "  %-16s %s\n", "Total Payment:", output.FormatRupees(res.TotalPayment))
			return nil
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "loan amount in rupees")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&months, "months", 0, "tenure in months")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")
	return cmd
}
