package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sahnico/taxcalc/internal/domain"
)

// ConsoleFormatter renders a plain-text regime comparison.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 64)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "INCOME TAX COMPUTATION - ASSESSMENT YEAR %s\n", r.Taxpayer.AssessmentYear)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Name:               %s\n", r.Taxpayer.Name)
	fmt.Fprintf(&buf, "PAN:                %s\n", r.Taxpayer.PAN)
	fmt.Fprintf(&buf, "Category:           %s\n", CategoryLabel(r.Taxpayer.Category))
	fmt.Fprintf(&buf, "Residential Status: %s\n", ResidentialStatusLabel(r.Taxpayer.ResidentialStatus))
	fmt.Fprintf(&buf, "Age Category:       %s\n", AgeCategoryLabel(r.Taxpayer.AgeCategory))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME")
	for _, line := range incomeLines(r.Income) {
		if line.Amount.IsZero() {
			continue
		}
		fmt.Fprintf(&buf, "  %-30s %20s\n", line.Label, FormatRupees(line.Amount))
	}
	fmt.Fprintf(&buf, "  %-30s %20s\n", "Gross Total Income", FormatRupees(r.Income.Gross()))
	fmt.Fprintln(&buf)

	for _, capped := range r.CappedDeductions {
		fmt.Fprintf(&buf, "Note: Section %s claim of %s capped at %s\n", capped.Section,
			FormatRupees(capped.Requested), FormatRupees(capped.Allowed))
	}
	if len(r.CappedDeductions) > 0 {
		fmt.Fprintln(&buf)
	}

	writeRegime(&buf, r.Comparison.Old)
	writeRegime(&buf, r.Comparison.New)

	rec := Analyze(r.Comparison)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "RECOMMENDED: %s\n", rec.Label)
	fmt.Fprintln(&buf, rec.Message)
	if note := PreferenceNote(r); note != "" {
		fmt.Fprintln(&buf, note)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Taxes Paid (TDS + Advance Tax): %s\n", FormatRupees(r.Settlement.TaxesPaid))
	fmt.Fprintln(&buf, SettlementLine(r.Settlement))
	fmt.Fprintln(&buf, rule)
	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, calc domain.TaxCalculation) {
	fmt.Fprintln(buf, calc.Regime.Label())
	fmt.Fprintln(buf, strings.Repeat("-", 64))
	fmt.Fprintf(buf, "  %-30s %20s\n", "Gross Income", FormatRupees(calc.GrossIncome))
	if deducted := calc.GrossIncome.Sub(calc.TaxableIncome); deducted.IsPositive() {
		fmt.Fprintf(buf, "  %-30s %20s\n", "Less: Deductions", FormatRupees(deducted))
	}
	fmt.Fprintf(buf, "  %-30s %20s\n", "Taxable Income", FormatRupees(calc.TaxableIncome))
	for _, c := range calc.Breakdown {
		label := fmt.Sprintf("%s @ %s", SlabLabel(c), RateLabel(c.Rate))
		fmt.Fprintf(buf, "    %-28s %20s\n", label, FormatRupees(c.Tax))
	}
	fmt.Fprintf(buf, "  %-30s %20s\n", "Income Tax", FormatRupees(calc.TotalTax))
	fmt.Fprintf(buf, "  %-30s %20s\n", "Surcharge", FormatRupees(calc.Surcharge))
	fmt.Fprintf(buf, "  %-30s %20s\n", "Health & Education Cess", FormatRupees(calc.Cess))
	fmt.Fprintf(buf, "  %-30s %20s\n", "Total Tax Payable", FormatRupees(calc.TotalTaxPayable))
	fmt.Fprintf(buf, "  %-30s %20s\n", "Net Income", FormatRupees(calc.NetIncome))
	fmt.Fprintln(buf)
}
