package output

import (
	"bytes"
	"encoding/csv"

	"github.com/sahnico/taxcalc/internal/domain"
)

// CSVFormatter writes one row per slab contribution per regime followed by
// summary rows for each regime.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "Row", "SlabMin", "SlabMax", "Rate", "TaxableAmount", "Tax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, calc := range []domain.TaxCalculation{r.Comparison.Old, r.Comparison.New} {
		regime := string(calc.Regime)
		for _, s := range calc.Breakdown {
			upper := ""
			if s.Max != nil {
				upper = s.Max.StringFixed(2)
			}
			row := []string{regime, "slab", s.Min.StringFixed(2), upper, s.Rate.String(), s.TaxableAmount.StringFixed(2), s.Tax.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		summary := [][2]string{
			{"gross_income", calc.GrossIncome.StringFixed(2)},
			{"taxable_income", calc.TaxableIncome.StringFixed(2)},
			{"total_tax", calc.TotalTax.StringFixed(2)},
			{"surcharge", calc.Surcharge.StringFixed(2)},
			{"cess", calc.Cess.StringFixed(2)},
			{"total_tax_payable", calc.TotalTaxPayable.StringFixed(2)},
			{"net_income", calc.NetIncome.StringFixed(2)},
		}
		for _, s := range summary {
			if err := w.Write([]string{regime, s[0], "", "", "", "", s[1]}); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Write([]string{string(r.Comparison.Recommended), "recommended", "", "", "", "", Analyze(r.Comparison).Savings.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
