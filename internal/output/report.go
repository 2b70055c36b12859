package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Firm brands a generated report
type Firm struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Report is everything a formatter needs to render one taxpayer's computation
type Report struct {
	ID               string                   `json:"id"`
	GeneratedAt      time.Time                `json:"generated_at"`
	Firm             Firm                     `json:"firm"`
	Taxpayer         domain.Taxpayer          `json:"taxpayer"`
	Income           domain.IncomeProfile     `json:"income"`
	Deductions       domain.DeductionSet      `json:"deductions"`
	CappedDeductions []domain.CappedDeduction `json:"capped_deductions,omitempty"`
	Payments         domain.Payments          `json:"payments"`
	PreferredRegime  domain.Regime            `json:"preferred_regime"`
	Comparison       *domain.RegimeComparison `json:"comparison"`
	Settlement       domain.Settlement        `json:"settlement"`
}

// NewReport assembles a report for a completed comparison. The settlement is
// computed against the recommended regime.
func NewReport(firm Firm, input *domain.TaxpayerInput, comparison *domain.RegimeComparison, capped []domain.CappedDeduction) *Report {
	return &Report{
		ID:               idFunc(),
		GeneratedAt:      nowFunc(),
		Firm:             firm,
		Taxpayer:         input.Taxpayer,
		Income:           input.Income,
		Deductions:       input.Deductions,
		CappedDeductions: capped,
		Payments:         input.Payments,
		PreferredRegime:  input.Regime(),
		Comparison:       comparison,
		Settlement:       calculation.Settle(comparison.RecommendedCalculation(), input.Payments),
	}
}

// Filename returns Income_Tax_Report_<PAN>_<AY>.<ext>
func (r *Report) Filename(ext string) string {
	pan := strings.ToUpper(strings.TrimSpace(r.Taxpayer.PAN))
	if pan == "" {
		pan = "UNKNOWN"
	}
	return fmt.Sprintf("Income_Tax_Report_%s_%s.%s", pan, r.Taxpayer.AssessmentYear, ext)
}

// GenerateReport writes the report in the requested format into dir and
// returns the written paths. The format "all" writes every registered format.
func GenerateReport(report *Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		names := AvailableFormatterNames()
		paths := make([]string, len(names))

		var g errgroup.Group
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				path, err := WriteFormatted(GetFormatterByName(name), report, dir)
				paths[i] = path
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
