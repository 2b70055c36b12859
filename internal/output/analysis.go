package output

import (
	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation summarises the regime choice for presentation.
type Recommendation struct {
	Regime    domain.Regime
	Label     string
	Savings   decimal.Decimal // absolute difference between the two regimes
	IsBenefit bool            // false when both regimes cost the same
	Message   string
}

// Analyze turns a comparison into the recommendation shown in reports.
func Analyze(c *domain.RegimeComparison) Recommendation {
	savings := calculation.Savings(c)
	rec := Recommendation{
		Regime:    c.Recommended,
		Label:     c.Recommended.Label(),
		Savings:   savings,
		IsBenefit: savings.IsPositive(),
	}
	if rec.IsBenefit {
		rec.Message = "Potential Tax Savings: " + FormatRupees(savings)
	} else {
		rec.Message = "Both regimes result in the same tax liability"
	}
	return rec
}

// PreferenceNote explains how the taxpayer's preferred regime compares with the
// recommendation. It is empty when they agree.
func PreferenceNote(r *Report) string {
	if r.PreferredRegime == r.Comparison.Recommended {
		return ""
	}
	preferred := r.Comparison.For(r.PreferredRegime)
	recommended := r.Comparison.RecommendedCalculation()
	extra := preferred.TotalTaxPayable.Sub(recommended.TotalTaxPayable)
	if !extra.IsPositive() {
		return ""
	}
	return "Additional Tax under " + r.PreferredRegime.Label() + ": " + FormatRupees(extra)
}

// SettlementLine describes the balance due or refundable
func SettlementLine(s domain.Settlement) string {
	if s.Refund {
		return "Refund Due: " + FormatRupees(s.Balance)
	}
	return "Balance Tax Payable: " + FormatRupees(s.Balance)
}
