package calculation

import (
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

const maxBreakEvenIterations = 64

// BreakEven is the smallest total old-regime deduction at which the old regime
// costs no more than the new regime for a given income.
type BreakEven struct {
	GrossIncome     decimal.Decimal `json:"gross_income"`
	NewRegimeTax    decimal.Decimal `json:"new_regime_tax"`
	Deduction       decimal.Decimal `json:"break_even_deduction"`
	OldRegimeTax    decimal.Decimal `json:"old_regime_tax"` // at Deduction
	OldAlwaysBetter bool            `json:"old_always_better"`
}

// BreakEvenDeduction searches, to the rupee, for the deduction total that makes
// the old regime at least as cheap as the new one. Statutory caps are not
// applied. It returns false when there is no income.
func (e *Engine) BreakEvenDeduction(income domain.IncomeProfile) (BreakEven, bool) {
	gross := income.Gross()
	if !gross.IsPositive() {
		return BreakEven{}, false
	}

	target := e.ComputeRegime(domain.RegimeNew, income, domain.DeductionSet{}).TotalTaxPayable
	oldTax := func(deduction decimal.Decimal) decimal.Decimal {
		return e.ComputeRegime(domain.RegimeOld, income, domain.DeductionSet{Section80C: deduction}).TotalTaxPayable
	}

	result := BreakEven{GrossIncome: gross, NewRegimeTax: target}
	if zero := oldTax(decimal.Zero); zero.LessThanOrEqual(target) {
		result.OldRegimeTax = zero
		result.OldAlwaysBetter = true
		return result, true
	}

	// old(lo) > target and old(hi) <= target; the full gross zeroes old tax
	lo, hi := decimal.Zero, gross.Ceil()
	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)
	for i := 0; i < maxBreakEvenIterations && hi.Sub(lo).GreaterThan(one); i++ {
		mid := lo.Add(hi).Div(two).Floor()
		if oldTax(mid).LessThanOrEqual(target) {
			hi = mid
		} else {
			lo = mid
		}
	}

	result.Deduction = hi
	result.OldRegimeTax = oldTax(hi)
	return result, true
}
