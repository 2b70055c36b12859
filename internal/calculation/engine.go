package calculation

import (
	"fmt"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine computes income tax under one assessment year's rules.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules *domain.TaxRules
}

// NewEngine creates an engine after validating the rule tables
func NewEngine(rules *domain.TaxRules) (*Engine, error) {
	if rules == nil {
		return nil, fmt.Errorf("tax rules are required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax rules: %w", err)
	}
	return &Engine{rules: rules}, nil
}

// Rules returns the rule set the engine was built with
func (e *Engine) Rules() *domain.TaxRules {
	return e.rules
}

// ComputeRegime runs the full computation for a single regime.
// Deductions are ignored under the new regime.
func (e *Engine) ComputeRegime(regime domain.Regime, income domain.IncomeProfile, deductions domain.DeductionSet) domain.TaxCalculation {
	gross := income.Gross()
	taxable := gross
	if regime == domain.RegimeOld {
		taxable = decimal.Max(gross.Sub(deductions.Total()), decimal.Zero)
	}

	slabTax := ComputeSlabTax(taxable, e.rules.Slabs(regime))
	levies := ApplySurchargeAndCess(slabTax.Tax, taxable, e.rules)

	return domain.TaxCalculation{
		Regime:          regime,
		GrossIncome:     gross,
		TaxableIncome:   taxable,
		TotalTax:        slabTax.Tax,
		Surcharge:       levies.Surcharge,
		Cess:            levies.Cess,
		TotalTaxPayable: levies.Total,
		NetIncome:       gross.Sub(levies.Total),
		Breakdown:       slabTax.Breakdown,
	}
}

// CompareRegimes computes both regimes and recommends the cheaper one.
// It returns false when there is no income to compute on.
func (e *Engine) CompareRegimes(income domain.IncomeProfile, deductions domain.DeductionSet) (*domain.RegimeComparison, bool) {
	if !income.Gross().IsPositive() {
		return nil, false
	}

	oldCalc := e.ComputeRegime(domain.RegimeOld, income, deductions)
	newCalc := e.ComputeRegime(domain.RegimeNew, income, domain.DeductionSet{})

	return &domain.RegimeComparison{
		Old:         oldCalc,
		New:         newCalc,
		Recommended: Recommend(oldCalc, newCalc),
	}, true
}

// Recommend picks the new regime only when it is strictly cheaper; ties go to the old regime
func Recommend(oldCalc, newCalc domain.TaxCalculation) domain.Regime {
	if newCalc.TotalTaxPayable.LessThan(oldCalc.TotalTaxPayable) {
		return domain.RegimeNew
	}
	return domain.RegimeOld
}

// Savings returns how much the recommended regime saves over the other one
func Savings(c *domain.RegimeComparison) decimal.Decimal {
	return c.Old.TotalTaxPayable.Sub(c.New.TotalTaxPayable).Abs()
}
