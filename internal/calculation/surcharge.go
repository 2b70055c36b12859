package calculation

import (
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxWithLevies is base tax together with surcharge and health and education cess
type TaxWithLevies struct {
	BaseTax   decimal.Decimal
	Surcharge decimal.Decimal
	Cess      decimal.Decimal
	Total     decimal.Decimal
}

// SurchargeRate returns the rate of the highest band whose threshold is strictly
// below taxable income, or zero when no band applies.
func SurchargeRate(taxableIncome decimal.Decimal, bands domain.SurchargeSchedule) decimal.Decimal {
	rate := decimal.Zero
	for _, band := range bands {
		if !taxableIncome.GreaterThan(band.Above) {
			break
		}
		rate = band.Rate
	}
	return rate
}

// ApplySurchargeAndCess adds surcharge on base tax and cess on tax plus surcharge.
// The surcharge band is chosen from taxable income, not from the tax amount.
func ApplySurchargeAndCess(baseTax, taxableIncome decimal.Decimal, rules *domain.TaxRules) TaxWithLevies {
	surcharge := percentOf(baseTax, SurchargeRate(taxableIncome, rules.Surcharge))
	cess := percentOf(baseTax.Add(surcharge), rules.CessRate)
	return TaxWithLevies{
		BaseTax:   baseTax,
		Surcharge: surcharge,
		Cess:      cess,
		Total:     baseTax.Add(surcharge).Add(cess),
	}
}
