package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two statutory tax computation modes
type Regime string

const (
	// RegimeOld allows chapter VI-A deductions with the older, steeper slabs
	RegimeOld Regime = "old"
	// RegimeNew disallows deductions in exchange for lower slab rates
	RegimeNew Regime = "new"
)

// ParseRegime converts user input into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeOld, RegimeNew:
		return Regime(s), nil
	default:
		return "", fmt.Errorf("unknown tax regime %q (expected 'old' or 'new')", s)
	}
}

// Label returns the upper-case name used in reports
func (r Regime) Label() string {
	if r == RegimeOld {
		return "OLD TAX REGIME"
	}
	return "NEW TAX REGIME"
}

// TaxSlab is a contiguous income range taxed at a single marginal rate.
// Max is nil for the unbounded top slab. Rate is a percentage (5 means 5%).
type TaxSlab struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab has no upper limit
func (s TaxSlab) Unbounded() bool {
	return s.Max == nil
}

// IncomeProfile holds the five heads of income
type IncomeProfile struct {
	Salary        decimal.Decimal `yaml:"salary" json:"salary" validate:"gte=0"`
	HouseProperty decimal.Decimal `yaml:"house_property" json:"house_property" validate:"gte=0"`
	CapitalGains  decimal.Decimal `yaml:"capital_gains" json:"capital_gains" validate:"gte=0"`
	Business      decimal.Decimal `yaml:"business" json:"business" validate:"gte=0"`
	OtherSources  decimal.Decimal `yaml:"other_sources" json:"other_sources" validate:"gte=0"`
}

// Gross returns the sum of all income heads
func (p IncomeProfile) Gross() decimal.Decimal {
	return decimal.Sum(p.Salary, p.HouseProperty, p.CapitalGains, p.Business, p.OtherSources)
}

// DeductionSet holds the old-regime chapter VI-A deductions.
// Statutory caps are applied by the input layer before the engine sees these values.
type DeductionSet struct {
	Section80C     decimal.Decimal `yaml:"section_80c" json:"section_80c" validate:"gte=0"`
	Section80D     decimal.Decimal `yaml:"section_80d" json:"section_80d" validate:"gte=0"`
	Section80E     decimal.Decimal `yaml:"section_80e" json:"section_80e" validate:"gte=0"`
	Section80G     decimal.Decimal `yaml:"section_80g" json:"section_80g" validate:"gte=0"`
	Section80EE    decimal.Decimal `yaml:"section_80ee" json:"section_80ee" validate:"gte=0"`
	Section80CCD1B decimal.Decimal `yaml:"section_80ccd_1b" json:"section_80ccd_1b" validate:"gte=0"`
}

// Total returns the sum of all six deductions
func (d DeductionSet) Total() decimal.Decimal {
	return decimal.Sum(d.Section80C, d.Section80D, d.Section80E, d.Section80G, d.Section80EE, d.Section80CCD1B)
}

// SlabContribution records how much income fell into one slab and the tax it produced.
// Bounds are kept numeric; display labels are a presentation concern.
type SlabContribution struct {
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// TaxCalculation is the full computation for a single regime
type TaxCalculation struct {
	Regime          Regime             `json:"regime"`
	GrossIncome     decimal.Decimal    `json:"gross_income"`
	TaxableIncome   decimal.Decimal    `json:"taxable_income"`
	TotalTax        decimal.Decimal    `json:"total_tax"` // before surcharge and cess
	Surcharge       decimal.Decimal    `json:"surcharge"`
	Cess            decimal.Decimal    `json:"cess"`
	TotalTaxPayable decimal.Decimal    `json:"total_tax_payable"`
	NetIncome       decimal.Decimal    `json:"net_income"`
	Breakdown       []SlabContribution `json:"breakdown"`
}

// RegimeComparison pairs both regime computations with the cheaper choice
type RegimeComparison struct {
	Old         TaxCalculation `json:"old_regime"`
	New         TaxCalculation `json:"new_regime"`
	Recommended Regime         `json:"recommended"`
}

// For returns the calculation for the requested regime
func (c *RegimeComparison) For(r Regime) TaxCalculation {
	if r == RegimeOld {
		return c.Old
	}
	return c.New
}

// RecommendedCalculation returns the calculation for the recommended regime
func (c *RegimeComparison) RecommendedCalculation() TaxCalculation {
	return c.For(c.Recommended)
}
