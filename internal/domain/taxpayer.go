package domain

import "github.com/shopspring/decimal"

// Taxpayer identifies the person or entity the return is prepared for
type Taxpayer struct {
	PAN               string `yaml:"pan" json:"pan" validate:"required,pan"`
	Name              string `yaml:"name" json:"name" validate:"required"`
	AssessmentYear    string `yaml:"assessment_year" json:"assessment_year" validate:"required"`
	Category          string `yaml:"category" json:"category" validate:"required,oneof=individual huf company firm"`
	ResidentialStatus string `yaml:"residential_status" json:"residential_status" validate:"required,oneof=resident nri rnor"`
	AgeCategory       string `yaml:"age_category" json:"age_category" validate:"required,oneof=below60 60-79 80above"`
	Email             string `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
}

// Payments are taxes already deposited against the year's liability
type Payments struct {
	TDS        decimal.Decimal `yaml:"tds" json:"tds" validate:"gte=0"`
	AdvanceTax decimal.Decimal `yaml:"advance_tax" json:"advance_tax" validate:"gte=0"`
}

// Total returns TDS plus advance tax
func (p Payments) Total() decimal.Decimal {
	return p.TDS.Add(p.AdvanceTax)
}

// Settlement is the balance due to, or refundable by, the department
type Settlement struct {
	Regime     Regime          `json:"regime"`
	TaxPayable decimal.Decimal `json:"tax_payable"`
	TaxesPaid  decimal.Decimal `json:"taxes_paid"`
	Balance    decimal.Decimal `json:"balance"` // always non-negative; see Refund
	Refund     bool            `json:"refund"`
}

// TaxpayerInput is the complete document a computation is run from
type TaxpayerInput struct {
	Taxpayer        Taxpayer      `yaml:"taxpayer" json:"taxpayer"`
	PreferredRegime Regime        `yaml:"preferred_regime" json:"preferred_regime" validate:"omitempty,oneof=old new"`
	Income          IncomeProfile `yaml:"income" json:"income"`
	Deductions      DeductionSet  `yaml:"deductions" json:"deductions"`
	Payments        Payments      `yaml:"payments" json:"payments"`
}

// Regime returns the preferred regime, defaulting to the new regime
func (in *TaxpayerInput) Regime() Regime {
	if in.PreferredRegime == "" {
		return RegimeNew
	}
	return in.PreferredRegime
}
