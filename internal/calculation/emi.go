package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// emiPrecision bounds intermediate growth-factor digits during exponentiation
const emiPrecision = 24

// EMIResult is the schedule summary of an amortising loan, rounded to paise
type EMIResult struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Months        int             `json:"months"`
	EMI           decimal.Decimal `json:"emi"`
	TotalPayment  decimal.Decimal `json:"total_payment"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// CalculateEMI returns the equated monthly instalment for a loan.
// A zero rate repays the principal in equal parts.
func CalculateEMI(principal, annualRate decimal.Decimal, months int) (EMIResult, error) {
	if months <= 0 {
		return EMIResult{}, fmt.Errorf("tenure must be at least one month, got %d", months)
	}
	if principal.IsNegative() {
		return EMIResult{}, fmt.Errorf("principal cannot be negative: %s", principal)
	}
	if annualRate.IsNegative() {
		return EMIResult{}, fmt.Errorf("interest rate cannot be negative: %s", annualRate)
	}

	n := decimal.NewFromInt(int64(months))
	var emi decimal.Decimal
	if annualRate.IsZero() {
		emi = principal.Div(n)
	} else {
		r := annualRate.Div(decimal.NewFromInt(1200))
		growth := powInt(decimal.NewFromInt(1).Add(r), months)
		emi = principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}
	emi = emi.Round(2)

	total := emi.Mul(n)
	return EMIResult{
		Principal:     principal,
		AnnualRate:    annualRate,
		Months:        months,
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total.Sub(principal),
	}, nil
}

// powInt raises base to a non-negative integer power by repeated squaring
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(emiPrecision)
		}
		base = base.Mul(base).Round(emiPrecision)
		exp >>= 1
	}
	return result
}
