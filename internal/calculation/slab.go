package calculation

import (
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION NOTES:
//
// Slab rates are marginal: each slab taxes only the portion of income that
// falls inside it. Income exactly at a slab boundary belongs to the lower
// slab, so 700000 under the AY 2024-25 new regime produces no 10% entry.
//
// Rates are stored as percentages and applied with Shift(-2) so the result
// stays exact. Nothing in this package rounds; rounding is a display concern.

var hundred = decimal.NewFromInt(100)

// SlabTax is the base tax for a taxable income plus the per-slab breakdown
type SlabTax struct {
	Tax       decimal.Decimal
	Breakdown []domain.SlabContribution
}

// ComputeSlabTax applies a validated slab table to taxable income.
// Negative income is treated as zero.
func ComputeSlabTax(taxableIncome decimal.Decimal, slabs domain.SlabTable) SlabTax {
	taxable := decimal.Max(taxableIncome, decimal.Zero)
	result := SlabTax{Tax: decimal.Zero, Breakdown: []domain.SlabContribution{}}

	for _, slab := range slabs {
		if taxable.LessThanOrEqual(slab.Min) {
			break
		}
		upper := taxable
		if slab.Max != nil {
			upper = decimal.Min(taxable, *slab.Max)
		}
		amount := upper.Sub(slab.Min)
		if !amount.IsPositive() {
			continue
		}
		tax := percentOf(amount, slab.Rate)
		result.Tax = result.Tax.Add(tax)
		result.Breakdown = append(result.Breakdown, domain.SlabContribution{
			Min:           slab.Min,
			Max:           slab.Max,
			Rate:          slab.Rate,
			TaxableAmount: amount,
			Tax:           tax,
		})
	}
	return result
}

// percentOf returns rate percent of amount without leaving decimal space
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2)
}
