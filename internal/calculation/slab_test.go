package calculation

import (
	"testing"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSlabTax(t *testing.T) {
	rules := ay2024Rules()

	tests := []struct {
		name          string
		regime        domain.Regime
		taxable       decimal.Decimal
		expectedTax   decimal.Decimal
		expectedSlabs int
	}{
		{
			name:          "zero income",
			regime:        domain.RegimeNew,
			taxable:       decimal.Zero,
			expectedTax:   decimal.Zero,
			expectedSlabs: 0,
		},
		{
			name:          "negative income clamps to zero",
			regime:        domain.RegimeNew,
			taxable:       d(-5000),
			expectedTax:   decimal.Zero,
			expectedSlabs: 0,
		},
		{
			name:          "inside nil-rate slab",
			regime:        domain.RegimeNew,
			taxable:       d(250000),
			expectedTax:   decimal.Zero,
			expectedSlabs: 1, // 250000 @ 0%
		},
		{
			name:          "exactly on 7L boundary",
			regime:        domain.RegimeNew,
			taxable:       d(700000),
			expectedTax:   d(20000), // 400000 @ 5%
			expectedSlabs: 2,
		},
		{
			name:          "one rupee past 7L boundary",
			regime:        domain.RegimeNew,
			taxable:       d(700001),
			expectedTax:   decimal.RequireFromString("20000.1"),
			expectedSlabs: 3,
		},
		{
			name:          "new regime at 10L",
			regime:        domain.RegimeNew,
			taxable:       d(1000000),
			expectedTax:   d(50000), // 20000 + 30000
			expectedSlabs: 3,
		},
		{
			name:          "new regime into top slab",
			regime:        domain.RegimeNew,
			taxable:       d(1600000),
			expectedTax:   d(170000), // 20000 + 30000 + 30000 + 60000 + 30000
			expectedSlabs: 6,
		},
		{
			name:          "old regime at 8.5L",
			regime:        domain.RegimeOld,
			taxable:       d(850000),
			expectedTax:   d(82500), // 12500 + 70000
			expectedSlabs: 3,
		},
		{
			name:          "old regime above 10L",
			regime:        domain.RegimeOld,
			taxable:       d(1500000),
			expectedTax:   d(262500), // 12500 + 100000 + 150000
			expectedSlabs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeSlabTax(tt.taxable, rules.Slabs(tt.regime))
			assertDecimal(t, tt.expectedTax, result.Tax)
			assert.Len(t, result.Breakdown, tt.expectedSlabs)
		})
	}
}

func TestComputeSlabTax_BoundaryBelongsToLowerSlab(t *testing.T) {
	result := ComputeSlabTax(d(700000), ay2024Rules().NewRegime)

	require.Len(t, result.Breakdown, 2)
	last := result.Breakdown[1]
	assertDecimal(t, d(300000), last.Min)
	require.NotNil(t, last.Max)
	assertDecimal(t, d(700000), *last.Max)
	assertDecimal(t, d(400000), last.TaxableAmount)
	for _, c := range result.Breakdown {
		assert.False(t, c.Rate.Equal(d(10)), "no 10 percent entry expected at the boundary")
	}
}

func TestComputeSlabTax_BreakdownSumsToTax(t *testing.T) {
	rules := ay2024Rules()
	incomes := []string{"0", "1", "299999.99", "300000", "1234567.89", "1500000.01", "98765432.10"}

	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		for _, s := range incomes {
			income := decimal.RequireFromString(s)
			result := ComputeSlabTax(income, rules.Slabs(regime))

			sum := decimal.Zero
			allocated := decimal.Zero
			prevMin := decimal.NewFromInt(-1)
			for _, c := range result.Breakdown {
				assert.True(t, c.TaxableAmount.IsPositive(), "only slabs with income are reported")
				assert.True(t, c.Min.GreaterThan(prevMin), "breakdown is ascending")
				prevMin = c.Min
				sum = sum.Add(c.Tax)
				allocated = allocated.Add(c.TaxableAmount)
			}
			assertDecimal(t, result.Tax, sum, regime, s)
			assertDecimal(t, decimal.Max(income, decimal.Zero), allocated, regime, s)
		}
	}
}

func TestComputeSlabTax_NonNegativeAndMonotonic(t *testing.T) {
	rules := ay2024Rules()
	step := d(25000)

	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		prev := decimal.Zero
		for income := decimal.Zero; income.LessThanOrEqual(d(3000000)); income = income.Add(step) {
			for _, probe := range []decimal.Decimal{income, income.Add(d(1))} {
				tax := ComputeSlabTax(probe, rules.Slabs(regime)).Tax
				assert.False(t, tax.IsNegative(), "tax must be non-negative at %s", probe)
				assert.True(t, tax.GreaterThanOrEqual(prev), "%s: tax decreased at %s", regime, probe)
				prev = tax
			}
		}
	}
}

func TestComputeSlabTax_ZeroIncomeHasEmptyBreakdown(t *testing.T) {
	result := ComputeSlabTax(decimal.Zero, ay2024Rules().OldRegime)
	assert.NotNil(t, result.Breakdown)
	assert.Empty(t, result.Breakdown)
}
