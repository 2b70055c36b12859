package calculation

import (
	"sync"
	"testing"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RejectsInvalidRules(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)

	rules := ay2024Rules()
	rules.NewRegime[2].Min = d(750000) // gap after 7L
	_, err = NewEngine(rules)
	require.Error(t, err)

	var se *domain.SlabError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, domain.RegimeNew, se.Regime)
}

func TestCompareRegimes_EndToEnd(t *testing.T) {
	engine := newTestEngine(t)

	income := domain.IncomeProfile{Salary: d(1000000)}
	deductions := domain.DeductionSet{Section80C: d(150000)}

	result, ok := engine.CompareRegimes(income, deductions)
	require.True(t, ok)

	assertDecimal(t, d(850000), result.Old.TaxableIncome)
	assertDecimal(t, d(82500), result.Old.TotalTax)
	assertDecimal(t, d(0), result.Old.Surcharge)
	assertDecimal(t, d(3300), result.Old.Cess)
	assertDecimal(t, d(85800), result.Old.TotalTaxPayable)
	assertDecimal(t, d(914200), result.Old.NetIncome)

	assertDecimal(t, d(1000000), result.New.TaxableIncome)
	assertDecimal(t, d(50000), result.New.TotalTax)
	assertDecimal(t, d(2000), result.New.Cess)
	assertDecimal(t, d(52000), result.New.TotalTaxPayable)
	assertDecimal(t, d(948000), result.New.NetIncome)

	assert.Equal(t, domain.RegimeNew, result.Recommended)
	assertDecimal(t, d(33800), Savings(result))
	assert.Equal(t, domain.RegimeNew, result.RecommendedCalculation().Regime)
}

func TestCompareRegimes_ZeroIncomeHasNoResult(t *testing.T) {
	engine := newTestEngine(t)

	result, ok := engine.CompareRegimes(domain.IncomeProfile{}, domain.DeductionSet{Section80C: d(150000)})
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestCompareRegimes_TieGoesToOldRegime(t *testing.T) {
	engine := newTestEngine(t)

	// both regimes owe nothing at 2.5L
	result, ok := engine.CompareRegimes(domain.IncomeProfile{Salary: d(250000)}, domain.DeductionSet{})
	require.True(t, ok)
	assertDecimal(t, result.Old.TotalTaxPayable, result.New.TotalTaxPayable)
	assert.Equal(t, domain.RegimeOld, result.Recommended)
}

func TestCompareRegimes_OldRegimeWinsWithLargeDeductions(t *testing.T) {
	engine := newTestEngine(t)

	income := domain.IncomeProfile{Salary: d(700000), OtherSources: d(50000)}
	deductions := domain.DeductionSet{Section80C: d(150000), Section80D: d(50000), Section80CCD1B: d(50000)}

	result, ok := engine.CompareRegimes(income, deductions)
	require.True(t, ok)

	// old: taxable 500000 -> 12500 + 4% cess = 13000
	// new: taxable 750000 -> 20000 + 5000 = 25000 + 4% cess = 26000
	assertDecimal(t, d(13000), result.Old.TotalTaxPayable)
	assertDecimal(t, d(26000), result.New.TotalTaxPayable)
	assert.Equal(t, domain.RegimeOld, result.Recommended)
}

func TestComputeRegime_NewRegimeIgnoresDeductions(t *testing.T) {
	engine := newTestEngine(t)
	income := domain.IncomeProfile{Salary: d(1800000), CapitalGains: d(200000)}

	without := engine.ComputeRegime(domain.RegimeNew, income, domain.DeductionSet{})
	with := engine.ComputeRegime(domain.RegimeNew, income, domain.DeductionSet{
		Section80C: d(150000), Section80D: d(75000), Section80E: d(40000),
	})

	assert.Equal(t, without, with)
	assertDecimal(t, d(2000000), with.TaxableIncome)
}

func TestComputeRegime_OverDeductionClampsToZero(t *testing.T) {
	engine := newTestEngine(t)

	calc := engine.ComputeRegime(domain.RegimeOld,
		domain.IncomeProfile{OtherSources: d(200000)},
		domain.DeductionSet{Section80C: d(150000), Section80G: d(350000)})

	assertDecimal(t, d(0), calc.TaxableIncome)
	assertDecimal(t, d(0), calc.TotalTaxPayable)
	assertDecimal(t, d(200000), calc.NetIncome)
	assert.Empty(t, calc.Breakdown)
}

func TestComputeRegime_SurchargeUsesRegimeTaxableIncome(t *testing.T) {
	engine := newTestEngine(t)

	// gross just above 50L; old-regime deductions pull taxable income back under it
	income := domain.IncomeProfile{Salary: d(5100000)}
	deductions := domain.DeductionSet{Section80C: d(150000)}

	result, ok := engine.CompareRegimes(income, deductions)
	require.True(t, ok)
	assertDecimal(t, d(0), result.Old.Surcharge)
	assert.True(t, result.New.Surcharge.IsPositive())
}

func TestCompareRegimes_Idempotent(t *testing.T) {
	engine := newTestEngine(t)
	income := domain.IncomeProfile{Salary: d(2450000), HouseProperty: d(120000), Business: d(75000)}
	deductions := domain.DeductionSet{Section80C: d(150000), Section80EE: d(50000)}

	first, ok := engine.CompareRegimes(income, deductions)
	require.True(t, ok)
	second, ok := engine.CompareRegimes(income, deductions)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := newTestEngine(t)
	income := domain.IncomeProfile{Salary: d(1000000)}
	deductions := domain.DeductionSet{Section80C: d(150000)}

	var wg sync.WaitGroup
	results := make([]*domain.RegimeComparison, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.CompareRegimes(income, deductions)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assertDecimal(t, d(52000), r.New.TotalTaxPayable)
	}
}

func TestRecommend(t *testing.T) {
	cheap := domain.TaxCalculation{TotalTaxPayable: d(1000)}
	dear := domain.TaxCalculation{TotalTaxPayable: d(2000)}

	assert.Equal(t, domain.RegimeNew, Recommend(dear, cheap))
	assert.Equal(t, domain.RegimeOld, Recommend(cheap, dear))
	assert.Equal(t, domain.RegimeOld, Recommend(cheap, cheap))
}
