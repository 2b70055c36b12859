package calculation

import (
	"testing"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

// ay2024Rules mirrors the embedded AY 2024-25 rules file
func ay2024Rules() *domain.TaxRules {
	return &domain.TaxRules{
		AssessmentYear: "2024-25",
		NewRegime: domain.SlabTable{
			{Min: d(0), Max: dp(300000), Rate: d(0)},
			{Min: d(300000), Max: dp(700000), Rate: d(5)},
			{Min: d(700000), Max: dp(1000000), Rate: d(10)},
			{Min: d(1000000), Max: dp(1200000), Rate: d(15)},
			{Min: d(1200000), Max: dp(1500000), Rate: d(20)},
			{Min: d(1500000), Rate: d(30)},
		},
		OldRegime: domain.SlabTable{
			{Min: d(0), Max: dp(250000), Rate: d(0)},
			{Min: d(250000), Max: dp(500000), Rate: d(5)},
			{Min: d(500000), Max: dp(1000000), Rate: d(20)},
			{Min: d(1000000), Rate: d(30)},
		},
		Surcharge: domain.SurchargeSchedule{
			{Above: d(5000000), Rate: d(10)},
			{Above: d(10000000), Rate: d(15)},
			{Above: d(20000000), Rate: d(25)},
			{Above: d(50000000), Rate: d(37)},
		},
		CessRate: d(4),
		DeductionLimits: domain.DeductionLimits{
			Section80C:     dp(150000),
			Section80CCD1B: dp(50000),
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(ay2024Rules())
	require.NoError(t, err)
	return engine
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, expected.Equal(actual), "expected %s, got %s %v", expected, actual, msgAndArgs)
}
