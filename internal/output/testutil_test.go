package output

import (
	"testing"
	"time"

	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func testFirm() Firm {
	return Firm{Name: "Sahni & Co. - Chartered Accountants", Tagline: "Professional Tax Computation Report",
		Email: "contact@sahnico.com", Website: "www.sahnico.com"}
}

func testInput(regime domain.Regime) *domain.TaxpayerInput {
	return &domain.TaxpayerInput{
		Taxpayer: domain.Taxpayer{
			PAN: "ABCDE1234F", Name: "Priya Verma", AssessmentYear: "2024-25",
			Category: "individual", ResidentialStatus: "resident", AgeCategory: "below60",
		},
		PreferredRegime: regime,
		Income:          domain.IncomeProfile{Salary: decimal.NewFromInt(1000000)},
		Deductions:      domain.DeductionSet{Section80C: decimal.NewFromInt(150000)},
		Payments:        domain.Payments{TDS: decimal.NewFromInt(40000)},
	}
}

// buildTestReport runs the default AY 2024-25 rules over a 10L salary with 1.5L of 80C
func buildTestReport(t *testing.T, regime domain.Regime) *Report {
	t.Helper()
	SetNowFunc(func() time.Time { return fixedTime })
	SetIDFunc(func() string { return "00000000-0000-0000-0000-000000000001" })
	t.Cleanup(func() {
		SetNowFunc(time.Now)
		SetIDFunc(defaultIDFunc)
	})

	rules, err := config.LoadDefaultRules()
	require.NoError(t, err)
	ay, err := rules.Get("2024-25")
	require.NoError(t, err)
	engine, err := calculation.NewEngine(ay)
	require.NoError(t, err)

	input := testInput(regime)
	comparison, ok := engine.CompareRegimes(input.Income, input.Deductions)
	require.True(t, ok)
	return NewReport(testFirm(), input, comparison, nil)
}
