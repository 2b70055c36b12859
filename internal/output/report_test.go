package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	r := buildTestReport(t, domain.RegimeOld)

	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Equal(t, domain.RegimeOld, r.PreferredRegime)
	assert.Equal(t, domain.RegimeNew, r.Comparison.Recommended)

	// settled against the recommended (new) regime: 52000 - 40000 TDS
	assert.Equal(t, domain.RegimeNew, r.Settlement.Regime)
	assert.True(t, r.Settlement.Balance.Equal(decimal.NewFromInt(12000)))
	assert.False(t, r.Settlement.Refund)
}

func TestReportFilename(t *testing.T) {
	r := buildTestReport(t, domain.RegimeNew)
	assert.Equal(t, "Income_Tax_Report_ABCDE1234F_2024-25.pdf", r.Filename("pdf"))

	r.Taxpayer.PAN = ""
	assert.Equal(t, "Income_Tax_Report_UNKNOWN_2024-25.txt", r.Filename("txt"))
}

func TestGenerateReport(t *testing.T) {
	r := buildTestReport(t, domain.RegimeNew)
	dir := t.TempDir()

	paths, err := GenerateReport(r, "pdf", dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "Income_Tax_Report_ABCDE1234F_2024-25.pdf"), paths[0])
	assert.FileExists(t, paths[0])
}

func TestGenerateReport_All(t *testing.T) {
	r := buildTestReport(t, domain.RegimeNew)
	dir := filepath.Join(t.TempDir(), "reports")

	paths, err := GenerateReport(r, "all", dir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, ext := range []string{"txt", "csv", "json", "pdf"} {
		info, err := os.Stat(filepath.Join(dir, r.Filename(ext)))
		require.NoError(t, err, ext)
		assert.Positive(t, info.Size())
	}
}

func TestGenerateReport_Unsupported(t *testing.T) {
	r := buildTestReport(t, domain.RegimeNew)
	_, err := GenerateReport(r, "html", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "console, csv, json, pdf")
}
