package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GSTMode selects whether the amount already includes GST
type GSTMode string

const (
	// GSTExclusive adds GST on top of a base amount
	GSTExclusive GSTMode = "exclusive"
	// GSTInclusive extracts GST from an amount that already contains it
	GSTInclusive GSTMode = "inclusive"
)

// CommonGSTRates are the standard GST slabs in percent
var CommonGSTRates = []decimal.Decimal{
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// GSTResult splits an amount into base, GST and its central and state halves.
// All amounts are rounded to paise.
type GSTResult struct {
	Mode       GSTMode         `json:"mode"`
	Rate       decimal.Decimal `json:"rate"`
	BaseAmount decimal.Decimal `json:"base_amount"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	Total      decimal.Decimal `json:"total"`
}

// CalculateGST computes GST for the given amount and rate (percent)
func CalculateGST(amount, rate decimal.Decimal, mode GSTMode) (GSTResult, error) {
	if amount.IsNegative() {
		return GSTResult{}, fmt.Errorf("amount cannot be negative: %s", amount)
	}
	if rate.IsNegative() {
		return GSTResult{}, fmt.Errorf("GST rate cannot be negative: %s", rate)
	}

	var base, gst, total decimal.Decimal
	switch mode {
	case GSTExclusive, "":
		mode = GSTExclusive
		base = amount.Round(2)
		gst = percentOf(amount, rate).Round(2)
		total = base.Add(gst)
	case GSTInclusive:
		total = amount.Round(2)
		base = amount.Mul(hundred).Div(hundred.Add(rate)).Round(2)
		gst = total.Sub(base)
	default:
		return GSTResult{}, fmt.Errorf("unknown GST mode %q (expected 'exclusive' or 'inclusive')", mode)
	}

	cgst := gst.Div(decimal.NewFromInt(2)).Round(2)
	return GSTResult{
		Mode:       mode,
		Rate:       rate,
		BaseAmount: base,
		GSTAmount:  gst,
		CGST:       cgst,
		SGST:       gst.Sub(cgst),
		Total:      total,
	}, nil
}
