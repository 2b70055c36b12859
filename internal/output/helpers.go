package output

import (
	"strings"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pdfCurrencyPrefix replaces the rupee sign, which the PDF core fonts cannot encode
const pdfCurrencyPrefix = "Rs. "

// FormatRupees formats an amount with the rupee sign and Indian digit grouping.
func FormatRupees(amount decimal.Decimal) string { return money.New(amount).Format() }

// FormatRupeesASCII formats an amount for outputs limited to Latin-1 text.
func FormatRupeesASCII(amount decimal.Decimal) string {
	return money.New(amount).FormatWith(pdfCurrencyPrefix, 2)
}

// FormatLakh formats an amount in lakhs, e.g. ₹3.0L
func FormatLakh(amount decimal.Decimal) string { return money.New(amount).FormatLakhs() }

// RateLabel formats a percentage rate, e.g. 5%
func RateLabel(rate decimal.Decimal) string { return rate.String() + "%" }

// SlabLabel describes the bounds of a slab contribution
func SlabLabel(c domain.SlabContribution) string {
	if c.Max == nil {
		return "Above " + FormatLakh(c.Min)
	}
	return FormatLakh(c.Min) + " - " + FormatLakh(*c.Max)
}

// asciiLabel swaps the rupee sign for a Latin-1 safe prefix
func asciiLabel(s string) string {
	return strings.ReplaceAll(s, money.Symbol, "Rs.")
}

// TitleCase capitalises each word of an enum-style value. A Caser keeps state,
// so each call gets its own.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// AgeCategoryLabel renders the age bracket used for slab eligibility
func AgeCategoryLabel(age string) string {
	switch age {
	case "below60":
		return "Below 60 Years"
	case "60-79":
		return "60-80 Years"
	case "80above":
		return "Above 80 Years"
	default:
		return TitleCase(age)
	}
}

// CategoryLabel renders the assessee category
func CategoryLabel(category string) string {
	if category == "huf" {
		return "HUF"
	}
	return TitleCase(category)
}

// ResidentialStatusLabel renders the residential status
func ResidentialStatusLabel(status string) string {
	switch status {
	case "nri":
		return "Non-Resident"
	case "rnor":
		return "Resident but Not Ordinarily Resident"
	default:
		return TitleCase(status)
	}
}

// deductionLine is one named deduction with its amount
type deductionLine struct {
	Section string
	Label   string
	Amount  decimal.Decimal
}

func deductionLines(d domain.DeductionSet) []deductionLine {
	return []deductionLine{
		{"80C", "Section 80C (PPF, ELSS, LIC, etc.)", d.Section80C},
		{"80D", "Section 80D (Medical Insurance)", d.Section80D},
		{"80E", "Section 80E (Education Loan Interest)", d.Section80E},
		{"80G", "Section 80G (Donations)", d.Section80G},
		{"80EE", "Section 80EE (Home Loan Interest)", d.Section80EE},
		{"80CCD(1B)", "Section 80CCD(1B) (NPS)", d.Section80CCD1B},
	}
}

// incomeLine is one income head with its amount
type incomeLine struct {
	Label  string
	Amount decimal.Decimal
}

func incomeLines(p domain.IncomeProfile) []incomeLine {
	return []incomeLine{
		{"Salary Income", p.Salary},
		{"House Property Income", p.HouseProperty},
		{"Capital Gains", p.CapitalGains},
		{"Business/Profession Income", p.Business},
		{"Other Sources Income", p.OtherSources},
	}
}
