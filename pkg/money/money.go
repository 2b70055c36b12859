package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the rupee sign used in display strings
const Symbol = "₹"

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// Rupees represents a monetary amount in Indian rupees
type Rupees struct {
	decimal.Decimal
}

// New wraps a decimal amount
func New(d decimal.Decimal) Rupees {
	return Rupees{d}
}

// FromInt creates an amount from whole rupees
func FromInt(v int64) Rupees {
	return Rupees{decimal.NewFromInt(v)}
}

// Parse reads an amount such as "1500000", "12,34,567.50" or "₹2,50,000"
func Parse(value string) (Rupees, error) {
	clean := strings.TrimSpace(value)
	clean = strings.TrimPrefix(clean, Symbol)
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return Rupees{}, err
	}
	return Rupees{d}, nil
}

// Round rounds the amount to paise
func (r Rupees) Round() Rupees {
	return Rupees{r.Decimal.Round(2)}
}

// Lakhs returns the amount expressed in lakhs
func (r Rupees) Lakhs() decimal.Decimal {
	return r.Decimal.Div(lakh)
}

// Crores returns the amount expressed in crores
func (r Rupees) Crores() decimal.Decimal {
	return r.Decimal.Div(crore)
}

// String returns the amount with two decimal places and no grouping
func (r Rupees) String() string {
	return r.Decimal.StringFixed(2)
}

// Format renders the amount with the rupee sign, Indian digit grouping and paise
func (r Rupees) Format() string {
	return r.FormatWith(Symbol, 2)
}

// FormatWith renders the amount with a custom prefix and number of decimal places
func (r Rupees) FormatWith(prefix string, places int32) string {
	fixed := r.Decimal.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if r.Decimal.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(GroupIndian(intPart))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatLakhs renders the amount in lakhs with one decimal place, e.g. ₹3.0L
func (r Rupees) FormatLakhs() string {
	return Symbol + r.Lakhs().StringFixed(1) + "L"
}

// GroupIndian inserts separators into a string of digits using the
// Indian system: the last three digits, then groups of two.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
