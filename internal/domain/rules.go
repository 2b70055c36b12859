package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules holds every rate table for one assessment year. It is loaded from
// rules YAML so that a new year is a data change, not a code change.
type TaxRules struct {
	AssessmentYear  string            `yaml:"assessment_year" json:"assessment_year"`
	Description     string            `yaml:"description,omitempty" json:"description,omitempty"`
	NewRegime       SlabTable         `yaml:"new_regime" json:"new_regime"`
	OldRegime       SlabTable         `yaml:"old_regime" json:"old_regime"`
	Surcharge       SurchargeSchedule `yaml:"surcharge" json:"surcharge"`
	CessRate        decimal.Decimal   `yaml:"cess_rate" json:"cess_rate"`
	DeductionLimits DeductionLimits   `yaml:"deduction_limits" json:"deduction_limits"`
}

// Slabs returns the slab table for a regime
func (r *TaxRules) Slabs(regime Regime) SlabTable {
	if regime == RegimeOld {
		return r.OldRegime
	}
	return r.NewRegime
}

// Validate checks every table in the rule set
func (r *TaxRules) Validate() error {
	if r.AssessmentYear == "" {
		return errors.New("assessment year is required")
	}
	for _, regime := range []Regime{RegimeOld, RegimeNew} {
		if err := r.Slabs(regime).Validate(); err != nil {
			var se *SlabError
			if errors.As(err, &se) {
				se.Regime = regime
			}
			return fmt.Errorf("%s: %w", r.AssessmentYear, err)
		}
	}
	if err := r.Surcharge.Validate(); err != nil {
		return fmt.Errorf("surcharge bands: %w", err)
	}
	if r.CessRate.IsNegative() {
		return fmt.Errorf("cess rate cannot be negative")
	}
	if err := r.DeductionLimits.Validate(); err != nil {
		return fmt.Errorf("deduction limits: %w", err)
	}
	return nil
}

// SlabError describes why a slab table is malformed
type SlabError struct {
	Regime Regime
	Index  int
	Reason string
}

func (e *SlabError) Error() string {
	if e.Regime != "" {
		return fmt.Sprintf("%s regime slab %d: %s", e.Regime, e.Index, e.Reason)
	}
	return fmt.Sprintf("slab %d: %s", e.Index, e.Reason)
}

// SlabTable is an ascending partition of [0, ∞) into rate bands
type SlabTable []TaxSlab

// Validate enforces the partition invariant: the first slab starts at zero,
// each slab starts where the previous one ended, and only the last slab is unbounded.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return &SlabError{Index: 0, Reason: "table is empty"}
	}
	if !t[0].Min.IsZero() {
		return &SlabError{Index: 0, Reason: fmt.Sprintf("first slab must start at 0, got %s", t[0].Min)}
	}
	for i, s := range t {
		if s.Rate.IsNegative() {
			return &SlabError{Index: i, Reason: "rate cannot be negative"}
		}
		last := i == len(t)-1
		if s.Max == nil {
			if !last {
				return &SlabError{Index: i, Reason: "only the last slab may be unbounded"}
			}
			continue
		}
		if !s.Max.GreaterThan(s.Min) {
			return &SlabError{Index: i, Reason: fmt.Sprintf("max %s must be greater than min %s", s.Max, s.Min)}
		}
		if last {
			return &SlabError{Index: i, Reason: "last slab must be unbounded"}
		}
		next := t[i+1].Min
		switch {
		case next.GreaterThan(*s.Max):
			return &SlabError{Index: i + 1, Reason: fmt.Sprintf("gap between %s and %s", s.Max, next)}
		case next.LessThan(*s.Max):
			return &SlabError{Index: i + 1, Reason: fmt.Sprintf("overlaps previous slab ending at %s", s.Max)}
		}
	}
	return nil
}

// SurchargeBand applies Rate percent of base tax once taxable income strictly exceeds Above
type SurchargeBand struct {
	Above decimal.Decimal `yaml:"above" json:"above"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// SurchargeSchedule lists surcharge bands in ascending order of threshold.
// Income at or below the first threshold attracts no surcharge.
type SurchargeSchedule []SurchargeBand

// Validate requires strictly ascending, non-negative thresholds and rates
func (s SurchargeSchedule) Validate() error {
	for i, b := range s {
		if b.Above.IsNegative() || b.Rate.IsNegative() {
			return fmt.Errorf("band %d: threshold and rate must be non-negative", i)
		}
		if i > 0 && !b.Above.GreaterThan(s[i-1].Above) {
			return fmt.Errorf("band %d: threshold %s must exceed %s", i, b.Above, s[i-1].Above)
		}
	}
	return nil
}

// DeductionLimits caps individual deductions. A nil limit means uncapped.
type DeductionLimits struct {
	Section80C     *decimal.Decimal `yaml:"section_80c,omitempty" json:"section_80c,omitempty"`
	Section80D     *decimal.Decimal `yaml:"section_80d,omitempty" json:"section_80d,omitempty"`
	Section80E     *decimal.Decimal `yaml:"section_80e,omitempty" json:"section_80e,omitempty"`
	Section80G     *decimal.Decimal `yaml:"section_80g,omitempty" json:"section_80g,omitempty"`
	Section80EE    *decimal.Decimal `yaml:"section_80ee,omitempty" json:"section_80ee,omitempty"`
	Section80CCD1B *decimal.Decimal `yaml:"section_80ccd_1b,omitempty" json:"section_80ccd_1b,omitempty"`
}

// CappedDeduction records a deduction that was reduced to its statutory limit
type CappedDeduction struct {
	Section   string
	Requested decimal.Decimal
	Allowed   decimal.Decimal
}

// Validate rejects negative limits
func (l DeductionLimits) Validate() error {
	for _, f := range l.fields(&DeductionSet{}) {
		if f.limit != nil && f.limit.IsNegative() {
			return fmt.Errorf("limit for section %s cannot be negative", f.section)
		}
	}
	return nil
}

// Apply returns a copy of d with every capped deduction reduced to its limit,
// together with the list of deductions that were reduced.
func (l DeductionLimits) Apply(d DeductionSet) (DeductionSet, []CappedDeduction) {
	out := d
	var capped []CappedDeduction
	for _, f := range l.fields(&out) {
		if f.limit == nil || !f.value.GreaterThan(*f.limit) {
			continue
		}
		capped = append(capped, CappedDeduction{Section: f.section, Requested: *f.value, Allowed: *f.limit})
		*f.value = *f.limit
	}
	return out, capped
}

type limitField struct {
	section string
	limit   *decimal.Decimal
	value   *decimal.Decimal
}

func (l DeductionLimits) fields(d *DeductionSet) []limitField {
	return []limitField{
		{"80C", l.Section80C, &d.Section80C},
		{"80D", l.Section80D, &d.Section80D},
		{"80E", l.Section80E, &d.Section80E},
		{"80G", l.Section80G, &d.Section80G},
		{"80EE", l.Section80EE, &d.Section80EE},
		{"80CCD(1B)", l.Section80CCD1B, &d.Section80CCD1B},
	}
}
