package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/pkg/fiscal"
	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var embeddedRules embed.FS

// ErrUnknownAssessmentYear is returned when no rules are registered for a year
var ErrUnknownAssessmentYear = errors.New("unknown assessment year")

// RuleSet maps assessment years to their tax rules
type RuleSet struct {
	rules map[string]*domain.TaxRules
}

// NewRuleSet creates an empty rule set
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]*domain.TaxRules)}
}

// Add validates and registers rules, replacing any existing rules for the same year
func (rs *RuleSet) Add(rules *domain.TaxRules) error {
	ay, err := fiscal.ParseAssessmentYear(rules.AssessmentYear)
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("rules for %s: %w", ay, err)
	}
	rs.rules[ay.String()] = rules
	return nil
}

// Get returns the rules for an assessment year such as "2024-25"
func (rs *RuleSet) Get(year string) (*domain.TaxRules, error) {
	rules, ok := rs.rules[year]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownAssessmentYear, year, rs.Years())
	}
	return rules, nil
}

// Years returns the registered assessment years in ascending order
func (rs *RuleSet) Years() []string {
	years := make([]string, 0, len(rs.rules))
	for y := range rs.rules {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Latest returns the rules for the most recent registered year
func (rs *RuleSet) Latest() (*domain.TaxRules, error) {
	years := rs.Years()
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: no rules loaded", ErrUnknownAssessmentYear)
	}
	return rs.rules[years[len(years)-1]], nil
}

// Resolve returns the rules for year, or the latest rules when year is empty
func (rs *RuleSet) Resolve(year string) (*domain.TaxRules, error) {
	if year == "" {
		return rs.Latest()
	}
	return rs.Get(year)
}

// ParseRules decodes one or more YAML rule documents separated by "---"
func ParseRules(data []byte) ([]*domain.TaxRules, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var out []*domain.TaxRules
	for {
		var rules domain.TaxRules
		err := dec.Decode(&rules)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
		}
		out = append(out, &rules)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rules documents found")
	}
	return out, nil
}

// LoadDefaultRules returns the rule set compiled into the binary
func LoadDefaultRules() (*RuleSet, error) {
	rs := NewRuleSet()
	files, err := fs.Glob(embeddedRules, "rules/*.yaml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		data, err := embeddedRules.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded rules %s: %w", name, err)
		}
		if err := rs.addDocuments(data); err != nil {
			return nil, fmt.Errorf("embedded rules %s: %w", name, err)
		}
	}
	return rs, nil
}

// LoadRules returns the default rules overlaid with the documents in path.
// An empty path yields the defaults only.
func LoadRules(path string) (*RuleSet, error) {
	rs, err := LoadDefaultRules()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return rs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	if err := rs.addDocuments(data); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

func (rs *RuleSet) addDocuments(data []byte) error {
	docs, err := ParseRules(data)
	if err != nil {
		return err
	}
	for _, rules := range docs {
		if err := rs.Add(rules); err != nil {
			return err
		}
	}
	return nil
}
