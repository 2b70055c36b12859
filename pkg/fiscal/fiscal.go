package fiscal

import (
	"fmt"
	"strconv"
	"time"
)

// AssessmentYear is the year in which income of the preceding financial year
// is assessed. AY 2024-25 assesses income earned from 1 April 2023 to 31 March 2024.
type AssessmentYear struct {
	Start int
}

// ParseAssessmentYear parses the "2024-25" form
func ParseAssessmentYear(s string) (AssessmentYear, error) {
	if len(s) != 7 || s[4] != '-' {
		return AssessmentYear{}, fmt.Errorf("assessment year %q must look like 2024-25", s)
	}
	start, err := strconv.Atoi(s[:4])
	if err != nil {
		return AssessmentYear{}, fmt.Errorf("assessment year %q: invalid start year: %w", s, err)
	}
	end, err := strconv.Atoi(s[5:])
	if err != nil {
		return AssessmentYear{}, fmt.Errorf("assessment year %q: invalid end year: %w", s, err)
	}
	if end != (start+1)%100 {
		return AssessmentYear{}, fmt.Errorf("assessment year %q: years must be consecutive", s)
	}
	return AssessmentYear{Start: start}, nil
}

// ForDate returns the assessment year for income earned on the given date
func ForDate(t time.Time) AssessmentYear {
	fy := t.Year()
	if t.Month() < time.April {
		fy--
	}
	return AssessmentYear{Start: fy + 1}
}

func (ay AssessmentYear) String() string {
	return fmt.Sprintf("%d-%02d", ay.Start, (ay.Start+1)%100)
}

// FinancialYear returns the matching financial year label, e.g. "2023-24"
func (ay AssessmentYear) FinancialYear() string {
	return fmt.Sprintf("%d-%02d", ay.Start-1, ay.Start%100)
}

// PeriodStart is 1 April of the financial year
func (ay AssessmentYear) PeriodStart() time.Time {
	return time.Date(ay.Start-1, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEnd is 31 March closing the financial year
func (ay AssessmentYear) PeriodEnd() time.Time {
	return time.Date(ay.Start, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// FilingDueDate is the return due date for non-audit cases
func (ay AssessmentYear) FilingDueDate() time.Time {
	return time.Date(ay.Start, time.July, 31, 0, 0, 0, 0, time.UTC)
}

// Before reports whether ay precedes other
func (ay AssessmentYear) Before(other AssessmentYear) bool {
	return ay.Start < other.Start
}
