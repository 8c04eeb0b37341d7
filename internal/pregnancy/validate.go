package pregnancy

import (
	"strings"
	"time"
)

// Rule identifies which reference point check failed.
type Rule string

const (
	RuleInvalidDate   Rule = "invalid_date"
	RuleFutureDate    Rule = "future_date"
	RuleWeeksRange    Rule = "weeks_range"
	RuleDaysRange     Rule = "days_range"
	RuleProgressRange Rule = "progress_range"
)

// ValidationError is a human-readable rejection of a candidate reference point.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Candidate is a reference point as entered by the user, before validation.
type Candidate struct {
	ReferenceDate string `json:"reference_date" yaml:"reference_date"`
	Weeks         int    `json:"reference_weeks" yaml:"reference_weeks"`
	Days          int    `json:"reference_days" yaml:"reference_days"`
}

// Validate checks a candidate against the reference point rules in order and
// returns a *ValidationError for the first one violated, or nil.
func Validate(c Candidate, now time.Time) error {
	if verr := check(c, now); verr != nil {
		return verr
	}
	return nil
}

// NewReferencePoint validates c and returns the typed reference point.
func NewReferencePoint(c Candidate, now time.Time) (ReferencePoint, error) {
	if verr := check(c, now); verr != nil {
		return ReferencePoint{}, verr
	}
	date, _ := ParseDate(strings.TrimSpace(c.ReferenceDate))
	return ReferencePoint{Date: date, Weeks: c.Weeks, Days: c.Days}, nil
}

func check(c Candidate, now time.Time) *ValidationError {
	date, err := ParseDate(strings.TrimSpace(c.ReferenceDate))
	if err != nil {
		return &ValidationError{Rule: RuleInvalidDate, Message: "Invalid reference date"}
	}

	if date.After(CivilDate(now)) {
		return &ValidationError{Rule: RuleFutureDate, Message: "Reference date cannot be in the future"}
	}

	if c.Weeks < 0 || c.Weeks > MaxWeeks {
		return &ValidationError{Rule: RuleWeeksRange, Message: "Weeks must be between 0 and 42"}
	}

	if c.Days < 0 || c.Days > MaxDays {
		return &ValidationError{Rule: RuleDaysRange, Message: "Days must be between 0 and 6"}
	}

	if c.Weeks*DaysPerWeek+c.Days > MaxReferenceDays {
		return &ValidationError{
			Rule:    RuleProgressRange,
			Message: "Pregnancy progress seems too far along. Please check your reference data.",
		}
	}

	return nil
}
