// Package pregnancy derives pregnancy progress from a reference point: a
// calendar date on which the weeks/days of progress were known with certainty.
//
// Every value is recomputed from the reference point on each call. Nothing in
// this package reads the wall clock; the evaluation instant is always passed in.
package pregnancy

import (
	"fmt"
	"math"
	"time"
)

const (
	// DateFormat is the calendar-date layout used for reference and due dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	DaysPerWeek = 7
	// TermDays is the length of a full-term pregnancy measured from LMP (40 weeks)
	TermDays = 280

	MaxWeeks         = 42
	MaxDays          = 6
	MaxReferenceDays = 350
)

// ReferencePoint is the known progress (Weeks, Days) on a calendar Date.
// Build one with NewReferencePoint; the zero value is not meaningful.
type ReferencePoint struct {
	Date  time.Time `json:"reference_date" yaml:"reference_date"`
	Weeks int       `json:"reference_weeks" yaml:"reference_weeks"`
	Days  int       `json:"reference_days" yaml:"reference_days"`
}

// TotalDays is the progress at the reference date expressed in days.
func (rp ReferencePoint) TotalDays() int {
	return rp.Weeks*DaysPerWeek + rp.Days
}

// Candidate returns the unvalidated form of the reference point.
func (rp ReferencePoint) Candidate() Candidate {
	return Candidate{
		ReferenceDate: rp.Date.Format(DateFormat),
		Weeks:         rp.Weeks,
		Days:          rp.Days,
	}
}

// Status is the progress of a pregnancy on a given evaluation date.
type Status struct {
	Weeks           int     `json:"weeks" yaml:"weeks"`
	Days            int     `json:"days" yaml:"days"`
	TotalDays       int     `json:"total_days" yaml:"total_days"`
	DueDate         string  `json:"due_date" yaml:"due_date"`
	PercentComplete float64 `json:"percent_complete" yaml:"percent_complete"`
}

func (s Status) String() string {
	return fmt.Sprintf("%d weeks %d days", s.Weeks, s.Days)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// CivilDate drops the time of day from t, keeping the calendar date as seen in
// t's own location, and re-anchors it at midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(CivilDate(to).Sub(CivilDate(from)) / (24 * time.Hour))
}

func addDays(t time.Time, n int) time.Time {
	return CivilDate(t).AddDate(0, 0, n)
}

// LMP returns the last menstrual period date implied by the reference point.
func LMP(rp ReferencePoint) time.Time {
	return addDays(rp.Date, -rp.TotalDays())
}

// DueDate returns the estimated delivery date, LMP + 280 days.
func DueDate(rp ReferencePoint) time.Time {
	return addDays(LMP(rp), TermDays)
}

// ComputeStatus returns the progress of the pregnancy on the calendar date of
// `at`. When `at` falls before the LMP, Weeks, Days and PercentComplete are
// clamped to zero while TotalDays keeps the negative offset.
func ComputeStatus(rp ReferencePoint, at time.Time) Status {
	lmp := LMP(rp)
	total := DaysBetween(lmp, at)

	status := Status{
		TotalDays: total,
		DueDate:   addDays(lmp, TermDays).Format(DateFormat),
	}
	if total < 0 {
		return status
	}

	status.Weeks = total / DaysPerWeek
	status.Days = total % DaysPerWeek

	percent := math.Min(float64(total)/TermDays*100, 100)
	status.PercentComplete = math.Round(percent*10) / 10

	return status
}

// ProgressOn returns the completed weeks and days on the given date.
func ProgressOn(rp ReferencePoint, date time.Time) (weeks, days int) {
	s := ComputeStatus(rp, date)
	return s.Weeks, s.Days
}

// Trimester maps completed weeks to a trimester: 1 (0-13), 2 (14-27), 3 (28+).
func Trimester(weeks int) int {
	switch {
	case weeks <= 13:
		return 1
	case weeks <= 27:
		return 2
	default:
		return 3
	}
}

// DaysUntilDue returns the signed number of days from `at` to the due date.
func DaysUntilDue(due, at time.Time) int {
	return DaysBetween(at, due)
}
