package pregnancy

import (
	"fmt"
	"time"
)

// WeekStartDate returns the calendar date on which pregnancy week `week`
// begins. Weeks are numbered from 1, so week 1 starts on the LMP date.
func WeekStartDate(rp ReferencePoint, week int) time.Time {
	return addDays(LMP(rp), (week-1)*DaysPerWeek)
}

// WeekEndDate returns the last calendar date of pregnancy week `week`.
func WeekEndDate(rp ReferencePoint, week int) time.Time {
	return addDays(WeekStartDate(rp, week), DaysPerWeek-1)
}

// WeekRange returns the first and last calendar dates of pregnancy week `week`.
func WeekRange(rp ReferencePoint, week int) (start, end time.Time) {
	start = WeekStartDate(rp, week)
	return start, addDays(start, DaysPerWeek-1)
}

// WeekOf returns the 1-based pregnancy week containing date. Dates before the
// LMP fall in week 0.
func WeekOf(rp ReferencePoint, date time.Time) int {
	total := DaysBetween(LMP(rp), date)
	if total < 0 {
		return 0
	}
	return total/DaysPerWeek + 1
}

// FormatWeekRange renders a range as "Jan 2 - Jan 8, 2025", repeating the year
// on the start date only when the range crosses into a new year.
func FormatWeekRange(start, end time.Time) string {
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}
