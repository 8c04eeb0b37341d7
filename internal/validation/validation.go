package validation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/storage"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidProfile      ConflictType = "invalid_profile"
	ConflictMilestoneOutOfRange ConflictType = "milestone_out_of_range"
	ConflictMedicationEndsEarly ConflictType = "medication_ends_before_start"
	ConflictDuplicateDate       ConflictType = "duplicate_date"
	ConflictInvalidDateTime     ConflictType = "invalid_datetime"
	ConflictMissingSchedule     ConflictType = "missing_schedule"
)

// Milestones more than this long after the due date are flagged.
const postDueGrace = 6 * pregnancy.DaysPerWeek

// Conflict represents a detected problem in the stored records
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // titles or names involved
	IDs         []string // IDs of records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Records is every stored record a validation pass looks at.
type Records struct {
	Milestones      []models.Milestone
	CalendarEntries []models.CalendarEntry
	Appointments    []models.Appointment
	Medications     []models.Medication
	Reminders       []models.Reminder
	DietPlans       []models.DietPlan
	WeightLogs      []models.WeightLog
}

// Collect reads the profile and all records from store. The profile is nil
// when none has been set up.
func Collect(store storage.Provider) (*models.Profile, Records, error) {
	var (
		r   Records
		err error
	)

	var profile *models.Profile
	p, err := store.GetProfile()
	switch {
	case err == nil:
		profile = &p
	case !errors.Is(err, storage.ErrNotFound):
		return nil, r, fmt.Errorf("failed to load profile: %w", err)
	}

	if r.Milestones, err = store.GetAllMilestones(); err != nil {
		return nil, r, fmt.Errorf("failed to load milestones: %w", err)
	}
	if r.CalendarEntries, err = store.GetAllCalendarEntries(); err != nil {
		return nil, r, fmt.Errorf("failed to load calendar entries: %w", err)
	}
	if r.Appointments, err = store.GetAllAppointments(); err != nil {
		return nil, r, fmt.Errorf("failed to load appointments: %w", err)
	}
	if r.Medications, err = store.GetAllMedications(); err != nil {
		return nil, r, fmt.Errorf("failed to load medications: %w", err)
	}
	if r.Reminders, err = store.GetAllReminders(); err != nil {
		return nil, r, fmt.Errorf("failed to load reminders: %w", err)
	}
	if r.DietPlans, err = store.GetAllDietPlans(); err != nil {
		return nil, r, fmt.Errorf("failed to load diet plans: %w", err)
	}
	if r.WeightLogs, err = store.GetWeightLogs(); err != nil {
		return nil, r, fmt.Errorf("failed to load weight logs: %w", err)
	}
	return profile, r, nil
}

// Validator validates stored records for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRecords checks records against each other and against profile.
// Milestone range checks are skipped when profile is nil.
func (v *Validator) ValidateRecords(profile *models.Profile, r Records, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if profile != nil {
		if err := profile.Validate(now); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidProfile,
				Description: fmt.Sprintf("Profile reference point is invalid: %v", err),
			})
		} else {
			result.Conflicts = append(result.Conflicts, checkMilestoneRange(profile.Reference, r.Milestones)...)
		}
	}

	for _, m := range r.Milestones {
		if !isValidDate(m.Date) {
			result.Conflicts = append(result.Conflicts, invalid(fmt.Sprintf("Milestone \"%s\" has invalid date: %s", m.Title, m.Date), m.Title, m.ID))
		}
	}

	for _, a := range r.Appointments {
		if !isValidDate(a.Date) {
			result.Conflicts = append(result.Conflicts, invalid(fmt.Sprintf("Appointment \"%s\" has invalid date: %s", a.Title, a.Date), a.Title, a.ID))
		}
		if !isValidTimeFormat(a.Time) {
			result.Conflicts = append(result.Conflicts, invalid(fmt.Sprintf("Appointment \"%s\" has invalid time: %s", a.Title, a.Time), a.Title, a.ID))
		}
	}

	for _, rem := range r.Reminders {
		if !isValidTimeFormat(rem.Time) {
			result.Conflicts = append(result.Conflicts, invalid(fmt.Sprintf("Reminder \"%s\" has invalid time: %s", rem.Title, rem.Time), rem.Title, rem.ID))
		}
		if rem.Date != "" && !isValidDate(rem.Date) {
			result.Conflicts = append(result.Conflicts, invalid(fmt.Sprintf("Reminder \"%s\" has invalid date: %s", rem.Title, rem.Date), rem.Title, rem.ID))
		}
	}

	for _, m := range r.Medications {
		result.Conflicts = append(result.Conflicts, checkMedication(m)...)
	}

	calendarDates := make([]dated, 0, len(r.CalendarEntries))
	for _, e := range r.CalendarEntries {
		calendarDates = append(calendarDates, dated{id: e.ID, date: e.Date})
	}
	result.Conflicts = append(result.Conflicts, duplicateDates("calendar entries", calendarDates)...)

	planDates := make([]dated, 0, len(r.DietPlans))
	for _, p := range r.DietPlans {
		planDates = append(planDates, dated{id: p.ID, date: p.Date})
	}
	result.Conflicts = append(result.Conflicts, duplicateDates("diet plans", planDates)...)

	weightDates := make([]dated, 0, len(r.WeightLogs))
	for _, w := range r.WeightLogs {
		weightDates = append(weightDates, dated{id: w.ID, date: w.Date})
	}
	result.Conflicts = append(result.Conflicts, duplicateDates("weight logs", weightDates)...)

	return result
}

func checkMilestoneRange(rp pregnancy.ReferencePoint, milestones []models.Milestone) []Conflict {
	var conflicts []Conflict
	lmp := pregnancy.LMP(rp)
	latest := pregnancy.DueDate(rp).AddDate(0, 0, postDueGrace)

	for _, m := range milestones {
		date, err := pregnancy.ParseDate(m.Date)
		if err != nil {
			continue
		}
		switch {
		case date.Before(lmp):
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMilestoneOutOfRange,
				Description: fmt.Sprintf("Milestone \"%s\" on %s is before the pregnancy started (%s)", m.Title, m.Date, lmp.Format(constants.DateFormat)),
				Date:        m.Date,
				Items:       []string{m.Title},
				IDs:         []string{m.ID},
			})
		case date.After(latest):
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMilestoneOutOfRange,
				Description: fmt.Sprintf("Milestone \"%s\" on %s is more than 6 weeks after the due date", m.Title, m.Date),
				Date:        m.Date,
				Items:       []string{m.Title},
				IDs:         []string{m.ID},
			})
		}
	}
	return conflicts
}

func checkMedication(m models.Medication) []Conflict {
	var conflicts []Conflict

	if !isValidDate(m.StartDate) {
		conflicts = append(conflicts, invalid(fmt.Sprintf("Medication \"%s\" has invalid start date: %s", m.Name, m.StartDate), m.Name, m.ID))
	}
	if m.EndDate != "" && !isValidDate(m.EndDate) {
		conflicts = append(conflicts, invalid(fmt.Sprintf("Medication \"%s\" has invalid end date: %s", m.Name, m.EndDate), m.Name, m.ID))
	}
	if isValidDate(m.StartDate) && isValidDate(m.EndDate) && m.EndDate < m.StartDate {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictMedicationEndsEarly,
			Description: fmt.Sprintf("Medication \"%s\" ends (%s) before it starts (%s)", m.Name, m.EndDate, m.StartDate),
			Date:        m.StartDate,
			Items:       []string{m.Name},
			IDs:         []string{m.ID},
		})
	}

	if m.Frequency == models.FrequencyCustom && len(m.CustomSchedule) == 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictMissingSchedule,
			Description: fmt.Sprintf("Medication \"%s\" has a custom frequency but no scheduled times", m.Name),
			Items:       []string{m.Name},
			IDs:         []string{m.ID},
		})
	}
	for _, t := range m.CustomSchedule {
		if !isValidTimeFormat(t) {
			conflicts = append(conflicts, invalid(fmt.Sprintf("Medication \"%s\" has invalid scheduled time: %s", m.Name, t), m.Name, m.ID))
		}
	}
	return conflicts
}

type dated struct {
	id   string
	date string
}

func duplicateDates(kind string, items []dated) []Conflict {
	byDate := make(map[string][]string)
	for _, it := range items {
		byDate[it.date] = append(byDate[it.date], it.id)
	}

	dates := make([]string, 0, len(byDate))
	for date, ids := range byDate {
		if len(ids) > 1 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	conflicts := make([]Conflict, 0, len(dates))
	for _, date := range dates {
		ids := byDate[date]
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateDate,
			Description: fmt.Sprintf("Multiple %s on %s (IDs: %v)", kind, date, ids),
			Date:        date,
			Items:       []string{kind},
			IDs:         ids,
		})
	}
	return conflicts
}

func invalid(description, item, id string) Conflict {
	return Conflict{
		Type:        ConflictInvalidDateTime,
		Description: description,
		Items:       []string{item},
		IDs:         []string{id},
	}
}

// isValidTimeFormat checks if a time string is in valid HH:MM format
func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}
