// Package reminders works out when appointment, medication and custom
// reminders are due, and runs the watcher that delivers them.
//
// Planning functions are pure: the evaluation instant is always passed in and
// its Location decides the wall clock that HH:MM times are read in.
package reminders

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
)

type Kind string

const (
	KindAppointment Kind = "appointment"
	KindMedication  Kind = "medication"
	KindReminder    Kind = "reminder"
)

// Occurrence is one notification due at a specific instant.
type Occurrence struct {
	At       time.Time
	Kind     Kind
	Title    string
	Body     string
	SourceID string
	Alarm    bool
}

// Source is the read side of the store the planner needs.
type Source interface {
	GetAllAppointments() ([]models.Appointment, error)
	GetAllMedications() ([]models.Medication, error)
	GetAllReminders() ([]models.Reminder, error)
}

var frequencyTimes = map[models.Frequency][]string{
	models.FrequencyDaily:           {"09:00"},
	models.FrequencyTwiceDaily:      {"09:00", "21:00"},
	models.FrequencyThreeTimesDaily: {"08:00", "14:00", "20:00"},
}

// MedicationTimes returns the HH:MM times a medication is taken each day.
// As-needed medications have none.
func MedicationTimes(m models.Medication) []string {
	if m.Frequency == models.FrequencyCustom {
		return m.CustomSchedule
	}
	return frequencyTimes[m.Frequency]
}

// AppointmentReminderAt returns when to remind about a, or false when its
// reminder is disabled.
func AppointmentReminderAt(a models.Appointment, loc *time.Location) (time.Time, bool, error) {
	if !a.ReminderEnabled {
		return time.Time{}, false, nil
	}
	start, err := a.StartsAt(loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	return start.Add(-time.Duration(a.ReminderMinutes) * time.Minute), true, nil
}

// at returns day's calendar date at hhmm in loc.
func at(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}

// NextDaily returns today at hhmm, or tomorrow at hhmm when that has passed.
func NextDaily(hhmm string, now time.Time) (time.Time, error) {
	next, err := at(now, hhmm, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if next.Before(now) {
		next, err = at(now.AddDate(0, 0, 1), hhmm, now.Location())
	}
	return next, err
}

// Upcoming returns every occurrence from now through now+window, soonest first.
func Upcoming(now time.Time, window time.Duration, src Source) ([]Occurrence, error) {
	end := now.Add(window)
	return collect(src, now, end, func(t time.Time) bool {
		return !t.Before(now) && !t.After(end)
	})
}

// Between returns occurrences in the half-open interval (from, to].
func Between(from, to time.Time, src Source) ([]Occurrence, error) {
	return collect(src, from, to, func(t time.Time) bool {
		return t.After(from) && !t.After(to)
	})
}

func collect(src Source, from, to time.Time, keep func(time.Time) bool) ([]Occurrence, error) {
	loc := to.Location()
	from = from.In(loc)
	var out []Occurrence

	var days []time.Time
	for d := from; ; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		if !d.Before(to) || sameDay(d, to) {
			break
		}
	}

	appointments, err := src.GetAllAppointments()
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	for _, a := range appointments {
		t, ok, err := AppointmentReminderAt(a, loc)
		if err != nil || !ok || !keep(t) {
			continue
		}
		body := "at " + a.Time
		if a.Location != "" {
			body += ", " + a.Location
		}
		out = append(out, Occurrence{At: t, Kind: KindAppointment, Title: a.Title, Body: body, SourceID: a.ID})
	}

	medications, err := src.GetAllMedications()
	if err != nil {
		return nil, fmt.Errorf("failed to load medications: %w", err)
	}
	for _, m := range medications {
		if !m.ReminderEnabled {
			continue
		}
		for _, day := range days {
			if !m.ActiveOn(day) {
				continue
			}
			for _, hhmm := range MedicationTimes(m) {
				t, err := at(day, hhmm, loc)
				if err != nil || !keep(t) {
					continue
				}
				out = append(out, Occurrence{At: t, Kind: KindMedication, Title: "Take " + m.Name, Body: m.Dosage, SourceID: m.ID})
			}
		}
	}

	reminders, err := src.GetAllReminders()
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		var candidates []time.Time
		if r.IsOneTime() {
			day, err := time.ParseInLocation(constants.DateFormat, r.Date, loc)
			if err != nil {
				continue
			}
			if t, err := at(day, r.Time, loc); err == nil {
				candidates = append(candidates, t)
			}
		} else {
			for _, day := range days {
				if t, err := at(day, r.Time, loc); err == nil {
					candidates = append(candidates, t)
				}
			}
		}
		for _, t := range candidates {
			if !keep(t) || (r.LastSent != nil && !r.LastSent.Before(t)) {
				continue
			}
			out = append(out, Occurrence{At: t, Kind: KindReminder, Title: r.Title, Body: r.Note, SourceID: r.ID, Alarm: r.Alarm})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Snooze returns a one-shot copy of r due minutes after now.
func Snooze(r models.Reminder, now time.Time, minutes int, id string) models.Reminder {
	if minutes <= 0 {
		minutes = constants.DefaultSnoozeMinutes
	}
	due := now.Add(time.Duration(minutes) * time.Minute)
	return models.Reminder{
		ID:      id,
		Title:   r.Title,
		Note:    r.Note,
		Time:    due.Format(constants.TimeFormat),
		Date:    due.Format(constants.DateFormat),
		Enabled: true,
		Alarm:   r.Alarm,
	}
}
