package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/constants"
)

type Frequency string

const (
	FrequencyDaily           Frequency = "daily"
	FrequencyTwiceDaily      Frequency = "twice_daily"
	FrequencyThreeTimesDaily Frequency = "three_times_daily"
	FrequencyAsNeeded        Frequency = "as_needed"
	FrequencyCustom          Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyThreeTimesDaily, FrequencyAsNeeded, FrequencyCustom:
		return true
	}
	return false
}

type Medication struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Dosage          string    `json:"dosage" yaml:"dosage"`
	Frequency       Frequency `json:"frequency" yaml:"frequency"`
	CustomSchedule  []string  `json:"custom_schedule,omitempty" yaml:"custom_schedule,omitempty"` // HH:MM times
	StartDate       string    `json:"start_date" yaml:"start_date"`
	EndDate         string    `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	ReminderEnabled bool      `json:"reminder_enabled" yaml:"reminder_enabled"`
	Notes           string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

func (m *Medication) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("medication id cannot be empty")
	}
	if err := requireText("medication name", m.Name); err != nil {
		return err
	}
	if !m.Frequency.Valid() {
		return fmt.Errorf("invalid frequency: %s", m.Frequency)
	}
	if m.Frequency == FrequencyCustom && len(m.CustomSchedule) == 0 {
		return fmt.Errorf("custom frequency requires at least one scheduled time")
	}
	for _, t := range m.CustomSchedule {
		if err := validateTime("schedule time", t); err != nil {
			return err
		}
	}
	if err := validateDate("start date", m.StartDate); err != nil {
		return err
	}
	if m.EndDate != "" {
		if err := validateDate("end date", m.EndDate); err != nil {
			return err
		}
	}
	return nil
}

// ActiveOn reports whether the medication has started and not yet ended on day.
// Dates compare lexically since both sides are YYYY-MM-DD.
func (m *Medication) ActiveOn(day time.Time) bool {
	d := day.Format(constants.DateFormat)
	if d < m.StartDate {
		return false
	}
	return m.EndDate == "" || d <= m.EndDate
}
