package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/constants"
)

type Appointment struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Date            string    `json:"date" yaml:"date"` // YYYY-MM-DD
	Time            string    `json:"time" yaml:"time"` // HH:MM
	Location        string    `json:"location,omitempty" yaml:"location,omitempty"`
	Notes           string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	ReminderEnabled bool      `json:"reminder_enabled" yaml:"reminder_enabled"`
	ReminderMinutes int       `json:"reminder_minutes" yaml:"reminder_minutes"` // lead time before the appointment
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

func (a *Appointment) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("appointment id cannot be empty")
	}
	if err := requireText("appointment title", a.Title); err != nil {
		return err
	}
	if err := validateDate("appointment date", a.Date); err != nil {
		return err
	}
	if err := validateTime("appointment time", a.Time); err != nil {
		return err
	}
	if a.ReminderMinutes < 0 || a.ReminderMinutes > 7*24*60 {
		return fmt.Errorf("reminder minutes must be between 0 and %d", 7*24*60)
	}
	return nil
}

// StartsAt returns the appointment's date and time in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, a.Date+" "+a.Time, loc)
}
