package models

import (
	"fmt"
	"time"
)

// Reminder is a user-defined reminder: daily at Time when Date is empty,
// otherwise once on Date at Time.
type Reminder struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Note      string     `json:"note,omitempty" yaml:"note,omitempty"`
	Time      string     `json:"time" yaml:"time"`                     // HH:MM
	Date      string     `json:"date,omitempty" yaml:"date,omitempty"` // YYYY-MM-DD (one-shot)
	Enabled   bool       `json:"enabled" yaml:"enabled"`
	Alarm     bool       `json:"alarm" yaml:"alarm"`
	LastSent  *time.Time `json:"last_sent,omitempty" yaml:"last_sent,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reminder id cannot be empty")
	}
	if err := requireText("reminder title", r.Title); err != nil {
		return err
	}
	if err := validateTime("reminder time", r.Time); err != nil {
		return err
	}
	if r.Date != "" {
		if err := validateDate("reminder date", r.Date); err != nil {
			return err
		}
	}
	return nil
}

// IsOneTime returns true if this is a one-shot reminder (has a date)
func (r *Reminder) IsOneTime() bool {
	return r.Date != ""
}

// FormatSchedule describes when the reminder fires.
func (r *Reminder) FormatSchedule() string {
	if r.IsOneTime() {
		return fmt.Sprintf("Once on %s at %s", r.Date, r.Time)
	}
	return fmt.Sprintf("Daily at %s", r.Time)
}
