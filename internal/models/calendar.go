package models

import (
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityExercise ActivityType = "exercise"
	ActivityNote     ActivityType = "note"
	ActivitySymptom  ActivityType = "symptom"
	ActivityMood     ActivityType = "mood"
	ActivityCustom   ActivityType = "custom"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityExercise, ActivityNote, ActivitySymptom, ActivityMood, ActivityCustom:
		return true
	}
	return false
}

type Activity struct {
	ID          string       `json:"id" yaml:"id"`
	Type        ActivityType `json:"type" yaml:"type"`
	Description string       `json:"description" yaml:"description"`
	Time        string       `json:"time,omitempty" yaml:"time,omitempty"` // HH:MM
}

func (a *Activity) Validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("invalid activity type: %s", a.Type)
	}
	if err := requireText("activity description", a.Description); err != nil {
		return err
	}
	if a.Time != "" {
		if err := validateTime("activity time", a.Time); err != nil {
			return err
		}
	}
	return nil
}

// CalendarEntry holds the notes and activities for one calendar day. There is
// at most one entry per date.
type CalendarEntry struct {
	ID         string     `json:"id" yaml:"id"`
	Date       string     `json:"date" yaml:"date"` // YYYY-MM-DD
	Notes      string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Activities []Activity `json:"activities" yaml:"activities"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" yaml:"updated_at"`
}

func (e *CalendarEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("calendar entry id cannot be empty")
	}
	if err := validateDate("entry date", e.Date); err != nil {
		return err
	}
	seen := make(map[string]bool, len(e.Activities))
	for i := range e.Activities {
		if err := e.Activities[i].Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", i+1, err)
		}
		if e.Activities[i].ID != "" {
			if seen[e.Activities[i].ID] {
				return fmt.Errorf("duplicate activity id: %s", e.Activities[i].ID)
			}
			seen[e.Activities[i].ID] = true
		}
	}
	return nil
}
