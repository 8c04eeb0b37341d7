package models

import (
	"fmt"
	"time"
)

type MilestoneType string

const (
	MilestoneFirstTest     MilestoneType = "first_test"
	MilestoneHospitalVisit MilestoneType = "hospital_visit"
	MilestoneUltrasound    MilestoneType = "ultrasound"
	MilestoneCustom        MilestoneType = "custom"
)

// Valid reports whether t is a known milestone type.
func (t MilestoneType) Valid() bool {
	switch t {
	case MilestoneFirstTest, MilestoneHospitalVisit, MilestoneUltrasound, MilestoneCustom:
		return true
	}
	return false
}

// Label returns a human-readable name for the milestone type.
func (t MilestoneType) Label() string {
	switch t {
	case MilestoneFirstTest:
		return "First test"
	case MilestoneHospitalVisit:
		return "Hospital visit"
	case MilestoneUltrasound:
		return "Ultrasound"
	default:
		return "Custom"
	}
}

type Milestone struct {
	ID        string        `json:"id" yaml:"id"`
	Type      MilestoneType `json:"type" yaml:"type"`
	Title     string        `json:"title" yaml:"title"`
	Date      string        `json:"date" yaml:"date"` // YYYY-MM-DD
	Notes     string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Week      int           `json:"week,omitempty" yaml:"week,omitempty"` // pregnancy week on Date, 0 when unknown
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated_at"`
}

func (m *Milestone) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("milestone id cannot be empty")
	}
	if !m.Type.Valid() {
		return fmt.Errorf("invalid milestone type: %s", m.Type)
	}
	if err := requireText("milestone title", m.Title); err != nil {
		return err
	}
	if err := validateDate("milestone date", m.Date); err != nil {
		return err
	}
	if m.Week < 0 {
		return fmt.Errorf("milestone week cannot be negative")
	}
	return nil
}
