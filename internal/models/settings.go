package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone               string `json:"timezone" yaml:"timezone"`                                 // IANA name or "Local"
	WeightUnit             string `json:"weight_unit" yaml:"weight_unit"`                           // "kg" or "lb"
	NotificationsEnabled   bool   `json:"notifications_enabled" yaml:"notifications_enabled"`       // whether the watcher delivers notifications
	AppointmentLeadMinutes int    `json:"appointment_lead_minutes" yaml:"appointment_lead_minutes"` // default reminder lead for new appointments
	WaterGoalMl            int    `json:"water_goal_ml" yaml:"water_goal_ml"`                       // daily water goal when no diet preference sets one
}

// DefaultSettings returns the settings a new store starts with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:               constants.DefaultTimezone,
		WeightUnit:             constants.DefaultWeightUnit,
		NotificationsEnabled:   constants.DefaultNotificationsEnabled,
		AppointmentLeadMinutes: constants.DefaultAppointmentLeadMinutes,
		WaterGoalMl:            constants.DefaultWaterGoalMl,
	}
}

func (s *Settings) Validate() error {
	if _, err := s.Location(); err != nil {
		return err
	}
	if s.WeightUnit != "kg" && s.WeightUnit != "lb" {
		return fmt.Errorf("weight unit must be kg or lb, got %q", s.WeightUnit)
	}
	if s.AppointmentLeadMinutes < 0 || s.AppointmentLeadMinutes > 7*24*60 {
		return fmt.Errorf("appointment lead minutes must be between 0 and %d", 7*24*60)
	}
	if s.WaterGoalMl < 0 || s.WaterGoalMl > 10000 {
		return fmt.Errorf("water goal must be between 0 and 10000 ml")
	}
	return nil
}

// Location resolves the configured timezone; "Local" or empty means the system zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
