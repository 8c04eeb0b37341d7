// Package export writes every stored record to a YAML document or an xlsx
// workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/storage"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name, or infers one from a file extension when
// name is empty.
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	case "":
		return "", fmt.Errorf("export format is required (yaml or xlsx)")
	}
	return "", fmt.Errorf("unsupported export format: %s", name)
}

// Snapshot is everything an export contains.
type Snapshot struct {
	Version         string                  `yaml:"version"`
	ExportedAt      time.Time               `yaml:"exported_at"`
	Settings        models.Settings         `yaml:"settings"`
	Profile         *models.Profile         `yaml:"profile,omitempty"`
	Status          *pregnancy.Status       `yaml:"status,omitempty"`
	Milestones      []models.Milestone      `yaml:"milestones"`
	CalendarEntries []models.CalendarEntry  `yaml:"calendar_entries"`
	Appointments    []models.Appointment    `yaml:"appointments"`
	Medications     []models.Medication     `yaml:"medications"`
	Reminders       []models.Reminder       `yaml:"reminders"`
	DietPreferences []models.DietPreference `yaml:"diet_preferences"`
	DietPlans       []models.DietPlan       `yaml:"diet_plans"`
	WaterLogs       []models.WaterLog       `yaml:"water_logs"`
	WeightLogs      []models.WeightLog      `yaml:"weight_logs"`
}

// Collect reads a snapshot from store. Status is computed for now in the
// configured timezone.
func Collect(store storage.Provider, now time.Time) (Snapshot, error) {
	snap := Snapshot{Version: constants.Version, ExportedAt: now.UTC()}

	var err error
	if snap.Settings, err = store.GetSettings(); err != nil {
		return snap, fmt.Errorf("failed to load settings: %w", err)
	}

	profile, err := store.GetProfile()
	switch {
	case err == nil:
		snap.Profile = &profile
		at := now
		if loc, err := snap.Settings.Location(); err == nil {
			at = now.In(loc)
		}
		status := profile.Status(at)
		snap.Status = &status
	case !errors.Is(err, storage.ErrNotFound):
		return snap, fmt.Errorf("failed to load profile: %w", err)
	}

	if snap.Milestones, err = store.GetAllMilestones(); err != nil {
		return snap, fmt.Errorf("failed to load milestones: %w", err)
	}
	if snap.CalendarEntries, err = store.GetAllCalendarEntries(); err != nil {
		return snap, fmt.Errorf("failed to load calendar entries: %w", err)
	}
	if snap.Appointments, err = store.GetAllAppointments(); err != nil {
		return snap, fmt.Errorf("failed to load appointments: %w", err)
	}
	if snap.Medications, err = store.GetAllMedications(); err != nil {
		return snap, fmt.Errorf("failed to load medications: %w", err)
	}
	if snap.Reminders, err = store.GetAllReminders(); err != nil {
		return snap, fmt.Errorf("failed to load reminders: %w", err)
	}
	if snap.DietPreferences, err = store.GetAllDietPreferences(); err != nil {
		return snap, fmt.Errorf("failed to load diet preferences: %w", err)
	}
	if snap.DietPlans, err = store.GetAllDietPlans(); err != nil {
		return snap, fmt.Errorf("failed to load diet plans: %w", err)
	}
	if snap.WaterLogs, err = store.GetAllWaterLogs(); err != nil {
		return snap, fmt.Errorf("failed to load water logs: %w", err)
	}
	if snap.WeightLogs, err = store.GetWeightLogs(); err != nil {
		return snap, fmt.Errorf("failed to load weight logs: %w", err)
	}
	return snap, nil
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, format Format, snap Snapshot) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, snap)
	case FormatXLSX:
		return WriteXLSX(w, snap)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

// WriteFile writes snap to path, replacing any existing file.
func WriteFile(path string, format Format, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, format, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
