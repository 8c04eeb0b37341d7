package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/bump/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profile holds the single active reference point. SaveProfile replaces it
	// wholesale; DeleteProfile removes it without touching other records.
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error
	DeleteProfile() error

	// Milestones
	AddMilestone(models.Milestone) error
	GetMilestone(id string) (models.Milestone, error)
	GetAllMilestones() ([]models.Milestone, error)
	UpdateMilestone(models.Milestone) error
	DeleteMilestone(id string) error

	// Calendar entries are keyed by date; saving an existing date replaces it.
	SaveCalendarEntry(models.CalendarEntry) error
	GetCalendarEntry(date string) (models.CalendarEntry, error)
	GetCalendarEntries(startDate, endDate string) ([]models.CalendarEntry, error)
	DeleteCalendarEntry(date string) error

	// Appointments
	AddAppointment(models.Appointment) error
	GetAppointment(id string) (models.Appointment, error)
	GetAllAppointments() ([]models.Appointment, error)
	UpdateAppointment(models.Appointment) error
	DeleteAppointment(id string) error

	// Medications
	AddMedication(models.Medication) error
	GetMedication(id string) (models.Medication, error)
	GetAllMedications() ([]models.Medication, error)
	UpdateMedication(models.Medication) error
	DeleteMedication(id string) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error
	// MarkReminderSent records the time a reminder was last delivered.
	MarkReminderSent(id string, at time.Time) error

	// Diet
	SaveDietPreference(models.DietPreference) error
	GetDietPreference() (models.DietPreference, error)
	SaveDietPlan(models.DietPlan) error
	GetDietPlan(date string) (models.DietPlan, error)
	AddWaterLog(models.WaterLog) error
	GetWaterLogs(date string) ([]models.WaterLog, error)
	// GetWaterTotal returns the sum of water logged on date, in ml.
	GetWaterTotal(date string) (int, error)
	SaveWeightLog(models.WeightLog) error
	GetWeightLogs() ([]models.WeightLog, error)
	DeleteWeightLog(date string) error
	// ResetDiet clears diet preferences, plans and water logs. Weight logs are kept.
	ResetDiet() error

	// Bulk Retrieval for Migration
	GetAllCalendarEntries() ([]models.CalendarEntry, error)
	GetAllDietPreferences() ([]models.DietPreference, error)
	GetAllDietPlans() ([]models.DietPlan, error)
	GetAllWaterLogs() ([]models.WaterLog, error)

	// Utils
	GetConfigPath() string
}
