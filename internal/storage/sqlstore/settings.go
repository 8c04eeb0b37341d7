package sqlstore

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/storage"
)

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func (s *Store) GetSettings() (models.Settings, error) {
	var rows []settingRow
	if err := s.selectAll(&rows, "SELECT key, value FROM settings"); err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(rows) == 0 {
		return models.Settings{}, storage.ErrNotFound
	}

	// Keys missing from the table keep their defaults
	settings := models.DefaultSettings()
	for _, row := range rows {
		var err error
		switch row.Key {
		case constants.SettingTimezone:
			settings.Timezone = row.Value
		case constants.SettingWeightUnit:
			settings.WeightUnit = row.Value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = row.Value == "true"
		case constants.SettingAppointmentLeadMinutes:
			settings.AppointmentLeadMinutes, err = strconv.Atoi(row.Value)
		case constants.SettingWaterGoalMl:
			settings.WaterGoalMl, err = strconv.Atoi(row.Value)
		}
		if err != nil {
			return models.Settings{}, fmt.Errorf("parsing %s: %w", row.Key, err)
		}
	}

	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := tx.Rebind("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	values := []settingRow{
		{constants.SettingTimezone, settings.Timezone},
		{constants.SettingWeightUnit, settings.WeightUnit},
		{constants.SettingNotificationsEnabled, strconv.FormatBool(settings.NotificationsEnabled)},
		{constants.SettingAppointmentLeadMinutes, strconv.Itoa(settings.AppointmentLeadMinutes)},
		{constants.SettingWaterGoalMl, strconv.Itoa(settings.WaterGoalMl)},
	}
	for _, v := range values {
		if _, err := tx.Exec(query, v.Key, v.Value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", v.Key, err)
		}
	}

	return tx.Commit()
}
