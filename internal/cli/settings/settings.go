package settings

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone               *string `help:"IANA timezone name, or Local for the system zone."`
	WeightUnit             *string `help:"Weight unit (kg or lb)."`
	NotificationsEnabled   *bool   `help:"Enable or disable notifications."`
	AppointmentLeadMinutes *int    `help:"Default minutes before an appointment to remind."`
	WaterGoalMl            *int    `name:"water-goal" help:"Daily water goal in ml when no diet preference sets one."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Weight Unit:           %s\n", settings.WeightUnit)
		fmt.Printf("  Water Goal:            %d ml\n", settings.WaterGoalMl)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Appointment Lead:      %d min\n", settings.AppointmentLeadMinutes)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.WeightUnit != nil {
		settings.WeightUnit = *c.WeightUnit
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.AppointmentLeadMinutes != nil {
		settings.AppointmentLeadMinutes = *c.AppointmentLeadMinutes
		updated = true
	}
	if c.WaterGoalMl != nil {
		settings.WaterGoalMl = *c.WaterGoalMl
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
