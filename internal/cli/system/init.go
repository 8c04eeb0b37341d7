package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/export"
	"github.com/julianstephens/bump/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Database path, connection string or YAML export to copy records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
		return nil
	}

	return applyConfigDefaults(ctx)
}

// applyConfigDefaults copies timezone and weight unit from the config file
// into the settings table when they differ from the built-in defaults.
func applyConfigDefaults(ctx *cli.Context) error {
	if ctx.Config == nil {
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	changed := false
	if tz := ctx.Config.Timezone; tz != "" && tz != constants.DefaultTimezone && tz != settings.Timezone {
		settings.Timezone = tz
		changed = true
	}
	if unit := ctx.Config.WeightUnit; unit != "" && unit != constants.DefaultWeightUnit && unit != settings.WeightUnit {
		settings.WeightUnit = unit
		changed = true
	}
	if !changed {
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	snap, err := c.readSource(ctx)
	if err != nil {
		return err
	}
	return importSnapshot(ctx.Store, snap)
}

func (c *InitCmd) readSource(ctx *cli.Context) (export.Snapshot, error) {
	ext := strings.ToLower(filepath.Ext(c.Source))
	if ext == ".yaml" || ext == ".yml" {
		f, err := os.Open(c.Source)
		if err != nil {
			return export.Snapshot{}, fmt.Errorf("failed to open source export: %w", err)
		}
		defer f.Close()
		return export.ReadYAML(f)
	}

	sourceStore, err := cli.OpenStore(c.Source)
	if err != nil {
		return export.Snapshot{}, err
	}
	if err := sourceStore.Load(); err != nil {
		return export.Snapshot{}, fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	return export.Collect(sourceStore, ctx.Clock())
}

func importSnapshot(dst storage.Provider, snap export.Snapshot) error {
	fmt.Println("  Migrating settings...")
	if err := dst.SaveSettings(snap.Settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	if snap.Profile != nil {
		fmt.Println("  Migrating profile...")
		if err := dst.SaveProfile(*snap.Profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}

	for _, m := range snap.Milestones {
		if err := dst.AddMilestone(m); err != nil {
			return fmt.Errorf("failed to add milestone %s: %w", m.ID, err)
		}
	}
	fmt.Printf("    Migrated %d milestones\n", len(snap.Milestones))

	for _, e := range snap.CalendarEntries {
		if err := dst.SaveCalendarEntry(e); err != nil {
			return fmt.Errorf("failed to save calendar entry for %s: %w", e.Date, err)
		}
	}
	fmt.Printf("    Migrated %d calendar entries\n", len(snap.CalendarEntries))

	for _, a := range snap.Appointments {
		if err := dst.AddAppointment(a); err != nil {
			return fmt.Errorf("failed to add appointment %s: %w", a.ID, err)
		}
	}
	fmt.Printf("    Migrated %d appointments\n", len(snap.Appointments))

	for _, m := range snap.Medications {
		if err := dst.AddMedication(m); err != nil {
			return fmt.Errorf("failed to add medication %s: %w", m.ID, err)
		}
	}
	fmt.Printf("    Migrated %d medications\n", len(snap.Medications))

	for _, r := range snap.Reminders {
		if err := dst.AddReminder(r); err != nil {
			return fmt.Errorf("failed to add reminder %s: %w", r.ID, err)
		}
	}
	fmt.Printf("    Migrated %d reminders\n", len(snap.Reminders))

	// Only one preference is kept; the last one saved wins.
	for _, p := range snap.DietPreferences {
		if err := dst.SaveDietPreference(p); err != nil {
			return fmt.Errorf("failed to save diet preference: %w", err)
		}
	}
	for _, p := range snap.DietPlans {
		if err := dst.SaveDietPlan(p); err != nil {
			return fmt.Errorf("failed to save diet plan for %s: %w", p.Date, err)
		}
	}
	for _, w := range snap.WaterLogs {
		if err := dst.AddWaterLog(w); err != nil {
			return fmt.Errorf("failed to add water log %s: %w", w.ID, err)
		}
	}
	for _, w := range snap.WeightLogs {
		if err := dst.SaveWeightLog(w); err != nil {
			return fmt.Errorf("failed to save weight log for %s: %w", w.Date, err)
		}
	}
	fmt.Printf("    Migrated %d diet plans, %d water logs, %d weight logs\n",
		len(snap.DietPlans), len(snap.WaterLogs), len(snap.WeightLogs))

	return nil
}
