package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/backup"
	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/keyring"
	"github.com/julianstephens/bump/internal/storage"
	"github.com/julianstephens/bump/internal/storage/sqlite"
	"github.com/julianstephens/bump/internal/validation"
)

type DoctorCmd struct{}

type severity int

const (
	severityError severity = iota
	severityWarning
)

// check is one diagnostic. needsDB checks are skipped when the database
// cannot be loaded.
type check struct {
	name     string
	needsDB  bool
	severity severity
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", severity: severityWarning, run: checkBackupsPresent},
	{name: "Pregnancy profile", needsDB: true, run: checkProfile},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", severity: severityWarning, run: checkKeyring},
}

// skipError marks a check that does not apply to the current setup.
type skipError struct{ reason string }

func (e *skipError) Error() string { return e.reason }

func skip(reason string) error {
	return &skipError{reason: reason}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var skipped *skipError
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skipped):
			fmt.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skipped.reason)
		case c.severity == severityWarning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return skip("backend has no schema version")
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return skip("backend has no migrations")
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return skip("backups only apply to SQLite")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		return skip("no profile set up")
	}
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	return p.Validate(ctx.Clock())
}

func checkValidation(ctx *cli.Context) error {
	profile, records, err := validation.Collect(ctx.Store)
	if err != nil {
		return err
	}
	result := validation.New().ValidateRecords(profile, records, ctx.Clock())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found (run '%s validate' for details)", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Validate()
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil {
		if _, err := ctx.Config.Location(); err != nil {
			return fmt.Errorf("config timezone is invalid: %w", err)
		}
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config == nil || ctx.Config.Database != keyring.Source {
		return skip("database not read from keyring")
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
