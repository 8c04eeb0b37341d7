package system

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/migration"
)

// migrator is implemented by both the SQLite and PostgreSQL stores.
type migrator interface {
	Migrate(logFn func(string)) (int, error)
	MigrationStatus() (migration.Status, error)
}

type MigrateCmd struct {
	Status bool `help:"Show the current and latest schema version without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	if c.Status {
		st, err := m.MigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		fmt.Printf("Current schema version: %d\n", st.Current)
		fmt.Printf("Latest schema version:  %d\n", st.Latest)
		for _, p := range st.Pending {
			fmt.Printf("  pending: %03d %s\n", p.Version, p.Name)
		}
		return nil
	}

	// Automatic backup before touching the schema
	ctx.PerformAutomaticBackup()

	count, err := m.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
