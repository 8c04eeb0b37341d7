package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/cli/alerts"
	"github.com/julianstephens/bump/internal/cli/backups"
	"github.com/julianstephens/bump/internal/cli/care"
	"github.com/julianstephens/bump/internal/cli/diet"
	"github.com/julianstephens/bump/internal/cli/journal"
	"github.com/julianstephens/bump/internal/cli/profile"
	"github.com/julianstephens/bump/internal/cli/settings"
	"github.com/julianstephens/bump/internal/cli/system"
	"github.com/julianstephens/bump/internal/config"
	"github.com/julianstephens/bump/internal/constants"
	bumperrors "github.com/julianstephens/bump/internal/errors"
	"github.com/julianstephens/bump/internal/keyring"
	"github.com/julianstephens/bump/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" env:"BUMP_CONFIG" default:"~/.config/bump/config.yaml"`
	DB      string `name:"db" help:"SQLite path, PostgreSQL connection string, or 'keyring'. Overrides the config file. PostgreSQL passwords must NOT be embedded; use the OS keyring, BUMP_DB_PASSWORD or .pgpass." env:"BUMP_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"BUMP_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize bump storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored records against the pregnancy timeline."`

	Setup  profile.SetupCmd  `cmd:"" help:"Enter a reference date and progress to set up the pregnancy profile."`
	Status profile.StatusCmd `cmd:"" help:"Show current progress." default:"1"`
	Reset  profile.ResetCmd  `cmd:"" help:"Delete the pregnancy profile."`
	Week   profile.WeekCmd   `cmd:"" help:"Show a pregnancy week."`

	Milestone   journal.MilestoneCmd `cmd:"" help:"Manage milestones."`
	Entry       journal.EntryCmd     `cmd:"" help:"Manage daily calendar entries."`
	Appointment care.AppointmentCmd  `cmd:"" help:"Manage appointments."`
	Medication  care.MedicationCmd   `cmd:"" help:"Manage medications."`
	Reminder    alerts.ReminderCmd   `cmd:"" aliases:"reminders" help:"Manage reminders."`
	Diet        diet.DietCmd         `cmd:"" help:"Diet preferences, meal plans, water and weight."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Export   system.ExportCmd     `cmd:"" help:"Export all records to YAML or XLSX."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send due notifications once (used internally)."`
}

// noPreload lists commands that open the store themselves or never need it.
var noPreload = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Pregnancy tracker: progress, milestones, appointments and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		bumperrors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.Database = CLI.DB
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}

	backend := "sqlite"
	if config.IsPostgres(cfg.Database) || cfg.Database == keyring.Source {
		backend = "postgres"
	}
	if err := logger.Init(logger.Config{Debug: cfg.Logging.Debug, ConfigDir: cfg.ConfigDir(), Backend: backend}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := topLevel(ctx.Command())

	store, err := cli.OpenStore(cfg.Database)
	if err != nil && command != "keyring" {
		bumperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}
	appCtx.BindStoreClock()

	if !noPreload[command] {
		if err := store.Load(); err != nil {
			bumperrors.Fatal(err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "command", ctx.Command(), "error", err)
		fmt.Fprintln(os.Stderr, bumperrors.Format(err))
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// topLevel returns the first word of a kong command path such as "keyring set".
func topLevel(command string) string {
	name, _, _ := strings.Cut(command, " ")
	return name
}
