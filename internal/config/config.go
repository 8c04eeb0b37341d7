// Package config loads the bump configuration file and applies environment
// overrides. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/bump/internal/constants"
)

// Config holds all bump configuration.
type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database string `yaml:"database"`

	// Initial values for the settings table, applied by `bump init`.
	Timezone   string `yaml:"timezone"`
	WeightUnit string `yaml:"weight_unit"`

	Logging  LoggingConfig  `yaml:"logging"`
	Notifier NotifierConfig `yaml:"notifier"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// NotifierConfig configures desktop notification delivery.
type NotifierConfig struct {
	LockfileDir string `yaml:"lockfile_dir"` // overrides the tray app's lockfile directory
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Database:   constants.DefaultDBPath,
		Timezone:   constants.DefaultTimezone,
		WeightUnit: constants.DefaultWeightUnit,
	}
}

// DefaultPath returns the expanded location of the config file.
func DefaultPath() string {
	return ExpandPath(constants.DefaultConfigFile)
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment without overwriting variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if db := os.Getenv("BUMP_DB"); db != "" {
		c.Database = db
	}
	if tz := os.Getenv("BUMP_TIMEZONE"); tz != "" {
		c.Timezone = tz
	}
	if unit := os.Getenv("BUMP_WEIGHT_UNIT"); unit != "" {
		c.WeightUnit = strings.ToLower(unit)
	}
	if debug := os.Getenv("BUMP_DEBUG"); debug != "" {
		c.Logging.Debug = debug == "1" || strings.EqualFold(debug, "true")
	}
	if dir := os.Getenv("BUMP_NOTIFIER_LOCKFILE_DIR"); dir != "" {
		c.Notifier.LockfileDir = dir
	}
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database must not be empty")
	}
	if c.WeightUnit != "kg" && c.WeightUnit != "lb" {
		return fmt.Errorf("weight_unit must be kg or lb, got %q", c.WeightUnit)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ConfigDir returns the directory holding the database (and logs/backups).
// PostgreSQL deployments fall back to the default config directory.
func (c *Config) ConfigDir() string {
	if IsPostgres(c.Database) {
		return ExpandPath(constants.DefaultConfigDir)
	}
	return filepath.Dir(ExpandPath(c.Database))
}

// IsPostgres reports whether dsn looks like a PostgreSQL connection string.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
