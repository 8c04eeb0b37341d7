// Package logger writes structured logs to a rotating file under the bump
// config directory. Every line carries the app version and storage backend;
// subsystems log through For so their lines can be filtered by component.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/bump/internal/constants"
)

// Logger is nil until Init; the package helpers are no-ops before then.
var Logger *log.Logger

var discard = log.New(io.Discard)

type Config struct {
	Debug bool
	// ConfigDir is the directory holding the database; logs go in its logs/ subdirectory.
	ConfigDir string
	// Backend is "sqlite" or "postgres".
	Backend string
}

// Path is the log file for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LogDirName, constants.AppName+".log")
}

// Init opens the log file and installs the package logger. Warnings and
// errors always reach the file; --debug lowers the level and mirrors to stderr.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	l := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	fields := []interface{}{"version", constants.Version}
	if cfg.Backend != "" {
		fields = append(fields, "backend", cfg.Backend)
	}
	Logger = l.With(fields...)
	return nil
}

// For returns a logger tagged with component. Before Init it discards.
func For(component string) *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger.With("component", component)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1, logger or not.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
