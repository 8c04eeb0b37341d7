package constants

import "time"

const (
	AppName            = "bump"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/bump"
	DefaultDBPath      = "~/.config/bump/bump.db"
	DefaultConfigFile  = "~/.config/bump/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "bump-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "bump-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.bump"
	TrayExecutablePrefix   = "bump-tray"

	// Reminder watcher
	WatchInterval        = time.Minute
	DefaultUpcomingHours = 24
	DefaultSnoozeMinutes = 10
)

// Log file rotation
const (
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)
