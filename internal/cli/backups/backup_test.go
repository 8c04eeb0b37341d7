package backups

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := &cli.Context{
		Store: store,
		Now:   func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local) },
	}
	return ctx, store
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, store := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("listing with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("second backup in the same second failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(store.GetConfigPath()), "backups"))
	if err != nil {
		t.Fatalf("failed to read backup dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 backups, got %d", len(entries))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store := setupTestDB(t)

	settings, _ := store.GetSettings()
	settings.WeightUnit = "lb"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	mgr, err := manager(ctx)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	settings.WeightUnit = "kg"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	restored, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if restored.WeightUnit != "lb" {
		t.Errorf("WeightUnit = %q, want lb from the backup", restored.WeightUnit)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected the restored backup plus a pre-restore snapshot, got %d", len(backups))
	}
}

func TestBackupRestore_MissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &BackupRestoreCmd{BackupFile: "bump-19990101-000000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}

func TestManager_RequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: nil}
	if _, err := manager(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("manager() error = %v, want errNotSQLite", err)
	}
}
