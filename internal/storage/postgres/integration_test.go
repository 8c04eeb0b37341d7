package postgres

import (
	"os"
	"testing"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/storage/storagetest"
)

// TestStore_Integration runs the storage suite against a real database.
// Example: BUMP_TEST_POSTGRES="postgres://bump_user@localhost:5432/bump_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("BUMP_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("BUMP_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// The suite expects an empty database apart from default settings.
	_, err := store.DB().Exec(`TRUNCATE settings, profile, milestones, calendar_entries, appointments,
		medications, reminders, diet_preferences, diet_plans, water_logs, weight_logs`)
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	if err := store.SaveSettings(models.DefaultSettings()); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	storagetest.Run(t, store)
}
