package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/bump/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS(files map[string]string) fs.FS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(setupTestDB(t), testFS(map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "not a migration",
	}), DriverSQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql":  "CREATE TABLE profile (id INTEGER PRIMARY KEY);",
		"002_notes.sql": "ALTER TABLE profile ADD COLUMN notes TEXT;",
	}), DriverSQLite)

	var logs []string
	count, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	if _, err := db.Exec("INSERT INTO profile (id, notes) VALUES (1, 'hi')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	first := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}), DriverSQLite)
	if _, err := first.ApplyMigrations(nil); err != nil {
		t.Fatalf("initial ApplyMigrations failed: %v", err)
	}

	second := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
		"002_more.sql": "CREATE TABLE b (id INTEGER);",
	}), DriverSQLite)

	st, err := second.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.Pending[0].Version != 2 {
		t.Fatalf("unexpected status: %+v", st)
	}

	count, err := second.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}
}

func TestApplyMigrationsNoOp(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}), DriverSQLite)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations applied, got %d", count)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql":   "CREATE TABLE a (id INTEGER);",
		"002_broken.sql": "CREATE TABLE b (id INTEGER); THIS IS NOT SQL;",
	}), DriverSQLite)

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error for broken migration")
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", count)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}

	var n int
	err = db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name='b'").Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Error("table from failed migration should have been rolled back")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
	}), DriverSQLite)

	if err := runner.SetVersion(9); err != nil {
		t.Fatal(err)
	}

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("expected newer-version error, got %v", err)
	}
}

func TestMigrationFilenameValidation(t *testing.T) {
	tests := map[string]string{
		"no underscore": "001.sql",
		"non numeric":   "abc_init.sql",
		"zero version":  "000_init.sql",
	}
	for name, filename := range tests {
		t.Run(name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), testFS(map[string]string{filename: "SELECT 1;"}), DriverSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Errorf("expected error for %s", filename)
			}
		})
	}
}

func TestDuplicateVersionDetection(t *testing.T) {
	runner := NewRunner(setupTestDB(t), testFS(map[string]string{
		"001_a.sql": "SELECT 1;",
		"001_b.sql": "SELECT 2;",
	}), DriverSQLite)

	_, err := runner.ReadMigrationFiles()
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Errorf("expected duplicate version error, got %v", err)
	}
}

func TestEmbeddedSQLiteMigrationsApply(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	db := setupTestDB(t)
	runner := NewRunner(db, sub, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}
	st, err := runner.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !st.UpToDate() {
		t.Errorf("expected up-to-date schema, got %+v", st)
	}
}

func TestEmbeddedMigrationSetsMatch(t *testing.T) {
	versions := func(dir string) []int {
		sub, err := fs.Sub(migrations.FS, dir)
		if err != nil {
			t.Fatal(err)
		}
		ms, err := NewRunner(nil, sub, Driver(dir)).ReadMigrationFiles()
		if err != nil {
			t.Fatal(err)
		}
		var out []int
		for _, m := range ms {
			out = append(out, m.Version)
		}
		return out
	}

	lite, pg := versions("sqlite"), versions("postgres")
	if len(lite) != len(pg) {
		t.Fatalf("sqlite has %d migrations, postgres has %d", len(lite), len(pg))
	}
	for i := range lite {
		if lite[i] != pg[i] {
			t.Errorf("migration %d: sqlite version %d, postgres version %d", i, lite[i], pg[i])
		}
	}
}
