// Package sqlstore implements storage.Provider record access on top of sqlx.
// It is dialect-neutral: queries are written with ? placeholders and rebound
// for the attached driver. The sqlite and postgres packages own connection
// setup and migrations and embed a Store for everything else.
package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/bump/internal/storage"
)

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Attach sets the connection used by every query. Backends call it once the
// database is open and migrated.
func (s *Store) Attach(db *sqlx.DB) {
	s.db = db
}

// SetClock overrides the source of created/updated timestamps and of the
// day reference dates are checked against.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// DB returns the attached connection, or nil before Init/Load.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) clock() time.Time {
	return s.localClock().UTC().Truncate(time.Second)
}

// localClock is the current instant in the clock's own zone. Calendar-day
// checks use it so "today" means the caller's today.
func (s *Store) localClock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Store) ready() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *Store) exec(query string, args ...any) (sql.Result, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.db.Exec(s.db.Rebind(query), args...)
}

// execOne runs an UPDATE or DELETE that must touch exactly one row.
func (s *Store) execOne(query string, args ...any) error {
	res, err := s.exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) get(dest any, query string, args ...any) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := s.db.Get(dest, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func (s *Store) selectAll(dest any, query string, args ...any) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.Select(dest, s.db.Rebind(query), args...)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// stamps parses a created_at/updated_at pair.
func stamps(created, updated string) (time.Time, time.Time, error) {
	c, err := parseTime(created)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	u, err := parseTime(updated)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return c, u, nil
}

// marshalList encodes a slice for a JSON TEXT column; nil is stored as [].
func marshalList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList[T any](s string) ([]T, error) {
	out := []T{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
