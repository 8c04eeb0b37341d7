package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/models"
)

type reminderRow struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	Note      string         `db:"note"`
	Time      string         `db:"time"`
	Date      string         `db:"date"`
	Enabled   bool           `db:"enabled"`
	Alarm     bool           `db:"alarm"`
	LastSent  sql.NullString `db:"last_sent"`
	CreatedAt string         `db:"created_at"`
}

func (r reminderRow) model() (models.Reminder, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return models.Reminder{}, err
	}
	rem := models.Reminder{
		ID:        r.ID,
		Title:     r.Title,
		Note:      r.Note,
		Time:      r.Time,
		Date:      r.Date,
		Enabled:   r.Enabled,
		Alarm:     r.Alarm,
		CreatedAt: created,
	}
	if r.LastSent.Valid && r.LastSent.String != "" {
		t, err := parseTime(r.LastSent.String)
		if err != nil {
			return models.Reminder{}, err
		}
		rem.LastSent = &t
	}
	return rem, nil
}

func lastSentValue(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

const reminderColumns = "id, title, note, time, date, enabled, alarm, last_sent, created_at"

func (s *Store) AddReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.clock()
	}

	_, err := s.exec(`
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.Note, r.Time, r.Date, r.Enabled, r.Alarm, lastSentValue(r.LastSent), formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	var row reminderRow
	if err := s.get(&row, "SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id); err != nil {
		return models.Reminder{}, err
	}
	return row.model()
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	var rows []reminderRow
	if err := s.selectAll(&rows, "SELECT "+reminderColumns+" FROM reminders ORDER BY date, time, title"); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	out := make([]models.Reminder, 0, len(rows))
	for _, row := range rows {
		r, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.execOne(`
		UPDATE reminders SET title = ?, note = ?, time = ?, date = ?, enabled = ?, alarm = ?, last_sent = ?
		WHERE id = ?
	`, r.Title, r.Note, r.Time, r.Date, r.Enabled, r.Alarm, lastSentValue(r.LastSent), r.ID)
}

func (s *Store) DeleteReminder(id string) error {
	return s.execOne("DELETE FROM reminders WHERE id = ?", id)
}

func (s *Store) MarkReminderSent(id string, at time.Time) error {
	return s.execOne("UPDATE reminders SET last_sent = ? WHERE id = ?", formatTime(at), id)
}
