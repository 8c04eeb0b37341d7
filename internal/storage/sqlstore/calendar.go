package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
)

type calendarRow struct {
	ID         string `db:"id"`
	Date       string `db:"date"`
	Notes      string `db:"notes"`
	Activities string `db:"activities"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func (r calendarRow) model() (models.CalendarEntry, error) {
	activities, err := unmarshalList[models.Activity](r.Activities)
	if err != nil {
		return models.CalendarEntry{}, fmt.Errorf("failed to unmarshal activities for %s: %w", r.Date, err)
	}
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	return models.CalendarEntry{
		ID:         r.ID,
		Date:       r.Date,
		Notes:      r.Notes,
		Activities: activities,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

func calendarModels(rows []calendarRow) ([]models.CalendarEntry, error) {
	out := make([]models.CalendarEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

const calendarColumns = "id, date, notes, activities, created_at, updated_at"

// SaveCalendarEntry inserts the entry for its date, or replaces the notes and
// activities of the entry already stored for that date. The stored ID wins.
func (s *Store) SaveCalendarEntry(e models.CalendarEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	activities, err := marshalList(e.Activities)
	if err != nil {
		return fmt.Errorf("failed to marshal activities: %w", err)
	}
	now := s.clock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}

	_, err = s.exec(`
		INSERT INTO calendar_entries (`+calendarColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			notes = excluded.notes,
			activities = excluded.activities,
			updated_at = excluded.updated_at
	`, e.ID, e.Date, e.Notes, activities, formatTime(e.CreatedAt), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to save calendar entry: %w", err)
	}
	return nil
}

func (s *Store) GetCalendarEntry(date string) (models.CalendarEntry, error) {
	var row calendarRow
	if err := s.get(&row, "SELECT "+calendarColumns+" FROM calendar_entries WHERE date = ?", date); err != nil {
		return models.CalendarEntry{}, err
	}
	return row.model()
}

// GetCalendarEntries returns entries with startDate <= date <= endDate, oldest first.
func (s *Store) GetCalendarEntries(startDate, endDate string) ([]models.CalendarEntry, error) {
	var rows []calendarRow
	err := s.selectAll(&rows, "SELECT "+calendarColumns+" FROM calendar_entries WHERE date >= ? AND date <= ? ORDER BY date", startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar entries: %w", err)
	}
	return calendarModels(rows)
}

func (s *Store) GetAllCalendarEntries() ([]models.CalendarEntry, error) {
	var rows []calendarRow
	if err := s.selectAll(&rows, "SELECT "+calendarColumns+" FROM calendar_entries ORDER BY date"); err != nil {
		return nil, fmt.Errorf("failed to list calendar entries: %w", err)
	}
	return calendarModels(rows)
}

func (s *Store) DeleteCalendarEntry(date string) error {
	return s.execOne("DELETE FROM calendar_entries WHERE date = ?", date)
}
