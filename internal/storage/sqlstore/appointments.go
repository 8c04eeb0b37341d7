package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
)

type appointmentRow struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	Date            string `db:"date"`
	Time            string `db:"time"`
	Location        string `db:"location"`
	Notes           string `db:"notes"`
	ReminderEnabled bool   `db:"reminder_enabled"`
	ReminderMinutes int    `db:"reminder_minutes"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

func (r appointmentRow) model() (models.Appointment, error) {
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.Appointment{}, err
	}
	return models.Appointment{
		ID:              r.ID,
		Title:           r.Title,
		Date:            r.Date,
		Time:            r.Time,
		Location:        r.Location,
		Notes:           r.Notes,
		ReminderEnabled: r.ReminderEnabled,
		ReminderMinutes: r.ReminderMinutes,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}, nil
}

const appointmentColumns = "id, title, date, time, location, notes, reminder_enabled, reminder_minutes, created_at, updated_at"

func (s *Store) AddAppointment(a models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	now := s.clock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	_, err := s.exec(`
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.Title, a.Date, a.Time, a.Location, a.Notes,
		a.ReminderEnabled, a.ReminderMinutes, formatTime(a.CreatedAt), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (s *Store) GetAppointment(id string) (models.Appointment, error) {
	var row appointmentRow
	if err := s.get(&row, "SELECT "+appointmentColumns+" FROM appointments WHERE id = ?", id); err != nil {
		return models.Appointment{}, err
	}
	return row.model()
}

func (s *Store) GetAllAppointments() ([]models.Appointment, error) {
	var rows []appointmentRow
	if err := s.selectAll(&rows, "SELECT "+appointmentColumns+" FROM appointments ORDER BY date, time"); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	out := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		a, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) UpdateAppointment(a models.Appointment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.execOne(`
		UPDATE appointments SET
			title = ?, date = ?, time = ?, location = ?, notes = ?,
			reminder_enabled = ?, reminder_minutes = ?, updated_at = ?
		WHERE id = ?
	`,
		a.Title, a.Date, a.Time, a.Location, a.Notes,
		a.ReminderEnabled, a.ReminderMinutes, formatTime(s.clock()), a.ID,
	)
}

func (s *Store) DeleteAppointment(id string) error {
	return s.execOne("DELETE FROM appointments WHERE id = ?", id)
}
