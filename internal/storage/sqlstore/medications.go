package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
)

type medicationRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Dosage          string `db:"dosage"`
	Frequency       string `db:"frequency"`
	CustomSchedule  string `db:"custom_schedule"`
	StartDate       string `db:"start_date"`
	EndDate         string `db:"end_date"`
	ReminderEnabled bool   `db:"reminder_enabled"`
	Notes           string `db:"notes"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

func (r medicationRow) model() (models.Medication, error) {
	schedule, err := unmarshalList[string](r.CustomSchedule)
	if err != nil {
		return models.Medication{}, fmt.Errorf("failed to unmarshal schedule for medication %s: %w", r.ID, err)
	}
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.Medication{}, err
	}
	return models.Medication{
		ID:              r.ID,
		Name:            r.Name,
		Dosage:          r.Dosage,
		Frequency:       models.Frequency(r.Frequency),
		CustomSchedule:  schedule,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ReminderEnabled: r.ReminderEnabled,
		Notes:           r.Notes,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}, nil
}

const medicationColumns = "id, name, dosage, frequency, custom_schedule, start_date, end_date, reminder_enabled, notes, created_at, updated_at"

func (s *Store) AddMedication(m models.Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	schedule, err := marshalList(m.CustomSchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	now := s.clock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	_, err = s.exec(`
		INSERT INTO medications (`+medicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.Name, m.Dosage, string(m.Frequency), schedule, m.StartDate, m.EndDate,
		m.ReminderEnabled, m.Notes, formatTime(m.CreatedAt), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert medication: %w", err)
	}
	return nil
}

func (s *Store) GetMedication(id string) (models.Medication, error) {
	var row medicationRow
	if err := s.get(&row, "SELECT "+medicationColumns+" FROM medications WHERE id = ?", id); err != nil {
		return models.Medication{}, err
	}
	return row.model()
}

func (s *Store) GetAllMedications() ([]models.Medication, error) {
	var rows []medicationRow
	if err := s.selectAll(&rows, "SELECT "+medicationColumns+" FROM medications ORDER BY name, id"); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	out := make([]models.Medication, 0, len(rows))
	for _, row := range rows {
		m, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) UpdateMedication(m models.Medication) error {
	if err := m.Validate(); err != nil {
		return err
	}
	schedule, err := marshalList(m.CustomSchedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	return s.execOne(`
		UPDATE medications SET
			name = ?, dosage = ?, frequency = ?, custom_schedule = ?, start_date = ?, end_date = ?,
			reminder_enabled = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`,
		m.Name, m.Dosage, string(m.Frequency), schedule, m.StartDate, m.EndDate,
		m.ReminderEnabled, m.Notes, formatTime(s.clock()), m.ID,
	)
}

func (s *Store) DeleteMedication(id string) error {
	return s.execOne("DELETE FROM medications WHERE id = ?", id)
}
