package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
)

type milestoneRow struct {
	ID        string `db:"id"`
	Type      string `db:"type"`
	Title     string `db:"title"`
	Date      string `db:"date"`
	Notes     string `db:"notes"`
	Week      int    `db:"week"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r milestoneRow) model() (models.Milestone, error) {
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.Milestone{}, err
	}
	return models.Milestone{
		ID:        r.ID,
		Type:      models.MilestoneType(r.Type),
		Title:     r.Title,
		Date:      r.Date,
		Notes:     r.Notes,
		Week:      r.Week,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

const milestoneColumns = "id, type, title, date, notes, week, created_at, updated_at"

func (s *Store) AddMilestone(m models.Milestone) error {
	if err := m.Validate(); err != nil {
		return err
	}
	now := s.clock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	_, err := s.exec(`
		INSERT INTO milestones (`+milestoneColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, string(m.Type), m.Title, m.Date, m.Notes, m.Week, formatTime(m.CreatedAt), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to insert milestone: %w", err)
	}
	return nil
}

func (s *Store) GetMilestone(id string) (models.Milestone, error) {
	var row milestoneRow
	if err := s.get(&row, "SELECT "+milestoneColumns+" FROM milestones WHERE id = ?", id); err != nil {
		return models.Milestone{}, err
	}
	return row.model()
}

func (s *Store) GetAllMilestones() ([]models.Milestone, error) {
	var rows []milestoneRow
	if err := s.selectAll(&rows, "SELECT "+milestoneColumns+" FROM milestones ORDER BY date, created_at"); err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	out := make([]models.Milestone, 0, len(rows))
	for _, row := range rows {
		m, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) UpdateMilestone(m models.Milestone) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return s.execOne(`
		UPDATE milestones SET type = ?, title = ?, date = ?, notes = ?, week = ?, updated_at = ?
		WHERE id = ?
	`, string(m.Type), m.Title, m.Date, m.Notes, m.Week, formatTime(s.clock()), m.ID)
}

func (s *Store) DeleteMilestone(id string) error {
	return s.execOne("DELETE FROM milestones WHERE id = ?", id)
}
