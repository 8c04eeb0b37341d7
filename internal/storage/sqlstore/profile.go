package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
)

type profileRow struct {
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	ReferenceDate  string `db:"reference_date"`
	ReferenceWeeks int    `db:"reference_weeks"`
	ReferenceDays  int    `db:"reference_days"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
}

func (s *Store) GetProfile() (models.Profile, error) {
	var row profileRow
	err := s.get(&row, `
		SELECT first_name, last_name, reference_date, reference_weeks, reference_days, created_at, updated_at
		FROM profile WHERE id = 1
	`)
	if err != nil {
		return models.Profile{}, err
	}

	date, err := pregnancy.ParseDate(row.ReferenceDate)
	if err != nil {
		return models.Profile{}, fmt.Errorf("stored reference date is corrupt: %w", err)
	}
	created, updated, err := stamps(row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return models.Profile{}, err
	}

	return models.Profile{
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Reference: pregnancy.ReferencePoint{Date: date, Weeks: row.ReferenceWeeks, Days: row.ReferenceDays},
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// SaveProfile validates the reference point against the calendar day of the
// store clock, in that clock's zone, and replaces the stored profile.
// CreatedAt survives replacement.
func (s *Store) SaveProfile(p models.Profile) error {
	if err := p.Validate(s.localClock()); err != nil {
		return err
	}
	now := s.clock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	_, err := s.exec(`
		INSERT INTO profile (id, first_name, last_name, reference_date, reference_weeks, reference_days, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			reference_date = excluded.reference_date,
			reference_weeks = excluded.reference_weeks,
			reference_days = excluded.reference_days,
			updated_at = excluded.updated_at
	`,
		p.FirstName, p.LastName, p.Reference.Date.Format(pregnancy.DateFormat), p.Reference.Weeks, p.Reference.Days,
		formatTime(p.CreatedAt), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *Store) DeleteProfile() error {
	return s.execOne("DELETE FROM profile WHERE id = 1")
}
