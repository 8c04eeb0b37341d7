package sqlstore

import (
	"fmt"

	"github.com/julianstephens/bump/internal/models"
)

type dietPreferenceRow struct {
	ID          string `db:"id"`
	DietType    string `db:"diet_type"`
	Allergies   string `db:"allergies"`
	Dislikes    string `db:"dislikes"`
	CalorieGoal int    `db:"calorie_goal"`
	WaterGoalMl int    `db:"water_goal_ml"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

func (r dietPreferenceRow) model() (models.DietPreference, error) {
	allergies, err := unmarshalList[string](r.Allergies)
	if err != nil {
		return models.DietPreference{}, fmt.Errorf("failed to unmarshal allergies: %w", err)
	}
	dislikes, err := unmarshalList[string](r.Dislikes)
	if err != nil {
		return models.DietPreference{}, fmt.Errorf("failed to unmarshal dislikes: %w", err)
	}
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.DietPreference{}, err
	}
	return models.DietPreference{
		ID:          r.ID,
		DietType:    models.DietType(r.DietType),
		Allergies:   allergies,
		Dislikes:    dislikes,
		CalorieGoal: r.CalorieGoal,
		WaterGoalMl: r.WaterGoalMl,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

type dietPlanRow struct {
	ID            string `db:"id"`
	Date          string `db:"date"`
	Meals         string `db:"meals"`
	WaterIntakeMl int    `db:"water_intake_ml"`
	Notes         string `db:"notes"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (r dietPlanRow) model() (models.DietPlan, error) {
	meals, err := unmarshalList[models.Meal](r.Meals)
	if err != nil {
		return models.DietPlan{}, fmt.Errorf("failed to unmarshal meals for %s: %w", r.Date, err)
	}
	created, updated, err := stamps(r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.DietPlan{}, err
	}
	return models.DietPlan{
		ID:            r.ID,
		Date:          r.Date,
		Meals:         meals,
		WaterIntakeMl: r.WaterIntakeMl,
		Notes:         r.Notes,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

type waterLogRow struct {
	ID        string `db:"id"`
	Date      string `db:"date"`
	AmountMl  int    `db:"amount_ml"`
	Timestamp string `db:"timestamp"`
}

func (r waterLogRow) model() (models.WaterLog, error) {
	ts, err := parseTime(r.Timestamp)
	if err != nil {
		return models.WaterLog{}, err
	}
	return models.WaterLog{ID: r.ID, Date: r.Date, AmountMl: r.AmountMl, Timestamp: ts}, nil
}

type weightLogRow struct {
	ID     string  `db:"id"`
	Date   string  `db:"date"`
	Weight float64 `db:"weight"`
	Note   string  `db:"note"`
}

const (
	dietPreferenceColumns = "id, diet_type, allergies, dislikes, calorie_goal, water_goal_ml, created_at, updated_at"
	dietPlanColumns       = "id, date, meals, water_intake_ml, notes, created_at, updated_at"
	waterLogColumns       = "id, date, amount_ml, timestamp"
	weightLogColumns      = "id, date, weight, note"
)

// SaveDietPreference stores p as the only diet preference.
func (s *Store) SaveDietPreference(p models.DietPreference) error {
	if err := p.Validate(); err != nil {
		return err
	}
	allergies, err := marshalList(p.Allergies)
	if err != nil {
		return fmt.Errorf("failed to marshal allergies: %w", err)
	}
	dislikes, err := marshalList(p.Dislikes)
	if err != nil {
		return fmt.Errorf("failed to marshal dislikes: %w", err)
	}
	if err := s.ready(); err != nil {
		return err
	}
	now := s.clock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(tx.Rebind("DELETE FROM diet_preferences WHERE id <> ?"), p.ID); err != nil {
		return fmt.Errorf("failed to clear diet preferences: %w", err)
	}
	_, err = tx.Exec(tx.Rebind(`
		INSERT INTO diet_preferences (`+dietPreferenceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			diet_type = excluded.diet_type,
			allergies = excluded.allergies,
			dislikes = excluded.dislikes,
			calorie_goal = excluded.calorie_goal,
			water_goal_ml = excluded.water_goal_ml,
			updated_at = excluded.updated_at
	`), p.ID, string(p.DietType), allergies, dislikes, p.CalorieGoal, p.WaterGoalMl, formatTime(p.CreatedAt), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to save diet preference: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetDietPreference() (models.DietPreference, error) {
	var row dietPreferenceRow
	if err := s.get(&row, "SELECT "+dietPreferenceColumns+" FROM diet_preferences ORDER BY updated_at DESC LIMIT 1"); err != nil {
		return models.DietPreference{}, err
	}
	return row.model()
}

func (s *Store) GetAllDietPreferences() ([]models.DietPreference, error) {
	var rows []dietPreferenceRow
	if err := s.selectAll(&rows, "SELECT "+dietPreferenceColumns+" FROM diet_preferences ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("failed to list diet preferences: %w", err)
	}
	out := make([]models.DietPreference, 0, len(rows))
	for _, row := range rows {
		p, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveDietPlan inserts or replaces the plan for p.Date.
func (s *Store) SaveDietPlan(p models.DietPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	meals, err := marshalList(p.Meals)
	if err != nil {
		return fmt.Errorf("failed to marshal meals: %w", err)
	}
	now := s.clock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	_, err = s.exec(`
		INSERT INTO diet_plans (`+dietPlanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			meals = excluded.meals,
			water_intake_ml = excluded.water_intake_ml,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`, p.ID, p.Date, meals, p.WaterIntakeMl, p.Notes, formatTime(p.CreatedAt), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to save diet plan: %w", err)
	}
	return nil
}

func (s *Store) GetDietPlan(date string) (models.DietPlan, error) {
	var row dietPlanRow
	if err := s.get(&row, "SELECT "+dietPlanColumns+" FROM diet_plans WHERE date = ?", date); err != nil {
		return models.DietPlan{}, err
	}
	return row.model()
}

func (s *Store) GetAllDietPlans() ([]models.DietPlan, error) {
	var rows []dietPlanRow
	if err := s.selectAll(&rows, "SELECT "+dietPlanColumns+" FROM diet_plans ORDER BY date"); err != nil {
		return nil, fmt.Errorf("failed to list diet plans: %w", err)
	}
	out := make([]models.DietPlan, 0, len(rows))
	for _, row := range rows {
		p, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) AddWaterLog(w models.WaterLog) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = s.clock()
	}

	_, err := s.exec("INSERT INTO water_logs ("+waterLogColumns+") VALUES (?, ?, ?, ?)",
		w.ID, w.Date, w.AmountMl, formatTime(w.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert water log: %w", err)
	}
	return nil
}

func waterModels(rows []waterLogRow) ([]models.WaterLog, error) {
	out := make([]models.WaterLog, 0, len(rows))
	for _, row := range rows {
		w, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *Store) GetWaterLogs(date string) ([]models.WaterLog, error) {
	var rows []waterLogRow
	if err := s.selectAll(&rows, "SELECT "+waterLogColumns+" FROM water_logs WHERE date = ? ORDER BY timestamp, id", date); err != nil {
		return nil, fmt.Errorf("failed to list water logs: %w", err)
	}
	return waterModels(rows)
}

func (s *Store) GetAllWaterLogs() ([]models.WaterLog, error) {
	var rows []waterLogRow
	if err := s.selectAll(&rows, "SELECT "+waterLogColumns+" FROM water_logs ORDER BY date, timestamp, id"); err != nil {
		return nil, fmt.Errorf("failed to list water logs: %w", err)
	}
	return waterModels(rows)
}

func (s *Store) GetWaterTotal(date string) (int, error) {
	var total int
	if err := s.get(&total, "SELECT COALESCE(SUM(amount_ml), 0) FROM water_logs WHERE date = ?", date); err != nil {
		return 0, fmt.Errorf("failed to sum water logs: %w", err)
	}
	return total, nil
}

// SaveWeightLog inserts or replaces the weight recorded for w.Date.
func (s *Store) SaveWeightLog(w models.WeightLog) error {
	if err := w.Validate(); err != nil {
		return err
	}
	_, err := s.exec(`
		INSERT INTO weight_logs (`+weightLogColumns+`)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET weight = excluded.weight, note = excluded.note
	`, w.ID, w.Date, w.Weight, w.Note)
	if err != nil {
		return fmt.Errorf("failed to save weight log: %w", err)
	}
	return nil
}

func (s *Store) GetWeightLogs() ([]models.WeightLog, error) {
	var rows []weightLogRow
	if err := s.selectAll(&rows, "SELECT "+weightLogColumns+" FROM weight_logs ORDER BY date"); err != nil {
		return nil, fmt.Errorf("failed to list weight logs: %w", err)
	}
	out := make([]models.WeightLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.WeightLog{ID: row.ID, Date: row.Date, Weight: row.Weight, Note: row.Note})
	}
	return out, nil
}

func (s *Store) DeleteWeightLog(date string) error {
	return s.execOne("DELETE FROM weight_logs WHERE date = ?", date)
}

func (s *Store) ResetDiet() error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"diet_preferences", "diet_plans", "water_logs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
