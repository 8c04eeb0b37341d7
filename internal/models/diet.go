package models

import (
	"fmt"
	"time"
)

type DietType string

const (
	DietStandard    DietType = "standard"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "vegan"
	DietPescatarian DietType = "pescatarian"
	DietGlutenFree  DietType = "gluten_free"
	DietKeto        DietType = "keto"
	DietPaleo       DietType = "paleo"
)

func (d DietType) Valid() bool {
	switch d {
	case DietStandard, DietVegetarian, DietVegan, DietPescatarian, DietGlutenFree, DietKeto, DietPaleo:
		return true
	}
	return false
}

type DietPreference struct {
	ID          string    `json:"id" yaml:"id"`
	DietType    DietType  `json:"diet_type" yaml:"diet_type"`
	Allergies   []string  `json:"allergies" yaml:"allergies"`
	Dislikes    []string  `json:"dislikes" yaml:"dislikes"`
	CalorieGoal int       `json:"calorie_goal,omitempty" yaml:"calorie_goal,omitempty"`
	WaterGoalMl int       `json:"water_goal_ml,omitempty" yaml:"water_goal_ml,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func (p *DietPreference) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("diet preference id cannot be empty")
	}
	if !p.DietType.Valid() {
		return fmt.Errorf("invalid diet type: %s", p.DietType)
	}
	if p.CalorieGoal < 0 || p.CalorieGoal > 10000 {
		return fmt.Errorf("calorie goal must be between 0 and 10000")
	}
	if p.WaterGoalMl < 0 || p.WaterGoalMl > 10000 {
		return fmt.Errorf("water goal must be between 0 and 10000 ml")
	}
	return nil
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type Meal struct {
	ID          string   `json:"id" yaml:"id"`
	Type        MealType `json:"type" yaml:"type"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Calories    int      `json:"calories,omitempty" yaml:"calories,omitempty"`
	Completed   bool     `json:"completed" yaml:"completed"`
}

// DietPlan is the meal plan for one calendar day.
type DietPlan struct {
	ID            string    `json:"id" yaml:"id"`
	Date          string    `json:"date" yaml:"date"` // YYYY-MM-DD
	Meals         []Meal    `json:"meals" yaml:"meals"`
	WaterIntakeMl int       `json:"water_intake_ml" yaml:"water_intake_ml"`
	Notes         string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

func (p *DietPlan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("diet plan id cannot be empty")
	}
	if err := validateDate("plan date", p.Date); err != nil {
		return err
	}
	for i, meal := range p.Meals {
		if !meal.Type.Valid() {
			return fmt.Errorf("meal %d: invalid meal type: %s", i+1, meal.Type)
		}
		if err := requireText("meal name", meal.Name); err != nil {
			return fmt.Errorf("meal %d: %w", i+1, err)
		}
		if meal.Calories < 0 {
			return fmt.Errorf("meal %d: calories cannot be negative", i+1)
		}
	}
	if p.WaterIntakeMl < 0 {
		return fmt.Errorf("water intake cannot be negative")
	}
	return nil
}

// TotalCalories sums the calories of every meal in the plan.
func (p *DietPlan) TotalCalories() int {
	total := 0
	for _, meal := range p.Meals {
		total += meal.Calories
	}
	return total
}

type WaterLog struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"` // YYYY-MM-DD
	AmountMl  int       `json:"amount_ml" yaml:"amount_ml"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

func (w *WaterLog) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("water log id cannot be empty")
	}
	if err := validateDate("water log date", w.Date); err != nil {
		return err
	}
	if w.AmountMl <= 0 || w.AmountMl > 5000 {
		return fmt.Errorf("water amount must be between 1 and 5000 ml")
	}
	return nil
}

// WeightLog is the weight recorded for one calendar day, in the unit from Settings.
type WeightLog struct {
	ID     string  `json:"id" yaml:"id"`
	Date   string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight" yaml:"weight"`
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

func (w *WeightLog) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("weight log id cannot be empty")
	}
	if err := validateDate("weight log date", w.Date); err != nil {
		return err
	}
	if w.Weight <= 0 || w.Weight > 1000 {
		return fmt.Errorf("weight must be between 0 and 1000")
	}
	return nil
}
