package diet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/render"
	"github.com/julianstephens/bump/internal/storage"
)

type PlanCmd struct {
	Date  string   `arg:"" optional:"" help:"Day of the plan." default:"today"`
	Meals []string `name:"meal" short:"m" help:"Add a meal as type:name[:calories]. Types: breakfast, lunch, dinner, snack. Repeatable."`
	Done  []int    `help:"Mark meal number N as eaten. Repeatable."`
	Notes string   `help:"Notes for the day."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	plan, err := ctx.Store.GetDietPlan(date)
	exists := err == nil
	switch {
	case errors.Is(err, storage.ErrNotFound):
		plan = models.DietPlan{ID: cli.NewID(), Date: date, CreatedAt: ctx.Clock()}
	case err != nil:
		return fmt.Errorf("failed to get diet plan: %w", err)
	}

	changed := false
	for _, raw := range c.Meals {
		meal, err := ParseMeal(raw)
		if err != nil {
			return err
		}
		meal.ID = cli.NewID()
		plan.Meals = append(plan.Meals, meal)
		changed = true
	}
	for _, n := range c.Done {
		if n < 1 || n > len(plan.Meals) {
			return fmt.Errorf("no meal number %d (plan has %d)", n, len(plan.Meals))
		}
		plan.Meals[n-1].Completed = true
		changed = true
	}
	if c.Notes != "" {
		plan.Notes = c.Notes
		changed = true
	}

	if changed {
		if err := ctx.Store.SaveDietPlan(plan); err != nil {
			return fmt.Errorf("failed to save diet plan: %w", err)
		}
	} else if !exists {
		fmt.Printf("No meal plan for %s. Add meals with --meal.\n", date)
		return nil
	}

	fmt.Println(render.Title("Meal plan for " + plan.Date))
	for i, m := range plan.Meals {
		mark := " "
		if m.Completed {
			mark = "✓"
		}
		line := fmt.Sprintf("  %d. [%s] %-9s %s", i+1, mark, m.Type, m.Name)
		if m.Calories > 0 {
			line += fmt.Sprintf(" (%d kcal)", m.Calories)
		}
		fmt.Println(line)
	}
	fmt.Printf("%s %d kcal\n", render.Label("Total"), plan.TotalCalories())
	if plan.Notes != "" {
		fmt.Printf("%s %s\n", render.Label("Notes"), plan.Notes)
	}
	return nil
}

// ParseMeal reads "type:name" with an optional ":calories" suffix.
func ParseMeal(raw string) (models.Meal, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.Meal{}, fmt.Errorf("invalid meal %q (expected type:name[:calories])", raw)
	}
	m := models.Meal{
		Type: models.MealType(strings.ToLower(strings.TrimSpace(parts[0]))),
		Name: strings.TrimSpace(parts[1]),
	}
	if !m.Type.Valid() {
		return models.Meal{}, fmt.Errorf("invalid meal type: %s", m.Type)
	}
	if m.Name == "" {
		return models.Meal{}, fmt.Errorf("meal name cannot be empty")
	}
	if len(parts) == 3 {
		kcal, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || kcal < 0 {
			return models.Meal{}, fmt.Errorf("invalid calories %q", parts[2])
		}
		m.Calories = kcal
	}
	return m, nil
}
