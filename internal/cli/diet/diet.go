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

type DietCmd struct {
	Prefs  PrefsCmd  `cmd:"" help:"Show or update diet preferences."`
	Plan   PlanCmd   `cmd:"" help:"Show or edit the meal plan for a day."`
	Water  WaterCmd  `cmd:"" help:"Log water or show today's intake."`
	Weight WeightCmd `cmd:"" help:"Log weight or show the weight history."`
	Reset  ResetCmd  `cmd:"" help:"Clear preferences, meal plans and water logs. Weight logs are kept."`
}

type PrefsCmd struct {
	Type      string   `help:"Diet type (standard, vegetarian, vegan, pescatarian, gluten_free, keto, paleo)."`
	Allergies []string `name:"allergy" help:"Allergy. Repeatable; replaces the stored list."`
	Dislikes  []string `name:"dislike" help:"Disliked food. Repeatable; replaces the stored list."`
	Calories  *int     `help:"Daily calorie goal."`
	WaterGoal *int     `help:"Daily water goal in ml."`
}

func (c *PrefsCmd) Run(ctx *cli.Context) error {
	pref, err := ctx.Store.GetDietPreference()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		pref = models.DietPreference{ID: cli.NewID(), DietType: models.DietStandard, CreatedAt: ctx.Clock()}
	case err != nil:
		return fmt.Errorf("failed to get diet preferences: %w", err)
	}

	updated := false
	if c.Type != "" {
		pref.DietType = models.DietType(strings.ToLower(c.Type))
		if !pref.DietType.Valid() {
			return fmt.Errorf("invalid diet type: %s", c.Type)
		}
		updated = true
	}
	if len(c.Allergies) > 0 {
		pref.Allergies = c.Allergies
		updated = true
	}
	if len(c.Dislikes) > 0 {
		pref.Dislikes = c.Dislikes
		updated = true
	}
	if c.Calories != nil {
		pref.CalorieGoal = *c.Calories
		updated = true
	}
	if c.WaterGoal != nil {
		pref.WaterGoalMl = *c.WaterGoal
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveDietPreference(pref); err != nil {
			return fmt.Errorf("failed to save diet preferences: %w", err)
		}
		fmt.Println("Diet preferences updated successfully.")
	}

	fmt.Print(render.KeyValues([][2]string{
		{"Diet", string(pref.DietType)},
		{"Allergies", listOrDash(pref.Allergies)},
		{"Dislikes", listOrDash(pref.Dislikes)},
		{"Calorie goal", intOrDash(pref.CalorieGoal, "kcal")},
		{"Water goal", intOrDash(pref.WaterGoalMl, "ml")},
	}))
	return nil
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func intOrDash(n int, unit string) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n) + " " + unit
}

// waterGoal is the goal from diet preferences, falling back to settings.
func waterGoal(ctx *cli.Context) int {
	if pref, err := ctx.Store.GetDietPreference(); err == nil && pref.WaterGoalMl > 0 {
		return pref.WaterGoalMl
	}
	if settings, err := ctx.Store.GetSettings(); err == nil {
		return settings.WaterGoalMl
	}
	return 0
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	ok, err := cli.Confirm("Delete all diet preferences, meal plans and water logs?", c.Yes)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ResetDiet(); err != nil {
		return fmt.Errorf("failed to reset diet data: %w", err)
	}
	fmt.Println("✓ Diet data cleared (weight logs kept)")
	return nil
}
