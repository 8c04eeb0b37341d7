package diet

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/storage"
	"github.com/julianstephens/bump/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	return &cli.Context{
		Store: store,
		Now:   func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func intPtr(n int) *int { return &n }

func TestPrefsCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&PrefsCmd{}).Run(ctx); err != nil {
		t.Fatalf("showing default prefs failed: %v", err)
	}
	if _, err := ctx.Store.GetDietPreference(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("showing prefs should not save anything, got err %v", err)
	}

	cmd := &PrefsCmd{Type: "vegetarian", Allergies: []string{"peanuts"}, WaterGoal: intPtr(2500)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("updating prefs failed: %v", err)
	}
	pref, err := ctx.Store.GetDietPreference()
	if err != nil {
		t.Fatalf("failed to get prefs: %v", err)
	}
	if pref.DietType != models.DietVegetarian || len(pref.Allergies) != 1 || pref.WaterGoalMl != 2500 {
		t.Errorf("unexpected prefs: %+v", pref)
	}

	if err := (&PrefsCmd{Type: "carnivore"}).Run(ctx); err == nil {
		t.Error("expected invalid diet type error")
	}
}

func TestParseMeal(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.Meal
		wantErr bool
	}{
		{raw: "breakfast:oatmeal", want: models.Meal{Type: models.MealBreakfast, Name: "oatmeal"}},
		{raw: "Dinner: salmon : 650", want: models.Meal{Type: models.MealDinner, Name: "salmon", Calories: 650}},
		{raw: "brunch:eggs", wantErr: true},
		{raw: "lunch:", wantErr: true},
		{raw: "lunch:soup:lots", wantErr: true},
		{raw: "soup", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMeal(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMeal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMeal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&PlanCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("showing missing plan failed: %v", err)
	}

	if err := (&PlanCmd{Date: "today", Meals: []string{"breakfast:oatmeal:350", "lunch:salad:400"}}).Run(ctx); err != nil {
		t.Fatalf("adding meals failed: %v", err)
	}
	if err := (&PlanCmd{Date: "2025-03-01", Done: []int{1}, Notes: "Hungry"}).Run(ctx); err != nil {
		t.Fatalf("marking meal failed: %v", err)
	}

	plan, err := ctx.Store.GetDietPlan("2025-03-01")
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if len(plan.Meals) != 2 || !plan.Meals[0].Completed || plan.Meals[1].Completed {
		t.Errorf("unexpected meals: %+v", plan.Meals)
	}
	if plan.TotalCalories() != 750 || plan.Notes != "Hungry" {
		t.Errorf("unexpected plan: %+v", plan)
	}

	if err := (&PlanCmd{Date: "today", Done: []int{3}}).Run(ctx); err == nil {
		t.Error("marking a missing meal should fail")
	}
}

func TestWaterCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&WaterCmd{Amount: 500, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("logging water failed: %v", err)
	}
	if err := (&WaterCmd{Amount: 250, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("logging water failed: %v", err)
	}
	if err := (&WaterCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("showing water failed: %v", err)
	}

	total, err := ctx.Store.GetWaterTotal("2025-03-01")
	if err != nil {
		t.Fatalf("failed to get total: %v", err)
	}
	if total != 750 {
		t.Errorf("total = %d, want 750", total)
	}

	if err := (&WaterCmd{Amount: 6000, Date: "today"}).Run(ctx); err == nil {
		t.Error("expected error for an implausible amount")
	}
}

func TestWaterGoalPrefersDietPreference(t *testing.T) {
	ctx := setupTestDB(t)
	if got := waterGoal(ctx); got != models.DefaultSettings().WaterGoalMl {
		t.Errorf("waterGoal() = %d, want settings default", got)
	}

	if err := ctx.Store.SaveDietPreference(models.DietPreference{ID: "p1", DietType: models.DietStandard, WaterGoalMl: 3000}); err != nil {
		t.Fatalf("failed to save prefs: %v", err)
	}
	if got := waterGoal(ctx); got != 3000 {
		t.Errorf("waterGoal() = %d, want 3000", got)
	}
}

func TestWeightCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&WeightCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("listing empty weights failed: %v", err)
	}
	if err := (&WeightCmd{Weight: 64.5, Date: "2025-02-01"}).Run(ctx); err != nil {
		t.Fatalf("recording weight failed: %v", err)
	}
	if err := (&WeightCmd{Weight: 66, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("recording weight failed: %v", err)
	}
	if err := (&WeightCmd{Weight: 66.2, Date: "today", Note: "after lunch"}).Run(ctx); err != nil {
		t.Fatalf("replacing weight failed: %v", err)
	}

	logs, err := ctx.Store.GetWeightLogs()
	if err != nil {
		t.Fatalf("failed to get weights: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 weight logs (one per day), got %d", len(logs))
	}
	if logs[1].Weight != 66.2 || logs[1].Note != "after lunch" {
		t.Errorf("unexpected replaced log: %+v", logs[1])
	}
	if err := (&WeightCmd{Date: "today"}).Run(ctx); err != nil {
		t.Errorf("listing weights failed: %v", err)
	}

	if err := (&WeightCmd{Date: "2025-02-01", Delete: true}).Run(ctx); err != nil {
		t.Fatalf("deleting weight failed: %v", err)
	}
	logs, _ = ctx.Store.GetWeightLogs()
	if len(logs) != 1 {
		t.Errorf("expected 1 weight log after delete, got %d", len(logs))
	}
}

func TestResetCmd_KeepsWeight(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&PlanCmd{Date: "today", Meals: []string{"snack:apple"}}).Run(ctx); err != nil {
		t.Fatalf("adding plan failed: %v", err)
	}
	if err := (&WaterCmd{Amount: 300, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("logging water failed: %v", err)
	}
	if err := (&WeightCmd{Weight: 65, Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("recording weight failed: %v", err)
	}

	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := ctx.Store.GetDietPlan("2025-03-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("plan should be gone, got err %v", err)
	}
	if total, _ := ctx.Store.GetWaterTotal("2025-03-01"); total != 0 {
		t.Errorf("water total = %d, want 0", total)
	}
	if logs, _ := ctx.Store.GetWeightLogs(); len(logs) != 1 {
		t.Errorf("weight logs should be kept, got %d", len(logs))
	}
}
