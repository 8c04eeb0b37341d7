package validation

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/storage/sqlite"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// LMP 2024-10-18, due 2025-07-25.
func testProfile() *models.Profile {
	return &models.Profile{
		FirstName: "Ada",
		Reference: pregnancy.ReferencePoint{
			Date:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Weeks: 12,
		},
	}
}

func countType(result ValidationResult, typ ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func TestValidateRecords_Clean(t *testing.T) {
	records := Records{
		Milestones: []models.Milestone{
			{ID: "m1", Type: models.MilestoneFirstTest, Title: "Positive test", Date: "2024-11-20"},
		},
		Appointments: []models.Appointment{
			{ID: "a1", Title: "Scan", Date: "2025-03-05", Time: "10:30"},
		},
		Medications: []models.Medication{
			{ID: "med1", Name: "Folic acid", Frequency: models.FrequencyDaily, StartDate: "2024-10-01", EndDate: "2025-04-01"},
		},
		Reminders:       []models.Reminder{{ID: "r1", Title: "Water", Time: "11:00"}},
		CalendarEntries: []models.CalendarEntry{{ID: "c1", Date: "2025-02-01"}, {ID: "c2", Date: "2025-02-02"}},
		WeightLogs:      []models.WeightLog{{ID: "w1", Date: "2025-02-01", Weight: 62}},
	}

	result := New().ValidateRecords(testProfile(), records, now)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("Unexpected report: %q", got)
	}
}

func TestValidateRecords_MilestoneRange(t *testing.T) {
	records := Records{
		Milestones: []models.Milestone{
			{ID: "m1", Title: "Too early", Date: "2024-10-17"},
			{ID: "m2", Title: "On LMP", Date: "2024-10-18"},
			{ID: "m3", Title: "Six weeks after due", Date: "2025-09-05"},
			{ID: "m4", Title: "Too late", Date: "2025-09-06"},
		},
	}

	result := New().ValidateRecords(testProfile(), records, now)

	if got := countType(result, ConflictMilestoneOutOfRange); got != 2 {
		t.Fatalf("Expected 2 out-of-range milestones, got %d: %s", got, result.FormatReport())
	}
	if result.Conflicts[0].IDs[0] != "m1" || result.Conflicts[1].IDs[0] != "m4" {
		t.Errorf("Unexpected conflicting milestones: %v, %v", result.Conflicts[0].IDs, result.Conflicts[1].IDs)
	}
	if !strings.Contains(result.Conflicts[0].Description, "2024-10-18") {
		t.Errorf("Expected LMP in description, got %q", result.Conflicts[0].Description)
	}
}

func TestValidateRecords_NoProfileSkipsRange(t *testing.T) {
	records := Records{
		Milestones: []models.Milestone{{ID: "m1", Title: "Old", Date: "2000-01-01"}},
	}

	result := New().ValidateRecords(nil, records, now)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts without a profile, got: %s", result.FormatReport())
	}
}

func TestValidateRecords_InvalidProfile(t *testing.T) {
	profile := testProfile()
	profile.Reference.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	records := Records{
		Milestones: []models.Milestone{{ID: "m1", Title: "Old", Date: "2000-01-01"}},
	}
	result := New().ValidateRecords(profile, records, now)

	if got := countType(result, ConflictInvalidProfile); got != 1 {
		t.Errorf("Expected 1 invalid profile conflict, got %d", got)
	}
	if got := countType(result, ConflictMilestoneOutOfRange); got != 0 {
		t.Errorf("Expected range checks to be skipped for an invalid profile, got %d", got)
	}
}

func TestValidateRecords_MedicationDates(t *testing.T) {
	records := Records{
		Medications: []models.Medication{
			{ID: "1", Name: "Iron", Frequency: models.FrequencyDaily, StartDate: "2025-02-01", EndDate: "2025-01-01"},
			{ID: "2", Name: "Same day", Frequency: models.FrequencyDaily, StartDate: "2025-02-01", EndDate: "2025-02-01"},
			{ID: "3", Name: "Bad start", Frequency: models.FrequencyDaily, StartDate: "02/01/2025"},
			{ID: "4", Name: "Custom", Frequency: models.FrequencyCustom, StartDate: "2025-02-01"},
			{ID: "5", Name: "Bad time", Frequency: models.FrequencyCustom, CustomSchedule: []string{"9am"}, StartDate: "2025-02-01"},
		},
	}

	result := New().ValidateRecords(nil, records, now)

	if got := countType(result, ConflictMedicationEndsEarly); got != 1 {
		t.Errorf("Expected 1 medication ending early, got %d", got)
	}
	if got := countType(result, ConflictMissingSchedule); got != 1 {
		t.Errorf("Expected 1 missing schedule, got %d", got)
	}
	if got := countType(result, ConflictInvalidDateTime); got != 2 {
		t.Errorf("Expected 2 invalid date/time conflicts, got %d", got)
	}
}

func TestValidateRecords_InvalidTimeFormat(t *testing.T) {
	records := Records{
		Appointments: []models.Appointment{
			{ID: "1", Title: "Hour", Date: "2025-03-05", Time: "25:00"},
			{ID: "2", Title: "Minute", Date: "2025-03-05", Time: "12:70"},
			{ID: "3", Title: "Date", Date: "2025-13-05", Time: "12:00"},
		},
		Reminders: []models.Reminder{
			{ID: "4", Title: "Format", Time: "not-a-time"},
			{ID: "5", Title: "Date", Time: "08:00", Date: "tomorrow"},
		},
	}

	result := New().ValidateRecords(nil, records, now)

	if got := countType(result, ConflictInvalidDateTime); got != 5 {
		t.Errorf("Expected 5 invalid date/time conflicts, got %d: %s", got, result.FormatReport())
	}
}

func TestValidateRecords_DuplicateDates(t *testing.T) {
	records := Records{
		CalendarEntries: []models.CalendarEntry{
			{ID: "c1", Date: "2025-02-02"},
			{ID: "c2", Date: "2025-02-01"},
			{ID: "c3", Date: "2025-02-02"},
		},
		DietPlans: []models.DietPlan{
			{ID: "p1", Date: "2025-02-01"},
			{ID: "p2", Date: "2025-02-01"},
		},
		WeightLogs: []models.WeightLog{
			{ID: "w1", Date: "2025-02-01"},
		},
	}

	result := New().ValidateRecords(nil, records, now)

	if got := countType(result, ConflictDuplicateDate); got != 2 {
		t.Fatalf("Expected 2 duplicate date conflicts, got %d", got)
	}
	first := result.Conflicts[0]
	if first.Date != "2025-02-02" || len(first.IDs) != 2 || first.IDs[0] != "c1" || first.IDs[1] != "c3" {
		t.Errorf("Unexpected calendar conflict: %+v", first)
	}
	if !strings.Contains(result.Conflicts[1].Description, "diet plans") {
		t.Errorf("Expected diet plan conflict, got %q", result.Conflicts[1].Description)
	}
}

func TestFormatReport(t *testing.T) {
	result := ValidationResult{Conflicts: []Conflict{
		{Type: ConflictDuplicateDate, Description: "first"},
		{Type: ConflictInvalidDateTime, Description: "second"},
	}}

	want := "Conflicts detected:\n- first\n- second\n"
	if got := result.FormatReport(); got != want {
		t.Errorf("FormatReport() = %q, want %q", got, want)
	}
}

func TestCollect(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "bump.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	profile, records, err := Collect(store)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if profile != nil {
		t.Errorf("Expected no profile, got %+v", profile)
	}
	if len(records.Milestones) != 0 {
		t.Errorf("Expected no milestones, got %d", len(records.Milestones))
	}

	if err := store.SaveProfile(*testProfile()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if err := store.AddMilestone(models.Milestone{ID: "m1", Type: models.MilestoneCustom, Title: "Too early", Date: "2024-01-01"}); err != nil {
		t.Fatalf("AddMilestone: %v", err)
	}
	if err := store.SaveWeightLog(models.WeightLog{ID: "w1", Date: "2025-02-01", Weight: 62}); err != nil {
		t.Fatalf("SaveWeightLog: %v", err)
	}

	profile, records, err = Collect(store)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if profile == nil || profile.FirstName != "Ada" {
		t.Fatalf("Expected stored profile, got %+v", profile)
	}
	if len(records.Milestones) != 1 || len(records.WeightLogs) != 1 {
		t.Errorf("Unexpected records: %+v", records)
	}

	result := New().ValidateRecords(profile, records, now)
	if got := countType(result, ConflictMilestoneOutOfRange); got != 1 {
		t.Errorf("Expected 1 out-of-range milestone, got %d", got)
	}
}
