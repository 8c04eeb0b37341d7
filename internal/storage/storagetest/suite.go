// Package storagetest holds the behavioral tests every storage.Provider
// backend must pass. Backends call Run from their own _test.go files.
package storagetest

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/storage"
)

// Now is the fixed instant stores are clocked to during the suite.
var Now = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

type clockSetter interface {
	SetClock(func() time.Time)
}

// Run exercises store, which must be initialized and hold no records other
// than default settings.
func Run(t *testing.T, store storage.Provider) {
	t.Helper()
	if c, ok := store.(clockSetter); ok {
		c.SetClock(func() time.Time { return Now })
	}

	t.Run("Settings", func(t *testing.T) { testSettings(t, store) })
	t.Run("Profile", func(t *testing.T) { testProfile(t, store) })
	if c, ok := store.(clockSetter); ok {
		t.Run("ProfileClockLocalDay", func(t *testing.T) { testProfileClockLocalDay(t, store, c) })
	}
	t.Run("Milestones", func(t *testing.T) { testMilestones(t, store) })
	t.Run("CalendarEntries", func(t *testing.T) { testCalendar(t, store) })
	t.Run("Appointments", func(t *testing.T) { testAppointments(t, store) })
	t.Run("Medications", func(t *testing.T) { testMedications(t, store) })
	t.Run("Reminders", func(t *testing.T) { testReminders(t, store) })
	t.Run("Diet", func(t *testing.T) { testDiet(t, store) })
}

func diff(want, got any) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

func wantNotFound(t *testing.T, op string, err error) {
	t.Helper()
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("%s: expected ErrNotFound, got %v", op, err)
	}
}

func testSettings(t *testing.T, store storage.Provider) {
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if d := diff(models.DefaultSettings(), settings); d != "" {
		t.Errorf("default settings mismatch (-want +got):\n%s", d)
	}

	settings.Timezone = "America/Chicago"
	settings.WeightUnit = "lb"
	settings.NotificationsEnabled = false
	settings.AppointmentLeadMinutes = 120
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if d := diff(settings, got); d != "" {
		t.Errorf("saved settings mismatch (-want +got):\n%s", d)
	}

	bad := got
	bad.WeightUnit = "stone"
	if err := store.SaveSettings(bad); err == nil {
		t.Error("expected invalid settings to be rejected")
	}

	if err := store.SaveSettings(models.DefaultSettings()); err != nil {
		t.Fatalf("restoring defaults: %v", err)
	}
}

func testProfile(t *testing.T, store storage.Provider) {
	_, err := store.GetProfile()
	wantNotFound(t, "GetProfile on empty store", err)

	date, _ := pregnancy.ParseDate("2024-12-19")
	profile := models.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Reference: pregnancy.ReferencePoint{Date: date, Weeks: 8, Days: 2},
	}
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	profile.CreatedAt, profile.UpdatedAt = Now, Now
	if d := diff(profile, got); d != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", d)
	}

	// Replacing the reference point keeps a single row.
	replacement := got
	replacement.Reference = pregnancy.ReferencePoint{Date: date, Weeks: 9, Days: 0}
	if err := store.SaveProfile(replacement); err != nil {
		t.Fatalf("SaveProfile replacement: %v", err)
	}
	got, err = store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Reference.Weeks != 9 || got.Reference.Days != 0 {
		t.Errorf("expected replaced reference 9w0d, got %dw%dd", got.Reference.Weeks, got.Reference.Days)
	}

	future, _ := pregnancy.ParseDate("2025-01-11")
	rejected := got
	rejected.Reference.Date = future
	err = store.SaveProfile(rejected)
	var verr *pregnancy.ValidationError
	if !errors.As(err, &verr) || verr.Rule != pregnancy.RuleFutureDate {
		t.Errorf("expected future-date validation error, got %v", err)
	}

	if err := store.DeleteProfile(); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	_, err = store.GetProfile()
	wantNotFound(t, "GetProfile after delete", err)
	wantNotFound(t, "DeleteProfile twice", store.DeleteProfile())
}

// testProfileClockLocalDay saves a reference dated "today" for a clock whose
// local day is already ahead of UTC.
func testProfileClockLocalDay(t *testing.T, store storage.Provider, c clockSetter) {
	tokyo := time.FixedZone("JST", 9*60*60)
	local := time.Date(2025, 1, 16, 1, 0, 0, 0, tokyo)
	c.SetClock(func() time.Time { return local })
	t.Cleanup(func() { c.SetClock(func() time.Time { return Now }) })

	date, _ := pregnancy.ParseDate("2025-01-16")
	profile := models.Profile{Reference: pregnancy.ReferencePoint{Date: date, Weeks: 8, Days: 2}}
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile dated the clock's local day: %v", err)
	}

	got, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if !got.CreatedAt.Equal(local) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, local.UTC())
	}

	tomorrow, _ := pregnancy.ParseDate("2025-01-17")
	profile.Reference.Date = tomorrow
	err = store.SaveProfile(profile)
	var verr *pregnancy.ValidationError
	if !errors.As(err, &verr) || verr.Rule != pregnancy.RuleFutureDate {
		t.Errorf("expected future-date validation error for the next local day, got %v", err)
	}

	if err := store.DeleteProfile(); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
}

func testMilestones(t *testing.T, store storage.Provider) {
	later := models.Milestone{ID: "m2", Type: models.MilestoneUltrasound, Title: "12 week scan", Date: "2025-01-14", Week: 12}
	earlier := models.Milestone{ID: "m1", Type: models.MilestoneFirstTest, Title: "Positive test", Date: "2024-11-20", Notes: "two lines"}
	for _, m := range []models.Milestone{later, earlier} {
		if err := store.AddMilestone(m); err != nil {
			t.Fatalf("AddMilestone(%s): %v", m.ID, err)
		}
	}

	all, err := store.GetAllMilestones()
	if err != nil {
		t.Fatalf("GetAllMilestones: %v", err)
	}
	earlier.CreatedAt, earlier.UpdatedAt = Now, Now
	later.CreatedAt, later.UpdatedAt = Now, Now
	if d := diff([]models.Milestone{earlier, later}, all); d != "" {
		t.Errorf("milestones mismatch (-want +got):\n%s", d)
	}

	later.Notes = "heartbeat seen"
	if err := store.UpdateMilestone(later); err != nil {
		t.Fatalf("UpdateMilestone: %v", err)
	}
	got, err := store.GetMilestone("m2")
	if err != nil {
		t.Fatalf("GetMilestone: %v", err)
	}
	if got.Notes != "heartbeat seen" {
		t.Errorf("expected updated notes, got %q", got.Notes)
	}

	if err := store.AddMilestone(models.Milestone{ID: "bad", Type: "party", Title: "x", Date: "2025-01-01"}); err == nil {
		t.Error("expected invalid milestone to be rejected")
	}

	missing := later
	missing.ID = "nope"
	wantNotFound(t, "UpdateMilestone missing", store.UpdateMilestone(missing))

	if err := store.DeleteMilestone("m1"); err != nil {
		t.Fatalf("DeleteMilestone: %v", err)
	}
	_, err = store.GetMilestone("m1")
	wantNotFound(t, "GetMilestone after delete", err)
}

func testCalendar(t *testing.T, store storage.Provider) {
	entry := models.CalendarEntry{
		ID:   "c1",
		Date: "2025-01-02",
		Activities: []models.Activity{
			{ID: "a1", Type: models.ActivityExercise, Description: "Walk", Time: "07:30"},
		},
	}
	if err := store.SaveCalendarEntry(entry); err != nil {
		t.Fatalf("SaveCalendarEntry: %v", err)
	}

	// Saving the same date again replaces content but keeps the stored ID.
	replacement := models.CalendarEntry{
		ID:         "c-other",
		Date:       "2025-01-02",
		Notes:      "tired",
		Activities: []models.Activity{{ID: "a2", Type: models.ActivityMood, Description: "Sleepy"}},
	}
	if err := store.SaveCalendarEntry(replacement); err != nil {
		t.Fatalf("SaveCalendarEntry replacement: %v", err)
	}
	got, err := store.GetCalendarEntry("2025-01-02")
	if err != nil {
		t.Fatalf("GetCalendarEntry: %v", err)
	}
	want := replacement
	want.ID = "c1"
	want.CreatedAt, want.UpdatedAt = Now, Now
	if d := diff(want, got); d != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", d)
	}

	for _, date := range []string{"2025-01-05", "2025-01-09"} {
		if err := store.SaveCalendarEntry(models.CalendarEntry{ID: "c-" + date, Date: date}); err != nil {
			t.Fatalf("SaveCalendarEntry(%s): %v", date, err)
		}
	}
	inRange, err := store.GetCalendarEntries("2025-01-02", "2025-01-05")
	if err != nil {
		t.Fatalf("GetCalendarEntries: %v", err)
	}
	var dates []string
	for _, e := range inRange {
		dates = append(dates, e.Date)
	}
	if d := diff([]string{"2025-01-02", "2025-01-05"}, dates); d != "" {
		t.Errorf("range mismatch (-want +got):\n%s", d)
	}

	all, err := store.GetAllCalendarEntries()
	if err != nil {
		t.Fatalf("GetAllCalendarEntries: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries, got %d", len(all))
	}

	if err := store.DeleteCalendarEntry("2025-01-09"); err != nil {
		t.Fatalf("DeleteCalendarEntry: %v", err)
	}
	wantNotFound(t, "DeleteCalendarEntry twice", store.DeleteCalendarEntry("2025-01-09"))
}

func testAppointments(t *testing.T, store storage.Provider) {
	appt := models.Appointment{
		ID: "ap1", Title: "OB visit", Date: "2025-01-20", Time: "14:30",
		Location: "Clinic", ReminderEnabled: true, ReminderMinutes: 60,
	}
	if err := store.AddAppointment(appt); err != nil {
		t.Fatalf("AddAppointment: %v", err)
	}
	early := models.Appointment{ID: "ap0", Title: "Bloodwork", Date: "2025-01-20", Time: "08:00"}
	if err := store.AddAppointment(early); err != nil {
		t.Fatalf("AddAppointment: %v", err)
	}

	all, err := store.GetAllAppointments()
	if err != nil {
		t.Fatalf("GetAllAppointments: %v", err)
	}
	appt.CreatedAt, appt.UpdatedAt = Now, Now
	early.CreatedAt, early.UpdatedAt = Now, Now
	if d := diff([]models.Appointment{early, appt}, all); d != "" {
		t.Errorf("appointments mismatch (-want +got):\n%s", d)
	}

	appt.ReminderEnabled = false
	if err := store.UpdateAppointment(appt); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	got, err := store.GetAppointment("ap1")
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.ReminderEnabled {
		t.Error("expected reminder to be disabled")
	}

	if err := store.DeleteAppointment("ap0"); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	wantNotFound(t, "DeleteAppointment twice", store.DeleteAppointment("ap0"))
}

func testMedications(t *testing.T, store storage.Provider) {
	med := models.Medication{
		ID: "med1", Name: "Prenatal vitamin", Dosage: "1 tablet", Frequency: models.FrequencyCustom,
		CustomSchedule: []string{"08:00", "20:00"}, StartDate: "2025-01-01", ReminderEnabled: true,
	}
	if err := store.AddMedication(med); err != nil {
		t.Fatalf("AddMedication: %v", err)
	}
	got, err := store.GetMedication("med1")
	if err != nil {
		t.Fatalf("GetMedication: %v", err)
	}
	med.CreatedAt, med.UpdatedAt = Now, Now
	if d := diff(med, got); d != "" {
		t.Errorf("medication mismatch (-want +got):\n%s", d)
	}

	med.EndDate = "2025-06-30"
	med.CustomSchedule = []string{"09:00"}
	if err := store.UpdateMedication(med); err != nil {
		t.Fatalf("UpdateMedication: %v", err)
	}
	all, err := store.GetAllMedications()
	if err != nil {
		t.Fatalf("GetAllMedications: %v", err)
	}
	if d := diff([]models.Medication{med}, all); d != "" {
		t.Errorf("medications mismatch (-want +got):\n%s", d)
	}

	if err := store.DeleteMedication("med1"); err != nil {
		t.Fatalf("DeleteMedication: %v", err)
	}
	_, err = store.GetMedication("med1")
	wantNotFound(t, "GetMedication after delete", err)
}

func testReminders(t *testing.T, store storage.Provider) {
	daily := models.Reminder{ID: "r1", Title: "Vitamins", Time: "09:00", Enabled: true}
	once := models.Reminder{ID: "r2", Title: "Call clinic", Time: "10:00", Date: "2025-01-12", Enabled: true, Alarm: true}
	for _, r := range []models.Reminder{daily, once} {
		if err := store.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%s): %v", r.ID, err)
		}
	}

	got, err := store.GetReminder("r1")
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.LastSent != nil {
		t.Errorf("expected no last sent time, got %v", got.LastSent)
	}

	sent := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	if err := store.MarkReminderSent("r1", sent); err != nil {
		t.Fatalf("MarkReminderSent: %v", err)
	}
	got, err = store.GetReminder("r1")
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.LastSent == nil || !got.LastSent.Equal(sent) {
		t.Errorf("expected last sent %v, got %v", sent, got.LastSent)
	}
	wantNotFound(t, "MarkReminderSent missing", store.MarkReminderSent("nope", sent))

	got.Enabled = false
	if err := store.UpdateReminder(got); err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}
	all, err := store.GetAllReminders()
	if err != nil {
		t.Fatalf("GetAllReminders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(all))
	}
	for _, r := range all {
		if r.ID == "r1" && (r.Enabled || r.LastSent == nil) {
			t.Errorf("update lost fields: %+v", r)
		}
	}

	if err := store.DeleteReminder("r2"); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
	wantNotFound(t, "DeleteReminder twice", store.DeleteReminder("r2"))
}

func testDiet(t *testing.T, store storage.Provider) {
	_, err := store.GetDietPreference()
	wantNotFound(t, "GetDietPreference on empty store", err)

	pref := models.DietPreference{ID: "p1", DietType: models.DietVegetarian, Allergies: []string{"peanuts"}, WaterGoalMl: 2500}
	if err := store.SaveDietPreference(pref); err != nil {
		t.Fatalf("SaveDietPreference: %v", err)
	}
	second := models.DietPreference{ID: "p2", DietType: models.DietVegan}
	if err := store.SaveDietPreference(second); err != nil {
		t.Fatalf("SaveDietPreference: %v", err)
	}
	prefs, err := store.GetAllDietPreferences()
	if err != nil {
		t.Fatalf("GetAllDietPreferences: %v", err)
	}
	second.CreatedAt, second.UpdatedAt = Now, Now
	if d := diff([]models.DietPreference{second}, prefs); d != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", d)
	}

	plan := models.DietPlan{ID: "d1", Date: "2025-01-10", Meals: []models.Meal{
		{ID: "m1", Type: models.MealBreakfast, Name: "Oats", Calories: 350, Completed: true},
	}}
	if err := store.SaveDietPlan(plan); err != nil {
		t.Fatalf("SaveDietPlan: %v", err)
	}
	gotPlan, err := store.GetDietPlan("2025-01-10")
	if err != nil {
		t.Fatalf("GetDietPlan: %v", err)
	}
	plan.CreatedAt, plan.UpdatedAt = Now, Now
	if d := diff(plan, gotPlan); d != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", d)
	}

	for i, amount := range []int{250, 500} {
		w := models.WaterLog{ID: fmt.Sprintf("w%d", i), Date: "2025-01-10", AmountMl: amount}
		if err := store.AddWaterLog(w); err != nil {
			t.Fatalf("AddWaterLog: %v", err)
		}
	}
	total, err := store.GetWaterTotal("2025-01-10")
	if err != nil {
		t.Fatalf("GetWaterTotal: %v", err)
	}
	if total != 750 {
		t.Errorf("expected 750 ml, got %d", total)
	}
	if total, _ := store.GetWaterTotal("2025-01-11"); total != 0 {
		t.Errorf("expected 0 ml on an empty day, got %d", total)
	}
	logs, err := store.GetWaterLogs("2025-01-10")
	if err != nil {
		t.Fatalf("GetWaterLogs: %v", err)
	}
	if len(logs) != 2 || !logs[0].Timestamp.Equal(Now) {
		t.Errorf("unexpected water logs: %+v", logs)
	}

	if err := store.SaveWeightLog(models.WeightLog{ID: "wt1", Date: "2025-01-10", Weight: 68.4}); err != nil {
		t.Fatalf("SaveWeightLog: %v", err)
	}
	if err := store.SaveWeightLog(models.WeightLog{ID: "wt2", Date: "2025-01-10", Weight: 68.9, Note: "after lunch"}); err != nil {
		t.Fatalf("SaveWeightLog replacement: %v", err)
	}

	if err := store.ResetDiet(); err != nil {
		t.Fatalf("ResetDiet: %v", err)
	}
	_, err = store.GetDietPreference()
	wantNotFound(t, "GetDietPreference after reset", err)
	_, err = store.GetDietPlan("2025-01-10")
	wantNotFound(t, "GetDietPlan after reset", err)
	if waters, _ := store.GetAllWaterLogs(); len(waters) != 0 {
		t.Errorf("expected water logs cleared, got %d", len(waters))
	}

	weights, err := store.GetWeightLogs()
	if err != nil {
		t.Fatalf("GetWeightLogs: %v", err)
	}
	want := []models.WeightLog{{ID: "wt1", Date: "2025-01-10", Weight: 68.9, Note: "after lunch"}}
	if d := diff(want, weights); d != "" {
		t.Errorf("weight logs should survive reset (-want +got):\n%s", d)
	}
	if err := store.DeleteWeightLog("2025-01-10"); err != nil {
		t.Fatalf("DeleteWeightLog: %v", err)
	}
}
