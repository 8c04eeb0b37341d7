package reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/notifier"
)

type fakeStore struct {
	mu           sync.Mutex
	settings     models.Settings
	appointments []models.Appointment
	medications  []models.Medication
	reminders    []models.Reminder
	marked       map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: models.DefaultSettings(), marked: map[string]time.Time{}}
}

func (f *fakeStore) GetAllAppointments() ([]models.Appointment, error) { return f.appointments, nil }
func (f *fakeStore) GetAllMedications() ([]models.Medication, error)   { return f.medications, nil }
func (f *fakeStore) GetSettings() (models.Settings, error)             { return f.settings, nil }

func (f *fakeStore) GetAllReminders() ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Reminder, len(f.reminders))
	copy(out, f.reminders)
	return out, nil
}

func (f *fakeStore) MarkReminderSent(id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			t := at
			f.reminders[i].LastSent = &t
			f.marked[id] = at
			return nil
		}
	}
	return errors.New("not found")
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notifier.Message
	fail func(notifier.Message) error
}

func (f *fakeNotifier) Notify(_ context.Context, msg notifier.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		if err := f.fail(msg); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, msg)
	return nil
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	require.NoError(t, err)
	return parsed
}

func TestMedicationTimes(t *testing.T) {
	assert.Equal(t, []string{"09:00"}, MedicationTimes(models.Medication{Frequency: models.FrequencyDaily}))
	assert.Equal(t, []string{"09:00", "21:00"}, MedicationTimes(models.Medication{Frequency: models.FrequencyTwiceDaily}))
	assert.Equal(t, []string{"08:00", "14:00", "20:00"}, MedicationTimes(models.Medication{Frequency: models.FrequencyThreeTimesDaily}))
	assert.Empty(t, MedicationTimes(models.Medication{Frequency: models.FrequencyAsNeeded}))
	assert.Equal(t, []string{"07:15"}, MedicationTimes(models.Medication{
		Frequency:      models.FrequencyCustom,
		CustomSchedule: []string{"07:15"},
	}))
}

func TestAppointmentReminderAt(t *testing.T) {
	a := models.Appointment{ID: "a1", Date: "2025-01-10", Time: "14:30", ReminderEnabled: true, ReminderMinutes: 60}

	got, ok, err := AppointmentReminderAt(a, time.UTC)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ts(t, "2025-01-10 13:30"), got)

	a.ReminderEnabled = false
	_, ok, err = AppointmentReminderAt(a, time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)

	a.ReminderEnabled = true
	a.Date = "not-a-date"
	_, _, err = AppointmentReminderAt(a, time.UTC)
	assert.Error(t, err)
}

func TestNextDaily(t *testing.T) {
	now := ts(t, "2025-01-10 10:00")

	got, err := NextDaily("09:00", now)
	require.NoError(t, err)
	assert.Equal(t, ts(t, "2025-01-11 09:00"), got)

	got, err = NextDaily("10:00", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = NextDaily("18:45", now)
	require.NoError(t, err)
	assert.Equal(t, ts(t, "2025-01-10 18:45"), got)

	_, err = NextDaily("25:00", now)
	assert.Error(t, err)
}

func TestUpcoming(t *testing.T) {
	store := newFakeStore()
	store.appointments = []models.Appointment{
		{ID: "a1", Title: "Ultrasound", Date: "2025-01-10", Time: "14:30", Location: "Clinic", ReminderEnabled: true, ReminderMinutes: 60},
		{ID: "a2", Title: "No reminder", Date: "2025-01-10", Time: "15:00"},
	}
	store.medications = []models.Medication{
		{ID: "m1", Name: "Folic acid", Dosage: "400mcg", Frequency: models.FrequencyDaily, StartDate: "2025-01-01", ReminderEnabled: true},
		{ID: "m2", Name: "Iron", Frequency: models.FrequencyDaily, StartDate: "2025-01-01", EndDate: "2025-01-09", ReminderEnabled: true},
		{ID: "m3", Name: "Silent", Frequency: models.FrequencyDaily, StartDate: "2025-01-01"},
	}
	store.reminders = []models.Reminder{
		{ID: "r1", Title: "Stretch", Time: "20:00", Enabled: true},
		{ID: "r2", Title: "Call midwife", Time: "08:00", Date: "2025-01-11", Enabled: true, Alarm: true},
		{ID: "r3", Title: "Disabled", Time: "12:00", Enabled: false},
	}

	got, err := Upcoming(ts(t, "2025-01-10 10:00"), 24*time.Hour, store)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, Occurrence{At: ts(t, "2025-01-10 13:30"), Kind: KindAppointment, Title: "Ultrasound", Body: "at 14:30, Clinic", SourceID: "a1"}, got[0])
	assert.Equal(t, Occurrence{At: ts(t, "2025-01-10 20:00"), Kind: KindReminder, Title: "Stretch", SourceID: "r1"}, got[1])
	assert.Equal(t, Occurrence{At: ts(t, "2025-01-11 08:00"), Kind: KindReminder, Title: "Call midwife", SourceID: "r2", Alarm: true}, got[2])
	assert.Equal(t, Occurrence{At: ts(t, "2025-01-11 09:00"), Kind: KindMedication, Title: "Take Folic acid", Body: "400mcg", SourceID: "m1"}, got[3])
}

func TestUpcomingSkipsSentOneTimeReminder(t *testing.T) {
	store := newFakeStore()
	sent := ts(t, "2025-01-11 08:00")
	store.reminders = []models.Reminder{
		{ID: "r1", Title: "Call midwife", Time: "08:00", Date: "2025-01-11", Enabled: true, LastSent: &sent},
	}

	got, err := Upcoming(ts(t, "2025-01-10 10:00"), 48*time.Hour, store)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBetweenIsHalfOpen(t *testing.T) {
	store := newFakeStore()
	store.reminders = []models.Reminder{
		{ID: "r1", Title: "Start", Time: "09:00", Enabled: true},
		{ID: "r2", Title: "End", Time: "09:05", Enabled: true},
	}

	got, err := Between(ts(t, "2025-01-10 09:00"), ts(t, "2025-01-10 09:05"), store)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "End", got[0].Title)
}

func TestSnooze(t *testing.T) {
	r := models.Reminder{ID: "r1", Title: "Stretch", Note: "calves", Time: "20:00", Alarm: true}
	sent := ts(t, "2025-01-10 20:00")
	r.LastSent = &sent

	got := Snooze(r, ts(t, "2025-01-10 23:55"), 10, "r2")
	assert.Equal(t, models.Reminder{
		ID:      "r2",
		Title:   "Stretch",
		Note:    "calves",
		Time:    "00:05",
		Date:    "2025-01-11",
		Enabled: true,
		Alarm:   true,
	}, got)

	got = Snooze(r, ts(t, "2025-01-10 12:00"), 0, "r3")
	assert.Equal(t, "12:10", got.Time)
}

func TestWatcherTick(t *testing.T) {
	store := newFakeStore()
	store.reminders = []models.Reminder{{ID: "r1", Title: "Stretch", Note: "calves", Time: "20:00", Enabled: true}}
	n := &fakeNotifier{}

	now := ts(t, "2025-01-10 20:00").Add(30 * time.Second)
	w := NewWatcher(store, n, time.UTC)
	w.SetClock(func() time.Time { return now })

	sent, err := w.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []notifier.Message{{Title: "Stretch", Body: "calves"}}, n.sent)
	assert.Equal(t, ts(t, "2025-01-10 20:00"), store.marked["r1"])

	now = now.Add(time.Minute)
	sent, err = w.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, n.sent, 1)
}

func TestWatcherTickNotificationsDisabled(t *testing.T) {
	store := newFakeStore()
	store.settings.NotificationsEnabled = false
	store.reminders = []models.Reminder{{ID: "r1", Title: "Stretch", Time: "20:00", Enabled: true}}
	n := &fakeNotifier{}

	w := NewWatcher(store, n, time.UTC)
	w.SetClock(func() time.Time { return ts(t, "2025-01-10 20:00") })

	sent, err := w.Tick(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, n.sent)
	assert.Empty(t, store.marked)
}

func TestWatcherTickContinuesAfterFailure(t *testing.T) {
	store := newFakeStore()
	store.reminders = []models.Reminder{
		{ID: "r1", Title: "First", Time: "20:00", Enabled: true},
		{ID: "r2", Title: "Second", Time: "20:00", Enabled: true},
	}
	n := &fakeNotifier{fail: func(msg notifier.Message) error {
		if msg.Title == "First" {
			return errors.New("tray not running")
		}
		return nil
	}}

	w := NewWatcher(store, n, time.UTC)
	w.SetClock(func() time.Time { return ts(t, "2025-01-10 20:00") })

	sent, err := w.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.NotContains(t, store.marked, "r1")
	assert.Contains(t, store.marked, "r2")
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	w := NewWatcher(newFakeStore(), &fakeNotifier{}, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
