package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/storage/sqlite"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "bump.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	settings.WaterGoalMl = 2500
	require.NoError(t, store.SaveSettings(settings))

	require.NoError(t, store.SaveProfile(models.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Reference: pregnancy.ReferencePoint{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Weeks: 12},
	}))
	require.NoError(t, store.AddMilestone(models.Milestone{
		ID: "m1", Type: models.MilestoneUltrasound, Title: "Dating scan", Date: "2025-01-10", Week: 12,
	}))
	require.NoError(t, store.AddAppointment(models.Appointment{
		ID: "a1", Title: "Midwife", Date: "2025-03-05", Time: "10:30", Location: "Clinic",
	}))
	require.NoError(t, store.SaveWeightLog(models.WeightLog{ID: "w1", Date: "2025-02-01", Weight: 62.5}))
	for i, amount := range []int{250, 500, 300} {
		date := "2025-02-01"
		if i == 2 {
			date = "2025-02-02"
		}
		require.NoError(t, store.AddWaterLog(models.WaterLog{
			ID:        "water" + string(rune('a'+i)),
			Date:      date,
			AmountMl:  amount,
			Timestamp: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	return store
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       Format
		wantErr    bool
	}{
		{name: "yaml", want: FormatYAML},
		{name: "YML", want: FormatYAML},
		{name: "xlsx", want: FormatXLSX},
		{path: "out/bump.xlsx", want: FormatXLSX},
		{path: "bump.yaml", want: FormatYAML},
		{name: "csv", wantErr: true},
		{path: "bump", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name, tt.path)
		if tt.wantErr {
			assert.Error(t, err, "ParseFormat(%q, %q)", tt.name, tt.path)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCollect(t *testing.T) {
	snap, err := Collect(seededStore(t), now)
	require.NoError(t, err)

	require.NotNil(t, snap.Profile)
	require.NotNil(t, snap.Status)
	assert.Equal(t, "Ada Lovelace", snap.Profile.DisplayName())
	assert.Equal(t, 19, snap.Status.Weeks)
	assert.Equal(t, 1, snap.Status.Days)
	assert.Equal(t, "2025-07-25", snap.Status.DueDate)
	assert.Len(t, snap.Milestones, 1)
	assert.Len(t, snap.Appointments, 1)
	assert.Len(t, snap.WaterLogs, 3)
	assert.Empty(t, snap.Reminders)
}

func TestCollectWithoutProfile(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "bump.db"))
	require.NoError(t, store.Init())
	defer store.Close()

	snap, err := Collect(store, now)
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
	assert.Nil(t, snap.Status)
}

func TestWriteXLSX(t *testing.T) {
	snap, err := Collect(seededStore(t), now)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "exports", "bump.xlsx")
	require.NoError(t, WriteFile(path, FormatXLSX, snap))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, Sheets, f.GetSheetList())

	profile, err := f.GetRows("Profile")
	require.NoError(t, err)
	assert.Contains(t, profile, []string{"Name", "Ada Lovelace"})
	assert.Contains(t, profile, []string{"Due date", "2025-07-25"})
	assert.Contains(t, profile, []string{"Trimester", "2"})

	milestones, err := f.GetRows("Milestones")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Week", "Type", "Title", "Notes"},
		{"2025-01-10", "12", "Ultrasound", "Dating scan"},
	}, milestones)

	weight, err := f.GetRows("Weight")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Weight (kg)", "Note"},
		{"2025-02-01", "62.5"},
	}, weight)

	water, err := f.GetRows("Water")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Total (ml)", "Goal (ml)"},
		{"2025-02-01", "750", "2500"},
		{"2025-02-02", "300", "2500"},
	}, water)
}

func TestWriteYAML(t *testing.T) {
	snap, err := Collect(seededStore(t), now)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, snap))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "version: "), "unexpected document start: %q", out[:20])
	assert.Contains(t, out, "reference_date: 2025-01-10T00:00:00Z")
	assert.Contains(t, out, "due_date: \"2025-07-25\"")

	back, err := ReadYAML(&buf)
	require.NoError(t, err)
	require.NotNil(t, back.Profile)
	assert.Equal(t, snap.Profile.Reference.Date, back.Profile.Reference.Date)
	assert.Equal(t, snap.Milestones[0].Title, back.Milestones[0].Title)
	assert.Equal(t, snap.Settings, back.Settings)
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("csv"), Snapshot{}))
}
