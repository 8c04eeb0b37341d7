package care

import (
	"fmt"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/reminders"
)

type MedicationCmd struct {
	Add    MedicationAddCmd    `cmd:"" help:"Add a medication or supplement."`
	List   MedicationListCmd   `cmd:"" help:"List medications." default:"1"`
	Delete MedicationDeleteCmd `cmd:"" help:"Delete a medication."`
}

type MedicationAddCmd struct {
	Name       string   `arg:"" help:"Medication name."`
	Dosage     string   `help:"Dosage, e.g. 400mcg."`
	Frequency  string   `help:"How often it is taken." enum:"daily,twice_daily,three_times_daily,as_needed,custom" default:"daily"`
	At         []string `help:"Times for a custom schedule (HH:MM). Repeatable."`
	Start      string   `help:"First day (YYYY-MM-DD)." default:"today"`
	End        string   `help:"Last day (YYYY-MM-DD)."`
	Notes      string   `help:"Notes."`
	NoReminder bool     `help:"Do not send reminders."`
}

func (c *MedicationAddCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	start, err := cli.ParseDate(c.Start, today)
	if err != nil {
		return err
	}
	var end string
	if c.End != "" {
		if end, err = cli.ParseDate(c.End, today); err != nil {
			return err
		}
		if end < start {
			return fmt.Errorf("end date %s is before start date %s", end, start)
		}
	}

	freq := models.Frequency(c.Frequency)
	if len(c.At) > 0 && freq != models.FrequencyCustom {
		return fmt.Errorf("--at only applies to --frequency custom")
	}

	m := models.Medication{
		ID:              cli.NewID(),
		Name:            c.Name,
		Dosage:          c.Dosage,
		Frequency:       freq,
		CustomSchedule:  c.At,
		StartDate:       start,
		EndDate:         end,
		ReminderEnabled: !c.NoReminder,
		Notes:           c.Notes,
		CreatedAt:       ctx.Clock(),
	}
	if err := ctx.Store.AddMedication(m); err != nil {
		return fmt.Errorf("failed to add medication: %w", err)
	}

	fmt.Printf("✓ Medication added: %s (%s)\n", m.Name, schedule(m))
	return nil
}

func schedule(m models.Medication) string {
	times := reminders.MedicationTimes(m)
	if len(times) == 0 {
		return "as needed"
	}
	return strings.Join(times, ", ")
}

type MedicationListCmd struct {
	All bool `help:"Include medications that have ended."`
}

func (c *MedicationListCmd) Run(ctx *cli.Context) error {
	medications, err := ctx.Store.GetAllMedications()
	if err != nil {
		return fmt.Errorf("failed to get medications: %w", err)
	}

	today := ctx.Today()
	var shown []models.Medication
	for _, m := range medications {
		if c.All || m.ActiveOn(today) {
			shown = append(shown, m)
		}
	}
	if len(shown) == 0 {
		fmt.Println("No active medications.")
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-22s %-10s %-10s\n", "ID", "Name", "Dosage", "Schedule", "Start", "End")
	fmt.Println(strings.Repeat("-", 115))
	for _, m := range shown {
		end := m.EndDate
		if end == "" {
			end = "-"
		}
		fmt.Printf("%-36s %-20s %-10s %-22s %-10s %-10s\n",
			m.ID, cli.Truncate(m.Name, 20), cli.Truncate(m.Dosage, 10), cli.Truncate(schedule(m), 22), m.StartDate, end)
	}
	return nil
}

type MedicationDeleteCmd struct {
	ID string `arg:"" help:"Medication ID to delete."`
}

func (c *MedicationDeleteCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Store.GetMedication(c.ID)
	if err != nil {
		return fmt.Errorf("medication not found: %w", err)
	}
	if err := ctx.Store.DeleteMedication(c.ID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	fmt.Printf("✓ Medication deleted: %s\n", m.Name)
	return nil
}
