package alerts

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
)

type ReminderAddCmd struct {
	Title string `arg:"" help:"Reminder title."`
	Time  string `help:"Time for the reminder (HH:MM)." required:""`
	Date  string `help:"Date for a one-time reminder (YYYY-MM-DD, today or tomorrow). Omit for daily."`
	Note  string `help:"Extra text shown with the notification."`
	Alarm bool   `help:"Deliver as an alarm."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if _, err := cli.ParseTime(c.Time); err != nil {
		return err
	}

	r := models.Reminder{
		ID:        cli.NewID(),
		Title:     c.Title,
		Note:      c.Note,
		Time:      c.Time,
		Enabled:   true,
		Alarm:     c.Alarm,
		CreatedAt: ctx.Clock(),
	}
	if c.Date != "" {
		date, err := cli.ParseDate(c.Date, ctx.Today())
		if err != nil {
			return err
		}
		r.Date = date
	}

	if err := ctx.Store.AddReminder(r); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}

	fmt.Printf("✓ Reminder added: %s (%s)\n", r.Title, r.FormatSchedule())
	return nil
}
