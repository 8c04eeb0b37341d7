package alerts

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/reminders"
)

type ReminderSnoozeCmd struct {
	ID      string `arg:"" help:"Reminder ID to snooze."`
	Minutes int    `help:"Minutes until the reminder repeats (default 10)."`
}

func (c *ReminderSnoozeCmd) Run(ctx *cli.Context) error {
	if c.Minutes < 0 || c.Minutes > 24*60 {
		return fmt.Errorf("minutes must be between 1 and %d", 24*60)
	}

	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("reminder not found: %w", err)
	}

	snoozed := reminders.Snooze(r, ctx.Today(), c.Minutes, cli.NewID())
	snoozed.CreatedAt = ctx.Clock()
	if err := ctx.Store.AddReminder(snoozed); err != nil {
		return fmt.Errorf("failed to add snoozed reminder: %w", err)
	}

	fmt.Printf("✓ Snoozed %s until %s %s\n", r.Title, snoozed.Date, snoozed.Time)
	return nil
}
