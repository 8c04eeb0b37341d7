package alerts

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
)

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder ID to delete."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("reminder not found: %w", err)
	}

	if err := ctx.Store.DeleteReminder(c.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	fmt.Printf("✓ Reminder deleted: %s (%s)\n", r.Title, r.FormatSchedule())
	return nil
}
