package alerts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
)

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders configured.")
		return nil
	}

	fmt.Printf("%-36s %-30s %-26s %-8s %-16s\n", "ID", "Title", "Schedule", "Active", "Last sent")
	fmt.Println(strings.Repeat("-", 120))

	loc := ctx.Location()
	for _, r := range reminders {
		activeStr := "Yes"
		if !r.Enabled {
			activeStr = "No"
		}
		if r.Alarm {
			activeStr += " ⏰"
		}
		lastSent := "-"
		if r.LastSent != nil {
			lastSent = r.LastSent.In(loc).Format(constants.DateFormat + " " + constants.TimeFormat)
		}

		fmt.Printf("%-36s %-30s %-26s %-8s %-16s\n",
			r.ID, cli.Truncate(r.Title, 28), r.FormatSchedule(), activeStr, lastSent)
	}

	return nil
}
