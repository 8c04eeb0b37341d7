package alerts

import (
	"fmt"
	"time"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/reminders"
)

type ReminderUpcomingCmd struct {
	Hours int `help:"How far ahead to look." default:"24"`
}

func (c *ReminderUpcomingCmd) Run(ctx *cli.Context) error {
	hours := c.Hours
	if hours <= 0 {
		hours = constants.DefaultUpcomingHours
	}

	due, err := reminders.Upcoming(ctx.Today(), time.Duration(hours)*time.Hour, ctx.Store)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		fmt.Printf("Nothing due in the next %d hours.\n", hours)
		return nil
	}

	lastDay := ""
	for _, o := range due {
		day := o.At.Format("Mon Jan 2")
		if day != lastDay {
			fmt.Println(day)
			lastDay = day
		}
		line := fmt.Sprintf("  %s  %-12s %s", o.At.Format(constants.TimeFormat), o.Kind, o.Title)
		if o.Body != "" {
			line += " (" + o.Body + ")"
		}
		fmt.Println(line)
	}
	return nil
}
