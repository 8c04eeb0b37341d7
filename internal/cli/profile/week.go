package profile

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/render"
)

const maxWeek = 52

// WeekCmd shows the calendar range of a pregnancy week and what was recorded
// in it. With neither argument nor --date it shows the current week.
type WeekCmd struct {
	Week int    `arg:"" optional:"" help:"Pregnancy week number, starting at 1."`
	Date string `help:"Show the week containing this date instead."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	today := ctx.Today()

	week := c.Week
	switch {
	case c.Date != "":
		date, err := cli.ParseDate(c.Date, today)
		if err != nil {
			return err
		}
		d, err := pregnancy.ParseDate(date)
		if err != nil {
			return err
		}
		week = pregnancy.WeekOf(p.Reference, d)
		if week == 0 {
			return fmt.Errorf("%s is before the LMP (%s)", date, pregnancy.LMP(p.Reference).Format(constants.DateFormat))
		}
	case week == 0:
		week = pregnancy.WeekOf(p.Reference, today)
		if week == 0 {
			return fmt.Errorf("today is before the LMP (%s)", pregnancy.LMP(p.Reference).Format(constants.DateFormat))
		}
	}
	if week < 1 || week > maxWeek {
		return fmt.Errorf("week must be between 1 and %d", maxWeek)
	}

	start, end := pregnancy.WeekRange(p.Reference, week)
	fmt.Println(render.Title(fmt.Sprintf("Week %d", week)))
	fmt.Printf("%s %s (trimester %d)\n", render.Label("Dates"), pregnancy.FormatWeekRange(start, end), pregnancy.Trimester(week-1))

	from, to := start.Format(constants.DateFormat), end.Format(constants.DateFormat)

	milestones, err := ctx.Store.GetAllMilestones()
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}
	for _, m := range milestones {
		if m.Date >= from && m.Date <= to {
			fmt.Printf("  ★ %s  %s (%s)\n", m.Date, m.Title, m.Type.Label())
		}
	}

	entries, err := ctx.Store.GetCalendarEntries(from, to)
	if err != nil {
		return fmt.Errorf("failed to get calendar entries: %w", err)
	}
	for _, e := range entries {
		fmt.Printf("  • %s  %s\n", e.Date, cli.Truncate(e.Notes, 60))
	}
	return nil
}
