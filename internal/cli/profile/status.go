package profile

import (
	"fmt"
	"sort"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/render"
)

type StatusCmd struct {
	Width int    `help:"Progress bar width." default:"30"`
	At    string `help:"Show progress as of this date instead of today."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}

	at := ctx.Today()
	if c.At != "" {
		date, err := cli.ParseDate(c.At, at)
		if err != nil {
			return err
		}
		if at, err = pregnancy.ParseDate(date); err != nil {
			return err
		}
	}

	status := p.Status(at)
	fmt.Println(render.Status(render.StatusView{Name: p.DisplayName(), Status: status}, c.Width))

	if week := pregnancy.WeekOf(p.Reference, at); week > 0 {
		start, end := pregnancy.WeekRange(p.Reference, week)
		fmt.Printf("%s %d (%s)\n", render.Label("Week"), week, pregnancy.FormatWeekRange(start, end))
	}

	next, err := nextAppointment(ctx, at.Format(constants.DateFormat))
	if err != nil {
		return err
	}
	if next != "" {
		fmt.Printf("%s %s\n", render.Label("Next appointment"), next)
	}
	return nil
}

// nextAppointment describes the earliest appointment on or after today.
func nextAppointment(ctx *cli.Context, today string) (string, error) {
	appointments, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return "", fmt.Errorf("failed to get appointments: %w", err)
	}
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].Time < appointments[j].Time
	})
	for _, a := range appointments {
		if a.Date >= today {
			return fmt.Sprintf("%s on %s at %s", a.Title, a.Date, a.Time), nil
		}
	}
	return "", nil
}
