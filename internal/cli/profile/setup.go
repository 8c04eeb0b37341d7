package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/pregnancy"
	"github.com/julianstephens/bump/internal/render"
	"github.com/julianstephens/bump/internal/storage"
)

// SetupCmd records the pregnancy reference point. Without --weeks it opens an
// interactive form.
type SetupCmd struct {
	Date      string `help:"Date the progress was known on (YYYY-MM-DD, today or yesterday)." default:"today"`
	Weeks     *int   `help:"Completed weeks on --date (0-42)."`
	Days      int    `help:"Days into the current week on --date (0-6)."`
	FirstName string `help:"First name."`
	LastName  string `help:"Last name."`
}

func (c *SetupCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Store.GetProfile()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	today := ctx.Today()
	var p models.Profile
	if c.Weeks == nil {
		p, err = promptProfile(existing, today.Format(constants.DateFormat))
		if err != nil {
			return err
		}
	} else {
		p = models.Profile{FirstName: c.FirstName, LastName: c.LastName}
		if p.FirstName == "" && p.LastName == "" {
			p.FirstName, p.LastName = existing.FirstName, existing.LastName
		}
		date, err := cli.ParseDate(c.Date, today)
		if err != nil {
			return err
		}
		rp, err := pregnancy.NewReferencePoint(pregnancy.Candidate{ReferenceDate: date, Weeks: *c.Weeks, Days: c.Days}, today)
		if err != nil {
			return err
		}
		p.Reference = rp
	}
	p.CreatedAt = existing.CreatedAt

	if err := ctx.Store.SaveProfile(p); err != nil {
		return err
	}
	n, err := refreshMilestoneWeeks(ctx.Store, p.Reference)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("Updated the week of %s\n", render.Plural(n, "milestone"))
	}

	fmt.Println(render.Success("Profile saved"))
	fmt.Printf("LMP %s, due %s\n", pregnancy.LMP(p.Reference).Format(constants.DateFormat), pregnancy.DueDate(p.Reference).Format(constants.DateFormat))
	fmt.Println(render.Status(render.StatusView{Name: p.DisplayName(), Status: p.Status(today)}, render.DefaultBarWidth))
	return nil
}

// refreshMilestoneWeeks re-derives each milestone's week from a new reference
// point and returns how many changed.
func refreshMilestoneWeeks(store storage.Provider, rp pregnancy.ReferencePoint) (int, error) {
	milestones, err := store.GetAllMilestones()
	if err != nil {
		return 0, fmt.Errorf("failed to get milestones: %w", err)
	}
	changed := 0
	for _, m := range milestones {
		d, err := pregnancy.ParseDate(m.Date)
		if err != nil {
			continue
		}
		week := pregnancy.WeekOf(rp, d)
		if week == m.Week {
			continue
		}
		m.Week = week
		if err := store.UpdateMilestone(m); err != nil {
			return changed, fmt.Errorf("failed to update milestone %s: %w", m.ID, err)
		}
		changed++
	}
	return changed, nil
}

func promptProfile(existing models.Profile, today string) (models.Profile, error) {
	p := models.Profile{FirstName: existing.FirstName, LastName: existing.LastName}
	date := today
	weeks, days := "", "0"
	if !existing.Reference.Date.IsZero() {
		date = existing.Reference.Date.Format(constants.DateFormat)
		weeks = strconv.Itoa(existing.Reference.Weeks)
		days = strconv.Itoa(existing.Reference.Days)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&p.FirstName).
				CharLimit(100),
			huh.NewInput().
				Title("Last name").
				Value(&p.LastName).
				CharLimit(100),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reference date (YYYY-MM-DD)").
				Description("A day you know how far along you were, e.g. an ultrasound.").
				Value(&date).
				Validate(func(s string) error {
					_, err := pregnancy.ParseDate(strings.TrimSpace(s))
					if err != nil {
						return errors.New("invalid date")
					}
					return nil
				}),
			huh.NewInput().
				Title("Weeks on that date").
				Value(&weeks).
				Validate(intBetween(0, pregnancy.MaxWeeks)),
			huh.NewInput().
				Title("Days on that date").
				Value(&days).
				Validate(intBetween(0, pregnancy.MaxDays)),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return p, errors.New("setup cancelled")
		}
		return p, err
	}

	w, _ := strconv.Atoi(strings.TrimSpace(weeks))
	d, _ := strconv.Atoi(strings.TrimSpace(days))
	now, _ := pregnancy.ParseDate(today)
	rp, err := pregnancy.NewReferencePoint(pregnancy.Candidate{ReferenceDate: strings.TrimSpace(date), Weeks: w, Days: d}, now)
	if err != nil {
		return p, err
	}
	p.Reference = rp
	return p, nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
