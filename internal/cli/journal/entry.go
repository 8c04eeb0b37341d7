package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/render"
	"github.com/julianstephens/bump/internal/storage"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Add notes or activities to a day."`
	Show   EntryShowCmd   `cmd:"" help:"Show the entry for a day."`
	List   EntryListCmd   `cmd:"" help:"List entries in a date range." default:"1"`
	Delete EntryDeleteCmd `cmd:"" help:"Delete the entry for a day."`
}

type EntryAddCmd struct {
	Date       string   `arg:"" optional:"" help:"Day to write to (YYYY-MM-DD, today or yesterday)." default:"today"`
	Notes      string   `help:"Notes for the day. Replaces existing notes."`
	Activities []string `name:"activity" short:"a" help:"Activity as type:description[@HH:MM]. Types: exercise, note, symptom, mood, custom. Repeatable."`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	if c.Notes == "" && len(c.Activities) == 0 {
		return errors.New("nothing to add: pass --notes or --activity")
	}

	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetCalendarEntry(date)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		entry = models.CalendarEntry{ID: cli.NewID(), Date: date, CreatedAt: ctx.Clock()}
	case err != nil:
		return fmt.Errorf("failed to get entry: %w", err)
	}

	if c.Notes != "" {
		entry.Notes = c.Notes
	}
	for _, raw := range c.Activities {
		a, err := ParseActivity(raw)
		if err != nil {
			return err
		}
		a.ID = cli.NewID()
		entry.Activities = append(entry.Activities, a)
	}

	if err := ctx.Store.SaveCalendarEntry(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("✓ Entry saved for %s (%d activities)\n", entry.Date, len(entry.Activities))
	return nil
}

// ParseActivity reads "type:description" with an optional "@HH:MM" suffix.
func ParseActivity(raw string) (models.Activity, error) {
	kind, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return models.Activity{}, fmt.Errorf("invalid activity %q (expected type:description)", raw)
	}
	a := models.Activity{Type: models.ActivityType(strings.ToLower(strings.TrimSpace(kind)))}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		t, err := cli.ParseTime(strings.TrimSpace(rest[i+1:]))
		if err != nil {
			return models.Activity{}, err
		}
		a.Time = t
		rest = rest[:i]
	}
	a.Description = strings.TrimSpace(rest)
	if err := a.Validate(); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

type EntryShowCmd struct {
	Date string `arg:"" optional:"" help:"Day to show." default:"today"`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetCalendarEntry(date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No entry for %s.\n", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	title := entry.Date
	if week := ctx.WeekOn(entry.Date); week > 0 {
		title += fmt.Sprintf(" (week %d)", week)
	}
	fmt.Println(render.Title(title))
	if entry.Notes != "" {
		fmt.Println(entry.Notes)
	}
	for _, a := range entry.Activities {
		when := "     "
		if a.Time != "" {
			when = a.Time
		}
		fmt.Printf("  %s  %-8s %s\n", when, a.Type, a.Description)
	}
	return nil
}

type EntryListCmd struct {
	From string `help:"First day (default 30 days ago)."`
	To   string `help:"Last day (default today)."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	from := today.AddDate(0, 0, -30).Format(constants.DateFormat)
	to := today.Format(constants.DateFormat)
	var err error
	if c.From != "" {
		if from, err = cli.ParseDate(c.From, today); err != nil {
			return err
		}
	}
	if c.To != "" {
		if to, err = cli.ParseDate(c.To, today); err != nil {
			return err
		}
	}
	if from > to {
		return fmt.Errorf("--from (%s) is after --to (%s)", from, to)
	}

	entries, err := ctx.Store.GetCalendarEntries(from, to)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No entries between %s and %s.\n", from, to)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-14s %s\n", e.Date, render.Plural(len(e.Activities), "item"), cli.Truncate(e.Notes, 60))
	}
	return nil
}

type EntryDeleteCmd struct {
	Date string `arg:"" help:"Day whose entry to delete."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	if _, err := ctx.Store.GetCalendarEntry(date); err != nil {
		return fmt.Errorf("entry not found: %w", err)
	}
	if err := ctx.Store.DeleteCalendarEntry(date); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Printf("✓ Entry deleted for %s\n", date)
	return nil
}
