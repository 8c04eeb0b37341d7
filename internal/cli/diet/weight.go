package diet

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
)

type WeightCmd struct {
	Weight float64 `arg:"" optional:"" help:"Weight to record, in the unit from settings. Omit to list."`
	Date   string  `help:"Day to record for. An existing entry for the day is replaced." default:"today"`
	Note   string  `help:"Note."`
	Delete bool    `help:"Delete the entry for --date instead."`
}

func (c *WeightCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	unit := "kg"
	if settings, err := ctx.Store.GetSettings(); err == nil {
		unit = settings.WeightUnit
	}

	switch {
	case c.Delete:
		if err := ctx.Store.DeleteWeightLog(date); err != nil {
			return fmt.Errorf("failed to delete weight log: %w", err)
		}
		fmt.Printf("✓ Weight entry deleted for %s\n", date)
		return nil
	case c.Weight != 0:
		log := models.WeightLog{ID: cli.NewID(), Date: date, Weight: c.Weight, Note: c.Note}
		if err := ctx.Store.SaveWeightLog(log); err != nil {
			return fmt.Errorf("failed to save weight: %w", err)
		}
		fmt.Printf("✓ Recorded %.1f %s on %s\n", c.Weight, unit, date)
		return nil
	}

	logs, err := ctx.Store.GetWeightLogs()
	if err != nil {
		return fmt.Errorf("failed to get weight logs: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No weight recorded yet.")
		return nil
	}

	first := logs[0].Weight
	for _, w := range logs {
		line := fmt.Sprintf("%s  %6.1f %s  %+6.1f", w.Date, w.Weight, unit, w.Weight-first)
		if week := ctx.WeekOn(w.Date); week > 0 {
			line += fmt.Sprintf("  week %d", week)
		}
		if w.Note != "" {
			line += "  " + w.Note
		}
		fmt.Println(line)
	}
	return nil
}
