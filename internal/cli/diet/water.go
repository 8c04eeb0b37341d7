package diet

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/render"
)

type WaterCmd struct {
	Amount int    `arg:"" optional:"" help:"Amount to log in ml. Omit to show the total."`
	Date   string `help:"Day to log for." default:"today"`
}

func (c *WaterCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	if c.Amount != 0 {
		log := models.WaterLog{ID: cli.NewID(), Date: date, AmountMl: c.Amount, Timestamp: ctx.Clock()}
		if err := ctx.Store.AddWaterLog(log); err != nil {
			return fmt.Errorf("failed to log water: %w", err)
		}
		fmt.Printf("✓ Logged %d ml\n", c.Amount)
	}

	total, err := ctx.Store.GetWaterTotal(date)
	if err != nil {
		return fmt.Errorf("failed to get water total: %w", err)
	}

	goal := waterGoal(ctx)
	if goal <= 0 {
		fmt.Printf("%s %d ml on %s\n", render.Label("Water"), total, date)
		return nil
	}
	percent := min(float64(total)/float64(goal)*100, 100)
	fmt.Printf("%s %d / %d ml on %s\n", render.Label("Water"), total, goal, date)
	fmt.Println(render.ProgressBar(percent, render.DefaultBarWidth))
	return nil
}
