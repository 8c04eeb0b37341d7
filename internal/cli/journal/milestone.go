package journal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/models"
)

type MilestoneCmd struct {
	Add    MilestoneAddCmd    `cmd:"" help:"Record a milestone."`
	List   MilestoneListCmd   `cmd:"" help:"List milestones." default:"1"`
	Delete MilestoneDeleteCmd `cmd:"" help:"Delete a milestone."`
}

type MilestoneAddCmd struct {
	Title string `arg:"" help:"Milestone title."`
	Type  string `help:"Milestone type." enum:"first_test,hospital_visit,ultrasound,custom" default:"custom"`
	Date  string `help:"Date of the milestone (YYYY-MM-DD, today or yesterday)." default:"today"`
	Notes string `help:"Notes."`
}

func (c *MilestoneAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	m := models.Milestone{
		ID:        cli.NewID(),
		Type:      models.MilestoneType(c.Type),
		Title:     c.Title,
		Date:      date,
		Notes:     c.Notes,
		Week:      ctx.WeekOn(date),
		CreatedAt: ctx.Clock(),
	}
	if err := ctx.Store.AddMilestone(m); err != nil {
		return fmt.Errorf("failed to add milestone: %w", err)
	}

	fmt.Printf("✓ Milestone added: %s on %s", m.Title, m.Date)
	if m.Week > 0 {
		fmt.Printf(" (week %d)", m.Week)
	}
	fmt.Println()
	return nil
}

type MilestoneListCmd struct{}

func (c *MilestoneListCmd) Run(ctx *cli.Context) error {
	milestones, err := ctx.Store.GetAllMilestones()
	if err != nil {
		return fmt.Errorf("failed to get milestones: %w", err)
	}

	if len(milestones) == 0 {
		fmt.Println("No milestones recorded.")
		return nil
	}

	sort.SliceStable(milestones, func(i, j int) bool {
		return milestones[i].Date < milestones[j].Date
	})

	fmt.Printf("%-36s %-10s %-5s %-15s %-30s\n", "ID", "Date", "Week", "Type", "Title")
	fmt.Println(strings.Repeat("-", 100))
	for _, m := range milestones {
		week := "-"
		if m.Week > 0 {
			week = fmt.Sprint(m.Week)
		}
		fmt.Printf("%-36s %-10s %-5s %-15s %-30s\n", m.ID, m.Date, week, m.Type.Label(), cli.Truncate(m.Title, 30))
	}
	return nil
}

type MilestoneDeleteCmd struct {
	ID string `arg:"" help:"Milestone ID to delete."`
}

func (c *MilestoneDeleteCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Store.GetMilestone(c.ID)
	if err != nil {
		return fmt.Errorf("milestone not found: %w", err)
	}

	if err := ctx.Store.DeleteMilestone(c.ID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}

	fmt.Printf("✓ Milestone deleted: %s on %s\n", m.Title, m.Date)
	return nil
}
