package profile

import (
	"errors"
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/storage"
)

// ResetCmd deletes the pregnancy profile. Milestones, entries and every other
// record are kept.
type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	_, err := ctx.Store.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("No profile to reset.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	ok, err := cli.Confirm("Delete the pregnancy profile? Other records are kept.", c.Yes)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteProfile(); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	fmt.Println("✓ Profile deleted")
	return nil
}
