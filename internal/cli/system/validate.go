package system

import (
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when any conflict is found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	profile, records, err := validation.Collect(ctx.Store)
	if err != nil {
		return err
	}

	result := validation.New().ValidateRecords(profile, records, ctx.Clock())
	fmt.Print(result.FormatReport())
	if !result.HasConflicts() {
		fmt.Println()
		return nil
	}

	if c.Strict {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
