package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/export"
)

type ExportCmd struct {
	Out    string `short:"o" help:"File to write. Omit to write YAML to stdout."`
	Format string `short:"f" help:"Export format (yaml, xlsx). Inferred from the output extension when omitted."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	name := c.Format
	if name == "" && c.Out == "" {
		name = string(export.FormatYAML)
	}
	format, err := export.ParseFormat(name, c.Out)
	if err != nil {
		return err
	}

	snap, err := export.Collect(ctx.Store, ctx.Clock())
	if err != nil {
		return err
	}

	if c.Out == "" {
		if format == export.FormatXLSX {
			return fmt.Errorf("xlsx export needs --output")
		}
		return export.Write(os.Stdout, format, snap)
	}

	if err := export.WriteFile(c.Out, format, snap); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %s to %s\n", format, c.Out)
	return nil
}
