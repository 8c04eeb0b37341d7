package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/notifier"
	"github.com/julianstephens/bump/internal/reminders"
)

// NotifyCmd delivers whatever came due in the last minute. It is meant to
// be run from cron or by the tray app; 'reminder watch' is the long-running
// alternative.
type NotifyCmd struct {
	DryRun  bool   `help:"Print notifications to stdout instead of sending them."`
	Message string `help:"Send this message instead of checking reminders."`
	Alarm   bool   `help:"Mark an explicit --message as an alarm."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	n := ctx.Notifier(c.DryRun)

	if c.Message != "" {
		err := n.Notify(context.Background(), notifier.Message{Title: c.Message, Alarm: c.Alarm})
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			return fmt.Errorf("%w (use --dry-run to print instead)", err)
		}
		return err
	}

	w := reminders.NewWatcher(ctx.Store, n, ctx.Location())
	w.SetClock(ctx.Clock)
	sent, err := w.Tick(context.Background())
	if err != nil {
		return err
	}
	if c.DryRun && sent == 0 {
		fmt.Println("Nothing due.")
	}
	return nil
}
