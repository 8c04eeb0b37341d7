package alerts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/bump/internal/cli"
	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/logger"
	"github.com/julianstephens/bump/internal/reminders"
)

type ReminderWatchCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *ReminderWatchCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := reminders.NewWatcher(ctx.Store, ctx.Notifier(c.DryRun), ctx.Location())
	fmt.Printf("Watching reminders every %s. Press Ctrl+C to stop.\n", constants.WatchInterval)
	logger.Info("Reminder watcher started", "dry_run", c.DryRun)

	err := w.Run(runCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Reminder watcher stopped")
	return nil
}
