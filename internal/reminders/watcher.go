package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/julianstephens/bump/internal/constants"
	"github.com/julianstephens/bump/internal/logger"
	"github.com/julianstephens/bump/internal/models"
	"github.com/julianstephens/bump/internal/notifier"
)

// Notifier delivers a single message.
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message) error
}

// Store is what the watcher reads and updates.
type Store interface {
	Source
	GetSettings() (models.Settings, error)
	MarkReminderSent(id string, at time.Time) error
}

// Watcher checks for due reminders once a minute and hands them to a Notifier.
type Watcher struct {
	store    Store
	notifier Notifier
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	lastTick time.Time
}

func NewWatcher(store Store, n Notifier, loc *time.Location) *Watcher {
	if loc == nil {
		loc = time.Local
	}
	return &Watcher{
		store:    store,
		notifier: n,
		loc:      loc,
		now:      time.Now,
	}
}

func (w *Watcher) SetClock(now func() time.Time) {
	w.now = now
}

// Tick delivers every occurrence due since the previous tick and returns how
// many were sent. The first tick looks back one watch interval.
func (w *Watcher) Tick(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now().In(w.loc)
	from := w.lastTick
	if from.IsZero() {
		from = now.Add(-constants.WatchInterval)
	}

	settings, err := w.store.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		w.lastTick = now
		return 0, nil
	}

	due, err := Between(from, now, w.store)
	if err != nil {
		return 0, err
	}
	w.lastTick = now

	sent := 0
	for _, occ := range due {
		msg := notifier.Message{Title: occ.Title, Body: occ.Body, Alarm: occ.Alarm}
		if err := w.notifier.Notify(ctx, msg); err != nil {
			logger.For("watcher").Warn("Failed to deliver reminder", "kind", occ.Kind, "id", occ.SourceID, "error", err)
			continue
		}
		sent++
		if occ.Kind == KindReminder {
			if err := w.store.MarkReminderSent(occ.SourceID, occ.At); err != nil {
				logger.For("watcher").Warn("Failed to record reminder delivery", "id", occ.SourceID, "error", err)
			}
		}
	}
	return sent, nil
}

// Run ticks every watch interval until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	s := gocron.NewScheduler(w.loc)
	s.SingletonModeAll()

	_, err := s.Every(constants.WatchInterval).Do(func() {
		n, err := w.Tick(ctx)
		if err != nil {
			logger.For("watcher").Error("Reminder check failed", "error", err)
			return
		}
		if n > 0 {
			logger.For("watcher").Info("Delivered reminders", "count", n)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder watcher: %w", err)
	}

	s.StartAsync()
	logger.For("watcher").Debug("Reminder watcher started", "interval", constants.WatchInterval)
	<-ctx.Done()
	s.Stop()
	logger.For("watcher").Debug("Reminder watcher stopped")
	return nil
}
