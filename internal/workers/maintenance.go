package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type AlertRefresher interface {
	RefreshCache(ctx context.Context) (int64, error)
}

type SessionSweeper interface {
	Sweep(ctx context.Context) int
}

// Maintenance periodically expires alerts, refreshes the active alert cache
// and evicts stale location sessions. Each job runs on its own goroutine so
// a slow database never delays the sweep.
type Maintenance struct {
	alerts   AlertRefresher
	sessions SessionSweeper
	interval time.Duration
	logger   *slog.Logger
}

// NewMaintenance builds the worker. sessions may be nil when locations never
// expire.
func NewMaintenance(alerts AlertRefresher, sessions SessionSweeper, interval time.Duration, logger *slog.Logger) *Maintenance {
	return &Maintenance{
		alerts:   alerts,
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (w *Maintenance) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.every(ctx, w.refreshAlerts)
	}()

	if w.sessions != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.every(ctx, w.sweepSessions)
		}()
	}

	wg.Wait()
	w.logger.Info("maintenance worker stopped")
}

func (w *Maintenance) every(ctx context.Context, job func(context.Context)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}

func (w *Maintenance) refreshAlerts(ctx context.Context) {
	expired, err := w.alerts.RefreshCache(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("alert refresh failed", slog.Any("error", err))
		}
		return
	}
	if expired > 0 {
		w.logger.Info("alerts expired", slog.Int64("count", expired))
	}
}

func (w *Maintenance) sweepSessions(ctx context.Context) {
	if n := w.sessions.Sweep(ctx); n > 0 {
		w.logger.Debug("location sessions evicted", slog.Int("count", n))
	}
}
