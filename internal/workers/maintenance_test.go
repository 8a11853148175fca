package workers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"borderwatch/internal/workers"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshCache(context.Context) (int64, error) {
	r.calls.Add(1)
	return 1, r.err
}

type countingSweeper struct{ calls atomic.Int32 }

func (s *countingSweeper) Sweep(context.Context) int {
	s.calls.Add(1)
	return 0
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func runFor(t *testing.T, w *workers.Maintenance, d time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(d + time.Second):
		t.Fatalf("worker did not stop after context cancellation")
	}
}

func TestMaintenance_RunsBothJobs(t *testing.T) {
	t.Parallel()

	alerts := &countingRefresher{}
	sessions := &countingSweeper{}

	runFor(t, workers.NewMaintenance(alerts, sessions, 5*time.Millisecond, newTestLogger()), 60*time.Millisecond)

	if alerts.calls.Load() == 0 {
		t.Fatalf("expected alert refresh to run")
	}
	if sessions.calls.Load() == 0 {
		t.Fatalf("expected session sweep to run")
	}
}

func TestMaintenance_KeepsRunningAfterError(t *testing.T) {
	t.Parallel()

	alerts := &countingRefresher{err: errors.New("db down")}

	runFor(t, workers.NewMaintenance(alerts, nil, 5*time.Millisecond, newTestLogger()), 60*time.Millisecond)

	if got := alerts.calls.Load(); got < 2 {
		t.Fatalf("expected repeated refresh attempts, got %d", got)
	}
}
