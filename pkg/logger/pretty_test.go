package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"borderwatch/pkg/logger"
)

func TestPrettyHandler_WritesMessageAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	l.With(slog.String("component", "hub")).Info("broadcast done", slog.Int("delivered", 3), slog.Any("error", errors.New("boom")))

	out := buf.String()
	for _, want := range []string{"broadcast done", `"component":"hub"`, `"delivered":3`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}
