package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"borderwatch/internal/config"
	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

const (
	webhookMaxRetries = 3
	webhookPopTimeout = 5 * time.Second
)

// WebhookSender drains the urgent report queue into the control-room webhook.
type WebhookSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   WebhookSource
	http    *http.Client
	backoff time.Duration
	pop     time.Duration
}

type WebhookOption func(*WebhookSender)

func WithWebhookHTTPClient(hc *http.Client) WebhookOption {
	return func(s *WebhookSender) { s.http = hc }
}

// WithWebhookBackoff sets the base delay between attempts; attempt n waits n*d.
func WithWebhookBackoff(d time.Duration) WebhookOption {
	return func(s *WebhookSender) { s.backoff = d }
}

func WithWebhookPopTimeout(d time.Duration) WebhookOption {
	return func(s *WebhookSender) { s.pop = d }
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, q WebhookSource, opts ...WebhookOption) *WebhookSender {
	s := &WebhookSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: 5 * time.Second},
		backoff: time.Second,
		pop:     webhookPopTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WebhookSender) Run(ctx context.Context) {
	s.logger.Info("webhook sender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhook sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, s.pop)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			if errors.Is(err, e.ErrInvalidInput) {
				s.logger.Warn("skipping malformed webhook payload", slog.Any("error", err))
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			sleep(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Info("sending webhook", slog.String("report_id", payload.ReportID.String()))
		if err := s.send(ctx, payload); err != nil {
			s.logger.Error("webhook dropped",
				slog.String("report_id", payload.ReportID.String()),
				slog.Any("error", err),
			)
		}
	}
}

func (s *WebhookSender) send(ctx context.Context, p domain.WebhookPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= webhookMaxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return nil
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		var reason string
		if err != nil {
			reason = err.Error()
			lastErr = err
		} else {
			reason = resp.Status
			lastErr = errors.New(resp.Status)
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < webhookMaxRetries {
			sleep(ctx, time.Duration(attempt)*s.backoff)
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
