// Package feed pulls alerts from an external threat-intelligence / news feed.
// Every call is bounded by a timeout and guarded by a circuit breaker; failures
// carry a scoring.FailureReason so callers can degrade deterministically.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"borderwatch/internal/domain"
	"borderwatch/internal/scoring"
)

const maxBodyBytes = 2 << 20

var ErrDisabled = &Error{reason: scoring.ReasonDisabled, err: errors.New("feed not configured")}

// Error is returned for every failed fetch.
type Error struct {
	reason scoring.FailureReason
	err    error
}

func (e *Error) Error() string                 { return fmt.Sprintf("feed %s: %v", e.reason, e.err) }
func (e *Error) Unwrap() error                 { return e.err }
func (e *Error) Reason() scoring.FailureReason { return e.reason }

type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Alert]
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithBreaker(cb *gobreaker.CircuitBreaker[[]domain.Alert]) Option {
	return func(c *Client) { c.breaker = cb }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewBreaker(name string) *gobreaker.CircuitBreaker[[]domain.Alert] {
	return gobreaker.NewCircuitBreaker[[]domain.Alert](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
}

func New(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "borderwatch/1.0"
	}
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{},
		breaker: NewBreaker("feed"),
		logger:  logger.With(slog.String("component", "feed")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Enabled() bool { return c.cfg.URL != "" }

// Fetch returns the current feed items normalised into external alerts.
func (c *Client) Fetch(ctx context.Context) ([]domain.Alert, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	alerts, err := c.breaker.Execute(func() ([]domain.Alert, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		ferr := classify(ctx, err)
		c.logger.Warn("feed fetch failed", slog.String("reason", string(ferr.reason)), slog.Any("error", err))
		return nil, ferr
	}
	return alerts, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.Alert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &Error{reason: scoring.ReasonUnavailable, err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{reason: scoring.ReasonUnavailable, err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, &Error{reason: scoring.ReasonBadPayload, err: err}
	}
	return Normalize(items, c.now()), nil
}

func classify(ctx context.Context, err error) *Error {
	var ferr *Error
	switch {
	case errors.As(err, &ferr):
		return ferr
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &Error{reason: scoring.ReasonCircuitOpen, err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{reason: scoring.ReasonTimeout, err: err}
	default:
		return &Error{reason: scoring.ReasonUnavailable, err: err}
	}
}

// Item is one raw feed entry.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"publishedAt"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	RadiusKM    *float64   `json:"radiusKm"`
}

// decodeItems accepts either {"items": [...]} or a bare array.
func decodeItems(body []byte) ([]Item, error) {
	var wrapped struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return items, nil
}
