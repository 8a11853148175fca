// Package advisor asks an LLM for a short plain-language summary of a threat
// assessment. It is strictly optional: callers drop the summary on any error.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"borderwatch/internal/domain"
	"borderwatch/internal/scoring"
)

const systemPrompt = `You are a civil-defence assistant for residents of a border region.
Given a structured threat assessment, write two or three calm sentences that state the threat level,
the main reasons and what the resident should do next. Do not invent facts beyond the input.`

var ErrDisabled = &Error{reason: scoring.ReasonDisabled, err: errors.New("advisor not configured")}

type Error struct {
	reason scoring.FailureReason
	err    error
}

func (e *Error) Error() string                 { return fmt.Sprintf("advisor %s: %v", e.reason, e.err) }
func (e *Error) Unwrap() error                 { return e.err }
func (e *Error) Reason() scoring.FailureReason { return e.reason }

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// messenger is the slice of the Anthropic API the advisor needs.
type messenger interface {
	CreateMessage(ctx context.Context, model string, maxTokens int64, system, prompt string) (string, error)
}

type sdkMessenger struct {
	client sdk.Client
}

func newSDKMessenger(cfg Config) *sdkMessenger {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &sdkMessenger{client: sdk.NewClient(opts...)}
}

func (m *sdkMessenger) CreateMessage(ctx context.Context, model string, maxTokens int64, system, prompt string) (string, error) {
	msg, err := m.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

type Advisor struct {
	cfg    Config
	client messenger
	logger *slog.Logger
}

// New returns an advisor; with an empty API key every call returns ErrDisabled.
func New(cfg Config, logger *slog.Logger) *Advisor {
	if cfg.Model == "" {
		cfg.Model = "claude-haiku-4-5-20251001"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 4 * time.Second
	}
	a := &Advisor{cfg: cfg, logger: logger.With(slog.String("component", "advisor"))}
	if cfg.APIKey != "" {
		a.client = newSDKMessenger(cfg)
	}
	return a
}

func (a *Advisor) Enabled() bool { return a.client != nil }

func (a *Advisor) Narrate(ctx context.Context, origin *domain.Coordinate, assessment domain.ThreatAssessment) (string, error) {
	const op = "advisor.Advisor.Narrate"

	if !a.Enabled() {
		return "", ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	text, err := a.client.CreateMessage(ctx, a.cfg.Model, a.cfg.MaxTokens, systemPrompt, Prompt(origin, assessment))
	if err != nil {
		reason := scoring.ReasonUnavailable
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = scoring.ReasonTimeout
		}
		a.logger.Warn("narration failed", slog.String("op", op), slog.String("reason", string(reason)), slog.Any("error", err))
		return "", &Error{reason: reason, err: err}
	}
	if text == "" {
		return "", &Error{reason: scoring.ReasonBadPayload, err: errors.New("empty completion")}
	}

	a.logger.Debug("narration done", slog.String("op", op), slog.Duration("took", time.Since(start)))
	return text, nil
}

// Prompt renders the assessment as the user message sent to the model.
func Prompt(origin *domain.Coordinate, a domain.ThreatAssessment) string {
	var b strings.Builder
	if origin != nil {
		fmt.Fprintf(&b, "Resident location: %.4f, %.4f\n", origin.Latitude, origin.Longitude)
	} else {
		b.WriteString("Resident location: unknown\n")
	}
	fmt.Fprintf(&b, "Threat level: %s (confidence %.2f)\n", a.ThreatLevel, a.Confidence)
	if a.NearestReference != nil {
		fmt.Fprintf(&b, "Nearest border reference: %s, %.1f km\n", a.NearestReference.Name, a.NearestReference.DistanceKM)
	}
	fmt.Fprintf(&b, "Active alerts considered: %d\n", a.ActiveAlerts)
	if len(a.RiskFactors) > 0 {
		b.WriteString("Risk factors:\n")
		for _, f := range a.RiskFactors {
			b.WriteString("- " + f + "\n")
		}
	}
	if len(a.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, r := range a.Recommendations {
			b.WriteString("- " + r + "\n")
		}
	}
	return b.String()
}
