package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"borderwatch/internal/domain"
	"borderwatch/internal/scoring"
	"borderwatch/pkg/e"
)

type PredictionService struct {
	alerts  ActiveAlertSource
	feed    FeedSource
	engine  *scoring.Engine
	advisor Narrator
	logger  *slog.Logger
	now     func() time.Time
}

// NewPredictionService wires threat prediction. feed and advisor may be nil.
func NewPredictionService(alerts ActiveAlertSource, feed FeedSource, engine *scoring.Engine, advisor Narrator, logger *slog.Logger) *PredictionService {
	return &PredictionService{
		alerts:  alerts,
		feed:    feed,
		engine:  engine,
		advisor: advisor,
		logger:  logger,
		now:     time.Now,
	}
}

// Predict scores origin against every active alert. origin may be nil.
//
// A store deadline yields the timeout fallback; any other store error is returned.
// A failing feed keeps the persisted-only score with capped confidence.
func (s *PredictionService) Predict(ctx context.Context, origin *domain.Coordinate) (domain.ThreatAssessment, error) {
	var (
		persisted, external []domain.Alert
		storeErr, feedErr   error
		g                   errgroup.Group
	)

	g.Go(func() error {
		persisted, storeErr = s.alerts.ListActive(ctx)
		return nil
	})
	if s.feed != nil && s.feed.Enabled() {
		g.Go(func() error {
			external, feedErr = s.feed.Fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if storeErr != nil {
		if errors.Is(storeErr, e.ErrDeadline) || errors.Is(storeErr, context.DeadlineExceeded) {
			s.logger.Warn("store deadline, serving fallback assessment", slog.Any("error", storeErr))
			return scoring.Fallback(scoring.ReasonTimeout, s.now()), nil
		}
		return domain.ThreatAssessment{}, storeErr
	}

	now := s.now()
	records := make([]domain.Alert, 0, len(persisted)+len(external))
	records = append(records, persisted...)
	for _, a := range external {
		if a.ActiveAt(now) {
			records = append(records, a)
		}
	}

	assessment := s.engine.Assess(origin, records)
	if feedErr != nil {
		reason := scoring.ReasonOf(feedErr)
		s.logger.Warn("feed failed, degrading assessment",
			slog.String("reason", string(reason)),
			slog.Any("error", feedErr),
		)
		assessment = scoring.ApplyFallback(assessment, reason)
	}

	if s.advisor != nil && s.advisor.Enabled() {
		summary, err := s.advisor.Narrate(ctx, origin, assessment)
		if err != nil {
			s.logger.Warn("advisor summary dropped",
				slog.String("reason", string(scoring.ReasonOf(err))),
				slog.Any("error", err),
			)
		} else {
			assessment.Summary = summary
		}
	}

	s.logger.Debug("threat assessed",
		slog.String("level", string(assessment.ThreatLevel)),
		slog.Float64("confidence", assessment.Confidence),
		slog.Int("records", len(records)),
	)
	return assessment, nil
}
