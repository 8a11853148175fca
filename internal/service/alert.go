package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type AlertService struct {
	repo   AlertRepository
	cache  AlertCache
	feed   FeedSource
	hub    Broadcaster
	logger *slog.Logger
	now    func() time.Time
}

// NewAlertService wires the alert use cases. cache and feed may be nil.
func NewAlertService(repo AlertRepository, cache AlertCache, feed FeedSource, hub Broadcaster, logger *slog.Logger) *AlertService {
	return &AlertService{
		repo:   repo,
		cache:  cache,
		feed:   feed,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AlertService) Create(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error) {
	const op = "service.Alert.Create"

	if req.TargetArea != nil && !req.TargetArea.Center.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	a := &domain.Alert{
		ID:         uuid.New(),
		Title:      req.Title,
		Message:    req.Message,
		Severity:   req.Severity,
		TargetArea: req.TargetArea,
		ThreatID:   req.ThreatID,
		IsActive:   true,
		Source:     domain.AlertSourceInternal,
		CreatedAt:  s.now().UTC(),
		ExpiresAt:  req.ExpiresAt,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	d := s.hub.Publish(ctx, domain.NewAlertPayload{Alert: *a})
	s.logger.Info("alert created",
		slog.String("id", a.ID.String()),
		slog.String("severity", string(a.Severity)),
		slog.Int("delivered", d.Delivered),
	)
	return a, nil
}

func (s *AlertService) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	return s.repo.Get(ctx, id)
}

func (s *AlertService) List(ctx context.Context, page, limit int) ([]domain.Alert, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *AlertService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Message != nil {
		a.Message = *req.Message
	}
	if req.Severity != nil {
		a.Severity = *req.Severity
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		a.ExpiresAt = req.ExpiresAt
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return a, nil
}

// Deactivate retires an alert. Alerts are never deleted.
func (s *AlertService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ListActive reads persisted active alerts through the cache. Cached entries
// are re-checked against the clock since they may expire before the cache does.
func (s *AlertService) ListActive(ctx context.Context) ([]domain.Alert, error) {
	if s.cache != nil {
		alerts, ok, err := s.cache.GetActive(ctx)
		switch {
		case err != nil:
			s.logger.Warn("alert cache read failed", slog.Any("error", err))
		case ok:
			return activeAt(alerts, s.now()), nil
		}
	}

	alerts, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetActive(ctx, alerts); err != nil {
			s.logger.Warn("alert cache write failed", slog.Any("error", err))
		}
	}
	return alerts, nil
}

// Merged returns persisted and feed alerts, newest first. A failing feed only
// narrows the result to persisted alerts.
func (s *AlertService) Merged(ctx context.Context) ([]domain.Alert, error) {
	persisted, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Alert, 0, len(persisted))
	seen := make(map[uuid.UUID]struct{}, len(persisted))
	for _, a := range persisted {
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}

	if s.feed != nil && s.feed.Enabled() {
		external, err := s.feed.Fetch(ctx)
		if err != nil {
			s.logger.Warn("feed unavailable, serving persisted alerts only", slog.Any("error", err))
		}
		now := s.now()
		for _, a := range external {
			if _, dup := seen[a.ID]; dup || !a.ActiveAt(now) {
				continue
			}
			seen[a.ID] = struct{}{}
			out = append(out, a)
		}
	}

	sortNewestFirst(out)
	return out, nil
}

// RefreshCache drops expired alerts and repopulates the active cache.
func (s *AlertService) RefreshCache(ctx context.Context) (int64, error) {
	n, err := s.repo.DeactivateExpired(ctx)
	if err != nil {
		return 0, err
	}
	alerts, err := s.repo.ListActive(ctx)
	if err != nil {
		return n, err
	}
	if s.cache != nil {
		if err := s.cache.SetActive(ctx, alerts); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *AlertService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("alert cache invalidate failed", slog.Any("error", err))
	}
}

func activeAt(alerts []domain.Alert, now time.Time) []domain.Alert {
	out := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.ActiveAt(now) {
			out = append(out, a)
		}
	}
	return out
}

func sortNewestFirst(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}
