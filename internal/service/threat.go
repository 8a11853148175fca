package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type ThreatService struct {
	repo   ThreatRepository
	hub    Broadcaster
	logger *slog.Logger
	now    func() time.Time
}

func NewThreatService(repo ThreatRepository, hub Broadcaster, logger *slog.Logger) *ThreatService {
	return &ThreatService{repo: repo, hub: hub, logger: logger, now: time.Now}
}

// Create persists a threat and pushes it to every connected client.
func (s *ThreatService) Create(ctx context.Context, req domain.CreateThreatRequest) (*domain.Threat, error) {
	const op = "service.Threat.Create"

	if !req.Location.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	t := &domain.Threat{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Severity:    req.Severity,
		Location:    req.Location,
		IsActive:    true,
		ReportedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	d := s.hub.Publish(ctx, domain.ThreatAlertPayload{Threat: *t})
	s.logger.Info("threat created",
		slog.String("id", t.ID.String()),
		slog.String("category", t.Category),
		slog.Int("delivered", d.Delivered),
	)
	return t, nil
}

func (s *ThreatService) ListActive(ctx context.Context) ([]domain.Threat, error) {
	return s.repo.ListActive(ctx)
}
