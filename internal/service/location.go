package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type LocationService struct {
	store  LocationStore
	hub    Broadcaster
	logger *slog.Logger
	now    func() time.Time
}

func NewLocationService(store LocationStore, hub Broadcaster, logger *slog.Logger) *LocationService {
	return &LocationService{store: store, hub: hub, logger: logger, now: time.Now}
}

// Update records the latest sample for the session and broadcasts it.
func (s *LocationService) Update(ctx context.Context, sessionID string, req domain.LocationUpdateRequest) (domain.LocationSample, error) {
	const op = "service.Location.Update"

	if req.Latitude == nil || req.Longitude == nil {
		return domain.LocationSample{}, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if sessionID == "" {
		sessionID = domain.AnonymousSession
	}

	sample := domain.LocationSample{
		SessionID: sessionID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Accuracy:  req.Accuracy,
		Timestamp: s.now().UTC(),
	}
	if !sample.Coordinate().Valid() {
		return domain.LocationSample{}, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if req.Timestamp != nil {
		sample.Timestamp = req.Timestamp.UTC()
	}

	s.store.Update(sessionID, sample)
	d := s.hub.Publish(ctx, domain.LocationUpdatePayload{LocationSample: sample})

	s.logger.Debug("location updated",
		slog.String("session_id", sessionID),
		slog.Int("delivered", d.Delivered),
		slog.Int("failed", d.Failed),
	)
	return sample, nil
}

func (s *LocationService) All(_ context.Context) []domain.LocationSample {
	return s.store.All()
}

// Sweep evicts stale sessions. It is a no-op when the store has no TTL.
func (s *LocationService) Sweep(_ context.Context) int {
	return s.store.Sweep(s.now())
}
