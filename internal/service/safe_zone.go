package service

import (
	"context"
	"fmt"

	"borderwatch/internal/domain"
	"borderwatch/internal/geo"
	"borderwatch/pkg/e"
)

type SafeZoneService struct {
	repo SafeZoneRepository
}

func NewSafeZoneService(repo SafeZoneRepository) *SafeZoneService {
	return &SafeZoneService{repo: repo}
}

func (s *SafeZoneService) List(ctx context.Context) ([]domain.SafeZone, error) {
	return s.repo.ListActive(ctx)
}

// Nearest returns the active safe zone closest to origin.
func (s *SafeZoneService) Nearest(ctx context.Context, origin domain.Coordinate) (*domain.NearestSafeZone, error) {
	const op = "service.SafeZone.Nearest"

	if !origin.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	zones, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	coords := make([]domain.Coordinate, len(zones))
	for i, z := range zones {
		coords[i] = z.Location
	}
	m, ok := geo.Nearest(origin, coords)
	if !ok {
		return nil, fmt.Errorf("%s: no active safe zones: %w", op, e.ErrNotFound)
	}
	return &domain.NearestSafeZone{Zone: zones[m.Index], DistanceKM: m.DistanceKM}, nil
}
