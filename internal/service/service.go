package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/internal/hub"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, page, limit int) ([]domain.Alert, int64, error)
	ListActive(ctx context.Context) ([]domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	DeactivateExpired(ctx context.Context) (int64, error)
}

type AlertCache interface {
	GetActive(ctx context.Context) ([]domain.Alert, bool, error)
	SetActive(ctx context.Context, alerts []domain.Alert) error
	Invalidate(ctx context.Context) error
}

type ThreatRepository interface {
	Create(ctx context.Context, t *domain.Threat) error
	ListActive(ctx context.Context) ([]domain.Threat, error)
}

type ReportRepository interface {
	Create(ctx context.Context, rep *domain.Report) error
	List(ctx context.Context, status domain.ReportStatus, page, limit int) ([]domain.Report, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus) error
}

type SafeZoneRepository interface {
	ListActive(ctx context.Context) ([]domain.SafeZone, error)
}

type WebhookQueue interface {
	Enqueue(ctx context.Context, payload domain.WebhookPayload) error
}

// WebhookSource is the consuming side of the control-room queue.
type WebhookSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error)
}

// FeedSource yields normalized external alerts.
type FeedSource interface {
	Enabled() bool
	Fetch(ctx context.Context) ([]domain.Alert, error)
}

type Narrator interface {
	Enabled() bool
	Narrate(ctx context.Context, origin *domain.Coordinate, a domain.ThreatAssessment) (string, error)
}

type Broadcaster interface {
	Publish(ctx context.Context, payload domain.EventPayload) hub.Delivery
	Stats() domain.HubStats
}

type LocationStore interface {
	Update(sessionID string, sample domain.LocationSample)
	All() []domain.LocationSample
	Len() int
	Sweep(now time.Time) int
}

type WebhookBacklog interface {
	Len(ctx context.Context) (int64, error)
}

type MediaStore interface {
	Save(ctx context.Context, files []domain.MediaFile) ([]string, error)
}

type ActiveAlertSource interface {
	ListActive(ctx context.Context) ([]domain.Alert, error)
}

type Service struct {
	Alerts     *AlertService
	Threats    *ThreatService
	Reports    *ReportService
	Prediction *PredictionService
	Location   *LocationService
	SafeZones  *SafeZoneService
	Stats      *StatsService
}

func NewService(
	alerts *AlertService,
	threats *ThreatService,
	reports *ReportService,
	prediction *PredictionService,
	location *LocationService,
	safeZones *SafeZoneService,
	stats *StatsService,
) *Service {
	return &Service{
		Alerts:     alerts,
		Threats:    threats,
		Reports:    reports,
		Prediction: prediction,
		Location:   location,
		SafeZones:  safeZones,
		Stats:      stats,
	}
}
