package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"borderwatch/internal/domain"
	"borderwatch/internal/hub"
	"borderwatch/internal/service"
	mock_service "borderwatch/internal/service/mocks"
	"borderwatch/pkg/e"
)

func TestSafeZoneService_Nearest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockSafeZoneRepository(ctrl)

	zones := []domain.SafeZone{
		{ID: uuid.New(), Name: "Jammu Relief Camp", Location: domain.Coordinate{Latitude: 32.73, Longitude: 74.86}, IsActive: true},
		{ID: uuid.New(), Name: "Srinagar Stadium", Location: domain.Coordinate{Latitude: 34.07, Longitude: 74.81}, IsActive: true},
	}
	repo.EXPECT().ListActive(gomock.Any()).Return(zones, nil)

	got, err := service.NewSafeZoneService(repo).Nearest(context.Background(), domain.Coordinate{Latitude: 34.0837, Longitude: 74.7973})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Zone.Name != "Srinagar Stadium" {
		t.Fatalf("unexpected nearest zone: %+v", got.Zone)
	}
	if got.DistanceKM <= 0 || got.DistanceKM > 5 {
		t.Fatalf("unexpected distance: %v", got.DistanceKM)
	}
}

func TestSafeZoneService_Nearest_NoZones(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockSafeZoneRepository(ctrl)
	repo.EXPECT().ListActive(gomock.Any()).Return([]domain.SafeZone{}, nil)

	_, err := service.NewSafeZoneService(repo).Nearest(context.Background(), domain.Coordinate{Latitude: 1, Longitude: 1})
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSafeZoneService_Nearest_InvalidOrigin(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := service.NewSafeZoneService(mock_service.NewMockSafeZoneRepository(ctrl))

	if _, err := svc.Nearest(context.Background(), domain.Coordinate{Latitude: 95}); !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestThreatService_Create_Broadcasts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockThreatRepository(ctrl)
	b := mock_service.NewMockBroadcaster(ctrl)

	svc := service.NewThreatService(repo, b, newTestLogger())
	svc.SetClock(fixedNow)

	gomock.InOrder(
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		b.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(domain.ThreatAlertPayload{})).Return(hub.Delivery{}),
	)

	got, err := svc.Create(context.Background(), domain.CreateThreatRequest{
		Title:    "Infiltration attempt",
		Category: "infiltration",
		Severity: domain.SeverityEmergency,
		Location: domain.Coordinate{Latitude: 34.52, Longitude: 74.25},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.IsActive || !got.ReportedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected threat: %+v", got)
	}
}

func TestThreatService_Create_RepoErrorNoBroadcast(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockThreatRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(e.ErrInternal)

	svc := service.NewThreatService(repo, mock_service.NewMockBroadcaster(ctrl), newTestLogger())
	_, err := svc.Create(context.Background(), domain.CreateThreatRequest{
		Title: "t", Category: "c", Severity: domain.SeverityInfo,
		Location: domain.Coordinate{Latitude: 1, Longitude: 1},
	})
	if !errors.Is(err, e.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestStatsService_GetStats(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	b := mock_service.NewMockBroadcaster(ctrl)
	store := mock_service.NewMockLocationStore(ctrl)
	backlog := mock_service.NewMockWebhookBacklog(ctrl)

	b.EXPECT().Stats().Return(domain.HubStats{Channels: 2, DroppedEvents: 1})
	store.EXPECT().Len().Return(5)
	backlog.EXPECT().Len(gomock.Any()).Return(int64(3), nil)

	got := service.NewStatsService(b, store, backlog, newTestLogger()).GetStats(context.Background())
	if got.Hub.Channels != 2 || got.Hub.DroppedEvents != 1 || got.Sessions != 5 || got.PendingWebhooks != 3 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}
