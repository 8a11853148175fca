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

type reportDeps struct {
	repo  *mock_service.MockReportRepository
	media *mock_service.MockMediaStore
	queue *mock_service.MockWebhookQueue
	hub   *mock_service.MockBroadcaster
}

func newReportService(t *testing.T) (*service.ReportService, reportDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := reportDeps{
		repo:  mock_service.NewMockReportRepository(ctrl),
		media: mock_service.NewMockMediaStore(ctrl),
		queue: mock_service.NewMockWebhookQueue(ctrl),
		hub:   mock_service.NewMockBroadcaster(ctrl),
	}
	svc := service.NewReportService(d.repo, d.media, d.queue, d.hub, newTestLogger())
	svc.SetClock(fixedNow)
	return svc, d
}

func reportRequest(urgency domain.ReportUrgency) domain.CreateReportRequest {
	return domain.CreateReportRequest{
		Category:    "drone",
		Description: "low flying drone near the fence",
		Latitude:    f64ptr(34.1),
		Longitude:   f64ptr(74.1),
		Urgency:     urgency,
	}
}

func TestReportService_Create_DefaultsNoEscalation(t *testing.T) {
	t.Parallel()

	svc, d := newReportService(t)

	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rep *domain.Report) error {
			if rep.SessionID != domain.AnonymousSession {
				t.Fatalf("expected anonymous session, got %q", rep.SessionID)
			}
			if rep.Urgency != domain.UrgencyMedium || rep.Status != domain.ReportPending {
				t.Fatalf("unexpected defaults: %+v", rep)
			}
			if rep.MediaPaths == nil {
				t.Fatalf("media paths must not be nil")
			}
			return nil
		})

	rep, err := svc.Create(context.Background(), "", reportRequest(""), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
}

func TestReportService_Create_EscalatesUrgent(t *testing.T) {
	t.Parallel()

	for _, urgency := range []domain.ReportUrgency{domain.UrgencyHigh, domain.UrgencyUrgent} {
		urgency := urgency
		t.Run(string(urgency), func(t *testing.T) {
			t.Parallel()

			svc, d := newReportService(t)

			d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			d.hub.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(domain.UrgentReportPayload{})).
				Return(hub.Delivery{})
			d.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p domain.WebhookPayload) error {
					if p.SessionID != "s1" || p.Urgency != urgency || p.Lat != 34.1 {
						t.Fatalf("unexpected webhook payload: %+v", p)
					}
					return nil
				})

			rep, err := svc.Create(context.Background(), "s1", reportRequest(urgency), nil)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if rep.Urgency != urgency {
				t.Fatalf("urgency mismatch: %s", rep.Urgency)
			}
		})
	}
}

func TestReportService_Create_EnqueueFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	svc, d := newReportService(t)

	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.hub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(hub.Delivery{})
	d.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	if _, err := svc.Create(context.Background(), "s1", reportRequest(domain.UrgencyUrgent), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestReportService_Create_WithMedia(t *testing.T) {
	t.Parallel()

	svc, d := newReportService(t)

	files := []domain.MediaFile{{Name: "a.png", Data: []byte("png")}}
	d.media.EXPECT().Save(gomock.Any(), files).Return([]string{"2025/a.png"}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rep *domain.Report) error {
			if len(rep.MediaPaths) != 1 || rep.MediaPaths[0] != "2025/a.png" {
				t.Fatalf("media paths not stored: %v", rep.MediaPaths)
			}
			return nil
		})

	if _, err := svc.Create(context.Background(), "s1", reportRequest(domain.UrgencyLow), files); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestReportService_Create_RejectedMedia(t *testing.T) {
	t.Parallel()

	svc, d := newReportService(t)

	d.media.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, e.ErrUnsupportedMedia)

	_, err := svc.Create(context.Background(), "s1", reportRequest(domain.UrgencyLow),
		[]domain.MediaFile{{Name: "x.exe", Data: []byte("MZ")}})
	if !errors.Is(err, e.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}

func TestReportService_Create_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	svc, _ := newReportService(t)

	req := reportRequest(domain.UrgencyLow)
	req.Latitude = f64ptr(120)

	if _, err := svc.Create(context.Background(), "s1", req, nil); !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestReportService_Create_NoQueueStillBroadcasts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockReportRepository(ctrl)
	b := mock_service.NewMockBroadcaster(ctrl)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	b.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(hub.Delivery{})

	svc := service.NewReportService(repo, nil, nil, b, newTestLogger())
	if _, err := svc.Create(context.Background(), "s1", reportRequest(domain.UrgencyUrgent), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestReportService_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	svc, d := newReportService(t)

	d.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), domain.ReportVerified).Return(e.ErrNotFound)

	if err := svc.UpdateStatus(context.Background(), uuid.New(), domain.ReportVerified); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
