package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"borderwatch/internal/domain"
	"borderwatch/internal/geo"
	"borderwatch/internal/scoring"
	"borderwatch/internal/service"
	mock_service "borderwatch/internal/service/mocks"
	"borderwatch/pkg/e"
)

type reasonErr scoring.FailureReason

func (r reasonErr) Error() string                 { return "collaborator failed: " + string(r) }
func (r reasonErr) Reason() scoring.FailureReason { return scoring.FailureReason(r) }

type predictionDeps struct {
	alerts  *mock_service.MockActiveAlertSource
	feed    *mock_service.MockFeedSource
	advisor *mock_service.MockNarrator
}

func newPredictionService(t *testing.T) (*service.PredictionService, predictionDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := predictionDeps{
		alerts:  mock_service.NewMockActiveAlertSource(ctrl),
		feed:    mock_service.NewMockFeedSource(ctrl),
		advisor: mock_service.NewMockNarrator(ctrl),
	}
	engine := scoring.NewEngine(geo.DefaultReferencePoints(), scoring.WithClock(fixedNow))
	svc := service.NewPredictionService(d.alerts, d.feed, engine, d.advisor, newTestLogger())
	svc.SetClock(fixedNow)
	return svc, d
}

func srinagar() *domain.Coordinate {
	return &domain.Coordinate{Latitude: 34.0837, Longitude: 74.7973}
}

func TestPredictionService_NearReferenceIsHigh(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{}, nil)
	d.feed.EXPECT().Enabled().Return(false)
	d.advisor.EXPECT().Enabled().Return(false)

	got, err := svc.Predict(context.Background(), srinagar())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("expected high, got %s", got.ThreatLevel)
	}
	if got.NearestReference == nil || got.NearestReference.Name != "Srinagar Sector HQ" {
		t.Fatalf("unexpected nearest reference: %+v", got.NearestReference)
	}
	if got.Summary != "" {
		t.Fatalf("expected no summary, got %q", got.Summary)
	}
}

func TestPredictionService_EmergencyFromFeedIsCritical(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{}, nil)
	d.feed.EXPECT().Enabled().Return(true)
	d.feed.EXPECT().Fetch(gomock.Any()).Return([]domain.Alert{
		{Title: "shelling reported", Severity: domain.SeverityEmergency, IsActive: true},
	}, nil)
	d.advisor.EXPECT().Enabled().Return(false)

	got, err := svc.Predict(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ThreatLevel != domain.ThreatCritical {
		t.Fatalf("expected critical, got %s", got.ThreatLevel)
	}
	if got.ActiveAlerts != 1 {
		t.Fatalf("expected 1 active alert counted, got %d", got.ActiveAlerts)
	}
}

func TestPredictionService_StoreDeadlineServesFallback(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return(nil, fmt.Errorf("postgres.Alert.ListActive: %w", e.ErrDeadline))
	d.feed.EXPECT().Enabled().Return(false)

	got, err := svc.Predict(context.Background(), srinagar())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := scoring.Fallback(scoring.ReasonTimeout, fixedNow())
	if got.ThreatLevel != want.ThreatLevel || got.Confidence != want.Confidence {
		t.Fatalf("expected fallback assessment, got %+v", got)
	}
	if !strings.Contains(strings.Join(got.RiskFactors, "|"), "timeout") {
		t.Fatalf("expected timeout risk factor, got %v", got.RiskFactors)
	}
}

func TestPredictionService_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return(nil, e.ErrInternal)
	d.feed.EXPECT().Enabled().Return(false)

	if _, err := svc.Predict(context.Background(), srinagar()); !errors.Is(err, e.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestPredictionService_FeedFailureCapsConfidenceKeepsLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reason scoring.FailureReason
	}{
		{name: "circuit open", reason: scoring.ReasonCircuitOpen},
		{name: "timeout", reason: scoring.ReasonTimeout},
		{name: "bad payload", reason: scoring.ReasonBadPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, d := newPredictionService(t)
			d.alerts.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{
				{Title: "a1", Severity: domain.SeverityAlert, IsActive: true},
				{Title: "a2", Severity: domain.SeverityAlert, IsActive: true},
			}, nil)
			d.feed.EXPECT().Enabled().Return(true)
			d.feed.EXPECT().Fetch(gomock.Any()).Return(nil, reasonErr(tt.reason))
			d.advisor.EXPECT().Enabled().Return(false)

			got, err := svc.Predict(context.Background(), srinagar())
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got.ThreatLevel != domain.ThreatHigh {
				t.Fatalf("level must not be lowered, got %s", got.ThreatLevel)
			}
			if got.Confidence > scoring.FallbackConfidence {
				t.Fatalf("confidence not capped: %v", got.Confidence)
			}
			last := got.RiskFactors[len(got.RiskFactors)-1]
			if !strings.Contains(last, string(tt.reason)) {
				t.Fatalf("expected reason %q in %q", tt.reason, last)
			}
		})
	}
}

func TestPredictionService_AdvisorSummary(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{}, nil)
	d.feed.EXPECT().Enabled().Return(false)
	d.advisor.EXPECT().Enabled().Return(true)
	d.advisor.EXPECT().Narrate(gomock.Any(), srinagar(), gomock.Any()).Return("Stay alert near the sector HQ.", nil)

	got, err := svc.Predict(context.Background(), srinagar())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Summary != "Stay alert near the sector HQ." {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
}

func TestPredictionService_AdvisorFailureDropsSummary(t *testing.T) {
	t.Parallel()

	svc, d := newPredictionService(t)
	d.alerts.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{}, nil)
	d.feed.EXPECT().Enabled().Return(false)
	d.advisor.EXPECT().Enabled().Return(true)
	d.advisor.EXPECT().Narrate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", reasonErr(scoring.ReasonTimeout))

	got, err := svc.Predict(context.Background(), srinagar())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Summary != "" || got.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("unexpected assessment: %+v", got)
	}
}
