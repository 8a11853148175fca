package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"

	"borderwatch/internal/advisor"
	"borderwatch/internal/api"
	"borderwatch/internal/api/handlers/http/system"
	"borderwatch/internal/config"
	"borderwatch/internal/domain"
	"borderwatch/internal/feed"
	"borderwatch/internal/geo"
	"borderwatch/internal/hub"
	"borderwatch/internal/location"
	"borderwatch/internal/middleware"
	"borderwatch/internal/scoring"
	"borderwatch/internal/service"
	mock_service "borderwatch/internal/service/mocks"
)

const testAPIKey = "test-admin-key"

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := newTestLogger()

	alertRepo := mock_service.NewMockAlertRepository(ctrl)
	alertRepo.EXPECT().ListActive(gomock.Any()).Return([]domain.Alert{}, nil).AnyTimes()
	threatRepo := mock_service.NewMockThreatRepository(ctrl)
	reportRepo := mock_service.NewMockReportRepository(ctrl)
	zoneRepo := mock_service.NewMockSafeZoneRepository(ctrl)

	h := hub.New(logger)
	sessions := location.NewCache(0)
	feedClient := feed.New(feed.Config{}, logger)

	alerts := service.NewAlertService(alertRepo, nil, feedClient, h, logger)
	svc := service.NewService(
		alerts,
		service.NewThreatService(threatRepo, h, logger),
		service.NewReportService(reportRepo, nil, nil, h, logger),
		service.NewPredictionService(alerts, feedClient, scoring.NewEngine(geo.DefaultReferencePoints()), advisor.New(advisor.Config{}, logger), logger),
		service.NewLocationService(sessions, h, logger),
		service.NewSafeZoneService(zoneRepo),
		service.NewStatsService(h, sessions, nil, logger),
	)

	cfg := &config.Config{
		APIKey: testAPIKey,
		Http: config.HttpConfig{
			RateLimitRPS:   100,
			RateLimitBurst: 100,
		},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := api.NewServer(ctx, cfg, logger, svc, hub.NewServer(h, hub.DefaultWSConfig(), logger),
		map[string]system.Pinger{"postgres": okPinger{}})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		h.CloseAll()
		ts.Close()
	})
	return ts
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.BroadcastEvent {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ws message: %v", err)
	}
	var ev domain.BroadcastEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode event: %v, msg=%s", err, msg)
	}
	return ev
}

func TestLocationUpdate_ReachesWebSocketSubscribers(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if ev := readEvent(t, conn); ev.Type != domain.EventConnectionEstablished {
		t.Fatalf("expected handshake first, got %s", ev.Type)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/location/update",
		strings.NewReader(`{"latitude":34.0837,"longitude":74.7973}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "s1")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post location: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}

	ev := readEvent(t, conn)
	if ev.Type != domain.EventLocationUpdate {
		t.Fatalf("expected location_update, got %s", ev.Type)
	}
	p, ok := ev.Payload.(domain.LocationUpdatePayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", ev.Payload)
	}
	if p.SessionID != "s1" || p.Latitude != 34.0837 {
		t.Fatalf("unexpected sample: %+v", p.LocationSample)
	}
}

func TestThreatPrediction_NearSrinagarIsHigh(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/ai/threat-prediction?lat=34.0837&lng=74.7973")
	if err != nil {
		t.Fatalf("get prediction: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var got domain.ThreatAssessment
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("expected high, got %s", got.ThreatLevel)
	}
}

func TestAdminRoutes_RequireAPIKey(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		key      string
		wantCode int
	}{
		{name: "missing key", key: "", wantCode: http.StatusUnauthorized},
		{name: "wrong key", key: "nope", wantCode: http.StatusUnauthorized},
		{name: "valid key", key: testAPIKey, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/admin/stats", nil)
			if tt.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.key)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("expected %d got %d", tt.wantCode, resp.StatusCode)
			}
		})
	}
}

func TestReady_ReportsChecks(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/ready")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["postgres"] != "up" {
		t.Fatalf("unexpected readiness: %v", got)
	}
}
