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

type ReportService struct {
	repo   ReportRepository
	media  MediaStore
	queue  WebhookQueue
	hub    Broadcaster
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService wires report intake. queue is nil when webhooks are disabled.
func NewReportService(repo ReportRepository, media MediaStore, queue WebhookQueue, hub Broadcaster, logger *slog.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		media:  media,
		queue:  queue,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Create stores the media, persists the report and escalates high and urgent
// reports to the dashboard and the control room.
func (s *ReportService) Create(ctx context.Context, sessionID string, req domain.CreateReportRequest, files []domain.MediaFile) (*domain.Report, error) {
	const op = "service.Report.Create"

	if req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	loc := domain.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if !loc.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if sessionID == "" {
		sessionID = domain.AnonymousSession
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}

	paths := []string{}
	if len(files) > 0 {
		if s.media == nil {
			return nil, fmt.Errorf("%s: media uploads disabled: %w", op, e.ErrInvalidInput)
		}
		saved, err := s.media.Save(ctx, files)
		if err != nil {
			return nil, err
		}
		paths = saved
	}

	rep := &domain.Report{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Category:    req.Category,
		Description: req.Description,
		Location:    loc,
		Urgency:     urgency,
		Status:      domain.ReportPending,
		MediaPaths:  paths,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		slog.String("id", rep.ID.String()),
		slog.String("session_id", rep.SessionID),
		slog.String("urgency", string(rep.Urgency)),
		slog.Int("media", len(rep.MediaPaths)),
	)

	if rep.Urgency.Escalates() {
		s.escalate(ctx, rep)
	}
	return rep, nil
}

func (s *ReportService) escalate(ctx context.Context, rep *domain.Report) {
	d := s.hub.Publish(ctx, domain.UrgentReportPayload{Report: *rep})
	s.logger.Info("urgent report broadcast", slog.String("id", rep.ID.String()), slog.Int("delivered", d.Delivered))

	if s.queue == nil {
		return
	}
	payload := domain.WebhookPayload{
		ReportID:    rep.ID,
		SessionID:   rep.SessionID,
		Category:    rep.Category,
		Urgency:     rep.Urgency,
		Lat:         rep.Location.Latitude,
		Lng:         rep.Location.Longitude,
		Description: rep.Description,
		CreatedAt:   rep.CreatedAt,
	}
	if err := s.queue.Enqueue(ctx, payload); err != nil {
		s.logger.Error("enqueue webhook failed", slog.String("report_id", rep.ID.String()), slog.Any("error", err))
		return
	}
	s.logger.Info("webhook enqueued", slog.String("report_id", rep.ID.String()))
}

func (s *ReportService) List(ctx context.Context, status domain.ReportStatus, page, limit int) ([]domain.Report, int64, error) {
	return s.repo.List(ctx, status, page, limit)
}

func (s *ReportService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus) error {
	return s.repo.UpdateStatus(ctx, id, status)
}
