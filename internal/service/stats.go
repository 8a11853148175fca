package service

import (
	"context"
	"log/slog"

	"borderwatch/internal/domain"
)

type StatsService struct {
	hub      Broadcaster
	sessions LocationStore
	backlog  WebhookBacklog
	logger   *slog.Logger
}

// NewStatsService reports runtime counters. backlog may be nil.
func NewStatsService(hub Broadcaster, sessions LocationStore, backlog WebhookBacklog, logger *slog.Logger) *StatsService {
	return &StatsService{hub: hub, sessions: sessions, backlog: backlog, logger: logger}
}

func (s *StatsService) GetStats(ctx context.Context) domain.SystemStats {
	stats := domain.SystemStats{
		Hub:      s.hub.Stats(),
		Sessions: s.sessions.Len(),
	}
	if s.backlog != nil {
		n, err := s.backlog.Len(ctx)
		if err != nil {
			s.logger.Warn("webhook backlog unavailable", slog.Any("error", err))
		}
		stats.PendingWebhooks = n
	}
	return stats
}
