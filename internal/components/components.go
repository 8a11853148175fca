package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"borderwatch/internal/advisor"
	"borderwatch/internal/api"
	"borderwatch/internal/api/handlers/http/system"
	"borderwatch/internal/config"
	"borderwatch/internal/feed"
	"borderwatch/internal/geo"
	"borderwatch/internal/hub"
	"borderwatch/internal/location"
	"borderwatch/internal/redis"
	"borderwatch/internal/scoring"
	"borderwatch/internal/service"
	"borderwatch/internal/storage/media"
	"borderwatch/internal/storage/postgres"
	"borderwatch/internal/workers"
	"borderwatch/pkg/logger"
)

const feedUserAgent = "borderwatch/1.0"

type Components struct {
	logger      *slog.Logger
	HttpServer  *api.Server
	Postgres    *postgres.Postgres
	Redis       *redis.Redis
	WebhookQ    *redis.WebhookQueue
	Hub         *hub.Hub
	Webhooks    *service.WebhookSender
	Maintenance *workers.Maintenance
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	webhookQueue := redis.NewWebhookQueue(redisClient.Client, redis.WebhookQueueKey)
	alertCache := redis.NewAlertCache(redisClient.Client, cfg.AlertCacheTTL)

	mediaDir, err := media.NewDir(cfg.Upload.Dir, cfg.Upload.MaxBytes, logger)
	if err != nil {
		storage.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to init media dir: %w", err)
	}

	broadcastHub := hub.New(logger, hub.WithFanoutLimit(cfg.Hub.FanoutLimit))
	sessions := location.NewCache(cfg.LocationTTL)

	feedClient := feed.New(feed.Config{
		URL:       cfg.Feed.URL,
		Timeout:   cfg.Feed.Timeout,
		UserAgent: feedUserAgent,
	}, logger)
	narrator := advisor.New(advisor.Config{
		APIKey:  cfg.AnthropicAPIKey,
		Model:   cfg.Advisor.Model,
		Timeout: cfg.Advisor.Timeout,
	}, logger)
	engine := scoring.NewEngine(geo.DefaultReferencePoints())

	alertSvc := service.NewAlertService(storage.Alerts, alertCache, feedClient, broadcastHub, logger)
	threatSvc := service.NewThreatService(storage.Threats, broadcastHub, logger)
	reportSvc := service.NewReportService(storage.Reports, mediaDir, webhookQueue, broadcastHub, logger)
	predictionSvc := service.NewPredictionService(alertSvc, feedClient, engine, narrator, logger)
	locationSvc := service.NewLocationService(sessions, broadcastHub, logger)
	safeZoneSvc := service.NewSafeZoneService(storage.SafeZones)
	statsSvc := service.NewStatsService(broadcastHub, sessions, webhookQueue, logger)

	srv := service.NewService(alertSvc, threatSvc, reportSvc, predictionSvc, locationSvc, safeZoneSvc, statsSvc)

	wsCfg := hub.DefaultWSConfig()
	wsCfg.SendBuffer = cfg.Hub.SendBuffer
	wsCfg.AllowedOrigins = cfg.Hub.AllowedOrigins
	wsServer := hub.NewServer(broadcastHub, wsCfg, logger)

	httpServer := api.NewServer(ctx, cfg, logger, srv, wsServer, map[string]system.Pinger{
		"postgres": storage,
		"redis":    redisClient,
	})
	logger.Info("Initialized server")

	var sender *service.WebhookSender
	if !cfg.Webhook.Disabled {
		sender = service.NewWebhookSender(logger, cfg.Webhook, webhookQueue)
	}

	var sweeper workers.SessionSweeper
	if cfg.LocationTTL > 0 {
		sweeper = locationSvc
	}
	maintenance := workers.NewMaintenance(alertSvc, sweeper, cfg.MaintenanceInterval, logger)

	return &Components{
		logger:      logger,
		HttpServer:  httpServer,
		Postgres:    storage,
		Redis:       redisClient,
		WebhookQ:    webhookQueue,
		Hub:         broadcastHub,
		Webhooks:    sender,
		Maintenance: maintenance,
	}, nil
}

// StartWorkers launches background jobs bound to ctx. The returned WaitGroup
// is done once every worker has returned.
func (c *Components) StartWorkers(ctx context.Context) *sync.WaitGroup {
	var wg sync.WaitGroup

	if c.Webhooks != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Webhooks.Run(ctx)
		}()
	} else {
		c.logger.Warn("webhook delivery disabled")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Maintenance.Run(ctx)
	}()

	return &wg
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	if c.Hub != nil {
		c.Hub.CloseAll()
	}
	c.Postgres.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
