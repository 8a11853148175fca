package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"

	"borderwatch/internal/api/handlers/http/admin"
	"borderwatch/internal/api/handlers/http/public"
	"borderwatch/internal/api/handlers/http/system"
	"borderwatch/internal/config"
	"borderwatch/internal/middleware"
	"borderwatch/internal/service"
)

const visitorTTL = 10 * time.Minute

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

// NewServer builds the HTTP surface. ctx bounds the background cleanup of the
// rate limiters; ws serves the realtime upgrade endpoint.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc *service.Service, ws http.Handler, checks map[string]system.Pinger) *Server {
	adminHandler := admin.NewHandler(logger, svc.Alerts, svc.Threats, svc.Reports, svc.Stats)
	publicHandler := public.NewHandler(logger,
		svc.Alerts,
		svc.Threats,
		svc.Prediction,
		svc.Location,
		svc.SafeZones,
		svc.Reports,
		cfg.Upload.MaxBytes,
	)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(ctx, cfg, adminHandler, publicHandler, systemHandler, ws, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func (s *Server) Handler() http.Handler { return s.router }

func InitRouter(
	ctx context.Context,
	cfg *config.Config,
	adminHandler *admin.Handler,
	publicHandler *public.Handler,
	systemHandler *system.Handler,
	ws http.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	// Upgraded connections must not pass through the gzip writer.
	r.Get("/ws", ws.ServeHTTP)

	r.Route("/api", func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
		api.Get("/ready", systemHandler.SystemReady)

		// PUBLIC
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Limit(ctx, float64(cfg.Http.RateLimitRPS), cfg.Http.RateLimitBurst, visitorTTL, logger))
			pr.Use(middleware.Session)

			pr.Get("/ai/threat-prediction", publicHandler.ThreatPrediction)
			pr.Post("/location/update", publicHandler.LocationUpdate)
			pr.Get("/location/all", publicHandler.LocationAll)
			pr.Get("/alerts", publicHandler.AlertList)
			pr.Get("/threats", publicHandler.ThreatList)
			pr.Get("/safe-zones", publicHandler.SafeZoneList)
			pr.Get("/safe-zones/nearest", publicHandler.SafeZoneNearest)
			pr.Post("/reports", publicHandler.ReportCreate)
		})

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKey(cfg.APIKey, logger))
			ar.Use(middleware.Limit(ctx, float64(cfg.Http.RateLimitRPS), cfg.Http.RateLimitBurst, visitorTTL, logger))

			ar.Get("/stats", adminHandler.SystemStats)
			ar.Get("/stats/hub", adminHandler.SystemStats)

			ar.Route("/alerts", func(al chi.Router) {
				al.Post("/", adminHandler.AlertCreate)
				al.Get("/", adminHandler.AlertList)

				al.Route("/{id}", func(one chi.Router) {
					one.Get("/", adminHandler.AlertGet)
					one.Put("/", adminHandler.AlertUpdate)
					one.Delete("/", adminHandler.AlertDeactivate)
				})
			})

			ar.Post("/threats", adminHandler.ThreatCreate)

			ar.Get("/reports", adminHandler.ReportList)
			ar.Put("/reports/{id}/status", adminHandler.ReportUpdateStatus)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
