package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"borderwatch/internal/api/presenter"
	"borderwatch/internal/domain"
	"borderwatch/internal/middleware"
	"borderwatch/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminAlerts interface {
	Create(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
	List(ctx context.Context, page, limit int) ([]domain.Alert, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateAlertRequest) (*domain.Alert, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ThreatCreator interface {
	Create(ctx context.Context, req domain.CreateThreatRequest) (*domain.Threat, error)
}

type ReportTriage interface {
	List(ctx context.Context, status domain.ReportStatus, page, limit int) ([]domain.Report, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus) error
}

type StatsGetter interface {
	GetStats(ctx context.Context) domain.SystemStats
}

type Handler struct {
	logger  *slog.Logger
	Alerts  AdminAlerts
	Threats ThreatCreator
	Reports ReportTriage
	Stats   StatsGetter
}

func NewHandler(logger *slog.Logger, alerts AdminAlerts, threats ThreatCreator, reports ReportTriage, stats StatsGetter) *Handler {
	return &Handler{
		logger:  logger,
		Alerts:  alerts,
		Threats: threats,
		Reports: reports,
		Stats:   stats,
	}
}

func (h *Handler) AlertCreate(w http.ResponseWriter, r *http.Request) {
	l := presenter.Logger(h.logger, r)

	var req domain.CreateAlertRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	alert, err := h.Alerts.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert created", slog.String("id", alert.ID.String()), slog.String("severity", string(alert.Severity)))
	presenter.WriteJSON(w, http.StatusCreated, alert)
}

func (h *Handler) AlertList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	alerts, total, err := h.Alerts.List(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	presenter.WriteJSON(w, http.StatusOK, domain.ListAlertsResponse{
		Alerts: alerts,
		Page:   page,
		Limit:  limit,
		Total:  total,
	})
}

func (h *Handler) AlertGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	alert, err := h.Alerts.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, alert)
}

func (h *Handler) AlertUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateAlertRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	alert, err := h.Alerts.Update(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, alert)
}

// AlertDeactivate backs DELETE; alerts are retired, never removed.
func (h *Handler) AlertDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Alerts.Deactivate(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	presenter.Logger(h.logger, r).Info("alert deactivated", slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ThreatCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateThreatRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	threat, err := h.Threats.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusCreated, threat)
}

func (h *Handler) ReportList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	status := domain.ReportStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.ReportPending, domain.ReportReviewing, domain.ReportVerified, domain.ReportDismissed:
	default:
		h.handleError(w, r, fmt.Errorf("%w: unknown status %q", e.ErrInvalidInput, status))
		return
	}

	reports, total, err := h.Reports.List(r.Context(), status, page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	presenter.WriteJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (h *Handler) ReportUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateReportStatusRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.Reports.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SystemStats(w http.ResponseWriter, r *http.Request) {
	presenter.WriteJSON(w, http.StatusOK, h.Stats.GetStats(r.Context()))
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("%w: invalid id %q", e.ErrInvalidInput, idStr))
		return uuid.Nil, false
	}
	return id, true
}
