package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"borderwatch/internal/api/presenter"
	"borderwatch/internal/domain"
	"borderwatch/internal/middleware"
	"borderwatch/pkg/e"
	"borderwatch/pkg/validator"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AlertFeed interface {
	Merged(ctx context.Context) ([]domain.Alert, error)
}

type ThreatLister interface {
	ListActive(ctx context.Context) ([]domain.Threat, error)
}

type Predictor interface {
	Predict(ctx context.Context, origin *domain.Coordinate) (domain.ThreatAssessment, error)
}

type LocationTracker interface {
	Update(ctx context.Context, sessionID string, req domain.LocationUpdateRequest) (domain.LocationSample, error)
	All(ctx context.Context) []domain.LocationSample
}

type SafeZoneFinder interface {
	List(ctx context.Context) ([]domain.SafeZone, error)
	Nearest(ctx context.Context, origin domain.Coordinate) (*domain.NearestSafeZone, error)
}

type ReportSubmitter interface {
	Create(ctx context.Context, sessionID string, req domain.CreateReportRequest, files []domain.MediaFile) (*domain.Report, error)
}

type Handler struct {
	logger         *slog.Logger
	Alerts         AlertFeed
	Threats        ThreatLister
	Predictor      Predictor
	Location       LocationTracker
	SafeZones      SafeZoneFinder
	Reports        ReportSubmitter
	uploadMaxBytes int64
}

func NewHandler(
	logger *slog.Logger,
	alerts AlertFeed,
	threats ThreatLister,
	predictor Predictor,
	location LocationTracker,
	safeZones SafeZoneFinder,
	reports ReportSubmitter,
	uploadMaxBytes int64,
) *Handler {
	return &Handler{
		logger:         logger,
		Alerts:         alerts,
		Threats:        threats,
		Predictor:      predictor,
		Location:       location,
		SafeZones:      safeZones,
		Reports:        reports,
		uploadMaxBytes: uploadMaxBytes,
	}
}

func (h *Handler) ThreatPrediction(w http.ResponseWriter, r *http.Request) {
	origin, err := presenter.ParseOrigin(r.URL.Query())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	assessment, err := h.Predictor.Predict(r.Context(), origin)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, assessment)
}

func (h *Handler) LocationUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.LocationUpdateRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	sample, err := h.Location.Update(r.Context(), middleware.SessionFromContext(r.Context()), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, domain.LocationUpdateResponse{Success: true, Timestamp: sample.Timestamp})
}

func (h *Handler) LocationAll(w http.ResponseWriter, r *http.Request) {
	presenter.WriteJSON(w, http.StatusOK, h.Location.All(r.Context()))
}

func (h *Handler) AlertList(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Alerts.Merged(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, alerts)
}

func (h *Handler) ThreatList(w http.ResponseWriter, r *http.Request) {
	threats, err := h.Threats.ListActive(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, threats)
}

func (h *Handler) SafeZoneList(w http.ResponseWriter, r *http.Request) {
	zones, err := h.SafeZones.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, zones)
}

func (h *Handler) SafeZoneNearest(w http.ResponseWriter, r *http.Request) {
	origin, err := presenter.ParseOrigin(r.URL.Query())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if origin == nil {
		h.handleError(w, r, fmt.Errorf("%w: lat and lng are required", e.ErrInvalidCoordinates))
		return
	}

	nearest, err := h.SafeZones.Nearest(r.Context(), *origin)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	presenter.WriteJSON(w, http.StatusOK, nearest)
}

// ReportCreate accepts a JSON body or a multipart form with "media" files.
func (h *Handler) ReportCreate(w http.ResponseWriter, r *http.Request) {
	l := presenter.Logger(h.logger, r)

	var (
		req   domain.CreateReportRequest
		files []domain.MediaFile
		err   error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, files, err = h.readMultipartReport(w, r)
	} else {
		err = middleware.DecodeJSON(w, r, &req)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	rep, err := h.Reports.Create(r.Context(), middleware.SessionFromContext(r.Context()), req, files)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("report accepted", slog.String("id", rep.ID.String()), slog.Int("media", len(files)))
	presenter.WriteJSON(w, http.StatusCreated, map[string]string{"id": rep.ID.String()})
}

const maxMediaFiles = 5

func (h *Handler) readMultipartReport(w http.ResponseWriter, r *http.Request) (domain.CreateReportRequest, []domain.MediaFile, error) {
	var req domain.CreateReportRequest

	// Form fields ride on top of the media payload.
	limit := h.uploadMaxBytes*maxMediaFiles + middleware.DefaultMaxBodyBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, nil, fmt.Errorf("%w: upload exceeds %d bytes", e.ErrInvalidInput, maxErr.Limit)
		}
		return req, nil, fmt.Errorf("%w: invalid multipart form: %v", e.ErrInvalidInput, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req.Category = r.FormValue("category")
	req.Description = r.FormValue("description")
	req.Urgency = domain.ReportUrgency(r.FormValue("urgency"))
	for name, dst := range map[string]**float64{"latitude": &req.Latitude, "longitude": &req.Longitude} {
		raw := r.FormValue(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, nil, fmt.Errorf("%w: %s %q is not a number", e.ErrInvalidInput, name, raw)
		}
		*dst = &v
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return req, nil, err
	}

	headers := r.MultipartForm.File["media"]
	if len(headers) > maxMediaFiles {
		return req, nil, fmt.Errorf("%w: at most %d media files", e.ErrInvalidInput, maxMediaFiles)
	}
	files := make([]domain.MediaFile, 0, len(headers))
	for _, fh := range headers {
		data, err := h.readPart(fh)
		if err != nil {
			return req, nil, err
		}
		files = append(files, domain.MediaFile{Name: fh.Filename, Data: data})
	}
	return req, files, nil
}

func (h *Handler) readPart(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.uploadMaxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", e.ErrInvalidInput, fh.Filename, h.uploadMaxBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", e.ErrInvalidInput, fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, h.uploadMaxBytes+1))
}
