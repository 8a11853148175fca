// Package presenter holds the response helpers shared by the HTTP handlers.
package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Logger returns logger tagged with the chi request id, when there is one.
func Logger(logger *slog.Logger, r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf maps domain sentinels to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrConflict), errors.Is(err, e.ErrUniqueViolation):
		return http.StatusConflict
	case errors.Is(err, e.ErrDeadline), errors.Is(err, e.ErrCanceled), errors.Is(err, e.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError logs err and writes the mapped status. Client errors carry the
// validation detail; server errors never leak internals.
func HandleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := StatusOf(err)
	l := Logger(logger, r)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err),
	}
	if code >= http.StatusInternalServerError {
		l.Error("handler error", attrs...)
	} else {
		l.Warn("request rejected", attrs...)
	}

	resp := ErrorResponse{Error: strings.ToLower(http.StatusText(code))}
	if code < http.StatusInternalServerError {
		resp.Detail = err.Error()
	}
	WriteJSON(w, code, resp)
}

func ParseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// ParseOrigin reads an optional lat/lng pair from the query. Both absent yields
// nil; one without the other, non-numeric or out-of-range values are invalid.
func ParseOrigin(q url.Values) (*domain.Coordinate, error) {
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, fmt.Errorf("%w: lat and lng must be given together", e.ErrInvalidCoordinates)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: lat %q is not a number", e.ErrInvalidCoordinates, latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: lng %q is not a number", e.ErrInvalidCoordinates, lngStr)
	}

	c := domain.Coordinate{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: lat/lng out of range", e.ErrInvalidCoordinates)
	}
	return &c, nil
}
