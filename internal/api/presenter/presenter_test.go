package presenter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borderwatch/pkg/e"
)

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantNil bool
		wantErr bool
	}{
		{name: "absent", query: "", wantNil: true},
		{name: "pair", query: "lat=34.0837&lng=74.7973"},
		{name: "lat only", query: "lat=34", wantErr: true},
		{name: "lng only", query: "lng=74", wantErr: true},
		{name: "non numeric", query: "lat=north&lng=74", wantErr: true},
		{name: "lat out of range", query: "lat=-90.01&lng=0", wantErr: true},
		{name: "lng out of range", query: "lat=0&lng=180.5", wantErr: true},
		{name: "bounds", query: "lat=-90&lng=180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseOrigin(q)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrInvalidCoordinates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNil, got == nil)
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("op: %w", e.ErrInvalidInput), http.StatusBadRequest},
		{e.ErrInvalidCoordinates, http.StatusBadRequest},
		{e.ErrNotFound, http.StatusNotFound},
		{e.ErrUniqueViolation, http.StatusConflict},
		{e.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
		{e.ErrDeadline, http.StatusServiceUnavailable},
		{e.ErrInternal, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	rr := httptest.NewRecorder()
	HandleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), logger, fmt.Errorf("pg: password leaked: %w", e.ErrInternal))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, resp.Detail)

	rr = httptest.NewRecorder()
	HandleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), logger, fmt.Errorf("%w: lat missing", e.ErrInvalidInput))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, resp.Detail, "lat missing")
}
