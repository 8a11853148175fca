package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"borderwatch/pkg/e"
	"borderwatch/pkg/validator"
)

const DefaultMaxBodyBytes = 1 << 20

// DecodeJSON strictly decodes one JSON document into dst and validates it.
// Unknown fields, trailing data and oversized bodies are rejected with ErrInvalidInput.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, DefaultMaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: body exceeds %d bytes", e.ErrInvalidInput, maxErr.Limit)
		}
		return fmt.Errorf("%w: invalid JSON: %v", e.ErrInvalidInput, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON body", e.ErrInvalidInput)
	}
	return validator.ValidateStruct(dst)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
