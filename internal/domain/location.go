package domain

import "time"

const AnonymousSession = "anonymous"

type LocationSample struct {
	SessionID string    `json:"sessionId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s LocationSample) Coordinate() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

type LocationUpdateRequest struct {
	Latitude  *float64   `json:"latitude" validate:"required,lat"`
	Longitude *float64   `json:"longitude" validate:"required,lng"`
	Accuracy  *float64   `json:"accuracy" validate:"omitempty,min=0"`
	Timestamp *time.Time `json:"timestamp"`
}

type LocationUpdateResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}
