package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportUrgency string

const (
	UrgencyLow    ReportUrgency = "low"
	UrgencyMedium ReportUrgency = "medium"
	UrgencyHigh   ReportUrgency = "high"
	UrgencyUrgent ReportUrgency = "urgent"
)

// Escalates reports whether a report at this urgency is pushed to every client.
func (u ReportUrgency) Escalates() bool {
	return u == UrgencyHigh || u == UrgencyUrgent
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewing ReportStatus = "reviewing"
	ReportVerified  ReportStatus = "verified"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	ID          uuid.UUID     `json:"id"`
	SessionID   string        `json:"sessionId"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Location    Coordinate    `json:"location"`
	Urgency     ReportUrgency `json:"urgency"`
	Status      ReportStatus  `json:"status"`
	MediaPaths  []string      `json:"mediaPaths"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type CreateReportRequest struct {
	Category    string        `json:"category" validate:"required,max=64"`
	Description string        `json:"description" validate:"required,max=4000"`
	Latitude    *float64      `json:"latitude" validate:"required,lat"`
	Longitude   *float64      `json:"longitude" validate:"required,lng"`
	Urgency     ReportUrgency `json:"urgency" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateReportStatusRequest struct {
	Status ReportStatus `json:"status" validate:"required,oneof=pending reviewing verified dismissed"`
}

// MediaFile is an uploaded attachment handed to the report service.
type MediaFile struct {
	Name string
	Data []byte
}
