package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is what the control room receives for an escalated report.
type WebhookPayload struct {
	ReportID    uuid.UUID     `json:"report_id"`
	SessionID   string        `json:"session_id"`
	Category    string        `json:"category"`
	Urgency     ReportUrgency `json:"urgency"`
	Lat         float64       `json:"lat"`
	Lng         float64       `json:"lng"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
}
