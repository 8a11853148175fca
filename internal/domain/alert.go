package domain

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityAlert     Severity = "alert"
	SeverityEmergency Severity = "emergency"
)

// Rank orders severities info < warning < alert < emergency. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityAlert:
		return 3
	case SeverityEmergency:
		return 4
	default:
		return 0
	}
}

func (s Severity) Valid() bool { return s.Rank() > 0 }

const (
	AlertSourceInternal = "internal"
	AlertSourceExternal = "external"
)

type TargetArea struct {
	Center   Coordinate `json:"center"`
	RadiusKM float64    `json:"radiusKm" validate:"required,radius_km"`
}

type Alert struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Severity   Severity    `json:"severity"`
	TargetArea *TargetArea `json:"targetArea,omitempty"`
	ThreatID   *uuid.UUID  `json:"threatId,omitempty"`
	IsActive   bool        `json:"isActive"`
	Source     string      `json:"source"`
	CreatedAt  time.Time   `json:"createdAt"`
	ExpiresAt  *time.Time  `json:"expiresAt,omitempty"`
}

// ActiveAt reports whether the alert is switched on and not yet expired at now.
func (a Alert) ActiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

type CreateAlertRequest struct {
	Title      string      `json:"title" validate:"required,max=200"`
	Message    string      `json:"message" validate:"required,max=4000"`
	Severity   Severity    `json:"severity" validate:"required,severity"`
	TargetArea *TargetArea `json:"targetArea" validate:"omitempty"`
	ThreatID   *uuid.UUID  `json:"threatId"`
	ExpiresAt  *time.Time  `json:"expiresAt"`
}

type UpdateAlertRequest struct {
	Title     *string    `json:"title" validate:"omitempty,max=200"`
	Message   *string    `json:"message" validate:"omitempty,max=4000"`
	Severity  *Severity  `json:"severity" validate:"omitempty,severity"`
	IsActive  *bool      `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type ListAlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Total  int64   `json:"total"`
}
