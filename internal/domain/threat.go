package domain

import (
	"time"

	"github.com/google/uuid"
)

type Threat struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Severity    Severity   `json:"severity"`
	Location    Coordinate `json:"location"`
	IsActive    bool       `json:"isActive"`
	ReportedAt  time.Time  `json:"reportedAt"`
}

type CreateThreatRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=4000"`
	Category    string     `json:"category" validate:"required,max=64"`
	Severity    Severity   `json:"severity" validate:"required,severity"`
	Location    Coordinate `json:"location"`
}
