package domain

import "time"

type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

// Rank orders levels low < medium < high < critical. Unknown values rank 0.
func (l ThreatLevel) Rank() int {
	switch l {
	case ThreatLow:
		return 1
	case ThreatMedium:
		return 2
	case ThreatHigh:
		return 3
	case ThreatCritical:
		return 4
	default:
		return 0
	}
}

func MaxThreatLevel(a, b ThreatLevel) ThreatLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

type ReferenceDistance struct {
	Name       string  `json:"name"`
	DistanceKM float64 `json:"distanceKm"`
}

type ThreatAssessment struct {
	ThreatLevel      ThreatLevel        `json:"threatLevel"`
	Confidence       float64            `json:"confidence"`
	RiskFactors      []string           `json:"riskFactors"`
	Recommendations  []string           `json:"recommendations"`
	ComputedAt       time.Time          `json:"computedAt"`
	NearestReference *ReferenceDistance `json:"nearestReference,omitempty"`
	ActiveAlerts     int                `json:"activeAlerts"`
	Summary          string             `json:"summary,omitempty"`
}
