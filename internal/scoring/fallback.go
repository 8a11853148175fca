package scoring

import (
	"context"
	"errors"
	"time"

	"borderwatch/internal/domain"
)

type FailureReason string

const (
	ReasonTimeout     FailureReason = "timeout"
	ReasonUnavailable FailureReason = "unavailable"
	ReasonCircuitOpen FailureReason = "circuit_open"
	ReasonBadPayload  FailureReason = "bad_payload"
	ReasonDisabled    FailureReason = "disabled"
)

// Failure is implemented by collaborator errors that know why they failed.
type Failure interface {
	error
	Reason() FailureReason
}

func ReasonOf(err error) FailureReason {
	var f Failure
	if errors.As(err, &f) {
		return f.Reason()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonUnavailable
}

const FallbackConfidence = 0.5

// Fallback is the conservative assessment served when no data could be gathered in time.
func Fallback(reason FailureReason, at time.Time) domain.ThreatAssessment {
	return domain.ThreatAssessment{
		ThreatLevel:     domain.ThreatLow,
		Confidence:      FallbackConfidence,
		RiskFactors:     []string{"Threat data unavailable (" + string(reason) + ")"},
		Recommendations: []string{"Monitor official alerts", "Retry the assessment shortly"},
		ComputedAt:      at.UTC(),
	}
}

// ApplyFallback marks an assessment as built without external intelligence.
// The level is kept as is; confidence is capped.
func ApplyFallback(a domain.ThreatAssessment, reason FailureReason) domain.ThreatAssessment {
	out := a
	if out.Confidence > FallbackConfidence {
		out.Confidence = FallbackConfidence
	}
	out.RiskFactors = append(append([]string(nil), a.RiskFactors...),
		"External threat intelligence unavailable ("+string(reason)+")")
	return out
}
