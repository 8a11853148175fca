// Package scoring turns a location and the currently active alerts into a
// discrete threat level with the rules that produced it.
package scoring

import (
	"time"

	"borderwatch/internal/domain"
	"borderwatch/internal/geo"
)

const (
	NoLocationConfidence = 0.5

	factorNoLocation = "Location unavailable; assessment based on regional alerts only"
	recShareLocation = "Enable location sharing for a more accurate assessment"
)

type rule struct {
	level           domain.ThreatLevel
	confidence      float64
	factor          string
	recommendations []string
}

type proximityBand struct {
	maxKM float64
	rule
}

// Ordered nearest first. Confidence never decreases as the distance shrinks.
var proximityBands = []proximityBand{
	{maxKM: 2, rule: rule{
		level:      domain.ThreatHigh,
		confidence: 0.8,
		factor:     "Within 2 km of a border reference point",
		recommendations: []string{
			"Move away from the border area if it is safe to do so",
			"Stay in contact with local authorities",
		},
	}},
	{maxKM: 10, rule: rule{
		level:      domain.ThreatMedium,
		confidence: 0.7,
		factor:     "Within 10 km of a border reference point",
		recommendations: []string{
			"Avoid non-essential travel toward the border",
			"Keep emergency contacts at hand",
		},
	}},
	{maxKM: 25, rule: rule{
		level:           domain.ThreatLow,
		confidence:      0.6,
		factor:          "Within 25 km of a border reference point",
		recommendations: []string{"Stay alert and monitor official alerts"},
	}},
	{maxKM: 100, rule: rule{
		level:           domain.ThreatLow,
		confidence:      0.55,
		factor:          "Within 100 km of a border reference point",
		recommendations: []string{"Monitor official alerts"},
	}},
}

var farBand = rule{
	level:           domain.ThreatLow,
	confidence:      0.5,
	factor:          "More than 100 km from the nearest border reference point",
	recommendations: []string{"Maintain normal precautions"},
}

var (
	emergencyRule = rule{
		level:      domain.ThreatCritical,
		confidence: 0.9,
		factor:     "Emergency alert active in the region",
		recommendations: []string{
			"Follow emergency instructions from the authorities",
			"Proceed to the nearest safe zone",
		},
	}
	multipleAlertsRule = rule{
		level:           domain.ThreatHigh,
		confidence:      0.8,
		factor:          "Multiple active alerts in the region",
		recommendations: []string{"Limit movement and stay indoors where possible"},
	}
	elevatedRule = rule{
		level:           domain.ThreatMedium,
		confidence:      0.7,
		factor:          "Elevated alert activity in the region",
		recommendations: []string{"Review active alerts before travelling"},
	}
	// Explanation only: being targeted never changes level or confidence.
	targetAreaRule = rule{
		factor:          "Inside the target area of an active alert",
		recommendations: []string{"Follow the instructions in the targeted alert"},
	}
)

type Engine struct {
	refs []domain.ReferencePoint
	now  func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(refs []domain.ReferencePoint, opts ...Option) *Engine {
	e := &Engine{
		refs: append([]domain.ReferencePoint(nil), refs...),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) ReferencePoints() []domain.ReferencePoint {
	return append([]domain.ReferencePoint(nil), e.refs...)
}

// Assess scores origin against records. Records are expected to be active already;
// origin may be nil.
func (e *Engine) Assess(origin *domain.Coordinate, records []domain.Alert) domain.ThreatAssessment {
	var acc accumulator

	if origin == nil {
		acc.fire(rule{level: domain.ThreatLow, confidence: NoLocationConfidence, factor: factorNoLocation,
			recommendations: []string{recShareLocation}})
	} else {
		ref, d, ok := geo.NearestReference(*origin, e.refs)
		acc.fire(bandFor(d, ok))
		if ok {
			acc.nearest = &domain.ReferenceDistance{Name: ref.Name, DistanceKM: d}
		}
	}

	var emergencies, alerts, warnings int
	insideTarget := false
	for _, r := range records {
		switch r.Severity {
		case domain.SeverityEmergency:
			emergencies++
		case domain.SeverityAlert:
			alerts++
		case domain.SeverityWarning:
			warnings++
		}
		if origin != nil && r.TargetArea != nil && geo.WithinRadius(*origin, r.TargetArea.Center, r.TargetArea.RadiusKM) {
			insideTarget = true
		}
	}

	switch {
	case emergencies > 0:
		acc.fire(emergencyRule)
	case alerts > 1:
		acc.fire(multipleAlertsRule)
	case alerts > 0 || warnings > 2:
		acc.fire(elevatedRule)
	}
	if insideTarget {
		acc.fire(targetAreaRule)
	}

	return domain.ThreatAssessment{
		ThreatLevel:      acc.level,
		Confidence:       clamp01(acc.confidence),
		RiskFactors:      acc.factors,
		Recommendations:  acc.recommendations,
		ComputedAt:       e.now().UTC(),
		NearestReference: acc.nearest,
		ActiveAlerts:     len(records),
	}
}

func bandFor(d float64, ok bool) rule {
	if !ok {
		return farBand
	}
	for _, b := range proximityBands {
		if d < b.maxKM {
			return b.rule
		}
	}
	return farBand
}

type accumulator struct {
	level           domain.ThreatLevel
	confidence      float64
	factors         []string
	recommendations []string
	nearest         *domain.ReferenceDistance
	seen            map[string]struct{}
}

// fire only ever raises the level; a rule with an empty level adds explanation only.
func (a *accumulator) fire(r rule) {
	if a.level == "" {
		a.level = domain.ThreatLow
	}
	a.level = domain.MaxThreatLevel(a.level, r.level)
	if r.confidence > a.confidence {
		a.confidence = r.confidence
	}
	if r.factor != "" {
		a.factors = append(a.factors, r.factor)
	}
	if a.seen == nil {
		a.seen = make(map[string]struct{})
	}
	for _, rec := range r.recommendations {
		if _, dup := a.seen[rec]; dup {
			continue
		}
		a.seen[rec] = struct{}{}
		a.recommendations = append(a.recommendations, rec)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
