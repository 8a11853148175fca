package scoring_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borderwatch/internal/domain"
	"borderwatch/internal/geo"
	"borderwatch/internal/scoring"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newEngine() *scoring.Engine {
	return scoring.NewEngine(geo.DefaultReferencePoints(), scoring.WithClock(func() time.Time { return fixedNow }))
}

func coord(lat, lng float64) *domain.Coordinate {
	return &domain.Coordinate{Latitude: lat, Longitude: lng}
}

func alerts(sev ...domain.Severity) []domain.Alert {
	out := make([]domain.Alert, 0, len(sev))
	for _, s := range sev {
		out = append(out, domain.Alert{Severity: s, IsActive: true})
	}
	return out
}

func TestAssess_NoOriginNoRecords(t *testing.T) {
	a := newEngine().Assess(nil, nil)

	assert.Equal(t, domain.ThreatLow, a.ThreatLevel)
	assert.Equal(t, 0.5, a.Confidence)
	require.NotEmpty(t, a.RiskFactors)
	assert.Contains(t, a.RiskFactors[0], "Location unavailable")
	assert.Nil(t, a.NearestReference)
	assert.Equal(t, fixedNow, a.ComputedAt)
}

func TestAssess_ProximityBands(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name   string
		origin *domain.Coordinate
		level  domain.ThreatLevel
		conf   float64
	}{
		{"at reference", coord(34.0837, 74.7973), domain.ThreatHigh, 0.8},
		{"about 5 km", coord(34.1287, 74.7973), domain.ThreatMedium, 0.7},
		{"about 20 km", coord(34.2637, 74.7973), domain.ThreatLow, 0.6},
		{"about 60 km north of Kargil", coord(35.0939, 76.1349), domain.ThreatLow, 0.55},
		{"far away", coord(19.0760, 72.8777), domain.ThreatLow, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := e.Assess(tt.origin, nil)
			assert.Equal(t, tt.level, a.ThreatLevel)
			assert.Equal(t, tt.conf, a.Confidence)
			require.NotNil(t, a.NearestReference)
		})
	}
}

func TestAssess_EmergencyAlwaysCritical(t *testing.T) {
	e := newEngine()
	records := alerts(domain.SeverityInfo, domain.SeverityEmergency)

	for _, origin := range []*domain.Coordinate{nil, coord(34.0837, 74.7973), coord(19.0760, 72.8777), coord(-33.86, 151.2)} {
		a := e.Assess(origin, records)
		assert.Equal(t, domain.ThreatCritical, a.ThreatLevel)
		assert.Equal(t, 0.9, a.Confidence)
		assert.Contains(t, a.RiskFactors, "Emergency alert active in the region")
	}
}

func TestAssess_Escalation(t *testing.T) {
	e := newEngine()
	far := coord(19.0760, 72.8777)

	tests := []struct {
		name    string
		records []domain.Alert
		level   domain.ThreatLevel
		conf    float64
	}{
		{"two alerts", alerts(domain.SeverityAlert, domain.SeverityAlert), domain.ThreatHigh, 0.8},
		{"one alert", alerts(domain.SeverityAlert), domain.ThreatMedium, 0.7},
		{"three warnings", alerts(domain.SeverityWarning, domain.SeverityWarning, domain.SeverityWarning), domain.ThreatMedium, 0.7},
		{"two warnings", alerts(domain.SeverityWarning, domain.SeverityWarning), domain.ThreatLow, 0.5},
		{"info only", alerts(domain.SeverityInfo, domain.SeverityInfo, domain.SeverityInfo), domain.ThreatLow, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := e.Assess(far, tt.records)
			assert.Equal(t, tt.level, a.ThreatLevel)
			assert.Equal(t, tt.conf, a.Confidence)
			assert.Equal(t, len(tt.records), a.ActiveAlerts)
		})
	}
}

func TestAssess_EscalationNeverLowersBaseline(t *testing.T) {
	// baseline high near the reference, a single alert only escalates to medium
	a := newEngine().Assess(coord(34.0837, 74.7973), alerts(domain.SeverityAlert))

	assert.Equal(t, domain.ThreatHigh, a.ThreatLevel)
	assert.Equal(t, 0.8, a.Confidence)
	assert.Contains(t, a.RiskFactors, "Elevated alert activity in the region")
}

func TestAssess_MonotoneInProximity(t *testing.T) {
	refPoint := geo.DefaultReferencePoints()[0]
	e := scoring.NewEngine([]domain.ReferencePoint{refPoint})
	ref := refPoint.Coordinate

	recordSets := [][]domain.Alert{
		nil,
		alerts(domain.SeverityAlert),
		alerts(domain.SeverityWarning, domain.SeverityWarning, domain.SeverityWarning),
	}

	for i, records := range recordSets {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			prev := 0
			// walk due south toward the reference point from about 150 km away
			for step := 150.0; step >= 0; step -= 0.5 {
				origin := &domain.Coordinate{Latitude: ref.Latitude + step/111.195, Longitude: ref.Longitude}
				rank := e.Assess(origin, records).ThreatLevel.Rank()
				require.GreaterOrEqual(t, rank, prev, "level dropped at %.1f km", step)
				prev = rank
			}
		})
	}
}

func TestAssess_TargetAreaAddsFactorOnly(t *testing.T) {
	origin := coord(19.0760, 72.8777)
	records := []domain.Alert{{
		Severity:   domain.SeverityInfo,
		IsActive:   true,
		TargetArea: &domain.TargetArea{Center: *origin, RadiusKM: 5},
	}}

	a := newEngine().Assess(origin, records)

	assert.Equal(t, domain.ThreatLow, a.ThreatLevel)
	assert.Equal(t, 0.5, a.Confidence)
	assert.Contains(t, a.RiskFactors, "Inside the target area of an active alert")
	assert.Contains(t, a.Recommendations, "Follow the instructions in the targeted alert")
}

func TestAssess_TargetAreaKeepsProximityConfidence(t *testing.T) {
	// About 20 km east of Srinagar Sector HQ.
	origin := coord(34.0837, 75.0145)
	engine := newEngine()

	baseline := engine.Assess(origin, nil)
	targeted := engine.Assess(origin, []domain.Alert{{
		Severity:   domain.SeverityInfo,
		IsActive:   true,
		TargetArea: &domain.TargetArea{Center: *origin, RadiusKM: 2},
	}})

	assert.Equal(t, 0.6, baseline.Confidence)
	assert.Equal(t, baseline.ThreatLevel, targeted.ThreatLevel)
	assert.Equal(t, baseline.Confidence, targeted.Confidence)
	assert.Contains(t, targeted.RiskFactors, "Inside the target area of an active alert")
}

func TestAssess_RecommendationsAreUnique(t *testing.T) {
	a := newEngine().Assess(coord(34.0837, 74.7973), alerts(domain.SeverityEmergency, domain.SeverityEmergency))

	seen := map[string]bool{}
	for _, r := range a.Recommendations {
		assert.False(t, seen[r], "duplicate recommendation %q", r)
		seen[r] = true
	}
}

func TestAssess_NoReferencePoints(t *testing.T) {
	a := scoring.NewEngine(nil).Assess(coord(34.0837, 74.7973), nil)

	assert.Equal(t, domain.ThreatLow, a.ThreatLevel)
	assert.Nil(t, a.NearestReference)
}

type reasonErr struct{ r scoring.FailureReason }

func (e reasonErr) Error() string { return string(e.r) }
func (e reasonErr) Reason() scoring.FailureReason { return e.r }

func TestReasonOf(t *testing.T) {
	assert.Equal(t, scoring.ReasonCircuitOpen, scoring.ReasonOf(fmt.Errorf("feed: %w", reasonErr{scoring.ReasonCircuitOpen})))
	assert.Equal(t, scoring.ReasonUnavailable, scoring.ReasonOf(errors.New("boom")))
}

func TestFallback(t *testing.T) {
	a := scoring.Fallback(scoring.ReasonTimeout, fixedNow)

	assert.Equal(t, domain.ThreatLow, a.ThreatLevel)
	assert.Equal(t, scoring.FallbackConfidence, a.Confidence)
	assert.Equal(t, []string{"Threat data unavailable (timeout)"}, a.RiskFactors)
}

func TestApplyFallback_KeepsLevelCapsConfidence(t *testing.T) {
	in := newEngine().Assess(nil, alerts(domain.SeverityEmergency))
	out := scoring.ApplyFallback(in, scoring.ReasonCircuitOpen)

	assert.Equal(t, domain.ThreatCritical, out.ThreatLevel)
	assert.Equal(t, scoring.FallbackConfidence, out.Confidence)
	assert.Contains(t, out.RiskFactors, "External threat intelligence unavailable (circuit_open)")
	assert.Len(t, in.RiskFactors, len(out.RiskFactors)-1)
}
