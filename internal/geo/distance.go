package geo

import (
	"github.com/golang/geo/s2"

	"borderwatch/internal/domain"
)

const EarthRadiusKM = 6371.0

// DistanceKM returns the haversine great-circle distance between a and b in kilometers.
func DistanceKM(a, b domain.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKM
}

type Match struct {
	Index      int
	Candidate  domain.Coordinate
	DistanceKM float64
}

// Nearest returns the candidate closest to origin. Ties keep the earliest candidate.
func Nearest(origin domain.Coordinate, candidates []domain.Coordinate) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Index: 0, Candidate: candidates[0], DistanceKM: DistanceKM(origin, candidates[0])}
	for i := 1; i < len(candidates); i++ {
		d := DistanceKM(origin, candidates[i])
		if d < best.DistanceKM {
			best = Match{Index: i, Candidate: candidates[i], DistanceKM: d}
		}
	}
	return best, true
}

// NearestReference is Nearest over named reference points.
func NearestReference(origin domain.Coordinate, refs []domain.ReferencePoint) (domain.ReferencePoint, float64, bool) {
	coords := make([]domain.Coordinate, len(refs))
	for i, r := range refs {
		coords[i] = r.Coordinate
	}
	m, ok := Nearest(origin, coords)
	if !ok {
		return domain.ReferencePoint{}, 0, false
	}
	return refs[m.Index], m.DistanceKM, true
}

func DistanceToNearestReference(origin domain.Coordinate, refs []domain.ReferencePoint) (float64, bool) {
	_, d, ok := NearestReference(origin, refs)
	return d, ok
}

func WithinRadius(origin, center domain.Coordinate, radiusKM float64) bool {
	return DistanceKM(origin, center) <= radiusKM
}
