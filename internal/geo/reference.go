package geo

import "borderwatch/internal/domain"

// DefaultReferencePoints are the fixed anchors used when no override is configured.
func DefaultReferencePoints() []domain.ReferencePoint {
	return []domain.ReferencePoint{
		{Name: "Srinagar Sector HQ", Coordinate: domain.Coordinate{Latitude: 34.0837, Longitude: 74.7973}},
		{Name: "Uri", Coordinate: domain.Coordinate{Latitude: 34.0800, Longitude: 74.0500}},
		{Name: "Kupwara", Coordinate: domain.Coordinate{Latitude: 34.5260, Longitude: 74.2550}},
		{Name: "Poonch", Coordinate: domain.Coordinate{Latitude: 33.7700, Longitude: 74.0920}},
		{Name: "Kargil", Coordinate: domain.Coordinate{Latitude: 34.5539, Longitude: 76.1349}},
		{Name: "Jammu", Coordinate: domain.Coordinate{Latitude: 32.7266, Longitude: 74.8570}},
		{Name: "Attari-Wagah", Coordinate: domain.Coordinate{Latitude: 31.6047, Longitude: 74.5727}},
	}
}
