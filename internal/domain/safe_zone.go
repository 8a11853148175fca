package domain

import "github.com/google/uuid"

type SafeZone struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Location Coordinate `json:"location"`
	Capacity int        `json:"capacity"`
	IsActive bool       `json:"isActive"`
}

type NearestSafeZone struct {
	Zone       SafeZone `json:"zone"`
	DistanceKM float64  `json:"distanceKm"`
}
