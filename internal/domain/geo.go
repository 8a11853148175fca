package domain

type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// ReferencePoint is a fixed named anchor such as a border post.
type ReferencePoint struct {
	Name string `json:"name"`
	Coordinate
}
