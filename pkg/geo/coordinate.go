package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks the coordinate falls inside the WGS84 envelope.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v must be between -90 and 90", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v must be between -180 and 180", c.Lng)
	}
	return nil
}

// IsZero reports whether the coordinate is the unset zero value. The null
// island pair never appears as a real destination here.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// String renders the coordinate as "lat, lng" with five decimals, the format
// the payment payload carries for the destination address.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// HaversineKm computes the great-circle distance between two coordinates.
// Used for the destination preview only; the tariff service computes the
// authoritative distance.
func HaversineKm(a, b Coordinate) float64 {
	latA := toRadians(a.Lat)
	latB := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
