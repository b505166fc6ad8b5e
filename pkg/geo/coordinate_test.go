package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_Symmetric(t *testing.T) {
	warehouse := Coordinate{Lat: 14.6349, Lng: -90.5069}
	destinations := []Coordinate{
		{Lat: 14.5586, Lng: -90.7295},
		{Lat: 15.7835, Lng: -88.5912},
		{Lat: -33.4489, Lng: -70.6693},
		{Lat: 0, Lng: 0},
	}

	for _, dest := range destinations {
		forward := HaversineKm(warehouse, dest)
		backward := HaversineKm(dest, warehouse)
		if math.Abs(forward-backward) > 1e-9 {
			t.Fatalf("distance not symmetric: %v vs %v", forward, backward)
		}
	}
}

func TestHaversineKm_ZeroAtSamePoint(t *testing.T) {
	point := Coordinate{Lat: 14.6349, Lng: -90.5069}
	if got := HaversineKm(point, point); got != 0 {
		t.Fatalf("expected zero distance, got %v", got)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Guatemala City to Quetzaltenango, roughly 105 km great-circle.
	guate := Coordinate{Lat: 14.6349, Lng: -90.5069}
	xela := Coordinate{Lat: 14.8347, Lng: -91.5180}
	got := HaversineKm(guate, xela)
	if got < 100 || got > 115 {
		t.Fatalf("expected distance near 105km, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Lat: 14.6, Lng: -90.5}, false},
		{"lat too high", Coordinate{Lat: 91, Lng: 0}, true},
		{"lat too low", Coordinate{Lat: -91, Lng: 0}, true},
		{"lng too high", Coordinate{Lat: 0, Lng: 181}, true},
		{"lng too low", Coordinate{Lat: 0, Lng: -181}, true},
		{"boundary", Coordinate{Lat: 90, Lng: -180}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coord.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestString_FiveDecimals(t *testing.T) {
	c := Coordinate{Lat: 14.6349, Lng: -90.5069}
	if got := c.String(); got != "14.63490, -90.50690" {
		t.Fatalf("unexpected formatting %q", got)
	}
}
