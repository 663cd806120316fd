package emfield

import (
	"math"
	"testing"
)

func TestHaversineDistanceKmZero(t *testing.T) {
	p := LatLon{Lat: 45, Lon: -93}
	if d := HaversineDistanceKm(p, p); d != 0 {
		t.Errorf("coincident points: got %v, want 0", d)
	}
}

func TestHaversineDistanceKmKnown(t *testing.T) {
	// One degree of latitude along a meridian, at the effective-earth
	// radius, should be close to the nominal ~111 km per degree scaled
	// by k=4/3's radius, not the true earth radius.
	a := LatLon{Lat: 0, Lon: 0}
	b := LatLon{Lat: 1, Lon: 0}
	got := HaversineDistanceKm(a, b)
	want := effectiveEarthRadiusKm * toRadians(1)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestForwardAzimuthDegCardinal(t *testing.T) {
	origin := LatLon{Lat: 0, Lon: 0}
	cases := []struct {
		name string
		dst  LatLon
		want float64
	}{
		{"north", LatLon{Lat: 1, Lon: 0}, 0},
		{"east", LatLon{Lat: 0, Lon: 1}, 90},
		{"south", LatLon{Lat: -1, Lon: 0}, 180},
		{"west", LatLon{Lat: 0, Lon: -1}, 270},
	}
	for _, c := range cases {
		got := ForwardAzimuthDeg(origin, c.dst)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestForwardAzimuthDegCoincident(t *testing.T) {
	p := LatLon{Lat: 10, Lon: 10}
	if got := ForwardAzimuthDeg(p, p); got != 0 {
		t.Errorf("coincident points: got %v, want 0", got)
	}
}

func TestElevationAngleDegSameAltitude(t *testing.T) {
	src := LatLon{Lat: 0, Lon: 0}
	dst := LatLon{Lat: 0, Lon: 0.01}
	el := ElevationAngleDeg(src, 10, dst, 10)
	if el >= 0 {
		t.Errorf("equal altitudes at nonzero range should see a negative elevation from curvature drop, got %v", el)
	}
}

func TestElevationAngleDegRisesWithTargetAltitude(t *testing.T) {
	src := LatLon{Lat: 0, Lon: 0}
	dst := LatLon{Lat: 0, Lon: 0.01}
	low := ElevationAngleDeg(src, 0, dst, 0)
	high := ElevationAngleDeg(src, 0, dst, 5000)
	if high <= low {
		t.Errorf("raising the target altitude should raise the elevation angle: low=%v high=%v", low, high)
	}
}
