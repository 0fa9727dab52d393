package transform

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"J2000.0", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		// Vallado Example 3-15.
		{"vallado 3-15", time.Date(2004, 4, 6, 7, 51, 28, 386009000, time.UTC), 2453101.827411875},
		{"non-UTC zone", time.Date(2000, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)), 2451545.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDate(%v) = %.10f, want %.10f", tt.time, got, tt.want)
			}
		})
	}
}

// TestGMST cross-checks against go-satellite, which implements the same IAU-82 model.
func TestGMST(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2004, 4, 6, 7, 51, 28, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 6, 4, 1, 0, 0, time.UTC),
	}

	for _, tm := range times {
		got := GMST(tm)
		ref := satellite.GSTimeFromDate(tm.Year(), int(tm.Month()), tm.Day(), tm.Hour(), tm.Minute(), tm.Second())
		if math.Abs(got-ref) > 1e-8 {
			t.Errorf("GMST(%v) = %.12f, go-satellite = %.12f", tm, got, ref)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("GMST(%v) = %f out of [0, 2π)", tm, got)
		}
	}
}

func TestTEMEToECEFPreservesMagnitude(t *testing.T) {
	teme := PositionTEME{X: 5094.18016, Y: 6127.64465, Z: 6380.34453}
	tm := time.Date(2004, 4, 6, 7, 51, 28, 0, time.UTC)

	ecef := TEMEToECEF(teme, tm)

	want := math.Sqrt(teme.X*teme.X+teme.Y*teme.Y+teme.Z*teme.Z) * 1000
	if math.Abs(ecef.Magnitude()-want) > 1e-3 {
		t.Errorf("|ecef| = %.3f m, want %.3f m", ecef.Magnitude(), want)
	}
	if ecef.Z != teme.Z*1000 {
		t.Errorf("Z changed by rotation: %f", ecef.Z)
	}
}

func TestTEMEToECEFMatchesLibrary(t *testing.T) {
	teme := PositionTEME{X: 6778.0, Y: 120.0, Z: -300.0}
	tm := time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)

	ecef := TEMEToECEF(teme, tm)
	gmst := satellite.GSTimeFromDate(tm.Year(), int(tm.Month()), tm.Day(), tm.Hour(), tm.Minute(), tm.Second())
	ref := satellite.ECIToECEF(satellite.Vector3{X: teme.X, Y: teme.Y, Z: teme.Z}, gmst)

	if math.Abs(ecef.X-ref.X*1000) > 1 || math.Abs(ecef.Y-ref.Y*1000) > 1 || math.Abs(ecef.Z-ref.Z*1000) > 1 {
		t.Errorf("ecef = %+v, go-satellite = %+v km", ecef, ref)
	}
}
