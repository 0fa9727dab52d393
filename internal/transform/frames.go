// Package transform converts SGP4 output into what a ground observer sees.
//
// SGP4 positions are in TEME (True Equator Mean Equinox). They are rotated into
// ECEF with a GMST-only rotation (TEME -> PEF ~ ECEF), ignoring polar motion and
// the equation of the equinoxes. The resulting error is tens of meters, far
// below what matters for elevation thresholds.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3-4.
package transform

import (
	"math"
	"time"
)

const (
	j2000 = 2451545.0 // Julian Date of J2000.0

	secondsPerDay = 86400.0
)

// PositionTEME is a satellite state in the TEME frame.
type PositionTEME struct {
	X, Y, Z    float64 // km
	VX, VY, VZ float64 // km/s
}

// PositionECEF is a satellite position in the ECEF frame.
type PositionECEF struct {
	X, Y, Z float64 // meters
}

// Magnitude returns the distance from Earth's center in meters.
func (p PositionECEF) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// JulianDate converts a UTC time to a Julian Date, including fractional seconds.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	// Jan/Feb count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	dayFrac := (float64(t.Hour())*3600 +
		float64(t.Minute())*60 +
		float64(t.Second()) +
		float64(t.Nanosecond())/1e9) / secondsPerDay

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) +
		float64(t.Day()) + b - 1524.5 + dayFrac
}

// GMST returns Greenwich Mean Sidereal Time in radians, IAU-82 model
// (Vallado Eq. 3-47), normalized to [0, 2π).
func GMST(t time.Time) float64 {
	tu := (JulianDate(t) - j2000) / 36525.0

	// 876600h expressed in seconds is 3155760000.
	sec := 67310.54841 +
		(3155760000.0+8640184.812866)*tu +
		0.093104*tu*tu -
		6.2e-6*tu*tu*tu

	sec = math.Mod(sec, secondsPerDay)
	if sec < 0 {
		sec += secondsPerDay
	}
	return sec / secondsPerDay * 2 * math.Pi
}

// TEMEToECEF rotates a TEME position about Z by GMST(t) and converts km to meters.
func TEMEToECEF(teme PositionTEME, t time.Time) PositionECEF {
	g := GMST(t)
	c, s := math.Cos(g), math.Sin(g)
	return PositionECEF{
		X: (teme.X*c + teme.Y*s) * 1000,
		Y: (-teme.X*s + teme.Y*c) * 1000,
		Z: teme.Z * 1000,
	}
}
