// Package propagation wraps SGP4 for the elevation evaluators.
package propagation

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/star/starwindow/internal/transform"
)

// SGP4 library: github.com/joshuaferrara/go-satellite (pure Go, no CGO).
//
// The library only propagates to whole seconds and takes Satellite by value,
// so SGP4 error codes are invisible to us. PositionAt interpolates between the
// surrounding whole seconds to give root refinement a continuous signal, and
// failures are detected from the output (NaN/Inf, implausible radius).

// Position magnitude bounds in km for anything in Earth orbit.
const (
	minRadiusKm = 6200.0
	maxRadiusKm = 50000.0
)

// SGP4Propagator propagates a single satellite. Safe for concurrent use.
type SGP4Propagator struct {
	sat     satellite.Satellite
	noradID int
}

// NewSGP4Propagator initializes SGP4 from a TLE pair.
//
// The lines are pre-validated because go-satellite calls log.Fatal on
// malformed input.
func NewSGP4Propagator(line1, line2 string, noradID int) (*SGP4Propagator, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for NORAD %d: %w", noradID, err)
	}

	sat := satellite.TLEToSat(strings.TrimSpace(line1), strings.TrimSpace(line2), satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed for NORAD %d: code=%d %s", noradID, sat.Error, sat.ErrorStr)
	}
	return &SGP4Propagator{sat: sat, noradID: noradID}, nil
}

// NORADID returns the catalog number the propagator was built for.
func (p *SGP4Propagator) NORADID() int {
	return p.noradID
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// PositionAt returns the TEME state at t, linearly interpolated between the
// whole seconds either side of t.
func (p *SGP4Propagator) PositionAt(t time.Time) (transform.PositionTEME, error) {
	t = t.UTC()
	lo := t.Truncate(time.Second)

	a, err := p.propagate(lo)
	if err != nil {
		return transform.PositionTEME{}, err
	}
	frac := t.Sub(lo).Seconds()
	if frac == 0 {
		return a, nil
	}

	b, err := p.propagate(lo.Add(time.Second))
	if err != nil {
		return transform.PositionTEME{}, err
	}

	lerp := func(x, y float64) float64 { return x + (y-x)*frac }
	return transform.PositionTEME{
		X:  lerp(a.X, b.X),
		Y:  lerp(a.Y, b.Y),
		Z:  lerp(a.Z, b.Z),
		VX: lerp(a.VX, b.VX),
		VY: lerp(a.VY, b.VY),
		VZ: lerp(a.VZ, b.VZ),
	}, nil
}

// ECEFAt returns the ECEF position at t.
func (p *SGP4Propagator) ECEFAt(t time.Time) (transform.PositionECEF, error) {
	teme, err := p.PositionAt(t)
	if err != nil {
		return transform.PositionECEF{}, err
	}
	return transform.TEMEToECEF(teme, t), nil
}

func (p *SGP4Propagator) propagate(t time.Time) (transform.PositionTEME, error) {
	pos, vel := satellite.Propagate(p.sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
		math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
		return transform.PositionTEME{}, fmt.Errorf("sgp4 propagation failed for NORAD %d at %s: output is NaN/Inf",
			p.noradID, t.Format(time.RFC3339))
	}

	mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if mag < minRadiusKm || mag > maxRadiusKm {
		return transform.PositionTEME{}, fmt.Errorf("sgp4 propagation failed for NORAD %d at %s: unreasonable position magnitude %.1f km",
			p.noradID, t.Format(time.RFC3339), mag)
	}

	return transform.PositionTEME{X: pos.X, Y: pos.Y, Z: pos.Z, VX: vel.X, VY: vel.Y, VZ: vel.Z}, nil
}
