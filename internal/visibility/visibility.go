// Package visibility finds the time windows in which satellites are above a
// minimum elevation for a ground observer.
package visibility

import (
	"fmt"
	"time"

	"github.com/star/starwindow/internal/crossing"
	"github.com/star/starwindow/internal/tle"
	"github.com/star/starwindow/internal/transform"
)

// Mode selects how windows are bounded.
type Mode string

const (
	// ModeContinuous refines every rise and set time with Brent's method.
	ModeContinuous Mode = "continuous"
	// ModeDiscrete reports windows on the coarse sample grid only.
	ModeDiscrete Mode = "discrete"
)

// ParseMode accepts "continuous" or "discrete". The empty string selects
// ModeContinuous.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeContinuous:
		return ModeContinuous, nil
	case ModeDiscrete:
		return ModeDiscrete, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want continuous or discrete)", s)
	}
}

func (m Mode) classifier(cfg crossing.RefineConfig) crossing.Classifier {
	if m == ModeDiscrete {
		return crossing.Discrete{}
	}
	return crossing.Continuous{Refine: cfg}
}

// Window is a span during which the satellite is at or above the minimum
// elevation.
type Window struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DurationSeconds  float64   `json:"duration_seconds"`
	MaxElevation     float64   `json:"max_elevation"`
	MaxElevationTime time.Time `json:"max_elevation_time"`
	AzimuthAtMax     float64   `json:"azimuth_at_max"`
	RangeAtMaxKm     float64   `json:"range_at_max_km"`

	// Sub-satellite point at MaxElevationTime.
	SubLatDeg  float64 `json:"sub_lat_deg"`
	SubLonDeg  float64 `json:"sub_lon_deg"`
	AltitudeKm float64 `json:"altitude_km"`
}

// Gap is a span during which the satellite is below the minimum elevation.
type Gap struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// SatelliteWindows holds the result for one satellite. A failed search sets
// Error and leaves Windows empty.
type SatelliteWindows struct {
	NORADID     int      `json:"norad_id"`
	Name        string   `json:"name,omitempty"`
	Windows     []Window `json:"windows"`
	Gaps        []Gap    `json:"gaps,omitempty"`
	Evaluations int      `json:"evaluations"`
	Error       string   `json:"error,omitempty"`
}

// Request holds the parameters for a window search.
type Request struct {
	Observer     transform.Observer
	Entries      []tle.Entry
	Start        time.Time
	End          time.Time
	Step         time.Duration // coarse sampling step; must be shorter than the shortest window of interest
	MinElevation float64       // degrees
	MinDuration  time.Duration // windows shorter than this are dropped
	Mode         Mode
	Workers      int  // satellites searched concurrently; <= 0 means one per CPU
	Gaps         bool // also report the spans between windows
}

// DefaultStep is used when Request.Step is zero.
const DefaultStep = 30 * time.Second
