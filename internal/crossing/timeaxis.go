package crossing

import (
	"errors"
	"math"
	"time"
)

// TimeAxis maps a time range onto a float64 domain measured in seconds from
// Start, so time-based signals can be fed to the engine.
type TimeAxis struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
}

// NewTimeAxis validates the range and step.
func NewTimeAxis(start, end time.Time, step time.Duration) (TimeAxis, error) {
	if step <= 0 {
		return TimeAxis{}, errors.New("crossing: time step must be positive")
	}
	if !end.After(start) {
		return TimeAxis{}, errors.New("crossing: time range end must be after start")
	}
	return TimeAxis{Start: start, End: end, Step: step}, nil
}

// Domain returns the sample points start, start+step, ... in seconds. The last
// point is always End, even when the range is not a whole number of steps.
func (a TimeAxis) Domain() []float64 {
	total := a.End.Sub(a.Start).Seconds()
	step := a.Step.Seconds()
	n := int(math.Floor(total / step))

	domain := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		// floor can round n up by one when total/step is within an ulp of an integer
		domain = append(domain, min(float64(i)*step, total))
	}
	if domain[len(domain)-1] < total {
		domain = append(domain, total)
	}
	return domain
}

// Time converts a domain value back to wall-clock time.
func (a TimeAxis) Time(x float64) time.Time {
	return a.Start.Add(time.Duration(x * float64(time.Second)))
}

// Seconds converts a wall-clock time to a domain value.
func (a TimeAxis) Seconds(t time.Time) float64 {
	return t.Sub(a.Start).Seconds()
}
