package crossing

import (
	"fmt"
	"math"
)

// Default refinement tolerances, matching the usual brentq defaults.
const (
	DefaultXTol    = 2e-12
	DefaultRTol    = 4 * 2.220446049250313e-16
	DefaultMaxIter = 100
)

// RefineConfig controls Brent root refinement. Zero or negative fields fall
// back to the package defaults.
type RefineConfig struct {
	XTol    float64 // absolute tolerance on the crossing point
	RTol    float64 // relative tolerance on the crossing point
	MaxIter int     // iteration budget before ErrNoConvergence
}

// DefaultRefineConfig returns the default tolerances.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{XTol: DefaultXTol, RTol: DefaultRTol, MaxIter: DefaultMaxIter}
}

func (c RefineConfig) withDefaults() RefineConfig {
	if c.XTol <= 0 {
		c.XTol = DefaultXTol
	}
	if c.RTol <= 0 {
		c.RTol = DefaultRTol
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	return c
}

// Root is a refined crossing point.
type Root struct {
	X          float64
	Iterations int
}

// Refine locates the crossing inside b. See RefineRoot.
func Refine(b Bracket, threshold float64, eval Evaluator, cfg RefineConfig, args ...any) (float64, error) {
	r, err := RefineRoot(b, threshold, eval, cfg, args...)
	if err != nil {
		return 0, err
	}
	return r.X, nil
}

// RefineRoot finds x in [b.Lo, b.Hi] where eval(x, threshold, args...) equals
// threshold, using Brent's method (bisection, secant and inverse quadratic
// interpolation).
//
// The shifted endpoint values must have strictly opposite signs, otherwise
// ErrDegenerateBracket is returned. An endpoint that evaluates to exactly zero
// is returned as the root without iterating.
func RefineRoot(b Bracket, threshold float64, eval Evaluator, cfg RefineConfig, args ...any) (Root, error) {
	cfg = cfg.withDefaults()

	f := func(x float64) (float64, error) { return shifted(eval, x, threshold, args) }

	xpre, xcur := b.Lo, b.Hi
	fpre, err := f(xpre)
	if err != nil {
		return Root{}, err
	}
	fcur, err := f(xcur)
	if err != nil {
		return Root{}, err
	}

	if fpre == 0 {
		return Root{X: xpre}, nil
	}
	if fcur == 0 {
		return Root{X: xcur}, nil
	}
	if math.Signbit(fpre) == math.Signbit(fcur) || math.IsNaN(fpre) || math.IsNaN(fcur) {
		return Root{}, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g",
			ErrDegenerateBracket, b.Lo, fpre, b.Hi, fcur)
	}

	var (
		xblk, fblk float64
		spre, scur float64
	)

	for i := 1; i <= cfg.MaxIter; i++ {
		if fpre != 0 && fcur != 0 && math.Signbit(fpre) != math.Signbit(fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		// Keep xcur as the best estimate.
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (cfg.XTol + cfg.RTol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			return Root{X: xcur, Iterations: i}, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}

		fcur, err = f(xcur)
		if err != nil {
			return Root{}, err
		}
	}

	return Root{}, fmt.Errorf("%w: bracket [%g, %g] after %d iterations, last estimate %g",
		ErrNoConvergence, b.Lo, b.Hi, cfg.MaxIter, xcur)
}

// RefineAll refines every bracket in order and returns the crossing points.
func RefineAll(brackets []Bracket, threshold float64, eval Evaluator, cfg RefineConfig, args ...any) ([]float64, error) {
	roots := make([]float64, 0, len(brackets))
	for _, b := range brackets {
		x, err := Refine(b, threshold, eval, cfg, args...)
		if err != nil {
			return nil, err
		}
		roots = append(roots, x)
	}
	return roots, nil
}
