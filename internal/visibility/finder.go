package visibility

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/star/starwindow/internal/crossing"
	"github.com/star/starwindow/internal/metrics"
	"github.com/star/starwindow/internal/propagation"
	"github.com/star/starwindow/internal/tle"
	"github.com/star/starwindow/internal/transform"
)

// peakHalfWidth is the half step of the central difference used to locate
// maximum elevation.
const peakHalfWidth = 0.5 // seconds

// peakRefine needs far less precision than rise and set times.
var peakRefine = crossing.RefineConfig{XTol: 1e-3}

// Finder runs window searches. Safe for concurrent use.
type Finder struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	refine  crossing.RefineConfig
}

// NewFinder creates a Finder. m may be nil.
func NewFinder(logger *slog.Logger, m *metrics.Metrics) *Finder {
	return &Finder{
		logger:  logger,
		metrics: m,
		refine:  crossing.DefaultRefineConfig(),
	}
}

// Windows searches every entry in req. Each satellite is processed in its own
// goroutine, bounded by req.Workers. A failure for one satellite is reported
// in its result and does not affect the others; the returned error covers
// invalid requests only.
func (f *Finder) Windows(ctx context.Context, req Request) ([]SatelliteWindows, error) {
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	req.Mode = mode
	if req.Step == 0 {
		req.Step = DefaultStep
	}
	axis, err := crossing.NewTimeAxis(req.Start, req.End, req.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid time range: %w", err)
	}
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	domain := axis.Domain()
	results := make([]SatelliteWindows, len(req.Entries))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, entry := range req.Entries {
		g.Go(func() error {
			results[i] = f.satellite(ctx, req, axis, domain, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.logger.Debug("window search complete",
		"component", "visibility",
		"satellites", len(req.Entries),
		"samples", len(domain),
		"mode", string(req.Mode),
	)
	return results, nil
}

func (f *Finder) satellite(ctx context.Context, req Request, axis crossing.TimeAxis, domain []float64, entry tle.Entry) SatelliteWindows {
	res := SatelliteWindows{NORADID: entry.NORADID, Name: entry.Name}

	fail := func(err error) SatelliteWindows {
		f.metrics.SatelliteFailed()
		f.logger.Warn("window search failed",
			"component", "visibility",
			"norad_id", entry.NORADID,
			"error", err,
		)
		res.Error = err.Error()
		return res
	}

	prop, err := propagation.NewSGP4Propagator(entry.Line1, entry.Line2, entry.NORADID)
	if err != nil {
		return fail(fmt.Errorf("sgp4 init: %w", err))
	}

	elev := &elevation{ctx: ctx, prop: prop, obs: req.Observer, axis: axis}
	problem := crossing.Problem{
		Domain:    domain,
		Threshold: req.MinElevation,
		Eval:      f.metrics.Instrument(string(req.Mode), elev),
	}

	start := time.Now()
	part, err := req.Mode.classifier(f.refine).Classify(problem)
	if err != nil {
		return fail(err)
	}
	f.metrics.ObservePartition(string(req.Mode), part, time.Since(start))
	res.Evaluations = part.Stats.Evaluations

	peakEval := f.metrics.Instrument("peak", crossing.EvaluatorFunc(elev.slope))
	res.Windows = make([]Window, 0, len(part.Positive))
	for _, iv := range part.Positive {
		w := Window{
			Start:           axis.Time(iv.Start),
			End:             axis.Time(iv.End),
			DurationSeconds: iv.End - iv.Start,
		}
		if req.MinDuration > 0 && w.DurationSeconds < req.MinDuration.Seconds() {
			continue
		}
		peak, err := findPeak(iv, peakEval)
		if err != nil {
			return fail(fmt.Errorf("locating peak of window at %s: %w", w.Start.Format(time.RFC3339), err))
		}
		la, pos, err := elev.lookFrom(peak)
		if err != nil {
			return fail(err)
		}
		sub := transform.ToGeodetic(pos)
		w.MaxElevationTime = axis.Time(peak)
		w.MaxElevation = la.ElevationDeg
		w.AzimuthAtMax = la.AzimuthDeg
		w.RangeAtMaxKm = la.RangeKm
		w.SubLatDeg = sub.LatDeg
		w.SubLonDeg = sub.LonDeg
		w.AltitudeKm = sub.AltM / 1000
		res.Windows = append(res.Windows, w)
	}
	f.metrics.AddWindows(len(res.Windows))

	if req.Gaps {
		res.Gaps = make([]Gap, len(part.Negative))
		for i, iv := range part.Negative {
			res.Gaps[i] = Gap{
				Start:           axis.Time(iv.Start),
				End:             axis.Time(iv.End),
				DurationSeconds: iv.End - iv.Start,
			}
		}
	}
	return res
}

// findPeak returns the point of maximum elevation in iv as the zero of the
// elevation rate. When the rate does not change sign inside iv the window is
// cut by the search range and the peak sits at the higher end.
func findPeak(iv crossing.Interval, slope crossing.Evaluator) (float64, error) {
	if iv.End <= iv.Start {
		return iv.Start, nil
	}
	lo, err := slope.Evaluate(iv.Start, 0)
	if err != nil {
		return 0, err
	}
	hi, err := slope.Evaluate(iv.End, 0)
	if err != nil {
		return 0, err
	}
	switch {
	case lo < 0:
		return iv.Start, nil
	case hi >= 0:
		return iv.End, nil
	}
	return crossing.Refine(crossing.Bracket{Lo: iv.Start, Hi: iv.End}, 0, slope, peakRefine)
}

// elevation evaluates the observer's elevation angle in degrees at a domain
// point. It fails with the context error once ctx is done, which aborts the
// classification in progress.
type elevation struct {
	ctx  context.Context
	prop *propagation.SGP4Propagator
	obs  transform.Observer
	axis crossing.TimeAxis
}

func (e *elevation) Evaluate(x, _ float64, _ ...any) (float64, error) {
	la, _, err := e.lookFrom(x)
	if err != nil {
		return 0, err
	}
	return la.ElevationDeg, nil
}

// lookFrom returns the look angles at x and the satellite position they were
// computed from.
func (e *elevation) lookFrom(x float64) (transform.LookAngles, transform.PositionECEF, error) {
	if err := e.ctx.Err(); err != nil {
		return transform.LookAngles{}, transform.PositionECEF{}, err
	}
	ecef, err := e.prop.ECEFAt(e.axis.Time(x))
	if err != nil {
		return transform.LookAngles{}, transform.PositionECEF{}, err
	}
	return e.obs.Look(ecef), ecef, nil
}

// slope is the central-difference elevation rate in degrees per second.
func (e *elevation) slope(x, _ float64, _ ...any) (float64, error) {
	a, err := e.Evaluate(x-peakHalfWidth, 0)
	if err != nil {
		return 0, err
	}
	b, err := e.Evaluate(x+peakHalfWidth, 0)
	if err != nil {
		return 0, err
	}
	return (b - a) / (2 * peakHalfWidth), nil
}
