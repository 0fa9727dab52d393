// Package metrics exposes Prometheus instrumentation for window searches.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/star/starwindow/internal/crossing"
)

const namespace = "starwindow"

// Metrics holds the collectors and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	evaluations      *prometheus.CounterVec
	evaluatorErrors  *prometheus.CounterVec
	brackets         *prometheus.CounterVec
	refineIterations prometheus.Histogram
	classifySeconds  *prometheus.HistogramVec
	windowsFound     prometheus.Counter
	satelliteErrors  prometheus.Counter
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of evaluator calls.",
			},
			[]string{"mode"},
		),
		evaluatorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluator_errors_total",
				Help:      "Total number of evaluator calls that returned an error.",
			},
			[]string{"mode"},
		),
		brackets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "brackets_total",
				Help:      "Total number of sign changes found on the coarse grid.",
			},
			[]string{"mode"},
		),
		refineIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refine_iterations",
			Help:      "Brent iterations summed over one classification.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		classifySeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "classify_duration_seconds",
				Help:      "Time spent classifying one satellite.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		windowsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_found_total",
			Help:      "Total number of visibility windows reported.",
		}),
		satelliteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "satellite_errors_total",
			Help:      "Total number of satellites whose search failed.",
		}),
	}

	m.registry.MustRegister(
		m.evaluations,
		m.evaluatorErrors,
		m.brackets,
		m.refineIterations,
		m.classifySeconds,
		m.windowsFound,
		m.satelliteErrors,
	)
	return m
}

// Instrument wraps eval so every call is counted under mode.
func (m *Metrics) Instrument(mode string, eval crossing.Evaluator) crossing.Evaluator {
	if m == nil {
		return eval
	}
	calls := m.evaluations.WithLabelValues(mode)
	errs := m.evaluatorErrors.WithLabelValues(mode)
	return crossing.EvaluatorFunc(func(x, threshold float64, args ...any) (float64, error) {
		calls.Inc()
		v, err := eval.Evaluate(x, threshold, args...)
		if err != nil {
			errs.Inc()
		}
		return v, err
	})
}

// ObservePartition records the work done by one classification.
func (m *Metrics) ObservePartition(mode string, p crossing.Partition, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.brackets.WithLabelValues(mode).Add(float64(p.Stats.Brackets))
	m.classifySeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
	if len(p.Crossings) > 0 {
		m.refineIterations.Observe(float64(p.Stats.RefineIterations))
	}
}

// AddWindows counts reported visibility windows.
func (m *Metrics) AddWindows(n int) {
	if m == nil {
		return
	}
	m.windowsFound.Add(float64(n))
}

// SatelliteFailed counts a satellite whose search returned an error.
func (m *Metrics) SatelliteFailed() {
	if m == nil {
		return
	}
	m.satelliteErrors.Inc()
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteText dumps every metric family in the text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
