// Package metrics provides optional, nil-safe Prometheus instrumentation
// for the solar-system driver. The simulation core itself never imports
// this package directly into its control flow beyond accepting an
// optional *Collector (spec §7: "the core never logs"; metrics are a
// distinct, opt-in concern from logging).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every metric the driver reports. A nil *Collector is
// valid: every method is a no-op on a nil receiver, so callers that don't
// want instrumentation simply pass nil.
type Collector struct {
	registry *prometheus.Registry

	stepDuration   *prometheus.HistogramVec
	numericalError *prometheus.CounterVec
	reanchorTotal  *prometheus.CounterVec
	driftMagnitude *prometheus.GaugeVec
}

// New builds a Collector registered against a fresh, private registry
// (rather than the global default registry the teacher's collector used),
// so that multiple simulations in the same process never collide on
// metric registration.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.stepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nbody_step_duration_seconds",
			Help: "Wall-clock time spent advancing one outer simulation step.",
		},
		[]string{"system"},
	)
	c.numericalError = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbody_numerical_errors_total",
			Help: "Count of NumericalError failures surfaced by the integration core.",
		},
		[]string{"system"},
	)
	c.reanchorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbody_reanchor_total",
			Help: "Count of ephemeris-anchored drift corrections applied to a subsystem.",
		},
		[]string{"system"},
	)
	c.driftMagnitude = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nbody_drift_magnitude_meters",
			Help: "Magnitude of the most recent drift correction offset.",
		},
		[]string{"system"},
	)

	c.registry.MustRegister(c.stepDuration, c.numericalError, c.reanchorTotal, c.driftMagnitude)
	return c
}

// Registry exposes the private registry, e.g. for a caller to serve it via
// promhttp.HandlerFor. Returns nil on a nil Collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveStepDuration records how long one outer step of system took.
func (c *Collector) ObserveStepDuration(system string, d time.Duration) {
	if c == nil {
		return
	}
	c.stepDuration.WithLabelValues(system).Observe(d.Seconds())
}

// IncNumericalError records one NumericalError surfaced while advancing
// system.
func (c *Collector) IncNumericalError(system string) {
	if c == nil {
		return
	}
	c.numericalError.WithLabelValues(system).Inc()
}

// IncReanchor records one ephemeris-anchored re-anchor of system.
func (c *Collector) IncReanchor(system string) {
	if c == nil {
		return
	}
	c.reanchorTotal.WithLabelValues(system).Inc()
}

// SetDriftMagnitude records the magnitude, in meters, of the most recent
// drift correction offset applied to system.
func (c *Collector) SetDriftMagnitude(system string, meters float64) {
	if c == nil {
		return
	}
	c.driftMagnitude.WithLabelValues(system).Set(meters)
}
