package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Optimizer collects run-level metrics for the vehicle allocation search.
// Each instance owns its registry so tests and tools do not share state.
type Optimizer struct {
	Registry *prometheus.Registry

	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
	explored  prometheus.Histogram
	solutions *prometheus.HistogramVec
}

func NewOptimizer() *Optimizer {
	m := &Optimizer{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "vehicle_optimizer_runs_total", Help: "Optimizer runs by outcome."},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "vehicle_optimizer_run_duration_seconds", Help: "Optimizer run duration in seconds.", Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}},
		),
		explored: prometheus.NewHistogram(
			prometheus.HistogramOpts{Name: "vehicle_optimizer_nodes_explored", Help: "Search nodes visited per run.", Buckets: prometheus.ExponentialBuckets(10, 10, 7)},
		),
		solutions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "vehicle_optimizer_solutions", Help: "Combinations per run by pipeline stage.", Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500}},
			[]string{"stage"},
		),
	}

	m.Registry.MustRegister(m.runs, m.duration, m.explored, m.solutions)
	m.Registry.MustRegister(collectors.NewGoCollector())

	return m
}

// ObserveRun records one optimizer run. outcome is "ok", "empty" or an error class.
func (m *Optimizer) ObserveRun(outcome string, explored, generated, nonDominated, returned int, dur time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.duration.Observe(dur.Seconds())
	m.explored.Observe(float64(explored))
	m.solutions.WithLabelValues("generated").Observe(float64(generated))
	m.solutions.WithLabelValues("non_dominated").Observe(float64(nonDominated))
	m.solutions.WithLabelValues("returned").Observe(float64(returned))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Optimizer) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: write textfile %q: %w", path, err)
	}
	return nil
}
