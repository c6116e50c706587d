// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder owns a private registry so a single run can be dumped to a
// textfile for the node-exporter collector.
type Recorder struct {
	registry *prometheus.Registry

	StageDuration        *prometheus.HistogramVec
	StageFailures        *prometheus.CounterVec
	Substitutions        prometheus.Counter
	UnresolvedReferences prometheus.Counter
	Runs                 *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "theme_mapper_stage_duration_seconds",
				Help:    "Duration of each pipeline stage in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"stage"},
		),
		StageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "theme_mapper_stage_failures_total",
				Help: "Total number of failed pipeline stages",
			},
			[]string{"stage", "error_code"},
		),
		Substitutions: factory.NewCounter(prometheus.CounterOpts{
			Name: "theme_mapper_substitutions_total",
			Help: "Total number of variable references substituted",
		}),
		UnresolvedReferences: factory.NewCounter(prometheus.CounterOpts{
			Name: "theme_mapper_unresolved_references_total",
			Help: "Total number of variable references with no table entry",
		}),
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "theme_mapper_runs_total",
				Help: "Total number of runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Registry exposes the registry so other collectors can join it.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records the stage duration, and a failure when errorCode is set.
func (r *Recorder) ObserveStage(stage string, d time.Duration, errorCode string) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if errorCode != "" {
		r.StageFailures.WithLabelValues(stage, errorCode).Inc()
	}
}

func (r *Recorder) RecordResolution(substitutions, unresolved int) {
	r.Substitutions.Add(float64(substitutions))
	r.UnresolvedReferences.Add(float64(unresolved))
}

func (r *Recorder) RecordRun(outcome string) {
	r.Runs.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes every registered metric in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
