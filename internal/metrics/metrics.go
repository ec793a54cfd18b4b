package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label keys shared by the collectors below.
const (
	LabelResult = "result"
	LabelStatus = "status"
	LabelJob    = "job"
)

// Recorder holds the projection collectors in its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	projections   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	overrides     *prometheus.CounterVec
	jobErrors     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopsbot",
			Name:      "projections_total",
			Help:      "Matchup projection loads by result.",
		}, []string{LabelResult}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hoopsbot",
			Name:      "projection_duration_seconds",
			Help:      "Time to fetch and build a matchup projection.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{LabelResult}),
		overrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopsbot",
			Name:      "player_overrides_total",
			Help:      "Manual player status changes by status.",
		}, []string{LabelStatus}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hoopsbot",
			Name:      "scheduled_job_errors_total",
			Help:      "Failed scheduled jobs by job name.",
		}, []string{LabelJob}),
	}

	reg.MustRegister(r.projections, r.buildDuration, r.overrides, r.jobErrors)
	return r
}

// ObserveProjection records one Load outcome: ok, error or stale.
func (r *Recorder) ObserveProjection(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.projections.WithLabelValues(outcome).Inc()
	r.buildDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (r *Recorder) ObserveOverride(status string) {
	if r == nil {
		return
	}
	r.overrides.WithLabelValues(status).Inc()
}

func (r *Recorder) ObserveJobError(job string) {
	if r == nil {
		return
	}
	r.jobErrors.WithLabelValues(job).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
