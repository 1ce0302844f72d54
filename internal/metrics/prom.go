// Package metrics exposes Prometheus collectors for the recommender.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for rank requests.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeUnknownTag = "unknown_tag"
	OutcomeError      = "error"
)

var (
	rankRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_rank_requests_total",
			Help: "Number of ranking requests by outcome",
		},
		[]string{"outcome"},
	)

	candidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_candidates_total",
			Help: "Tasks scored and tasks kept after the tag threshold",
		},
		[]string{"stage"},
	)

	unknownTags = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_unknown_tags_total",
			Help: "Lookups of tags missing from the vector model",
		},
	)

	rankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_rank_duration_seconds",
			Help:    "Time spent ranking one worker against its task list",
			Buckets: prometheus.DefBuckets,
		},
	)

	registry = newRegistry()
)

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	Register(r)
	r.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

// Register registers the recommender metrics with the provided registerer.
func Register(r prometheus.Registerer) {
	r.MustRegister(rankRequests, candidates, unknownTags, rankDuration)
}

// Registry returns the registry served by Handler.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordRankRequest increments the request counter for outcome.
func RecordRankRequest(outcome string) {
	rankRequests.WithLabelValues(outcome).Inc()
}

// RecordCandidates counts how many tasks were scored and how many passed the threshold.
func RecordCandidates(scored, kept int) {
	candidates.WithLabelValues("scored").Add(float64(scored))
	candidates.WithLabelValues("kept").Add(float64(kept))
}

// RecordUnknownTag increments the unknown tag counter.
func RecordUnknownTag() {
	unknownTags.Inc()
}

// ObserveRankDuration records how long one ranking took.
func ObserveRankDuration(d time.Duration) {
	rankDuration.Observe(d.Seconds())
}
