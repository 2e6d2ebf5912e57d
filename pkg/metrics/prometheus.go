package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamTotal    *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	retriesTotal     *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	tickersExtracted prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvoice_upstream_requests_total",
				Help: "Total number of upstream collaborator calls",
			},
			[]string{"agent", "outcome"},
		),
		upstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finvoice_upstream_duration_seconds",
				Help:    "Duration of upstream collaborator calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"agent"},
		),
		retriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvoice_upstream_retries_total",
				Help: "Total number of upstream retry attempts",
			},
			[]string{"agent"},
		),
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finvoice_requests_total",
				Help: "Total number of processed queries by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finvoice_request_duration_seconds",
				Help:    "End-to-end query processing duration in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"outcome"},
		),
		tickersExtracted: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finvoice_tickers_extracted",
				Help:    "Number of tickers extracted per query",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
			},
		),
	}
}

// RecordUpstream records the outcome of one upstream call.
func (r *Recorder) RecordUpstream(agent, outcome string) {
	r.upstreamTotal.WithLabelValues(agent, outcome).Inc()
}

// RecordUpstreamLatency records upstream call latency in seconds.
func (r *Recorder) RecordUpstreamLatency(agent string, seconds float64) {
	r.upstreamLatency.WithLabelValues(agent).Observe(seconds)
}

// RecordRetry records one retry attempt against an agent.
func (r *Recorder) RecordRetry(agent string) {
	r.retriesTotal.WithLabelValues(agent).Inc()
}

// RecordRequest records one finished query.
func (r *Recorder) RecordRequest(outcome string, seconds float64) {
	r.requestsTotal.WithLabelValues(outcome).Inc()
	r.requestDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordTickersExtracted records how many tickers a query yielded.
func (r *Recorder) RecordTickersExtracted(n int) {
	r.tickersExtracted.Observe(float64(n))
}
