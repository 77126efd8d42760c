package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus instruments for the signal pipeline.
type Recorder struct {
	tradesParsed    *prometheus.CounterVec
	cotObservations *prometheus.CounterVec
	cotConflicts    prometheus.Counter
	queueItems      *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		tradesParsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copydesk_trades_parsed_total",
				Help: "Trade intents extracted from raw journal text",
			},
			[]string{"strategy"},
		),
		cotObservations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copydesk_cot_observations_total",
				Help: "COT stance observations extracted per report source",
			},
			[]string{"source"},
		),
		cotConflicts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "copydesk_cot_conflicts_total",
				Help: "Merged COT items where the two report sources disagreed",
			},
		),
		queueItems: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copydesk_queue_items_total",
				Help: "Queue items built during copy fan-out",
			},
			[]string{"account"},
		),
		submissions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copydesk_submissions_total",
				Help: "Queue plan submissions to the execution bridge",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copydesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "copydesk_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTradesParsed records trade intents produced by a parse strategy.
func (r *Recorder) RecordTradesParsed(strategy string, n int) {
	r.tradesParsed.WithLabelValues(strategy).Add(float64(n))
}

// RecordCOTObservations records stance observations for a report source.
func (r *Recorder) RecordCOTObservations(source string, n int) {
	r.cotObservations.WithLabelValues(source).Add(float64(n))
}

// RecordCOTConflict records a disagreement between report sources.
func (r *Recorder) RecordCOTConflict() {
	r.cotConflicts.Inc()
}

// RecordQueueItems records fan-out items built for an account.
func (r *Recorder) RecordQueueItems(account string, n int) {
	r.queueItems.WithLabelValues(account).Add(float64(n))
}

// RecordSubmission records a plan submission outcome (accepted, rejected, failed).
func (r *Recorder) RecordSubmission(outcome string) {
	r.submissions.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
