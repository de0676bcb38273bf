package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	EntriesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEntriesAdded,
			Help: HelpTextEntriesAdded,
		},
		[]string{LabelLine},
	)

	EntriesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEntriesDeleted,
			Help: HelpTextEntriesDeleted,
		},
	)

	OptionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOptionChanges,
			Help: HelpTextOptionChanges,
		},
		[]string{LabelGroup, LabelAction},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExports,
			Help: HelpTextExports,
		},
		[]string{LabelFormat},
	)

	Imports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameImports,
			Help: HelpTextImports,
		},
		[]string{LabelResult},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLogins,
			Help: HelpTextLogins,
		},
		[]string{LabelResult},
	)

	S3Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameS3Uploads,
			Help: HelpTextS3Uploads,
		},
		[]string{LabelResult},
	)
)

// Result maps an error to the success/failure label value.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
