package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch record outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all application metrics
type Metrics struct {
	Registry *prometheus.Registry

	BatchRecords   *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	APIResponses   *prometheus.CounterVec
	Invocations    *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

// NewMetrics creates all application metrics and registers them on a fresh registry
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		BatchRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_records_total",
			Help:      "Total number of batch event records by handler and outcome",
		}, []string{"handler", "outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of notification sends by type and final status",
		}, []string{"type", "status"}),
		APIResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_responses_total",
			Help:      "Total number of API responses by route and status code",
		}, []string{"route", "status"}),
		Invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Total number of invocations by function and event kind",
		}, []string{"function", "kind"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of local server HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "path", "status"}),
	}
}

// RecordBatchOutcome counts one batch record result
func (m *Metrics) RecordBatchOutcome(handler string, ok bool) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.BatchRecords.WithLabelValues(handler, outcome).Inc()
}

// RecordNotification counts one notification send attempt
func (m *Metrics) RecordNotification(notificationType, status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(notificationType, status).Inc()
}

// RecordAPIResponse counts one API response
func (m *Metrics) RecordAPIResponse(route string, statusCode int) {
	if m == nil {
		return
	}
	m.APIResponses.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

// RecordInvocation counts one routed invocation
func (m *Metrics) RecordInvocation(function, kind string) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(function, kind).Inc()
}
