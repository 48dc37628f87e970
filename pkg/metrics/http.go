package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records a handled request.
func (h *HTTPMetrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)).Inc()
	h.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(elapsed.Seconds())
}

// AnnouncementMetrics tracks outbound social announcement outcomes.
type AnnouncementMetrics struct {
	success *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewAnnouncementMetrics registers the announcement metrics on the provided registerer.
func NewAnnouncementMetrics(reg prometheus.Registerer) *AnnouncementMetrics {
	if reg == nil {
		return &AnnouncementMetrics{}
	}
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "announcement_success",
		Help: "Successful social announcements.",
	}, []string{"kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "announcement_failure",
		Help: "Failed social announcements.",
	}, []string{"kind"})
	reg.MustRegister(success, failure)
	return &AnnouncementMetrics{
		success: success,
		failure: failure,
	}
}

// IncSuccess increments the success counter for the announcement kind.
func (a *AnnouncementMetrics) IncSuccess(kind string) {
	if a == nil || a.success == nil {
		return
	}
	a.success.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailure increments the failure counter for the announcement kind.
func (a *AnnouncementMetrics) IncFailure(kind string) {
	if a == nil || a.failure == nil {
		return
	}
	a.failure.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
