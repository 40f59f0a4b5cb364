// Package observability provides request logging and Prometheus metrics for
// the web service.
package observability

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "retina_web"

// RequestLogger logs one line per request after it completes.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := httpx.NewStatusRecorder(w)
			next.ServeHTTP(recorder, r)
			logger.Printf(
				"http request method=%s path=%s status=%d bytes=%d latency=%s request_id=%s",
				r.Method,
				r.URL.Path,
				recorder.Status,
				recorder.Bytes,
				time.Since(started).Round(time.Microsecond),
				strings.TrimSpace(r.Header.Get(httpx.RequestIDHeader)),
			)
		})
	}
}

// Metrics holds the web service collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	backendCalls *prometheus.CounterVec
	backendTime  *prometheus.HistogramVec
}

// NewMetrics builds and registers the web collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		backendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Total number of backend API calls by outcome.",
			},
			[]string{"method", "status_class"},
		),
		backendTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "Backend API call duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.backendCalls,
		m.backendTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and durations.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := httpx.NewStatusRecorder(w)
			next.ServeHTTP(recorder, r)
			route := RouteLabel(r.URL.Path)
			m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.Status)).Inc()
			m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(started).Seconds())
		})
	}
}

// ObserveBackendCall records one backend API call. Status 0 is a transport
// failure.
func (m *Metrics) ObserveBackendCall(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(method, statusClass(status)).Inc()
	m.backendTime.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// routePrefixes are the label values for request paths, longest first.
var routePrefixes = []string{
	routepath.PatientPrefix,
	routepath.DoctorPrefix,
	routepath.ClinicPrefix,
	routepath.AdminPrefix,
	routepath.MessagesPrefix,
	routepath.NotificationsPrefix,
	routepath.ProfilePrefix,
	routepath.AppPrefix,
	routepath.StaticPrefix,
}

var exactRoutes = []string{
	routepath.Root,
	routepath.Health,
	routepath.Metrics,
	routepath.Login,
	routepath.Register,
	routepath.ForgotPassword,
	routepath.ResetPassword,
	routepath.Logout,
}

// RouteLabel maps a request path onto a bounded set of label values.
func RouteLabel(path string) string {
	for _, exact := range exactRoutes {
		if path == exact {
			return exact
		}
	}
	for _, prefix := range routePrefixes {
		if strings.HasPrefix(path, prefix) {
			return prefix
		}
	}
	return "other"
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
