// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the board's operational metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	requestDuration prometheus.Histogram
	usersCreated    prometheus.Counter
	messagesSaved   prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
// Passing the count of connected websocket subscribers as a callback
// keeps the hub free of any prometheus dependency.
func NewCollector(reg prometheus.Registerer, subscriberCount func() int) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "msgboard_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "msgboard_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "msgboard_users_created_total",
			Help: "Accounts created since process start",
		}),
		messagesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "msgboard_messages_saved_total",
			Help: "Messages persisted since process start",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.requestDuration,
		c.usersCreated,
		c.messagesSaved,
	)

	if subscriberCount != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "msgboard_ws_subscribers",
			Help: "Currently connected websocket subscribers",
		}, func() float64 { return float64(subscriberCount()) }))
	}

	return c
}

// RecordRequest records one finished HTTP request.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// RecordUserCreated counts a successful signup.
func (c *Collector) RecordUserCreated() {
	c.usersCreated.Inc()
}

// RecordMessageSaved counts a successfully persisted message.
func (c *Collector) RecordMessageSaved() {
	c.messagesSaved.Inc()
}

// Middleware records request counts and latency for every route it
// wraps.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.RecordRequest(r.Method, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
