package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// catalog
	BookOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_operations_total",
			Help: "Book operations by outcome",
		},
		[]string{"op", "result"}, // list|get|create|update|delete x ok|invalid|not_found|error
	)

	// auth
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by role and outcome",
		},
		[]string{"rol", "result"}, // ok|invalid|unauthorized|error
	)

	initOnce sync.Once
)

// Init registers the collectors on the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(BookOperations)
		prometheus.MustRegister(LoginAttempts)
	})
}

// Handler serves the default registry in the exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
