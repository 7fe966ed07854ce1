package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "daybook",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served.",
	})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "daybook",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests served, by method, path, and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "daybook",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	transactionsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "daybook",
		Subsystem: "ledger",
		Name:      "transactions_loaded_total",
		Help:      "New transactions committed to the ledger.",
	})

	duplicatesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "daybook",
		Subsystem: "ledger",
		Name:      "duplicates_detected_total",
		Help:      "Incoming rows merged into an existing transaction.",
	})
)

// instrument records request counts, latencies, and in-flight gauge.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
