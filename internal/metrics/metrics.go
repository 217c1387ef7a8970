// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatusEventsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "baggage_status_events_recorded_total",
		Help: "Total number of status events appended, by status.",
	},
		[]string{"status"},
	)

	PublishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "baggage_publish_failures_total",
		Help: "Total number of notification publishes that failed, by sink.",
	},
		[]string{"sink"},
	)

	SubscribersEvictedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "baggage_subscribers_evicted_total",
		Help: "Total number of websocket subscribers removed by the hub, by reason.",
	},
		[]string{"reason"},
	)

	ActiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "baggage_active_subscribers",
		Help: "Current number of websocket subscribers across all topics.",
	})

	BaggageByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "baggage_items_by_status",
		Help: "Number of bags currently in each status.",
	},
		[]string{"status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "baggage_http_requests_total",
		Help: "Total number of HTTP requests.",
	},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "baggage_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "path"},
	)
)

// Eviction reasons used with SubscribersEvictedTotal.
const (
	EvictSlowConsumer = "slow_consumer"
	EvictIdle         = "idle"
)
