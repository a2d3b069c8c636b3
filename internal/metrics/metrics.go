package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingualink_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lingualink_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	MirrorTasksEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingualink_mirror_tasks_enqueued_total",
		Help: "Identity mirror tasks accepted by the provisioning queue.",
	})

	MirrorTasksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingualink_mirror_tasks_dropped_total",
		Help: "Identity mirror tasks dropped because the queue was full.",
	})

	MirrorRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingualink_mirror_retries_total",
		Help: "Retries of failed identity mirror deliveries.",
	})

	MirrorDeadLettered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingualink_mirror_dead_lettered_total",
		Help: "Identity mirror tasks that exhausted all retries.",
	})
)
