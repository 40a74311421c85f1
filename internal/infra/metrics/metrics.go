package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_registered_total",
			Help: "Total number of leads stored",
		},
		[]string{"source"},
	)

	outreachRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_recorded_total",
			Help: "Total number of outreach status changes recorded",
		},
		[]string{"channel", "sent"},
	)

	queueMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_messages_total",
			Help: "Total number of queue messages consumed, by result",
		},
		[]string{"queue", "result"},
	)

	emailsCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_emails_cleared_total",
			Help: "Total number of junk lead emails cleared by the hygiene worker",
		},
	)
)

func RecordLeadRegistered(source string) {
	leadsRegistered.WithLabelValues(source).Inc()
}

func RecordOutreach(channel string, sent bool) {
	label := "false"
	if sent {
		label = "true"
	}
	outreachRecorded.WithLabelValues(channel, label).Inc()
}

func RecordQueueMessage(queue, result string) {
	queueMessages.WithLabelValues(queue, result).Inc()
}

func RecordEmailsCleared(n int64) {
	emailsCleared.Add(float64(n))
}
