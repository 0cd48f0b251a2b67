package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	TransferTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translog_transfer_transitions_total",
		Help: "Transfer status transitions by resulting status",
	}, []string{"status"})

	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "translog_notifications_created_total",
		Help: "Notifications persisted",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translog_emails_sent_total",
		Help: "Notification emails by outcome",
	}, []string{"status"})

	ActiveTransfers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "translog_active_transfers",
		Help: "Transfers currently in progress or on the way",
	})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "translog_database_latency_seconds",
		Help:    "Database query latency",
		Buckets: prometheus.DefBuckets,
	})
)
