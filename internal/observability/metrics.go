package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwipeDecisions counts swipe decisions by action and outcome.
	SwipeDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindred_swipe_decisions_total",
		Help: "Total number of swipe decisions by action and outcome",
	}, []string{"action", "outcome"})

	// MatchesFormed counts confirmed mutual matches.
	MatchesFormed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindred_matches_formed_total",
		Help: "Total number of mutual matches formed",
	})

	// MessagesSent counts delivered direct messages.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindred_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// MessagingDenied counts sends refused by the match gate.
	MessagingDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindred_messaging_denied_total",
		Help: "Total number of message sends refused by the match gate",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kindred_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebhookEvents counts processed billing webhook events by type and result.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindred_webhook_events_total",
		Help: "Total number of billing webhook events by type and result",
	}, []string{"event_type", "result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordSwipe increments the swipe decision counter.
func RecordSwipe(action string, matched bool) {
	outcome := "recorded"
	if matched {
		outcome = "matched"
		MatchesFormed.Inc()
	}
	SwipeDecisions.WithLabelValues(action, outcome).Inc()
}
