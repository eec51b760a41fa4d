package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Apply outcomes
const (
	ApplyAccepted  = "accepted"
	ApplyDuplicate = "duplicate"
	ApplyNotFound  = "not_found"
	ApplyError     = "error"
)

var (
	applicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "submitted_total",
			Help:      "Application submissions by outcome.",
		},
		[]string{"outcome"},
	)

	notifySentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Notifications delivered.",
		},
	)

	notifyFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "failed_total",
			Help:      "Notifications that could not be delivered or enqueued.",
		},
		[]string{"stage"},
	)
)

// ObserveApply counts one application submission outcome.
func ObserveApply(outcome string) {
	applicationsTotal.WithLabelValues(outcome).Inc()
}

// NotifySent counts one delivered notification.
func NotifySent() {
	notifySentTotal.Inc()
}

// NotifyFailed counts one failed notification at the given stage: enqueue,
// decode, send or closed.
func NotifyFailed(stage string) {
	notifyFailedTotal.WithLabelValues(stage).Inc()
}
