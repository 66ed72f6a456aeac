package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AdminMetrics records back-office workflow and push delivery outcomes.
type AdminMetrics struct {
	workflowActions *prometheus.CounterVec
	pushSent        prometheus.Counter
	pushFailed      prometheus.Counter
	pushDuration    prometheus.Histogram
}

// NewAdminMetrics registers the admin metrics on the provided registerer.
func NewAdminMetrics(reg prometheus.Registerer) *AdminMetrics {
	if reg == nil {
		return &AdminMetrics{}
	}
	workflowActions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_workflow_actions_total",
		Help: "Administrative workflow actions by target kind and action.",
	}, []string{"kind", "action"})
	pushSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_notifications_sent_total",
		Help: "Push notifications accepted by the provider.",
	})
	pushFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_notifications_failed_total",
		Help: "Push notifications rejected by the provider.",
	})
	pushDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "push_delivery_duration_seconds",
		Help:    "Duration of provider send calls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(workflowActions, pushSent, pushFailed, pushDuration)
	return &AdminMetrics{
		workflowActions: workflowActions,
		pushSent:        pushSent,
		pushFailed:      pushFailed,
		pushDuration:    pushDuration,
	}
}

// IncWorkflowAction counts one workflow action against a target kind.
func (m *AdminMetrics) IncWorkflowAction(kind, action string) {
	if m == nil || m.workflowActions == nil {
		return
	}
	m.workflowActions.WithLabelValues(normalizeLabel(kind), normalizeLabel(action)).Inc()
}

// IncPushSent counts one accepted push delivery.
func (m *AdminMetrics) IncPushSent() {
	if m == nil || m.pushSent == nil {
		return
	}
	m.pushSent.Inc()
}

// IncPushFailed counts one rejected push delivery.
func (m *AdminMetrics) IncPushFailed() {
	if m == nil || m.pushFailed == nil {
		return
	}
	m.pushFailed.Inc()
}

// ObservePushDuration records how long the provider send call took.
func (m *AdminMetrics) ObservePushDuration(duration time.Duration) {
	if m == nil || m.pushDuration == nil {
		return
	}
	m.pushDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
