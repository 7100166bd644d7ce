// Package metrics owns the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeChanged = "changed"
	OutcomeNoop    = "noop"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

type Metrics struct {
	Interactions    *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	EventsConsumed  *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction never panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskfeed",
				Name:      "interactions_total",
				Help:      "Façade actions by outcome.",
			},
			[]string{"action", "outcome"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskfeed",
				Name:      "notifications_total",
				Help:      "Notification writes, split into fresh inserts and aggregated repeats.",
			},
			[]string{"result"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskfeed",
				Name:      "events_published_total",
				Help:      "Domain events handed to the bus.",
			},
			[]string{"type", "status"},
		),
		EventsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskfeed",
				Name:      "events_consumed_total",
				Help:      "Domain events seen by the activity consumer.",
			},
			[]string{"type"},
		),
	}

	reg.MustRegister(m.Interactions, m.Notifications, m.EventsPublished, m.EventsConsumed)
	return m
}

// Nop returns collectors registered nowhere.
func Nop() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) Interaction(action, outcome string) {
	m.Interactions.WithLabelValues(action, outcome).Inc()
}
