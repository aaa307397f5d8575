// Package metrics declares the domain counters of the platform.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Set bundles the domain counters so constructors can share one
// registration point.
type Set struct {
	EscalationsTotal    prometheus.Counter
	AlertsExpiredTotal  prometheus.Counter
	GeocodeRetriesTotal prometheus.Counter
	RealtimeEventsTotal prometheus.Counter
}

// NewSet creates and registers the domain counters.
func NewSet(reg prometheus.Registerer) *Set {
	s := &Set{
		EscalationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alert_escalations_total",
			Help: "Total number of alert escalations to the next food bank",
		}),
		AlertsExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_expired_total",
			Help: "Total number of alerts expired without a recipient",
		}),
		GeocodeRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geocode_retries_total",
			Help: "Total number of retry attempts performed by the geocoder gateway",
		}),
		RealtimeEventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realtime_events_published_total",
			Help: "Total number of events published to WebSocket rooms",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			s.EscalationsTotal,
			s.AlertsExpiredTotal,
			s.GeocodeRetriesTotal,
			s.RealtimeEventsTotal,
		)
	}
	return s
}
