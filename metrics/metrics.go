// Package metrics exports playback state machine activity as Prometheus metrics.
package metrics

import (
	"github.com/enetx/playback"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the playback series registered on a registry.
type Collector struct {
	transitions *prometheus.CounterVec
	unhandled   *prometheus.CounterVec
	state       *prometheus.GaugeVec
}

// NewCollector registers the playback series on reg under namespace.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_transitions_total",
			Help:      "Applied playback state transitions by source state, destination state and event",
		}, []string{"from", "to", "event"}),
		unhandled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_unhandled_events_total",
			Help:      "Events discarded because no transition matched, by state and event",
		}, []string{"state", "event"}),
		state: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_state",
			Help:      "Current playback state (1 for the current state, 0 otherwise)",
		}, []string{"state"}),
	}
}

// Attach registers the collector's hooks on m and seeds the state gauge. The
// gauge follows transitions and snapshot restores.
func (c *Collector) Attach(m *playback.Machine) *playback.Machine {
	c.setState(m.State())

	return m.
		OnTransition(func(t playback.Transition) {
			c.transitions.WithLabelValues(string(t.From), string(t.To), string(t.Event)).Inc()
			c.setState(t.To)
		}).
		OnUnhandled(func(state playback.State, event playback.Event) {
			c.unhandled.WithLabelValues(string(state), string(event)).Inc()
		}).
		OnRestore(func(s playback.Snapshot) {
			c.setState(s.Current)
		})
}

func (c *Collector) setState(current playback.State) {
	for state := range playback.States().Iter() {
		value := 0.0
		if state == current {
			value = 1
		}

		c.state.WithLabelValues(string(state)).Set(value)
	}
}
