// Package metrics exports machine activity as prometheus series.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/atlekbai/gfsm"
)

// Collector owns the series of one namespace. Several machines can be
// attached to the same collector.
type Collector struct {
	started      *prometheus.CounterVec
	completed    *prometheus.CounterVec
	terminations prometheus.Counter
	depth        prometheus.Gauge
}

// New creates the series and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_started_total",
				Help:      "Number of transitions that passed validation and began executing.",
			},
			[]string{"from", "token", "mode"},
		),
		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Number of completed transitions.",
			},
			[]string{"from", "to", "token", "mode"},
		),
		terminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminations_total",
			Help:      "Number of terminal transitions.",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stack_depth",
			Help:      "Stack depth after the last transition.",
		}),
	}

	for _, col := range []prometheus.Collector{c.started, c.completed, c.terminations, c.depth} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return c, nil
}

// Attach subscribes c to both events of sm. The returned function removes the
// subscriptions.
func Attach[TState, TToken comparable](c *Collector, sm *gfsm.Machine[TState, TToken]) func() {
	c.depth.Set(float64(sm.Depth()))

	starting := sm.OnTransitioning(func(t gfsm.Transition[TState, TToken]) {
		c.started.WithLabelValues(fmt.Sprint(t.From), fmt.Sprint(t.Token), t.Mode.String()).Inc()
	})
	done := sm.OnTransitioned(func(t gfsm.Transition[TState, TToken]) {
		to := gfsm.NullString
		if dst, ok := t.Destination(); ok {
			to = fmt.Sprint(dst)
		}
		c.completed.WithLabelValues(fmt.Sprint(t.From), to, fmt.Sprint(t.Token), t.Mode.String()).Inc()
		if t.Terminal {
			c.terminations.Inc()
		}
		c.depth.Set(float64(sm.Depth()))
	})

	return func() {
		sm.Unsubscribe(starting)
		sm.Unsubscribe(done)
	}
}

// WriteText writes every family gathered from g in the text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}
