// Package metrics exports content lifecycle signals as prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/hooking"
)

const namespace = "stagehand"

// A Collector is a hook that counts lifecycle signals. It is also a
// prometheus.Collector, so it can be registered with any registry.
type Collector struct {
	signals  *prometheus.CounterVec
	failures *prometheus.CounterVec
	stalls   *prometheus.CounterVec
	occupied *prometheus.GaugeVec
}

// NewCollector creates a Collector.
func NewCollector() *Collector {
	return &Collector{
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Number of lifecycle signals published by a slot.",
		}, []string{"slot", "event"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_failures_total",
			Help:      "Number of unit phases that failed.",
		}, []string{"slot", "phase"}),
		stalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_stalls_total",
			Help:      "Number of unit phases that ran past the stall threshold.",
		}, []string{"slot", "phase"}),
		occupied: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slot_occupied",
			Help:      "1 if the slot has an active unit, 0 otherwise.",
		}, []string{"slot"}),
	}
}

// MustRegister registers the collector with the registerer.
func (c *Collector) MustRegister(r prometheus.Registerer) *Collector {
	r.MustRegister(c)
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.signals.Describe(ch)
	c.failures.Describe(ch)
	c.stalls.Describe(ch)
	c.occupied.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.signals.Collect(ch)
	c.failures.Collect(ch)
	c.stalls.Collect(ch)
	c.occupied.Collect(ch)
}

// Func counts the signal. Signals that are not raised by a slot are ignored.
func (c *Collector) Func(ctx hooking.HookCtx) {
	slot, ok := ctx.Domain.(*content.Slot)
	if !ok {
		return
	}

	id := slot.ID()
	if ctx.Pos == content.HookPosSlotDisposed {
		c.Forget(id)
		return
	}

	c.signals.WithLabelValues(id, ctx.Pos.Name).Inc()

	switch ctx.Pos {
	case content.HookPosLoadStart:
		c.occupied.WithLabelValues(id).Set(1)
	case content.HookPosPlayOutComplete:
		c.occupied.WithLabelValues(id).Set(0)
	case content.HookPosPhaseFailed:
		c.occupied.WithLabelValues(id).Set(0)

		if perr, ok := ctx.Detail.(*content.PhaseError); ok {
			c.failures.WithLabelValues(id, perr.Phase.String()).Inc()
		}
	case content.HookPosPhaseStalled:
		if report, ok := ctx.Detail.(content.StallReport); ok {
			c.stalls.WithLabelValues(id, report.Phase.String()).Inc()
		}
	}
}

// Forget drops every series of the slot. It runs when the slot reports its
// disposal.
func (c *Collector) Forget(slotID string) {
	labels := prometheus.Labels{"slot": slotID}

	c.signals.DeletePartialMatch(labels)
	c.failures.DeletePartialMatch(labels)
	c.stalls.DeletePartialMatch(labels)
	c.occupied.DeletePartialMatch(labels)
}
