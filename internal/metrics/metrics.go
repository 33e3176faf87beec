// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports simulation counters in the Prometheus format.
//
package metrics

import (
	"io"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector counts pulses and trigger events of a Network. It uses its own
// registry.
//
type Collector struct {
	reg      *prometheus.Registry
	presses  prometheus.Counter
	pulses   *prometheus.CounterVec
	received *prometheus.CounterVec
	perPress prometheus.Histogram
}

// New returns a new Collector.
//
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		presses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulsesim_presses_total",
			Help: "Total number of trigger events.",
		}),
		pulses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsesim_pulses_total",
			Help: "Total number of pulses processed, by level.",
		}, []string{"level"}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsesim_sink_pulses_total",
			Help: "Pulses received by untracked modules, by module and level.",
		}, []string{"module", "level"}),
		perPress: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulsesim_pulses_per_press",
			Help:    "Number of pulses processed per trigger event.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	c.reg.MustRegister(c.presses, c.pulses, c.received, c.perPress)
	return c
}

func level(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

// Hooks returns network hooks feeding the collector. Pulses to untracked
// modules of g are counted per module.
//
func (c *Collector) Hooks(g *pulsesim.Graph) pulsesim.Hooks {
	low, high := c.pulses.WithLabelValues("low"), c.pulses.WithLabelValues("high")
	return pulsesim.Hooks{
		OnPulse: func(p pulsesim.Pulse) {
			if g.KindOf(p.To) == pulsesim.Untracked {
				c.received.WithLabelValues(p.To, level(p.High)).Inc()
			}
		},
		OnTrigger: func(_ uint64, l, h int) {
			c.presses.Inc()
			low.Add(float64(l))
			high.Add(float64(h))
			c.perPress.Observe(float64(l + h))
		},
	}
}

// Registry returns the collector's registry.
//
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// WriteText writes all metrics to w in the Prometheus text exposition format.
//
func (c *Collector) WriteText(w io.Writer) error {
	mfs, err := c.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}
