// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"context"
	"log/slog"

	"github.com/db47h/pulsesim/internal/logging"
	"github.com/pkg/errors"
)

// DefaultMaxTriggers is the trigger event bound used by Solve when none is
// given.
//
const DefaultMaxTriggers = 1 << 20

// SolveOptions configures Solve.
//
type SolveOptions struct {
	MaxTriggers uint64 // defaults to DefaultMaxTriggers
	Workers     int    // see Detector.Workers
	Logger      *slog.Logger
}

// Result is the outcome of Solve.
//
type Result struct {
	Gate     string // conjunction feeding the target
	Clusters Clusters
	Cycles   map[string]Cycle
	Presses  uint64 // first press delivering a low pulse to the target
}

// Periods returns the period of each cluster.
//
func (r *Result) Periods() Periods {
	p := make(Periods, len(r.Cycles))
	for k, c := range r.Cycles {
		p[k] = c.Period
	}
	return p
}

// Solve computes the number of trigger events after which target first
// receives a low pulse, without simulating them all: the network is
// partitioned into clusters, the period of each cluster is found by
// simulation, and the periods are combined.
//
// Every cluster must return to its initial state at the end of its cycle, and
// the gate input it drives must send its first high pulse to the gate during
// the last trigger event of that cycle. Otherwise a *TargetError is returned.
//
func Solve(ctx context.Context, g *Graph, target string, opts SolveOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.MaxTriggers == 0 {
		opts.MaxTriggers = DefaultMaxTriggers
	}

	c, err := Partition(g)
	if err != nil {
		return nil, errors.Wrap(err, "partition")
	}
	logger.Debug("partitioned", "clusters", len(c))
	if len(c) == 0 {
		return nil, errors.New("network has no flip-flops")
	}

	gate, err := ValidateTarget(g, target, c)
	if err != nil {
		return nil, err
	}

	d := Detector{MaxTriggers: opts.MaxTriggers, Workers: opts.Workers, Target: target, Logger: logger}
	cycles, err := d.Detect(ctx, g, c)
	if err != nil {
		return nil, errors.Wrap(err, "cycle detection")
	}
	r := &Result{Gate: gate, Clusters: c, Cycles: cycles}
	for _, k := range c.Keys() {
		if cy := cycles[k]; cy.Start != 0 {
			return nil, errors.Errorf("cluster %s enters its cycle after %d trigger events, not at the initial state", k, cy.Start)
		}
	}

	r.Presses, err = Combine(r.Periods().Values())
	if err != nil {
		return nil, err
	}
	logger.Info("solved", "target", target, "gate", gate, "presses", r.Presses)
	return r, nil
}
