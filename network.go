// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"log/slog"

	"github.com/db47h/pulsesim/internal/logging"
	"github.com/pkg/errors"
)

// ErrNotReached is returned by PressesUntil when the target does not receive a
// low pulse within the allowed number of presses.
//
var ErrNotReached = errors.New("target not reached")

// Hooks are optional callbacks invoked by a Network.
//
type Hooks struct {
	// OnPulse is called for every pulse processed.
	OnPulse func(p Pulse)
	// OnTrigger is called after every trigger event with the 1-based press
	// number and the number of low and high pulses processed.
	OnTrigger func(press uint64, low, high int)
}

// An Option configures a Network.
//
type Option func(*Network)

// WithHooks registers observability hooks.
//
func WithHooks(h Hooks) Option {
	return func(n *Network) { n.hooks = h }
}

// WithLogger sets a structured logger.
//
func WithLogger(l *slog.Logger) Option {
	return func(n *Network) { n.logger = l }
}

// Network is a runnable simulation: a Graph together with its State and a
// press counter.
//
type Network struct {
	g       *Graph
	s       *State
	presses uint64
	hooks   Hooks
	logger  *slog.Logger
	q       []pulse
}

// NewNetwork returns a new network in its initial state.
//
func NewNetwork(g *Graph, opts ...Option) *Network {
	n := &Network{g: g, s: NewState(g)}
	for _, o := range opts {
		o(n)
	}
	if n.logger == nil {
		n.logger = logging.NewNop()
	}
	return n
}

// Graph returns the network's graph.
//
func (n *Network) Graph() *Graph { return n.g }

// State returns the network's current state.
//
func (n *Network) State() *State { return n.s }

// Presses returns the number of trigger events run since creation or the last
// Reset.
//
func (n *Network) Presses() uint64 { return n.presses }

// Reset puts the network back into its initial state.
//
func (n *Network) Reset() {
	n.s.Reset()
	n.presses = 0
}

// Press runs one trigger event and returns its trace.
//
func (n *Network) Press() Trace {
	var t Trace
	n.press(func(p pulse) { t = append(t, n.g.pulse(p)) })
	return t
}

// PressN runs count trigger events and returns the total number of low and
// high pulses processed.
//
func (n *Network) PressN(count int) (low, high uint64) {
	for i := 0; i < count; i++ {
		l, h := n.press(nil)
		low += uint64(l)
		high += uint64(h)
	}
	return low, high
}

// press runs one trigger event, passing each pulse to fn if not nil.
//
func (n *Network) press(fn func(p pulse)) (low, high int) {
	n.q = propagate(n.g, n.s, n.q, func(p pulse) {
		if p.high {
			high++
		} else {
			low++
		}
		if fn != nil {
			fn(p)
		}
		if n.hooks.OnPulse != nil {
			n.hooks.OnPulse(n.g.pulse(p))
		}
	})
	n.presses++
	if n.hooks.OnTrigger != nil {
		n.hooks.OnTrigger(n.presses, low, high)
	}
	n.logger.Debug("press", "n", n.presses, "low", low, "high", high)
	return low, high
}

// CountPulses runs presses trigger events on a fresh state for g and returns
// the total number of low and high pulses sent.
//
func CountPulses(g *Graph, presses int) (low, high uint64) {
	return NewNetwork(g).PressN(presses)
}

// PressesUntil runs trigger events on a fresh state for g until target
// receives a low pulse, and returns the 1-based number of the press during
// which that happened. It gives up after limit presses with an error wrapping
// ErrNotReached.
//
// This is a brute-force search; see Solve for large networks.
//
func PressesUntil(g *Graph, target string, limit uint64) (uint64, error) {
	tn, ok := g.ids[target]
	if !ok {
		return 0, errors.Errorf("unknown module %s", target)
	}
	s := NewState(g)
	var q []pulse
	for i := uint64(1); i <= limit; i++ {
		var hit bool
		q = propagate(g, s, q, func(p pulse) {
			if p.to == tn && !p.high {
				hit = true
			}
		})
		if hit {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrNotReached, "%s after %d presses", target, limit)
}
