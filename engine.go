// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "strings"

// A Pulse is a pulse sent from one module to another.
//
type Pulse struct {
	High bool
	To   string
	From string
}

func (p Pulse) String() string {
	if p.High {
		return p.From + " -high-> " + p.To
	}
	return p.From + " -low-> " + p.To
}

// Trace is the ordered list of pulses processed during one trigger event.
//
type Trace []Pulse

// Count returns the number of low and high pulses in t.
//
func (t Trace) Count() (low, high int) {
	for _, p := range t {
		if p.High {
			high++
		} else {
			low++
		}
	}
	return low, high
}

// Received returns the number of pulses of the given level received by the
// named module.
//
func (t Trace) Received(name string, high bool) int {
	var n int
	for _, p := range t {
		if p.To == name && p.High == high {
			n++
		}
	}
	return n
}

// Sent returns the pulses sent by the named module, in order.
//
func (t Trace) Sent(name string) []Pulse {
	var ps []Pulse
	for _, p := range t {
		if p.From == name {
			ps = append(ps, p)
		}
	}
	return ps
}

func (t Trace) String() string {
	var b strings.Builder
	for _, p := range t {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// a pulse in the propagation queue. from is -1 for the button.
type pulse struct {
	high bool
	to   int
	from int
	slot int
}

// RunTrigger simulates one trigger event: a low pulse sent by the button to
// the broadcaster, propagated until no more pulses are pending. It updates s in
// place and returns the pulses processed, in processing order.
//
// Pulses are processed in the order they are sent. A pulse sent to an
// untracked name is consumed silently.
//
func RunTrigger(g *Graph, s *State) Trace {
	checkState(g, s)
	var t Trace
	propagate(g, s, nil, func(p pulse) {
		t = append(t, g.pulse(p))
	})
	return t
}

func checkState(g *Graph, s *State) {
	if s.g != g {
		panic("pulsesim: state does not belong to this graph")
	}
}

func (g *Graph) pulse(p pulse) Pulse {
	from := Button
	if p.from >= 0 {
		from = g.nodes[p.from].name
	}
	return Pulse{High: p.high, To: g.nodes[p.to].name, From: from}
}

// propagate runs a single trigger. Every dequeued pulse is passed to fn if fn
// is not nil. q is used as storage for the FIFO and returned for reuse.
//
func propagate(g *Graph, s *State, q []pulse, fn func(p pulse)) []pulse {
	q = append(q[:0], pulse{to: g.entry, from: -1})
	for head := 0; head < len(q); head++ {
		p := q[head]
		if fn != nil {
			fn(p)
		}
		n := &g.nodes[p.to]
		var out bool
		switch n.kind {
		case Broadcaster:
			out = p.high
		case FlipFlop:
			if p.high {
				continue
			}
			out = !s.on[p.to]
			s.on[p.to] = out
		case Conjunction:
			m := s.mem[p.to]
			if m[p.slot] != p.high {
				m[p.slot] = p.high
				if p.high {
					s.high[p.to]++
				} else {
					s.high[p.to]--
				}
			}
			// NAND over all remembered inputs. With no inputs at all, this is
			// always low.
			out = s.high[p.to] != len(m)
		default:
			continue
		}
		for _, e := range n.outs {
			q = append(q, pulse{high: out, to: e.to, from: p.to, slot: e.slot})
		}
	}
	return q
}
