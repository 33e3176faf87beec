// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

// State is the mutable state of all stateful modules in a Graph: the on/off
// state of flip-flops and the last pulse level remembered by conjunctions for
// each of their inputs.
//
// A State must not be used concurrently by more than one goroutine.
//
type State struct {
	g    *Graph
	on   []bool   // flip-flop state, by node
	mem  [][]bool // conjunction memory, by node then input slot
	high []int    // number of high values in mem, by node
}

// NewState returns the initial state for g: all flip-flops off and all
// conjunctions remembering a low pulse from each input.
//
func NewState(g *Graph) *State {
	s := &State{
		g:    g,
		on:   make([]bool, len(g.nodes)),
		mem:  make([][]bool, len(g.nodes)),
		high: make([]int, len(g.nodes)),
	}
	for i, n := range g.nodes {
		if n.kind == Conjunction {
			s.mem[i] = make([]bool, len(n.ins))
		}
	}
	return s
}

// Graph returns the graph s was created for.
//
func (s *State) Graph() *Graph { return s.g }

// Reset sets s back to its initial state.
//
func (s *State) Reset() {
	for i := range s.on {
		s.on[i] = false
		s.high[i] = 0
		for j := range s.mem[i] {
			s.mem[i][j] = false
		}
	}
}

// Clone returns an independent copy of s.
//
func (s *State) Clone() *State {
	c := &State{
		g:    s.g,
		on:   append([]bool(nil), s.on...),
		mem:  make([][]bool, len(s.mem)),
		high: append([]int(nil), s.high...),
	}
	for i, m := range s.mem {
		if m != nil {
			c.mem[i] = append([]bool(nil), m...)
		}
	}
	return c
}

// Equal reports whether s and o hold the same module states.
//
func (s *State) Equal(o *State) bool {
	if s.g != o.g {
		return false
	}
	for i := range s.on {
		if s.on[i] != o.on[i] || s.high[i] != o.high[i] {
			return false
		}
		for j := range s.mem[i] {
			if s.mem[i][j] != o.mem[i][j] {
				return false
			}
		}
	}
	return true
}

// On returns the state of the named flip-flop. It returns false for any other
// name.
//
func (s *State) On(name string) bool {
	n, ok := s.g.ids[name]
	return ok && s.g.nodes[n].kind == FlipFlop && s.on[n]
}

// Remembered returns the last pulse level the conjunction conj received from
// input. ok is false if conj is not a conjunction or input is not one of its
// inputs.
//
func (s *State) Remembered(conj, input string) (high bool, ok bool) {
	n, ok := s.g.ids[conj]
	if !ok || s.g.nodes[n].kind != Conjunction {
		return false, false
	}
	for slot, in := range s.g.nodes[n].ins {
		if s.g.nodes[in].name == input {
			return s.mem[n][slot], true
		}
	}
	return false, false
}
