// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pulsetest provides utility functions for testing networks.
//
package pulsetest

import (
	"context"
	"strings"
	"testing"

	"github.com/db47h/pulsesim"
)

// MustGraph builds a graph from definition lines separated by newlines or
// semicolons. It fails the test on error.
//
func MustGraph(t testing.TB, defs string) *pulsesim.Graph {
	t.Helper()
	g, err := pulsesim.BuildGraph(strings.FieldsFunc(defs, func(r rune) bool { return r == '\n' || r == ';' }))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// observed returns the pulses received by untracked sinks in t.
func observed(g *pulsesim.Graph, t pulsesim.Trace) []pulsesim.Pulse {
	var ps []pulsesim.Pulse
	for _, p := range t {
		if g.KindOf(p.To) == pulsesim.Untracked {
			ps = append(ps, p)
		}
	}
	return ps
}

// CompareNetworks runs presses trigger events on both graphs and checks that
// they send the same number of low and high pulses and the same pulses to
// untracked sinks, in the same order, for every trigger event. Graphs must
// have the same sinks; module names may otherwise differ.
//
func CompareNetworks(t *testing.T, presses int, g1, g2 *pulsesim.Graph) {
	t.Helper()

	s1, s2 := g1.Sinks(), g2.Sinks()
	if strings.Join(s1, ",") != strings.Join(s2, ",") {
		t.Fatalf("sinks %v != %v", s1, s2)
	}
	n1, n2 := pulsesim.NewNetwork(g1), pulsesim.NewNetwork(g2)
	for i := 1; i <= presses; i++ {
		t1, t2 := n1.Press(), n2.Press()
		l1, h1 := t1.Count()
		l2, h2 := t2.Count()
		if l1 != l2 || h1 != h2 {
			t.Fatalf("press %d: pulse count (%d low, %d high) != (%d low, %d high)", i, l1, h1, l2, h2)
		}
		o1, o2 := observed(g1, t1), observed(g2, t2)
		if len(o1) != len(o2) {
			t.Fatalf("press %d: %d pulses to sinks != %d", i, len(o1), len(o2))
		}
		for j := range o1 {
			if o1[j].To != o2[j].To || o1[j].High != o2[j].High {
				t.Fatalf("press %d: sink pulse #%d: %v != %v", i, j, o1[j], o2[j])
			}
		}
	}
}

// CheckSolve checks that Solve returns the same press count as a brute-force
// search bounded by limit and returns it.
//
func CheckSolve(t *testing.T, g *pulsesim.Graph, target string, limit uint64) uint64 {
	t.Helper()

	r, err := pulsesim.Solve(context.Background(), g, target, pulsesim.SolveOptions{})
	if err != nil {
		t.Fatal(err)
	}
	n, err := pulsesim.PressesUntil(g, target, limit)
	if err != nil {
		t.Fatal(err)
	}
	if r.Presses != n {
		t.Fatalf("Solve(%s) = %d, brute force = %d", target, r.Presses, n)
	}
	return n
}
