package pulsesim_test

import (
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_errors(t *testing.T) {
	bc := ps.Module{Name: "broadcaster", Kind: ps.Broadcaster, Outputs: []string{"a"}}
	data := []struct {
		name string
		defs []ps.Module
		err  string
	}{
		{"empty", nil, "no broadcaster defined"},
		{"no_broadcaster", []ps.Module{{Name: "a", Kind: ps.FlipFlop, Outputs: []string{"b"}}}, "no broadcaster defined"},
		{"empty_name", []ps.Module{bc, {Kind: ps.FlipFlop, Outputs: []string{"b"}}}, "module #2: empty name"},
		{"bad_kind", []ps.Module{bc, {Name: "a", Outputs: []string{"b"}}}, "module a: invalid kind untracked"},
		{"no_outputs", []ps.Module{bc, {Name: "a", Kind: ps.FlipFlop}}, "module a: empty destination list"},
		{"dup", []ps.Module{bc, {Name: "a", Kind: ps.FlipFlop, Outputs: []string{"b"}}, {Name: "a", Kind: ps.Conjunction, Outputs: []string{"b"}}},
			"module a defined more than once"},
		{"two_broadcasters", []ps.Module{bc, {Name: "bcast", Kind: ps.Broadcaster, Outputs: []string{"a"}}},
			"module bcast: more than one broadcaster (first is broadcaster)"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := ps.NewGraph(d.defs)
			require.Error(t, err)
			assert.Equal(t, d.err, err.Error())
		})
	}
}

func TestGraph(t *testing.T) {
	g := pulsetest.MustGraph(t, example2)

	assert.Equal(t, "broadcaster", g.Entry())
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []string{"output"}, g.Sinks())
	assert.Empty(t, g.Warnings())

	m, ok := g.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, ps.Module{Name: "a", Kind: ps.FlipFlop, Outputs: []string{"inv", "con"}}, m)
	_, ok = g.Lookup("output")
	assert.False(t, ok)
	_, ok = g.Lookup("nope")
	assert.False(t, ok)

	assert.Equal(t, ps.Conjunction, g.KindOf("con"))
	assert.Equal(t, ps.Untracked, g.KindOf("output"))
	assert.Equal(t, ps.Untracked, g.KindOf("nope"))

	assert.Equal(t, []string{"a", "b"}, g.Inputs("con"))
	assert.Equal(t, []string{"con"}, g.Inputs("output"))
	assert.Empty(t, g.Inputs("broadcaster"))
	assert.Nil(t, g.Inputs("nope"))

	assert.Equal(t, []string{"a", "b"}, g.Names(ps.FlipFlop))
	assert.Equal(t, []string{"con", "inv"}, g.Names(ps.Conjunction))

	var names []string
	for _, m := range g.Modules(ps.FlipFlop, ps.Broadcaster) {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"broadcaster", "a", "b"}, names)
	assert.Len(t, g.Modules(), 5)
}

func TestGraph_repeated_destination(t *testing.T) {
	g := pulsetest.MustGraph(t, "broadcaster -> a, a; &a -> out")
	assert.Equal(t, []string{"broadcaster"}, g.Inputs("a"))

	// both pulses update the same remembered input: a always sends high.
	tr := ps.NewNetwork(g).Press()
	assert.Equal(t, 2, tr.Received("out", true))
	assert.Equal(t, 0, tr.Received("out", false))
}

func TestGraph_zero_input_conjunction(t *testing.T) {
	g := pulsetest.MustGraph(t, "broadcaster -> a; %a -> out; &z -> a")
	assert.Equal(t, []string{"conjunction z has no inputs and will always send low pulses"}, g.Warnings())

	// z never receives a pulse, so it never sends one.
	n := ps.NewNetwork(g)
	for i := 0; i < 4; i++ {
		assert.Empty(t, n.Press().Sent("z"))
	}
}

func TestModule_String(t *testing.T) {
	for _, s := range []string{"broadcaster -> a, b, c", "%a -> b", "&inv -> a, output"} {
		m, err := ps.ParseDefinition(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "flip-flop", ps.FlipFlop.String())
	assert.Equal(t, "Kind(?)", ps.Kind(42).String())
	assert.Equal(t, "&", ps.Conjunction.Sigil())
	assert.Equal(t, "", ps.Broadcaster.Sigil())
}
