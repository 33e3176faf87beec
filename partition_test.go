package pulsesim_test

import (
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/pulsetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	g := counters(t, 3, 5)
	c, err := ps.Partition(g)
	require.NoError(t, err)
	assert.Equal(t, ps.Clusters{
		"a0": {"a0", "a1"},
		"b0": {"b0", "b1", "b2"},
	}, c)
	assert.Equal(t, []string{"a0", "b0"}, c.Keys())
	assert.Equal(t, g.Names(ps.FlipFlop), c.Merge())

	k, ok := c.Of("b2")
	assert.True(t, ok)
	assert.Equal(t, "b0", k)
	_, ok = c.Of("ahub")
	assert.False(t, ok)
}

// Every flip-flop belongs to exactly one cluster.
func TestPartition_exhaustive(t *testing.T) {
	for _, periods := range [][]uint64{{1}, {3, 5, 7}, {4093, 4091, 4079, 4057}} {
		g := counters(t, periods...)
		c, err := ps.Partition(g)
		require.NoError(t, err)
		assert.Len(t, c, len(periods))
		assert.Equal(t, g.Names(ps.FlipFlop), c.Merge())
	}
}

func TestPartition_errors(t *testing.T) {
	data := []struct {
		name     string
		defs     string
		ff       string
		branches []string
	}{
		{"shared", "broadcaster -> a, b; %a -> c; %b -> c; %c -> out", "c", []string{"a", "b"}},
		{"unreachable", "broadcaster -> a; %a -> out; %z -> out", "z", nil},
		{"feedback", example1, "a", []string{"a", "b", "c"}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := ps.Partition(pulsetest.MustGraph(t, d.defs))
			var pe *ps.PartitionError
			require.True(t, errors.As(err, &pe), "%v", err)
			assert.Equal(t, d.ff, pe.FlipFlop)
			assert.Equal(t, d.branches, pe.Branches)
		})
	}
}

func TestPartition_no_flipflops(t *testing.T) {
	c, err := ps.Partition(pulsetest.MustGraph(t, "broadcaster -> a; &a -> out"))
	require.NoError(t, err)
	assert.Empty(t, c)
}
