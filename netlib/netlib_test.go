package netlib_test

import (
	"context"
	"testing"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/netlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	ms, err := netlib.Counter("b", 5, "out")
	require.NoError(t, err)
	var ls []string
	for _, m := range ms {
		ls = append(ls, m.String())
	}
	assert.Equal(t, []string{
		"%b0 -> b1, bhub",
		"%b1 -> b2",
		"%b2 -> bhub",
		"&bhub -> b0, b1, binv",
		"&binv -> out",
	}, ls)

	_, err = netlib.Counter("x", 4, "out")
	assert.Error(t, err)
}

// counterGraph wraps a single counter with a broadcaster.
func counterGraph(t *testing.T, period uint64) *pulsesim.Graph {
	t.Helper()
	ms, err := netlib.Counter("c", period, "out")
	require.NoError(t, err)
	ms = append(ms, pulsesim.Module{Name: "broadcaster", Kind: pulsesim.Broadcaster, Outputs: []string{netlib.Bit("c", 0)}})
	g, err := pulsesim.NewGraph(ms)
	require.NoError(t, err)
	return g
}

func TestCounter_period(t *testing.T) {
	for _, p := range []uint64{1, 3, 5, 7, 11, 13, 37, 255, 3761} {
		g := counterGraph(t, p)
		n := pulsesim.NewNetwork(g)
		var reset []uint64
		for i := uint64(1); i <= 2*p; i++ {
			tr := n.Press()
			if tr.Received("out", true) > 0 {
				reset = append(reset, i)
			}
		}
		assert.Equal(t, []uint64{p, 2 * p}, reset, "period %d", p)
		ps, err := pulsesim.FindPeriods(context.Background(), g, pulsesim.Clusters{"c0": g.Names(pulsesim.FlipFlop)}, 1<<16)
		require.NoError(t, err)
		assert.Equal(t, p, ps["c0"], "period %d", p)
	}
}

func TestNetwork(t *testing.T) {
	ms, err := netlib.Network("rx", 3, 5, 7)
	require.NoError(t, err)
	g, err := pulsesim.BuildGraph(netlib.Lines(ms))
	require.NoError(t, err)
	bc, ok := g.Lookup("broadcaster")
	require.True(t, ok)
	assert.Equal(t, []string{"a0", "b0", "c0"}, bc.Outputs)
	assert.Equal(t, []string{"ainv", "binv", "cinv"}, g.Inputs(netlib.Join))

	r, err := pulsesim.Solve(context.Background(), g, "rx", pulsesim.SolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, pulsesim.Periods{"a0": 3, "b0": 5, "c0": 7}, r.Periods())
	assert.Equal(t, uint64(105), r.Presses)
	assert.Equal(t, netlib.Join, r.Gate)

	_, err = netlib.Network("rx")
	assert.Error(t, err)
	_, err = netlib.Network("rx", 3, 6)
	assert.Error(t, err)
}
