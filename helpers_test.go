package pulsesim_test

import (
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/netlib"
	"github.com/pkg/errors"
)

const (
	chain3   = "broadcaster -> a, b, c; %a -> b; %b -> c; %c -> output"
	example1 = "broadcaster -> a, b, c; %a -> b; %b -> c; %c -> inv; &inv -> a"
	example2 = "broadcaster -> a; %a -> inv, con; &inv -> b; %b -> con; &con -> output"
	twoInput = "broadcaster -> x, y; %x -> con; %y -> con; &con -> out"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// counters returns a network of binary counters with the given periods, joined
// by a conjunction feeding rx.
func counters(t *testing.T, periods ...uint64) *ps.Graph {
	t.Helper()
	ms, err := netlib.Network("rx", periods...)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ps.NewGraph(ms)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	return g
}
