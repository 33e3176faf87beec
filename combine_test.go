package pulsesim_test

import (
	"testing"
	"testing/quick"

	ps "github.com/db47h/pulsesim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	data := []struct {
		in  []uint64
		exp uint64
	}{
		{[]uint64{3, 5}, 15},
		{[]uint64{4, 6}, 12},
		{[]uint64{7}, 7},
		{[]uint64{3733, 3793, 3947, 4057}, 226732077152351},
		{[]uint64{1 << 62, 2}, 1 << 62},
	}
	for _, d := range data {
		r, err := ps.Combine(d.in)
		require.NoError(t, err)
		assert.Equal(t, d.exp, r, "%v", d.in)
	}
}

func TestCombine_errors(t *testing.T) {
	_, err := ps.Combine(nil)
	assert.EqualError(t, err, "no periods to combine")
	_, err = ps.Combine([]uint64{3, 0})
	assert.EqualError(t, err, "period #2 is zero")
	_, err = ps.Combine([]uint64{1 << 63, 3})
	assert.Equal(t, ps.ErrOverflow, err)
}

func TestCombine_properties(t *testing.T) {
	// order independence and associativity.
	f := func(a, b, c uint16) bool {
		x, y, z := uint64(a)+1, uint64(b)+1, uint64(c)+1
		r1, err1 := ps.Combine([]uint64{x, y, z})
		r2, err2 := ps.Combine([]uint64{z, x, y})
		xy, _ := ps.Combine([]uint64{x, y})
		r3, err3 := ps.Combine([]uint64{xy, z})
		return err1 == nil && err2 == nil && err3 == nil && r1 == r2 && r1 == r3 &&
			r1%x == 0 && r1%y == 0 && r1%z == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	// LCM agrees with the product formula.
	g := func(a, b uint32) bool {
		x, y := uint64(a)|1, uint64(b)|1
		l, ok := ps.LCM(x, y)
		return ok && l == x*y/ps.GCD(x, y)
	}
	if err := quick.Check(g, nil); err != nil {
		t.Fatal(err)
	}
}
