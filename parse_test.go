package pulsesim_test

import (
	"strings"
	"testing"

	ps "github.com/db47h/pulsesim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinition(t *testing.T) {
	data := []struct {
		in  string
		exp ps.Module
		err string
	}{
		{"broadcaster -> a, b", ps.Module{Name: "broadcaster", Kind: ps.Broadcaster, Outputs: []string{"a", "b"}}, ""},
		{"%a -> b", ps.Module{Name: "a", Kind: ps.FlipFlop, Outputs: []string{"b"}}, ""},
		{"&con -> output", ps.Module{Name: "con", Kind: ps.Conjunction, Outputs: []string{"output"}}, ""},
		{"%c ->", ps.Module{}, `in "%c ->" at pos 6: empty destination list`},
		{"xyz -> a", ps.Module{}, `in "xyz -> a" at pos 1: unknown module type sigil 'x'`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			m, err := ps.ParseDefinition(d.in)
			if d.err != "" {
				require.Error(t, err)
				assert.Equal(t, d.err, err.Error())
				var pe *ps.ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, d.in, pe.Text)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.exp, m)
		})
	}
}

func TestBuildGraph(t *testing.T) {
	g, err := ps.BuildGraph([]string{
		"# comment",
		"",
		"broadcaster -> a",
		"  %a -> out  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	_, err = ps.BuildGraph([]string{"broadcaster -> a", "", "%a - out"})
	require.Error(t, err)
	assert.Equal(t, `line 3: in "%a - out" at pos 4: expected '->'`, err.Error())
	var pe *ps.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 4, pe.Pos)

	_, err = ps.BuildGraph([]string{"%a -> b"})
	assert.EqualError(t, err, "no broadcaster defined")
}

func TestReadGraph(t *testing.T) {
	g, err := ps.ReadGraph(strings.NewReader("broadcaster -> a, b, c\n%a -> b\n%b -> c\n%c -> inv\n&inv -> a\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []string{"c"}, g.Inputs("inv"))
}
