// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/db47h/pulsesim/internal/hdl"
	"github.com/pkg/errors"
)

// ParseError is returned for a malformed definition line.
//
type ParseError struct {
	Line int    // 1-based line number, 0 if unknown
	Text string // offending line
	Pos  int    // 1-based column
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: in %q at pos %d: %s", e.Line, e.Text, e.Pos, e.Msg)
	}
	return fmt.Sprintf("in %q at pos %d: %s", e.Text, e.Pos, e.Msg)
}

// ParseDefinition parses a module definition line:
//
//	broadcaster -> a, b
//	%a -> b
//	&con -> output
//
// Lines starting with 'b' define the broadcaster; the name keeps its leading
// 'b'.
//
func ParseDefinition(line string) (Module, error) {
	d, err := hdl.Parse(line)
	if err != nil {
		var se *hdl.Error
		if errors.As(err, &se) {
			return Module{}, &ParseError{Text: line, Pos: int(se.Pos) + 1, Msg: se.Msg}
		}
		return Module{}, err
	}
	m := Module{Name: d.Name, Outputs: d.Outputs}
	switch d.Sigil {
	case 'b':
		m.Kind = Broadcaster
	case '%':
		m.Kind = FlipFlop
	case '&':
		m.Kind = Conjunction
	}
	return m, nil
}

// BuildGraph parses the given definition lines and builds a Graph. Blank lines
// and lines starting with '#' are ignored.
//
func BuildGraph(lines []string) (*Graph, error) {
	defs := make([]Module, 0, len(lines))
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || l[0] == '#' {
			continue
		}
		m, err := ParseDefinition(l)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = i + 1
			}
			return nil, err
		}
		defs = append(defs, m)
	}
	return NewGraph(defs)
}

// ReadGraph reads definition lines from r and builds a Graph.
//
func ReadGraph(r io.Reader) (*Graph, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read definitions")
	}
	return BuildGraph(lines)
}
