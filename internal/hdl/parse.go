// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and parser for module definition lines.
//
//	broadcaster -> a, b, c
//	%a -> b
//	&inv -> a
//
package hdl

import (
	"fmt"
	"unicode"

	"github.com/db47h/pulsesim/internal/lex"
)

// Tokens
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	Percent
	Ampersand
	Arrow
	Comma
)

// Lexer returns a new lexer for a module definition line.
//
func Lexer(input string) lex.Interface {
	return lex.New(input, lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r):
		return lexIdent
	case r == '%':
		l.Emit(Percent, "%")
	case r == '&':
		l.Emit(Ampersand, "&")
	case r == ',':
		l.Emit(Comma, ",")
	case r == '-':
		if l.Next() == '>' {
			l.Emit(Arrow, "->")
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Raw, r)
		return lexEOF
	}
	return nil
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	buf := []rune{l.Current()}
	r := l.Next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		buf = append(buf, r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(Ident, string(buf))
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}

// Definition is a parsed definition line. Sigil is '%', '&' or 'b' for a
// broadcaster, in which case the leading 'b' is kept in Name.
//
type Definition struct {
	Sigil   rune
	Name    string
	Outputs []string
}

// Error is a syntax error at a given position in the input.
//
type Error struct {
	Input string
	Pos   lex.Pos
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("in %q at pos %d: %s", e.Input, e.Pos+1, e.Msg)
}

// Parse parses a single definition line.
//
func Parse(input string) (Definition, error) {
	var d Definition
	l := Lexer(input)

	i := l.Lex()
	switch i.Type {
	case Percent, Ampersand:
		d.Sigil = []rune(i.Value.(string))[0]
		i = l.Lex()
		if i.Type != Ident {
			return d, parseError(input, i, "expected module name after sigil")
		}
		d.Name = i.Value.(string)
	case Ident:
		name := i.Value.(string)
		if name[0] != 'b' {
			return d, parseError(input, i, fmt.Sprintf("unknown module type sigil %q", name[0]))
		}
		d.Sigil, d.Name = 'b', name
	case EOF:
		return d, parseError(input, i, "empty definition")
	default:
		return d, parseError(input, i, "unknown module type sigil "+i.String())
	}

	if i = l.Lex(); i.Type != Arrow {
		return d, parseError(input, i, "expected '->'")
	}

	for {
		i = l.Lex()
		if i.Type != Ident {
			if i.Type == EOF && len(d.Outputs) == 0 {
				return d, parseError(input, i, "empty destination list")
			}
			return d, parseError(input, i, "expected destination name")
		}
		d.Outputs = append(d.Outputs, i.Value.(string))
		i = l.Lex()
		switch i.Type {
		case EOF:
			return d, nil
		case Comma:
		default:
			return d, parseError(input, i, "expected comma or end of input")
		}
	}
}

func parseError(in string, i lex.Item, msg string) error {
	return &Error{Input: in, Pos: i.Pos, Msg: msg}
}
