// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a small state-function based lexer.
//
// A lexer is driven by StateFn functions. Each call to Lex runs state functions
// until at least one item has been emitted. A StateFn returning nil resets the
// lexer to its initial state, marking the start of a new token.
//
package lex

import (
	"fmt"
	"unicode/utf8"
)

// EOF is both the rune returned by Next at end of input and the item type
// emitted for it.
//
const EOF = -1

// Type is an item type.
//
type Type int

// Pos is a byte offset in the input.
//
type Pos int

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

// String returns a representation of the item value suitable for error
// messages.
//
func (i Item) String() string {
	switch v := i.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case rune:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

// Interface wraps the Lex method.
//
type Interface interface {
	Lex() Item
}

// A StateFn is a lexer state.
//
type StateFn func(l *Lexer) StateFn

// Lexer holds the lexing state of a single input string.
//
type Lexer struct {
	input string
	init  StateFn
	state StateFn
	items []Item
	start int // start of current token
	off   int // read offset
	width int // width of last rune read
	cur   rune
}

// New returns a new lexer for input, using init as the initial state.
//
func New(input string, init StateFn) *Lexer {
	return &Lexer{input: input, init: init}
}

// Lex returns the next item.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.start = l.off
			l.state = l.init
		}
		l.state = l.state(l)
	}
	it := l.items[0]
	l.items = l.items[1:]
	return it
}

// Next reads and returns the next rune. It returns EOF at end of input.
//
func (l *Lexer) Next() rune {
	if l.off >= len(l.input) {
		l.width = 0
		l.cur = EOF
		return EOF
	}
	r, w := utf8.DecodeRuneInString(l.input[l.off:])
	l.off += w
	l.width = w
	l.cur = r
	return r
}

// Current returns the last rune returned by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// Backup unreads the last rune. It can only be called once per call to Next.
//
func (l *Lexer) Backup() {
	l.off -= l.width
	l.width = 0
}

// AcceptWhile reads runes while f returns true, then backs up the first
// rejected rune.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
	}
	l.Backup()
}

// Emit emits an item of type t with value v positioned at the start of the
// current token.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: Pos(l.start), Value: v})
	l.start = l.off
}
