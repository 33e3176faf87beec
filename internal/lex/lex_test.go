package lex_test

import (
	"testing"
	"unicode"

	"github.com/db47h/pulsesim/internal/lex"
)

const (
	tWord lex.Type = iota
	tPunct
)

func lexWords(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		l.Emit(lex.EOF, nil)
		return lexWords
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
		return nil
	case unicode.IsLetter(r):
		l.AcceptWhile(unicode.IsLetter)
		l.Emit(tWord, nil)
	default:
		l.Emit(tPunct, r)
	}
	return nil
}

func TestLexer(t *testing.T) {
	l := lex.New("ab  cd,é", lexWords)
	exp := []struct {
		typ lex.Type
		pos lex.Pos
	}{
		{tWord, 0},
		{tWord, 4},
		{tPunct, 6},
		{tWord, 7},
		{lex.EOF, 9},
		{lex.EOF, 9},
	}
	for i, e := range exp {
		it := l.Lex()
		if it.Type != e.typ || it.Pos != e.pos {
			t.Fatalf("item %d: got type %d at %d, expected type %d at %d", i, it.Type, it.Pos, e.typ, e.pos)
		}
	}
}

func TestItem_String(t *testing.T) {
	data := []struct {
		v   interface{}
		exp string
	}{
		{"ident", `"ident"`},
		{'x', `'x'`},
		{42, "42"},
	}
	for _, d := range data {
		if s := (lex.Item{Value: d.v}).String(); s != d.exp {
			t.Errorf("String() = %s, expected %s", s, d.exp)
		}
	}
}

func TestLexer_Backup(t *testing.T) {
	l := lex.New("xy", nil)
	if r := l.Next(); r != 'x' {
		t.Fatalf("Next() = %q", r)
	}
	l.Backup()
	if r := l.Next(); r != 'x' || l.Current() != 'x' {
		t.Fatalf("Next() after Backup = %q", r)
	}
	l.Next()
	if r := l.Next(); r != lex.EOF {
		t.Fatalf("Next() at end = %q", r)
	}
	l.Backup()
	if r := l.Next(); r != lex.EOF {
		t.Fatalf("Next() after Backup at end = %q", r)
	}
}
