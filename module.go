// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

// Kind is the behavior of a module.
//
type Kind int

// Module kinds. Untracked is never the kind of a defined module, it is what
// KindOf returns for names that are only ever used as destinations.
//
const (
	Untracked Kind = iota
	Broadcaster
	FlipFlop
	Conjunction
)

var kindNames = [...]string{
	Untracked:   "untracked",
	Broadcaster: "broadcaster",
	FlipFlop:    "flip-flop",
	Conjunction: "conjunction",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Sigil returns the definition line prefix for k.
//
func (k Kind) Sigil() string {
	switch k {
	case FlipFlop:
		return "%"
	case Conjunction:
		return "&"
	}
	return ""
}

// A Module is the immutable definition of a module: its name, kind and
// ordered list of destinations.
//
type Module struct {
	Name    string
	Kind    Kind
	Outputs []string
}

// String returns the module in definition line format.
//
func (m Module) String() string {
	s := m.Kind.Sigil() + m.Name + " ->"
	for i, o := range m.Outputs {
		if i > 0 {
			s += ","
		}
		s += " " + o
	}
	return s
}

// Button is the source name of the synthetic pulse that starts every trigger.
//
const Button = "button"
