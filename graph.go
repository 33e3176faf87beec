// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"sort"

	"github.com/pkg/errors"
)

// an edge connects a module to one of its destinations. slot is the index of
// the source in the destination's input list.
type edge struct {
	to   int
	slot int
}

// a node is a module or an untracked sink, identified by its index in
// Graph.nodes.
type node struct {
	name string
	kind Kind
	outs []edge
	ins  []int
	def  int // index in Graph.defs, -1 for sinks
}

// Graph is the immutable module graph of a network.
//
// Every name used in the definitions, including names of untracked sinks, is
// allocated a node number so that simulation state can be indexed by node.
//
type Graph struct {
	defs     []Module
	nodes    []node
	ids      map[string]int
	entry    int
	warnings []string
}

// NewGraph builds a graph from module definitions. Definition order is
// preserved by Modules.
//
// Exactly one broadcaster must be defined. Destination names that are not
// defined are untracked sinks.
//
func NewGraph(defs []Module) (*Graph, error) {
	g := &Graph{
		defs:  make([]Module, len(defs)),
		ids:   make(map[string]int, len(defs)),
		entry: -1,
	}
	for i, d := range defs {
		switch {
		case d.Name == "":
			return nil, errors.Errorf("module #%d: empty name", i+1)
		case d.Kind < Broadcaster || d.Kind > Conjunction:
			return nil, errors.Errorf("module %s: invalid kind %v", d.Name, d.Kind)
		case len(d.Outputs) == 0:
			return nil, errors.Errorf("module %s: empty destination list", d.Name)
		}
		if _, ok := g.ids[d.Name]; ok {
			return nil, errors.Errorf("module %s defined more than once", d.Name)
		}
		if d.Kind == Broadcaster {
			if g.entry >= 0 {
				return nil, errors.Errorf("module %s: more than one broadcaster (first is %s)", d.Name, g.nodes[g.entry].name)
			}
			g.entry = len(g.nodes)
		}
		g.defs[i] = Module{Name: d.Name, Kind: d.Kind, Outputs: append([]string(nil), d.Outputs...)}
		g.ids[d.Name] = len(g.nodes)
		g.nodes = append(g.nodes, node{name: d.Name, kind: d.Kind, def: i})
	}
	if g.entry < 0 {
		return nil, errors.New("no broadcaster defined")
	}

	// reverse-edge pass: compute input lists and wire edges.
	slots := make(map[[2]int]int)
	for n := range g.defs {
		from := g.ids[g.defs[n].Name]
		for _, o := range g.defs[n].Outputs {
			to := g.alloc(o)
			k := [2]int{from, to}
			slot, ok := slots[k]
			if !ok {
				slot = len(g.nodes[to].ins)
				g.nodes[to].ins = append(g.nodes[to].ins, from)
				slots[k] = slot
			}
			g.nodes[from].outs = append(g.nodes[from].outs, edge{to, slot})
		}
	}

	for _, n := range g.nodes {
		if n.kind == Conjunction && len(n.ins) == 0 {
			g.warnings = append(g.warnings, "conjunction "+n.name+" has no inputs and will always send low pulses")
		}
	}
	return g, nil
}

// alloc returns the node number for name, allocating an untracked sink node
// if necessary.
//
func (g *Graph) alloc(name string) int {
	if n, ok := g.ids[name]; ok {
		return n
	}
	n := len(g.nodes)
	g.ids[name] = n
	g.nodes = append(g.nodes, node{name: name, kind: Untracked, def: -1})
	return n
}

// Entry returns the name of the broadcaster.
//
func (g *Graph) Entry() string {
	return g.nodes[g.entry].name
}

// Lookup returns the definition of the named module. ok is false if the name
// is not defined, meaning that it is either an untracked sink or unknown.
//
func (g *Graph) Lookup(name string) (m Module, ok bool) {
	n, ok := g.ids[name]
	if !ok || g.nodes[n].def < 0 {
		return Module{}, false
	}
	return g.defs[g.nodes[n].def], true
}

// KindOf returns the kind of the named module, or Untracked.
//
func (g *Graph) KindOf(name string) Kind {
	if n, ok := g.ids[name]; ok {
		return g.nodes[n].kind
	}
	return Untracked
}

// Modules returns all defined modules of the given kinds in definition order.
// If no kind is given, all modules are returned.
//
func (g *Graph) Modules(kinds ...Kind) []Module {
	var ms []Module
	for _, m := range g.defs {
		if len(kinds) == 0 || hasKind(kinds, m.Kind) {
			ms = append(ms, m)
		}
	}
	return ms
}

func hasKind(ks []Kind, k Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

// Names returns the sorted names of all defined modules of kind k.
//
func (g *Graph) Names(k Kind) []string {
	var ns []string
	for _, m := range g.defs {
		if m.Kind == k {
			ns = append(ns, m.Name)
		}
	}
	sort.Strings(ns)
	return ns
}

// Inputs returns the names of the modules that list name as a destination, in
// the order they were first found. For a conjunction this is the set of inputs
// it remembers.
//
func (g *Graph) Inputs(name string) []string {
	n, ok := g.ids[name]
	if !ok {
		return nil
	}
	ins := make([]string, len(g.nodes[n].ins))
	for i, in := range g.nodes[n].ins {
		ins[i] = g.nodes[in].name
	}
	return ins
}

// Sinks returns the sorted names of all untracked destinations.
//
func (g *Graph) Sinks() []string {
	var ns []string
	for _, n := range g.nodes {
		if n.kind == Untracked {
			ns = append(ns, n.name)
		}
	}
	sort.Strings(ns)
	return ns
}

// Warnings returns data integrity warnings found while building the graph.
//
func (g *Graph) Warnings() []string {
	return g.warnings
}

// Len returns the number of defined modules.
//
func (g *Graph) Len() int { return len(g.defs) }
