// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"fmt"
	"sort"
	"strings"
)

// Clusters maps the name of a direct successor of the broadcaster to the
// sorted names of the flip-flops reached through it.
//
type Clusters map[string][]string

// Keys returns the sorted cluster keys.
//
func (c Clusters) Keys() []string {
	ks := make([]string, 0, len(c))
	for k := range c {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Of returns the key of the cluster containing the named flip-flop.
//
func (c Clusters) Of(name string) (key string, ok bool) {
	for k, ffs := range c {
		if i := sort.SearchStrings(ffs, name); i < len(ffs) && ffs[i] == name {
			return k, true
		}
	}
	return "", false
}

// Merge returns the sorted union of all clusters. Duplicates are kept.
//
func (c Clusters) Merge() []string {
	var all []string
	for _, ffs := range c {
		all = append(all, ffs...)
	}
	sort.Strings(all)
	return all
}

// PartitionError reports a flip-flop that cannot be attributed to exactly one
// cluster.
//
type PartitionError struct {
	FlipFlop string
	Branches []string // branches reaching FlipFlop, empty if unreachable
}

func (e *PartitionError) Error() string {
	if len(e.Branches) == 0 {
		return fmt.Sprintf("flip-flop %s is not reachable from the broadcaster", e.FlipFlop)
	}
	return fmt.Sprintf("flip-flop %s is reachable from more than one branch: %s", e.FlipFlop, strings.Join(e.Branches, ", "))
}

// Partition groups all flip-flops of g into clusters, one per direct
// successor of the broadcaster. The graph is walked breadth first from the
// broadcaster, visiting each module once; a flip-flop belongs to the cluster
// of the branch through which it was first reached.
//
// The partition is checked to be exhaustive and disjoint: a flip-flop that is
// not reachable, or that is reachable from more than one branch without going
// through the broadcaster, results in a *PartitionError.
//
func Partition(g *Graph) (Clusters, error) {
	type item struct{ n, branch int }

	visited := make([]bool, len(g.nodes))
	visited[g.entry] = true
	var q []item
	for _, e := range g.nodes[g.entry].outs {
		if !visited[e.to] {
			visited[e.to] = true
			q = append(q, item{e.to, e.to})
		}
	}
	c := make(Clusters)
	for head := 0; head < len(q); head++ {
		it := q[head]
		n := &g.nodes[it.n]
		if n.kind == FlipFlop {
			k := g.nodes[it.branch].name
			c[k] = append(c[k], n.name)
		}
		for _, e := range n.outs {
			if !visited[e.to] {
				visited[e.to] = true
				q = append(q, item{e.to, it.branch})
			}
		}
	}
	for _, ffs := range c {
		sort.Strings(ffs)
	}

	if err := checkPartition(g); err != nil {
		return nil, err
	}
	return c, nil
}

func checkPartition(g *Graph) error {
	var roots []int
	var reach [][]bool
	for _, e := range g.nodes[g.entry].outs {
		if e.to != g.entry && !hasNode(roots, e.to) {
			roots = append(roots, e.to)
			reach = append(reach, g.reach([]int{e.to}, g.entry, false))
		}
	}
	for _, ff := range g.Names(FlipFlop) {
		var branches []string
		for i, r := range roots {
			if reach[i][g.ids[ff]] {
				branches = append(branches, g.nodes[r].name)
			}
		}
		if len(branches) != 1 {
			sort.Strings(branches)
			return &PartitionError{FlipFlop: ff, Branches: branches}
		}
	}
	return nil
}

func hasNode(ns []int, n int) bool {
	for _, x := range ns {
		if x == n {
			return true
		}
	}
	return false
}

// reach returns the set of nodes reachable from any of the nodes in from,
// including themselves, without going through node stop. If reverse is true,
// edges are followed backwards.
//
func (g *Graph) reach(from []int, stop int, reverse bool) []bool {
	seen := make([]bool, len(g.nodes))
	q := make([]int, 0, len(from))
	for _, n := range from {
		if !seen[n] {
			seen[n] = true
			q = append(q, n)
		}
	}
	for head := 0; head < len(q); head++ {
		n := &g.nodes[q[head]]
		var next []int
		if reverse {
			next = n.ins
		} else {
			next = make([]int, len(n.outs))
			for i, e := range n.outs {
				next[i] = e.to
			}
		}
		for _, x := range next {
			if x != stop && !seen[x] {
				seen[x] = true
				q = append(q, x)
			}
		}
	}
	return seen
}
