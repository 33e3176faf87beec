// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"fmt"
	"sort"
	"strings"
)

// TargetError reports a network whose structure around the target module does
// not allow computing the first low pulse from cluster periods.
//
type TargetError struct {
	Target string
	Msg    string
}

func (e *TargetError) Error() string {
	return "target " + e.Target + ": " + e.Msg
}

// ValidateTarget checks that the target module is fed by a single conjunction
// whose inputs are in one-to-one correspondence with the clusters: going
// backwards from each gate input without crossing the broadcaster must reach
// the flip-flops of exactly one cluster, and every cluster must be reached that
// way by exactly one input. It returns the name of the gate.
//
func ValidateTarget(g *Graph, target string, c Clusters) (string, error) {
	gate, _, err := gateInputs(g, target, c)
	if err != nil {
		return "", err
	}
	return g.nodes[gate].name, nil
}

// gateInputs validates the target like ValidateTarget and returns the gate node
// and the gate input node driven by each cluster.
//
func gateInputs(g *Graph, target string, c Clusters) (gate int, inputs map[string]int, err error) {
	tn, ok := g.ids[target]
	if !ok {
		return -1, nil, &TargetError{target, "no such module"}
	}
	ins := g.nodes[tn].ins
	if len(ins) != 1 {
		return -1, nil, &TargetError{target, fmt.Sprintf("fed by %d modules, expected a single conjunction", len(ins))}
	}
	gate = ins[0]
	gn := &g.nodes[gate]
	if gn.kind != Conjunction {
		return -1, nil, &TargetError{target, fmt.Sprintf("fed by %s %s, expected a conjunction", gn.kind, gn.name)}
	}
	if len(gn.ins) != len(c) {
		return -1, nil, &TargetError{target, fmt.Sprintf("gate %s has %d inputs for %d clusters", gn.name, len(gn.ins), len(c))}
	}

	owner := make(map[int]string)
	for k, ffs := range c {
		for _, ff := range ffs {
			owner[g.ids[ff]] = k
		}
	}
	inputs = make(map[string]int, len(c))
	for _, in := range gn.ins {
		var ks []string
		for n, r := range g.reach([]int{in}, g.entry, true) {
			if k, own := owner[n]; r && own && !contains(ks, k) {
				ks = append(ks, k)
			}
		}
		name := g.nodes[in].name
		if len(ks) != 1 {
			sort.Strings(ks)
			return -1, nil, &TargetError{target, fmt.Sprintf("gate input %s depends on clusters [%s], expected exactly one", name, strings.Join(ks, ", "))}
		}
		if prev, dup := inputs[ks[0]]; dup {
			return -1, nil, &TargetError{target, fmt.Sprintf("gate inputs %s and %s both depend on cluster %s", g.nodes[prev].name, name, ks[0])}
		}
		inputs[ks[0]] = in
	}
	return gate, inputs, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
