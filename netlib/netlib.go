// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlib provides a library of reusable sub-networks for pulsesim.
//
package netlib

import (
	"math/bits"
	"strconv"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
)

// common module name suffixes
const (
	sHub = "hub"
	sInv = "inv"
)

// Bit returns the name of bit i of the counter with the given prefix.
//
func Bit(prefix string, i int) string { return prefix + strconv.Itoa(i) }

// Hub returns the name of the conjunction that detects the end of the cycle of
// the counter with the given prefix.
//
func Hub(prefix string) string { return prefix + sHub }

// Inverter returns the name of the output inverter of the counter with the
// given prefix.
//
func Inverter(prefix string) string { return prefix + sInv }

// Counter returns a binary counter cluster with the given period.
//
//	Inputs: Bit(prefix, 0), to be fed a low pulse on every trigger event
//	Outputs: out, fed by Inverter(prefix)
//	Function: the counter counts trigger events; when it reaches period, its
//	hub sends a low pulse that resets all bits to off and the inverter sends
//	a high pulse to out. The inverter sends a low pulse to out on every other
//	trigger event.
//
// The counter has bits.Len64(period) flip-flops chained from Bit(prefix, 0).
// Flip-flops for bits set in period feed the hub; the hub feeds the others,
// bit 0 and the inverter. period must be odd.
//
func Counter(prefix string, period uint64, out string) ([]pulsesim.Module, error) {
	if period%2 == 0 {
		return nil, errors.Errorf("counter %s: period %d must be odd", prefix, period)
	}
	n := bits.Len64(period)
	hub := pulsesim.Module{Name: Hub(prefix), Kind: pulsesim.Conjunction, Outputs: []string{Bit(prefix, 0)}}
	ms := make([]pulsesim.Module, 0, n+2)
	for i := 0; i < n; i++ {
		ff := pulsesim.Module{Name: Bit(prefix, i), Kind: pulsesim.FlipFlop}
		if i < n-1 {
			ff.Outputs = append(ff.Outputs, Bit(prefix, i+1))
		}
		if period&(1<<uint(i)) != 0 {
			ff.Outputs = append(ff.Outputs, hub.Name)
		} else {
			hub.Outputs = append(hub.Outputs, ff.Name)
		}
		ms = append(ms, ff)
	}
	hub.Outputs = append(hub.Outputs, Inverter(prefix))
	return append(ms, hub, pulsesim.Module{Name: Inverter(prefix), Kind: pulsesim.Conjunction, Outputs: []string{out}}), nil
}

// Join is the name of the conjunction joining all counters in a network built
// by Network.
//
const Join = "join"

// Network returns a network made of one counter per period, all fed by the
// broadcaster and joined by a conjunction that sends a low pulse to target when
// all counters reach the end of their cycle during the same trigger event.
// Counters are named "a", "b", ... in order.
//
func Network(target string, periods ...uint64) ([]pulsesim.Module, error) {
	if len(periods) == 0 || len(periods) > 26 {
		return nil, errors.Errorf("invalid counter count %d", len(periods))
	}
	bc := pulsesim.Module{Name: "broadcaster", Kind: pulsesim.Broadcaster}
	ms := []pulsesim.Module{bc}
	for i, p := range periods {
		prefix := string(rune('a' + i))
		c, err := Counter(prefix, p, Join)
		if err != nil {
			return nil, err
		}
		ms[0].Outputs = append(ms[0].Outputs, Bit(prefix, 0))
		ms = append(ms, c...)
	}
	return append(ms, pulsesim.Module{Name: Join, Kind: pulsesim.Conjunction, Outputs: []string{target}}), nil
}

// Lines formats module definitions as definition lines.
//
func Lines(ms []pulsesim.Module) []string {
	ls := make([]string, len(ms))
	for i, m := range ms {
		ls[i] = m.String()
	}
	return ls
}
