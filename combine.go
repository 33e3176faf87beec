// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"math/bits"

	"github.com/pkg/errors"
)

// ErrOverflow is returned by Combine when the result does not fit in a uint64.
//
var ErrOverflow = errors.New("least common multiple overflows uint64")

// GCD returns the greatest common divisor of a and b.
//
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b. ok is false on overflow.
//
func LCM(a, b uint64) (l uint64, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(a/GCD(a, b), b)
	return lo, hi == 0
}

// Combine returns the smallest number of trigger events after which every
// cluster is back at the start of its cycle: the least common multiple of all
// periods. Periods must be non-zero.
//
func Combine(periods []uint64) (uint64, error) {
	if len(periods) == 0 {
		return 0, errors.New("no periods to combine")
	}
	r := uint64(1)
	for i, p := range periods {
		if p == 0 {
			return 0, errors.Errorf("period #%d is zero", i+1)
		}
		var ok bool
		if r, ok = LCM(r, p); !ok {
			return 0, ErrOverflow
		}
	}
	return r, nil
}
