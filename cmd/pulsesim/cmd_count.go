// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// product returns low*high or an error if it does not fit in 64 bits.
func product(low, high uint64) (uint64, error) {
	hi, lo := bits.Mul64(low, high)
	if hi != 0 {
		return 0, errors.Errorf("product of %d low and %d high pulses overflows 64 bits", low, high)
	}
	return lo, nil
}

func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Count low and high pulses sent over a number of button presses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			g, err := e.readGraph(cmd, args)
			if err != nil {
				return err
			}
			low, high := e.network(g).PressN(e.cfg.Presses)
			p, err := product(low, high)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "presses=%d low=%d high=%d product=%d\n", e.cfg.Presses, low, high, p)
			return e.flushMetrics(cmd)
		},
	}
	cmd.Flags().IntP("presses", "n", 1000, "number of button presses")
	return cmd
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Print every pulse sent during a number of button presses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			g, err := e.readGraph(cmd, args)
			if err != nil {
				return err
			}
			presses, _ := cmd.Flags().GetInt("presses")
			n := e.network(g)
			w := cmd.OutOrStdout()
			for i := 0; i < presses; i++ {
				t := n.Press()
				low, high := t.Count()
				fmt.Fprintf(w, "# press %d: %d low, %d high\n%s", n.Presses(), low, high, t)
			}
			return e.flushMetrics(cmd)
		},
	}
	cmd.Flags().IntP("presses", "n", 1, "number of button presses")
	return cmd
}
