// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/db47h/pulsesim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Compute the first button press delivering a low pulse to the target",
		Long: `solve partitions the network into clusters of flip-flops, finds the period
of each cluster by simulation and combines them into the number of button
presses after which the target module first receives a low pulse.

With --verify, the result is checked by brute-force simulation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			g, err := e.readGraph(cmd, args)
			if err != nil {
				return err
			}
			r, err := pulsesim.Solve(cmd.Context(), g, e.cfg.Target, pulsesim.SolveOptions{
				MaxTriggers: e.cfg.MaxTriggers,
				Workers:     e.cfg.Workers,
				Logger:      e.logger,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, k := range r.Clusters.Keys() {
				fmt.Fprintf(w, "cluster %s: %d flip-flops, period %d\n", k, len(r.Clusters[k]), r.Cycles[k].Period)
			}
			fmt.Fprintf(w, "gate=%s presses=%d\n", r.Gate, r.Presses)

			if verify, _ := cmd.Flags().GetBool("verify"); verify {
				n, err := pulsesim.PressesUntil(g, e.cfg.Target, r.Presses)
				if err != nil {
					return err
				}
				if n != r.Presses {
					return errors.Errorf("brute force: %s first receives a low pulse after %d presses", e.cfg.Target, n)
				}
				fmt.Fprintln(w, "verified")
			}
			return nil
		},
	}
	cmd.Flags().StringP("target", "t", "rx", "target module")
	cmd.Flags().Uint64("max-triggers", pulsesim.DefaultMaxTriggers, "maximum number of button presses per cluster")
	cmd.Flags().IntP("workers", "j", 1, "number of clusters analysed concurrently")
	cmd.Flags().Bool("verify", false, "check the result by brute-force simulation")
	return cmd
}
