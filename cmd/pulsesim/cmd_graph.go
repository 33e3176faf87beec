// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/internal/presentation/graph"
	"github.com/db47h/pulsesim/netlib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the network as a Mermaid flowchart",
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

			var c pulsesim.Clusters
			if clusters, _ := cmd.Flags().GetBool("clusters"); clusters {
				if c, err = pulsesim.Partition(g); err != nil {
					e.logger.Warn("rendering without clusters", "err", err)
					c = nil
				}
			}
			var overlay *graph.Overlay
			if presses, _ := cmd.Flags().GetInt("presses"); presses > 0 {
				n := e.network(g)
				n.PressN(presses)
				overlay = &graph.Overlay{Target: e.cfg.Target}
				for _, ff := range g.Names(pulsesim.FlipFlop) {
					if n.State().On(ff) {
						overlay.On = append(overlay.On, ff)
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, c, overlay))
			return e.flushMetrics(cmd)
		},
	}
	cmd.Flags().Bool("clusters", true, "group flip-flops by cluster")
	cmd.Flags().IntP("presses", "n", 0, "highlight flip-flops that are on after this many presses")
	cmd.Flags().StringP("target", "t", "rx", "module to highlight with --presses")
	return cmd
}

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen period...",
		Short: "Generate a network of binary counters with the given odd periods",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var periods []uint64
			for _, a := range args {
				p, err := strconv.ParseUint(a, 10, 64)
				if err != nil {
					return errors.Wrapf(err, "period %q", a)
				}
				periods = append(periods, p)
			}
			target, _ := cmd.Flags().GetString("target")
			ms, err := netlib.Network(target, periods...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(netlib.Lines(ms), "\n"))
			return nil
		},
	}
	cmd.Flags().StringP("target", "t", "rx", "name of the target module")
	return cmd
}
