// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command pulsesim simulates pulse propagation networks.
//
// Network definitions are read from the file given as argument, or from
// standard input:
//
//	broadcaster -> a, b, c
//	%a -> b
//	%b -> c
//	%c -> inv
//	&inv -> a
//
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/internal/config"
	"github.com/db47h/pulsesim/internal/logging"
	"github.com/db47h/pulsesim/internal/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pulsesim",
		Short: "Pulse propagation network simulator",
		Long: `pulsesim simulates networks of broadcaster, flip-flop and conjunction
modules exchanging low and high pulses.

It counts pulses over a number of button presses, and computes the number of
presses after which a module first receives a low pulse by finding the period
of each independent counter cluster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("metrics", false, "dump Prometheus metrics to stderr on exit")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCountCmd(),
		newTraceCmd(),
		newSolveCmd(),
		newGraphCmd(),
		newGenCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pulsesim version %s\n", version)
		},
	}
}

// env is the runtime environment of a command: its configuration, logger and
// optional metrics collector.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
}

// setup loads the configuration and applies command line overrides.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled, _ = flags.GetBool("metrics")
	}
	if flags.Lookup("presses") != nil && flags.Changed("presses") {
		cfg.Presses, _ = flags.GetInt("presses")
	}
	if flags.Lookup("target") != nil && flags.Changed("target") {
		cfg.Target, _ = flags.GetString("target")
	}
	if flags.Lookup("max-triggers") != nil && flags.Changed("max-triggers") {
		cfg.MaxTriggers, _ = flags.GetUint64("max-triggers")
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	e := &env{cfg: cfg, logger: logging.New(cfg.Logging.Level, cmd.ErrOrStderr())}
	if cfg.Metrics.Enabled {
		e.metrics = metrics.New()
	}
	return e, nil
}

// readGraph reads the network definition from the file named by args[0], or
// from the command's input if args is empty.
func (e *env) readGraph(cmd *cobra.Command, args []string) (*pulsesim.Graph, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "open network")
		}
		defer f.Close()
		r, name = f, args[0]
	}
	g, err := pulsesim.ReadGraph(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	for _, w := range g.Warnings() {
		e.logger.Warn(w, "source", name)
	}
	e.logger.Debug("network loaded", "source", name, "modules", g.Len(), "sinks", len(g.Sinks()))
	return g, nil
}

// network returns a new network for g, wired to the metrics collector if any.
func (e *env) network(g *pulsesim.Graph) *pulsesim.Network {
	opts := []pulsesim.Option{pulsesim.WithLogger(e.logger)}
	if e.metrics != nil {
		opts = append(opts, pulsesim.WithHooks(e.metrics.Hooks(g)))
	}
	return pulsesim.NewNetwork(g, opts...)
}

// flushMetrics writes collected metrics to the command's error output.
func (e *env) flushMetrics(cmd *cobra.Command) error {
	if e.metrics == nil {
		return nil
	}
	return e.metrics.WriteText(cmd.ErrOrStderr())
}
