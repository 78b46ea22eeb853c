// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cli implements the ttsim command line.
//
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
//
type RootOptions struct {
	Verbose bool

	log *slog.Logger
}

// NewRootCommand creates the root command.
//
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ttsim",
		Short: "Cycle accurate test benches for Tiny Tapeout projects",
		Long: `ttsim runs YAML test scenarios against a simulated Tiny Tapeout project.

The project is clocked by a virtual clock; scenarios assign inputs, advance
the clock by whole cycles and check the outputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewPinsCommand(opts))

	return cmd
}
