// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/db47h/ttsim/scenario"
	"github.com/db47h/ttsim/tt"
	"github.com/db47h/ttsim/ttlib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command.
//
type RunOptions struct {
	*RootOptions
	Depth   int
	Workers int
	VCD     string
}

// NewRunCommand creates the run command.
//
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a test scenario",
		Long: `Run a test scenario against the built-in delay line project.

The project copies ui_in & ena to uo_out through --depth registers.

Example:
  ttsim run scenario/testdata/project.yaml
  ttsim run --depth 3 --vcd trace.vcd bench.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", 2, "number of register stages in the project")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "simulation worker goroutines (0 for GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.VCD, "vcd", "", "write a waveform dump to this file")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) (err error) {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	project, err := ttlib.NewDelay(opts.Depth)
	if err != nil {
		return err
	}
	dev, err := tt.NewCircuitDevice(project, opts.Workers)
	if err != nil {
		return err
	}
	defer dev.Close()

	hopts := []tt.Option{tt.WithLogger(opts.log)}
	if opts.VCD != "" {
		f, ferr := os.Create(opts.VCD)
		if ferr != nil {
			return errors.Wrap(ferr, "create waveform file")
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.Wrap(cerr, "close waveform file")
			}
		}()
		hopts = append(hopts, tt.WithRecorder(tt.NewVCD(f)))
	}

	h := tt.New(dev, hopts...)
	res, err := scenario.Run(h, s)
	if cerr := h.Close(); err == nil {
		err = cerr
	}
	status := "PASS"
	if err != nil {
		status = "FAIL"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d steps, %d checks, %d cycles, %dps (run %s)\n",
		status, s.Name, res.Steps, res.Checks, res.Cycles, res.Time, res.RunID)
	return err
}
