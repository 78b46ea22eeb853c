// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/db47h/ttsim/tt"
	"github.com/spf13/cobra"
)

// NewPinsCommand creates the pins command.
//
func NewPinsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pins",
		Short: "List the project pins usable in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "PIN\tWIDTH\tDIRECTION")
			for _, p := range tt.Pins() {
				fmt.Fprintf(w, "%s\t%d\t%s\n", p, p.Width(), p.Dir())
			}
			return w.Flush()
		},
	}
}
