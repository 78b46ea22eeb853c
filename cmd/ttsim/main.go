// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command ttsim runs test scenarios against simulated Tiny Tapeout projects.
//
package main

import (
	"fmt"
	"os"

	"github.com/db47h/ttsim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ttsim:", err)
		os.Exit(1)
	}
}
