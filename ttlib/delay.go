// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package ttlib provides ready made Tiny Tapeout projects built from hwlib
// parts.
//
package ttlib

import (
	"strconv"

	"github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwsim"
	"github.com/pkg/errors"
)

// Project pin lists, in the order expected by tt.NewCircuitDevice.
//
const (
	ProjectInputs  = "clk, rst_n, ena, ui_in[8], uio_in[8]"
	ProjectOutputs = "uo_out[8], uio_out[8], uio_oe[8]"
)

func zero() uint64 { return 0 }

// NewDelay returns a project that copies ui_in to uo_out through a pipeline
// of depth registers. ui_in is gated by ena before entering the pipeline and
// all registers clear on a rising edge of clk while rst_n is low. With a
// depth of 0, uo_out follows ui_in & ena without any delay.
//
// The bidirectional pins are unused: uio_out and uio_oe are always 0.
//
//	Inputs: clk, rst_n, ena, ui_in[8], uio_in[8]
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
//	Function: uo_out(t) = ui_in(t-depth) & ena(t-depth)
//
func NewDelay(depth int) (hwsim.NewPartFn, error) {
	if depth < 0 {
		return nil, errors.Errorf("invalid pipeline depth %d", depth)
	}
	stage := func(i int) string {
		if i == depth {
			return "uo_out"
		}
		return "q" + strconv.Itoa(i)
	}
	parts := []hwsim.Part{
		hwlib.AndN(8)("a=ui_in, b[0..7]=ena, out=" + stage(0)),
		hwlib.InputN(8, zero)("out=uio_out"),
		hwlib.InputN(8, zero)("out=uio_oe"),
	}
	reg := hwlib.DFFRN(8)
	for i := 0; i < depth; i++ {
		parts = append(parts, reg("clk=clk, rst_n=rst_n, in="+stage(i)+", out="+stage(i+1)))
	}
	return hwsim.Chip("DELAY"+strconv.Itoa(depth), ProjectInputs, ProjectOutputs, parts...)
}

// Delay is like NewDelay but panics on error.
//
func Delay(depth int) hwsim.NewPartFn {
	p, err := NewDelay(depth)
	if err != nil {
		panic(err)
	}
	return p
}
