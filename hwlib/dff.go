// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim/hwsim"
)

// edge tracks the state of a clock pin between steps.
type edge bool

// rising returns true on the first step that sees clk high after it was low.
func (e *edge) rising(clk bool) bool {
	r := clk && !bool(*e)
	*e = edge(clk)
	return r
}

var dff = &hwsim.PartSpec{
	Name:    "DFF",
	Inputs:  hwsim.Inputs{pClk, pIn},
	Outputs: hwsim.Outputs{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		clk, in, out := s.Pin(pClk), s.Pin(pIn), s.Pin(pOut)
		var (
			e   edge
			cur bool
		)
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				if e.rising(c.Get(clk)) {
					cur = c.Get(in)
				}
				c.Set(out, cur)
			}}
	}}

// DFF returns a data flip flop triggered on the rising edge of clk.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w string) hwsim.Part { return dff.NewPart(w) }

var dffr = &hwsim.PartSpec{
	Name:    "DFFR",
	Inputs:  hwsim.Inputs{pClk, pRstN, pIn},
	Outputs: hwsim.Outputs{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		clk, rst, in, out := s.Pin(pClk), s.Pin(pRstN), s.Pin(pIn), s.Pin(pOut)
		var (
			e   edge
			cur bool
		)
		return []hwsim.Component{
			func(c *hwsim.Circuit) {
				if e.rising(c.Get(clk)) {
					cur = c.Get(rst) && c.Get(in)
				}
				c.Set(out, cur)
			}}
	}}

// DFFR returns a data flip flop with a synchronous, active low reset.
//
//	Inputs: clk, rst_n, in
//	Outputs: out
//	Function: out(t) = rst_n(t-1) ? in(t-1) : 0
//
func DFFR(w string) hwsim.Part { return dffr.NewPart(w) }

// DFFRN returns a N-bits register with a synchronous, active low reset.
//
//	Inputs: clk, rst_n, in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = rst_n(t-1) ? in[i](t-1) : 0 }
//
func DFFRN(bits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "DFFR" + strconv.Itoa(bits),
		Inputs:  append(hwsim.Inputs{pClk, pRstN}, bus(bits, pIn)...),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			clk, rst := s.Pin(pClk), s.Pin(pRstN)
			ins, outs := s.Bus(pIn, bits), s.Bus(pOut, bits)
			var e edge
			cur := make([]bool, bits)
			return []hwsim.Component{
				func(c *hwsim.Circuit) {
					if e.rising(c.Get(clk)) {
						r := c.Get(rst)
						for i, in := range ins {
							cur[i] = r && c.Get(in)
						}
					}
					for i, out := range outs {
						c.Set(out, cur[i])
					}
				}}
		}}).NewPart
}
