// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwsim.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim/hwsim"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pClk  = "clk"
	pRstN = "rst_n"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = hwsim.BusPinName(n, j)
		}
	}
	return b
}

type unary func(in bool) bool

func (u unary) mount(s *hwsim.Socket) []hwsim.Component {
	in, out := s.Pin(pIn), s.Pin(pOut)
	return []hwsim.Component{
		func(c *hwsim.Circuit) { c.Set(out, u(c.Get(in))) },
	}
}

var (
	notGate = &hwsim.PartSpec{Name: "NOT", Inputs: hwsim.Inputs{pIn}, Outputs: hwsim.Outputs{pOut},
		Mount: unary(func(in bool) bool { return !in }).mount}
	bufGate = &hwsim.PartSpec{Name: "BUF", Inputs: hwsim.Inputs{pIn}, Outputs: hwsim.Outputs{pOut},
		Mount: unary(func(in bool) bool { return in }).mount}
)

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hwsim.Part { return notGate.NewPart(w) }

// Buf returns a buffer. Use it to drive chip outputs from constants.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in
//
func Buf(w string) hwsim.Part { return bufGate.NewPart(w) }

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *hwsim.Socket) []hwsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []hwsim.Component{
		func(c *hwsim.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b bool) bool) *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    name,
		Inputs:  gateIn,
		Outputs: gateOut,
		Mount:   gate(fn).mount,
	}
}

func and(a, b bool) bool  { return a && b }
func nand(a, b bool) bool { return !(a && b) }
func or(a, b bool) bool   { return a || b }
func nor(a, b bool) bool  { return !(a || b) }
func xor(a, b bool) bool  { return a != b }
func xnor(a, b bool) bool { return a == b }

var (
	gateIn  = hwsim.Inputs{pA, pB}
	gateOut = hwsim.Outputs{pOut}

	andGate  = newGate("AND", and)
	nandGate = newGate("NAND", nand)
	orGate   = newGate("OR", or)
	norGate  = newGate("NOR", nor)
	xorGate  = newGate("XOR", xor)
	xnorGate = newGate("XNOR", xnor)
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hwsim.Part { return andGate.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) hwsim.Part { return nandGate.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hwsim.Part { return orGate.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) hwsim.Part { return norGate.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a != b
//
func Xor(w string) hwsim.Part { return xorGate.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a == b
//
func Xnor(w string) hwsim.Part { return xnorGate.NewPart(w) }

type gateN struct {
	bits int
	fn   func(bool, bool) bool
}

func (g *gateN) mount(s *hwsim.Socket) []hwsim.Component {
	a, b, out := s.Bus(pA, g.bits), s.Bus(pB, g.bits), s.Bus(pOut, g.bits)
	return []hwsim.Component{
		func(c *hwsim.Circuit) {
			for i := range a {
				c.Set(out[i], g.fn(c.Get(a[i]), c.Get(b[i])))
			}
		},
	}
}

// GateN returns a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = f(a[i], b[i]) }
//
func GateN(name string, bits int, f func(bool, bool) bool) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount:   (&gateN{bits, f}).mount,
	}).NewPart
}

// AndN returns a N-bits AND gate. Connecting all of b to a single wire masks
// a whole bus with it:
//
//	hwlib.AndN(8)("a=ui_in, b[0..7]=ena, out=masked")
//
func AndN(bits int) hwsim.NewPartFn { return GateN("AND", bits, and) }

// OrN returns a N-bits OR gate.
//
func OrN(bits int) hwsim.NewPartFn { return GateN("OR", bits, or) }

// XorN returns a N-bits XOR gate.
//
func XorN(bits int) hwsim.NewPartFn { return GateN("XOR", bits, xor) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) hwsim.NewPartFn {
	return (&hwsim.PartSpec{
		Name:    "NOT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ins, outs := s.Bus(pIn, bits), s.Bus(pOut, bits)
			return []hwsim.Component{func(c *hwsim.Circuit) {
				for i, pin := range ins {
					c.Set(outs[i], !c.Get(pin))
				}
			}}
		}}).NewPart
}
