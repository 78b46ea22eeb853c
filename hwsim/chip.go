// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts []Part
}

func (c *chip) mount(s *Socket) []Component {
	// the chip's own namespace: its I/O pins are the wires of the host, all
	// other wires are private to this instance.
	loc := newSocket(s.c)
	for _, n := range c.Inputs {
		loc.m[n] = s.Pin(n)
	}
	for _, n := range c.Outputs {
		loc.m[n] = s.Pin(n)
	}
	var cs []Component
	for _, p := range c.parts {
		cs = append(cs, loc.Mount(p)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip. inputs
// and outputs are pin lists as accepted by IO, and become the pins of the new
// part.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned NewPartFn can be used to compose the new part with others:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Inside the chip, outputs of the chip can be read back by other parts like
// any other wire.
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := IO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	outs, err := IO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	if err = checkWiring(ins, outs, parts, false); err != nil {
		return nil, err
	}
	c := &chip{
		PartSpec: PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts: parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

type driver struct {
	part string // part name, empty for chip inputs and constants
	pin  string
}

// checkWiring checks that every wire read by a part is driven by exactly one
// source and that part outputs do not drive constants or chip inputs.
// Circuit level checks (root) allow part outputs that nobody reads.
//
func checkWiring(ins, outs []string, parts []Part, root bool) error {
	drivers := map[string]driver{
		True:  {},
		False: {},
	}
	for _, in := range ins {
		drivers[in] = driver{}
	}
	isOut := make(map[string]bool, len(outs))
	for _, out := range outs {
		if _, ok := drivers[out]; ok {
			return errors.New("pin " + out + " declared as both input and output")
		}
		isOut[out] = true
	}

	wires := make([]map[string]string, len(parts))
	for i, p := range parts {
		ws, err := p.wires()
		if err != nil {
			return err
		}
		wires[i] = ws
		for _, o := range p.Outputs {
			w, ok := ws[o]
			if !ok {
				continue
			}
			at := p.Name + "." + o + ":" + w
			if w == True || w == False {
				return errors.New(at + ": output pin connected to constant " + w + " input")
			}
			if d, ok := drivers[w]; ok {
				if d.part == "" {
					return errors.New(at + ": chip input pin used as output")
				}
				return errors.New(at + ": output pin already used as output")
			}
			drivers[w] = driver{p.Name, o}
		}
	}

	used := make(map[string]bool)
	for i, p := range parts {
		for _, in := range p.Inputs {
			w, ok := wires[i][in]
			if !ok {
				continue
			}
			if _, ok := drivers[w]; !ok {
				return errors.New("pin " + w + " not connected to any output")
			}
			used[w] = true
		}
	}
	for _, out := range outs {
		if d := drivers[out]; d.part == "" {
			return errors.New("pin " + out + " not connected to any output")
		}
		used[out] = true
	}
	if root {
		return nil
	}
	for i, p := range parts {
		for _, o := range p.Outputs {
			if w, ok := wires[i][o]; ok && !used[w] {
				return errors.New("pin " + w + " not connected to any input")
			}
		}
	}
	return nil
}
