// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import "strconv"

// A Pin identifies one of the signals on the boundary of a Tiny Tapeout
// project.
//
type Pin int

// Project pins.
//
const (
	Clk    Pin = iota // clock, owned by the harness clock once started
	RstN              // reset, active low
	Ena               // enable, high when the project is selected
	UIIn              // dedicated inputs
	UIOIn             // bidirectional pins, input path
	UOOut             // dedicated outputs
	UIOOut            // bidirectional pins, output path
	UIOOe             // bidirectional pins, output enable

	pinCount
)

// Direction of a pin, as seen from the device.
//
type Direction int

// Pin directions.
//
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

type pinInfo struct {
	name  string
	width int
	dir   Direction
}

var pins = [pinCount]pinInfo{
	Clk:    {"clk", 1, Input},
	RstN:   {"rst_n", 1, Input},
	Ena:    {"ena", 1, Input},
	UIIn:   {"ui_in", 8, Input},
	UIOIn:  {"uio_in", 8, Input},
	UOOut:  {"uo_out", 8, Output},
	UIOOut: {"uio_out", 8, Output},
	UIOOe:  {"uio_oe", 8, Output},
}

// Pins returns all project pins, inputs first.
//
func Pins() []Pin {
	ps := make([]Pin, pinCount)
	for i := range ps {
		ps[i] = Pin(i)
	}
	return ps
}

// Valid returns true if p is one of the declared pins.
//
func (p Pin) Valid() bool { return p >= 0 && p < pinCount }

// String returns the pin name as used in HDL sources.
//
func (p Pin) String() string {
	if !p.Valid() {
		return "Pin(" + strconv.Itoa(int(p)) + ")"
	}
	return pins[p].name
}

// Width returns the pin width in bits.
//
func (p Pin) Width() int { return pins[p].width }

// Dir returns the pin direction.
//
func (p Pin) Dir() Direction { return pins[p].dir }

// Max returns the largest value that fits in the pin.
//
func (p Pin) Max() uint64 { return 1<<uint(p.Width()) - 1 }

// PinByName returns the pin with the given HDL name.
//
func PinByName(name string) (Pin, error) {
	for i, pi := range pins {
		if pi.name == name {
			return Pin(i), nil
		}
	}
	return 0, &UnknownPinError{Name: name}
}
