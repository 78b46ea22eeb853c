// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import (
	"strings"

	"github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwsim"
	"github.com/pkg/errors"
)

// A Device is a device under test as seen by the harness. Implementations
// only need to be safe for use by one goroutine at a time.
//
type Device interface {
	// Drive sets an input pin. The device sees the new value the next time it
	// settles.
	Drive(p Pin, v uint64)
	// Sample returns the current value of a pin.
	Sample(p Pin) uint64
	// Settle lets the device react to its inputs until it is stable.
	Settle() error
}

// DefaultMaxSettle is the default number of simulation steps a CircuitDevice
// waits for its circuit to settle.
//
const DefaultMaxSettle = 1024

// CircuitDevice is a Device backed by a hwsim circuit.
//
type CircuitDevice struct {
	// MaxSettle is the maximum number of simulation steps per Settle.
	MaxSettle int

	c     *hwsim.Circuit
	buses [pinCount][]int
}

// NewCircuitDevice mounts a project part into a new circuit. The part must
// expose exactly the project pins, with buses named like "ui_in[0]". workers
// is passed on to hwsim.NewCircuit.
//
// Callers must call Close once the device is no longer needed.
//
func NewCircuitDevice(project hwsim.NewPartFn, workers int) (*CircuitDevice, error) {
	p := project("")
	if err := checkPinout(p); err != nil {
		return nil, err
	}

	var (
		conns []string
		ins   hwsim.Inputs
	)
	for _, pin := range Pins() {
		conns = append(conns, pin.String()+"="+pin.String())
		if pin.Dir() == Input {
			ins = append(ins, pinNames(pin)...)
		}
	}
	c, err := hwsim.NewCircuit(workers, ins, project(strings.Join(conns, ", ")))
	if err != nil {
		return nil, errors.Wrap(err, p.Name)
	}

	d := &CircuitDevice{MaxSettle: DefaultMaxSettle, c: c}
	for _, pin := range Pins() {
		for _, n := range pinNames(pin) {
			w, ok := c.Wire(n)
			if !ok {
				c.Dispose()
				return nil, errors.Errorf("%s: no wire for pin %s", p.Name, n)
			}
			d.buses[pin] = append(d.buses[pin], w)
		}
	}
	if err = d.Settle(); err != nil {
		c.Dispose()
		return nil, err
	}
	return d, nil
}

func pinNames(p Pin) []string {
	if p.Width() == 1 {
		return []string{p.String()}
	}
	ns := make([]string, p.Width())
	for i := range ns {
		ns[i] = hwsim.BusPinName(p.String(), i)
	}
	return ns
}

// checkPinout verifies that a project part exposes the project pins with the
// right direction and width, and nothing else.
//
func checkPinout(p hwsim.Part) error {
	have := make(map[string]Direction, len(p.Inputs)+len(p.Outputs))
	for _, n := range p.Inputs {
		have[n] = Input
	}
	for _, n := range p.Outputs {
		have[n] = Output
	}
	for _, pin := range Pins() {
		for _, n := range pinNames(pin) {
			dir, ok := have[n]
			if !ok {
				return configErrorf("project " + p.Name + " has no " + pin.Dir().String() + " pin " + n)
			}
			if dir != pin.Dir() {
				return configErrorf("project " + p.Name + " pin " + n + " must be an " + pin.Dir().String())
			}
			delete(have, n)
		}
	}
	for n := range have {
		return configErrorf("project " + p.Name + " has unexpected pin " + n)
	}
	return nil
}

// Drive implements Device.
//
func (d *CircuitDevice) Drive(p Pin, v uint64) {
	hwlib.ForceUint64(d.c, d.buses[p], v)
}

// Sample implements Device.
//
func (d *CircuitDevice) Sample(p Pin) uint64 {
	return hwlib.Uint64(d.c, d.buses[p])
}

// Settle implements Device.
//
func (d *CircuitDevice) Settle() error {
	_, err := d.c.Settle(d.MaxSettle)
	return err
}

// Steps returns the number of simulation steps run so far.
//
func (d *CircuitDevice) Steps() uint {
	return d.c.Steps()
}

// Close releases the resources of the underlying circuit.
//
func (d *CircuitDevice) Close() error {
	d.c.Dispose()
	return nil
}
