// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	count int // wire count
	steps uint

	wires  map[string]int // top level wire names
	inputs []string

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// inputs lists the top level wires that are driven from outside the circuit
// with Force. Any other wire read by a part must be driven by a part output.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
//
func NewCircuit(workers int, inputs Inputs, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	if err := checkWiring(inputs, nil, parts, true); err != nil {
		return nil, errors.Wrap(err, "circuit wiring")
	}

	// new circuit with room for constant value pins.
	c := &Circuit{count: cstCount, inputs: inputs}
	s := newSocket(c)
	for _, in := range inputs {
		s.PinOrNew(in)
	}
	var ups []Component
	for _, p := range parts {
		ups = append(ups, s.Mount(p)...)
	}
	c.cs = ups
	c.wires = s.m
	c.s0 = make([]bool, c.count)
	c.s1 = make([]bool, c.count)
	c.s0[cstTrue] = true
	c.s1[cstTrue] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 0 {
		workers = 1
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		c.wc = append(c.wc, wc)
		go worker(c, ups[:size], wc)
		ups = ups[size:]
	}

	return c, nil
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for range wc {
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
	c.wg.Done()
}

func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Wire returns the pin number of the named top level wire.
//
func (c *Circuit) Wire(name string) (int, bool) {
	n, ok := c.wires[name]
	return n, ok
}

// Bus returns the pin numbers of the named top level bus, lsb first.
//
func (c *Circuit) Bus(name string, bits int) ([]int, error) {
	out := make([]int, bits)
	for i := range out {
		n, ok := c.wires[BusPinName(name, i)]
		if !ok {
			return nil, errors.Errorf("bus %s has no pin %d", name, i)
		}
		out[i] = n
	}
	return out, nil
}

// IsInput returns true if the named wire is a top level input.
//
func (c *Circuit) IsInput(name string) bool {
	for _, in := range c.inputs {
		if in == name {
			return true
		}
	}
	return false
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.steps
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods, or with Wire.
//
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n for the next step. The value of n should be
// obtained in a MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Force sets the state of an externally driven pin in both frames. The new
// state is seen by components on the next step. Force must not be called on
// pins driven by a component, nor while a step is running.
//
func (c *Circuit) Force(n int, s bool) {
	c.s0[n] = s
	c.s1[n] = s
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}

	c.wg.Wait()
	c.steps++
	c.s0, c.s1 = c.s1, c.s0
}

// Settle runs the simulation until no wire changes state during a step, and
// returns the number of steps taken. At least one step is always run. An
// error is returned if the circuit is still changing after max steps, which
// usually means that it oscillates.
//
func (c *Circuit) Settle(max int) (int, error) {
	for i := 1; i <= max; i++ {
		c.Step()
		if !c.changed() {
			return i, nil
		}
	}
	return max, errors.Errorf("circuit did not settle after %d steps", max)
}

func (c *Circuit) changed() bool {
	for i, s := range c.s0 {
		if c.s1[i] != s {
			return true
		}
	}
	return false
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
