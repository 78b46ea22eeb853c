// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A Recorder receives the pin values of a device every time they may have
// changed. values is indexed by Pin and must not be retained.
//
type Recorder interface {
	Record(now uint64, values []uint64) error
}

// An Option configures a Harness.
//
type Option func(*Harness)

// WithLogger sets the logger used by the harness. The default logger discards
// everything.
//
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.log = l }
}

// WithRecorder sets a recorder that receives every change of the device pins.
//
func WithRecorder(r Recorder) Option {
	return func(h *Harness) { h.rec = r }
}

// Harness drives a device under test: it assigns inputs, runs the clock,
// reads outputs and checks them against expected values.
//
// A Harness is not safe for concurrent use.
//
type Harness struct {
	id    uuid.UUID
	dev   Device
	log   *slog.Logger
	rec   Recorder
	clock *Clock

	vals   [pinCount]uint64
	now    uint64
	cycles uint64
	closed bool
}

// New returns a new harness for the given device.
//
func New(dev Device, opts ...Option) *Harness {
	h := &Harness{
		id:  uuid.New(),
		dev: dev,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(h)
	}
	h.log = h.log.With("run", h.id.String())
	for _, p := range Pins() {
		h.vals[p] = dev.Sample(p)
	}
	return h
}

// RunID returns a unique identifier for this harness run.
//
func (h *Harness) RunID() uuid.UUID { return h.id }

// Logger returns the harness logger.
//
func (h *Harness) Logger() *slog.Logger { return h.log }

func (h *Harness) record() error {
	if h.rec == nil {
		return nil
	}
	return errors.Wrap(h.rec.Record(h.now, h.vals[:]), "record")
}

// StartClock drives the clk pin with a clock of the given period. clk is set
// high immediately and the first edge seen by the device is a falling edge,
// half a period after the current time. The period must be an even number of
// picoseconds.
//
// The clock can only be started once and is stopped by Close.
//
func (h *Harness) StartClock(period int, unit Unit) (*Clock, error) {
	switch {
	case h.closed:
		return nil, configErrorf("harness closed")
	case h.clock != nil:
		return nil, configErrorf("clock already started")
	case period <= 0:
		return nil, configErrorf("invalid clock period " + strconv.Itoa(period))
	case !unit.valid():
		return nil, configErrorf("invalid time unit")
	}
	ps := uint64(period) * uint64(unit)
	if ps%2 != 0 {
		return nil, configErrorf("clock period must be an even number of picoseconds")
	}
	h.dev.Drive(Clk, 1)
	h.vals[Clk] = 1
	if err := h.record(); err != nil {
		return nil, err
	}
	h.clock = newClock(ps, h.edge)
	h.log.Info("clock started", "period", period, "unit", unit.String())
	return h.clock, nil
}

// edge runs on the clock goroutine while the harness waits in AdvanceCycles.
//
func (h *Harness) edge(high bool) error {
	h.now += h.clock.HalfPeriod()
	var v uint64
	if high {
		v = 1
	}
	h.dev.Drive(Clk, v)
	if err := h.dev.Settle(); err != nil {
		return errors.Wrapf(err, "clk=%d at %dps", v, h.now)
	}
	if high {
		h.cycles++
	}
	for _, p := range Pins() {
		if p.Dir() == Output {
			h.vals[p] = h.dev.Sample(p)
		}
	}
	h.vals[Clk] = v
	return h.record()
}

// Assign sets an input pin of the device. The device sees the new value on
// the next clock edge.
//
func (h *Harness) Assign(p Pin, v uint64) error {
	if !p.Valid() || p.Dir() != Input {
		return &UnknownPinError{Name: p.String(), Input: true}
	}
	if p == Clk && h.clock != nil {
		return configErrorf("clk is driven by the clock")
	}
	if v > p.Max() {
		return &OutOfRangeError{Pin: p, Value: v}
	}
	h.dev.Drive(p, v)
	h.vals[p] = v
	h.log.Debug("assign", "pin", p.String(), "value", v)
	return h.record()
}

// AdvanceCycles runs the clock for n full cycles. Each cycle is a falling
// edge followed by a rising edge, each one half a period apart. The device
// is settled after every edge.
//
func (h *Harness) AdvanceCycles(n int) error {
	switch {
	case n < 0:
		return configErrorf("negative cycle count " + strconv.Itoa(n))
	case h.clock == nil:
		return configErrorf("clock not started")
	}
	for i := 0; i < n; i++ {
		if err := h.clock.cycle(); err != nil {
			if err == errClockStopped {
				return configErrorf(err.Error())
			}
			return errors.Wrapf(err, "cycle %d", h.cycles+1)
		}
	}
	if n > 0 {
		h.log.Debug("advance", "cycles", n, "cycle", h.cycles, "time", h.now)
	}
	return nil
}

// Read returns the current value of a pin. Inputs read back the last value
// assigned to them; outputs hold their value as of the last clock edge.
//
func (h *Harness) Read(p Pin) (uint64, error) {
	if !p.Valid() {
		return 0, &UnknownPinError{Name: p.String()}
	}
	return h.vals[p], nil
}

// Expect checks that a pin has the expected value. It returns an
// *AssertionFailure if it does not.
//
func (h *Harness) Expect(p Pin, want uint64) error {
	got, err := h.Read(p)
	if err != nil {
		return err
	}
	if got != want {
		f := &AssertionFailure{Pin: p, Cycle: h.cycles, Want: want, Got: got}
		h.log.Error("assertion failed", "pin", p.String(), "cycle", h.cycles, "want", want, "got", got)
		return f
	}
	return nil
}

// Reset pulls rst_n low for the given number of cycles, then releases it.
//
func (h *Harness) Reset(cycles int) error {
	if err := h.Assign(RstN, 0); err != nil {
		return err
	}
	if err := h.AdvanceCycles(cycles); err != nil {
		return errors.Wrap(err, "reset")
	}
	h.log.Info("reset", "cycles", cycles)
	return h.Assign(RstN, 1)
}

// Cycles returns the number of full clock cycles run so far.
//
func (h *Harness) Cycles() uint64 { return h.cycles }

// Now returns the current simulated time in picoseconds.
//
func (h *Harness) Now() uint64 { return h.now }

type flusher interface {
	Flush() error
}

// Close stops the clock and flushes the recorder. It does not close the
// device. It is safe to call Close more than once.
//
func (h *Harness) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.clock != nil {
		h.clock.Stop()
	}
	if f, ok := h.rec.(flusher); ok {
		return errors.Wrap(f.Flush(), "flush recorder")
	}
	return nil
}
