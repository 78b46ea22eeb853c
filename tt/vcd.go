// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// VCD is a Recorder that writes the device pins as a Value Change Dump. Only
// value changes are written. Time stamps are in picoseconds.
//
// Callers must call Flush once recording is done. Harness.Close does it.
//
type VCD struct {
	w       *bufio.Writer
	started bool
	last    uint64
	prev    [pinCount]uint64
}

// NewVCD returns a new VCD recorder writing to w.
//
func NewVCD(w io.Writer) *VCD {
	return &VCD{w: bufio.NewWriter(w)}
}

func vcdID(p Pin) byte { return '!' + byte(p) }

func (v *VCD) header() {
	v.w.WriteString("$timescale 1ps $end\n$scope module tt $end\n")
	for _, p := range Pins() {
		v.w.WriteString("$var wire " + strconv.Itoa(p.Width()) + " ")
		v.w.WriteByte(vcdID(p))
		v.w.WriteString(" " + p.String())
		if p.Width() > 1 {
			v.w.WriteString(" [" + strconv.Itoa(p.Width()-1) + ":0]")
		}
		v.w.WriteString(" $end\n")
	}
	v.w.WriteString("$upscope $end\n$enddefinitions $end\n")
}

func (v *VCD) value(p Pin, x uint64) {
	if p.Width() == 1 {
		v.w.WriteByte('0' + byte(x&1))
	} else {
		v.w.WriteString("b" + strconv.FormatUint(x, 2) + " ")
	}
	v.w.WriteByte(vcdID(p))
	v.w.WriteByte('\n')
}

func (v *VCD) timestamp(now uint64) {
	v.w.WriteString("#" + strconv.FormatUint(now, 10) + "\n")
	v.last = now
}

// Record implements Recorder.
//
func (v *VCD) Record(now uint64, values []uint64) error {
	if len(values) != int(pinCount) {
		return errors.Errorf("vcd: got %d values, expected %d", len(values), pinCount)
	}
	if !v.started {
		v.started = true
		v.header()
		v.timestamp(now)
		v.w.WriteString("$dumpvars\n")
		for _, p := range Pins() {
			v.value(p, values[p])
			v.prev[p] = values[p]
		}
		v.w.WriteString("$end\n")
		return nil
	}
	if now < v.last {
		return errors.Errorf("vcd: time going backwards: %d < %d", now, v.last)
	}
	for _, p := range Pins() {
		if values[p] == v.prev[p] {
			continue
		}
		if now != v.last {
			v.timestamp(now)
		}
		v.value(p, values[p])
		v.prev[p] = values[p]
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
//
func (v *VCD) Flush() error {
	return v.w.Flush()
}
