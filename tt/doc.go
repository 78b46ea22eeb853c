// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package tt drives a Tiny Tapeout style device under test cycle by cycle.

A Harness owns a virtual clock on the clk pin of a Device. Test code assigns
input pins, advances simulated time by whole clock cycles and reads output pins
once the device has settled:

	dev, err := tt.NewCircuitDevice(ttlib.Delay(2), 1)
	if err != nil {
		return err
	}
	defer dev.Close()

	h := tt.New(dev)
	defer h.Close()

	if _, err = h.StartClock(20, tt.Nanosecond); err != nil {
		return err
	}
	h.Assign(tt.Ena, 1)
	h.Assign(tt.UIIn, 0)
	h.Assign(tt.UIOIn, 0)
	if err = h.Reset(10); err != nil {
		return err
	}
	h.Assign(tt.UIIn, 128)
	h.AdvanceCycles(1)
	err = h.Expect(tt.UOOut, 0)

The clock runs in its own goroutine but only ever moves when the test calls
AdvanceCycles, so a run is strictly sequential and deterministic: replaying the
same calls against a freshly reset device yields the same reads.
*/
package tt
