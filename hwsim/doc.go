// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwsim provides a naive, step based simulator for synchronous digital
circuits, used as the simulation runtime behind the tt test harness.

A circuit is built from parts. Each part is described by a PartSpec (its name,
input and output pins and a mount function) and wired into its host by a
connection string:

	hwlib.DFFR("clk=clk, rst_n=rst_n, in=d, out=q")

Parts can be composed into new parts with Chip, and a set of parts becomes a
runnable simulation with NewCircuit. Wires listed as circuit inputs are driven
from the outside with Force; every other wire must be driven by exactly one
part output.

The simulation works on two frames of wire states: during a Step, every
component reads the current frame and writes the next one, then the frames are
swapped. This makes the result of a step independent of the order in which
components are updated, which in turn lets the circuit spread its components
over several worker goroutines.

There is no built-in clock. Clocked parts watch their own clk input, and the
caller toggles the clock wire with Force and runs Settle until the circuit is
stable.
*/
package hwsim
