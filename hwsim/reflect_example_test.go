package hwsim_test

import (
	"fmt"

	hw "github.com/db47h/ttsim/hwsim"
	hl "github.com/db47h/ttsim/hwlib"
)

// mux4Impl is a custom 4 bits mux.
//
type mux4Impl struct {
	A   [4]int `hw:"in"`     // input bus "a"
	B   [4]int `hw:"in"`     // input bus "b"
	S   int    `hw:"in,sel"` // single pin, the second tag value forces the pin name to "sel"
	Out [4]int `hw:"out"`    // output bus "out"
}

// Update implements Updater.
//
func (m *mux4Impl) Update(c *hw.Circuit) {
	if c.Get(m.S) {
		for i, b := range m.B {
			c.Set(m.Out[i], c.Get(b))
		}
	} else {
		for i, a := range m.A {
			c.Set(m.Out[i], c.Get(a))
		}
	}
}

// no need to import reflect, just cast a nil pointer to mux4Impl
var m4Spec = hw.MakePart((*mux4Impl)(nil))

// Mux4 makes m4Spec usable like the built-ins in hwlib.
func Mux4(c string) hw.Part { return m4Spec.NewPart(c) }

// MakePart example with a custom Mux4
func ExampleMakePart() {
	c, err := hw.NewCircuit(0, hw.In("in_a[4], in_b[4], in_sel"),
		Mux4("a=in_a, b=in_b, sel=in_sel, out=mux_out"),
	)
	if err != nil {
		panic(err)
	}
	defer c.Dispose()

	a, _ := c.Bus("in_a", 4)
	b, _ := c.Bus("in_b", 4)
	out, _ := c.Bus("mux_out", 4)
	sel, _ := c.Wire("in_sel")

	hl.ForceUint64(c, a, 1)
	hl.ForceUint64(c, b, 15)
	for _, s := range []bool{false, true} {
		c.Force(sel, s)
		if _, err = c.Settle(8); err != nil {
			panic(err)
		}
		fmt.Printf("a=1, b=15, sel=%v => out=%d\n", s, hl.Uint64(c, out))
	}

	// Output:
	// a=1, b=15, sel=false => out=1
	// a=1, b=15, sel=true => out=15
}
