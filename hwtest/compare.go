// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/ttsim/hwsim"
)

// MaxSettle is the maximum number of steps ComparePart waits for a circuit
// to settle after changing its inputs.
//
const MaxSettle = 256

const clk = "clk"

func connString(ins, outs []string, prefix string) string {
	var b strings.Builder
	for _, n := range ins {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(n + "=" + n)
	}
	for _, n := range outs {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(n + "=" + prefix + n)
	}
	return b.String()
}

func sameNames(t *testing.T, what string, a, b []string) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s count mismatch: %d != %d", what, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("%s[%d] = %q != %q", what, i, a[i], b[i])
		}
	}
}

// ComparePart takes two parts and compares their outputs given the same
// inputs. Both parts must have the same Input/Output interface. If the parts
// have a clk input, it is toggled for a whole clock cycle between each set of
// inputs; other inputs get all zeros, all ones, then random values.
//
func ComparePart(t *testing.T, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	p1, p2 := part1(""), part2("")
	sameNames(t, "inputs", p1.Inputs, p2.Inputs)
	sameNames(t, "outputs", p1.Outputs, p2.Outputs)

	c, err := hwsim.NewCircuit(0, p1.Inputs,
		part1(connString(p1.Inputs, p1.Outputs, "p1_")),
		part2(connString(p2.Inputs, p2.Outputs, "p2_")),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	wire := func(name string) int {
		n, ok := c.Wire(name)
		if !ok {
			t.Fatalf("no wire named %s", name)
		}
		return n
	}

	var ins []string
	clocked := false
	for _, n := range p1.Inputs {
		if n == clk {
			clocked = true
			continue
		}
		ins = append(ins, n)
	}
	inputs := make([]bool, len(ins))

	settle := func() {
		t.Helper()
		if _, err := c.Settle(MaxSettle); err != nil {
			t.Fatal(err)
		}
	}
	run := func() {
		t.Helper()
		for i, n := range ins {
			c.Force(wire(n), inputs[i])
		}
		if clocked {
			c.Force(wire(clk), false)
			settle()
			c.Force(wire(clk), true)
		}
		settle()
		for _, o := range p1.Outputs {
			v1, v2 := c.Get(wire("p1_"+o)), c.Get(wire("p2_"+o))
			if v1 != v2 {
				t.Fatalf("%s\nExpected %s=%v\nGot %v", inputString(ins, inputs), o, v1, v2)
			}
		}
	}

	// all 0, then all 1
	run()
	for i := range inputs {
		inputs[i] = true
	}
	run()

	iter := len(ins)
	if iter > 12 {
		iter = 12
	}
	for i := 0; i < 1<<uint(iter); i++ {
		for in := range inputs {
			inputs[in] = rand.Int63()&(1<<62) != 0
		}
		run()
	}
	t.Logf("%d components, %d steps", c.Size(), c.Steps())
}

func inputString(names []string, values []bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, values[i])
	}
	return b.String()
}
