package hwlib_test

import (
	"math/rand"
	"strings"
	"testing"

	hw "github.com/db47h/ttsim/hwsim"
)

const maxSettle = 64

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// newTestCircuit mounts a part with its inputs driven from outside and its
// outputs connected to wires of the same name.
func newTestCircuit(t *testing.T, gate hw.NewPartFn) (*hw.Circuit, hw.Part) {
	t.Helper()
	part := gate("")
	var w strings.Builder
	for _, n := range append(append([]string(nil), part.Inputs...), part.Outputs...) {
		if w.Len() > 0 {
			w.WriteByte(',')
		}
		w.WriteString(n + "=" + n)
	}
	c, err := hw.NewCircuit(0, part.Inputs, gate(w.String()))
	if err != nil {
		t.Fatal(err)
	}
	return c, part
}

func wire(t *testing.T, c *hw.Circuit, name string) int {
	t.Helper()
	n, ok := c.Wire(name)
	if !ok {
		t.Fatalf("no wire named %s", name)
	}
	return n
}

func testGate(t *testing.T, gate hw.NewPartFn, result [][]bool) {
	t.Helper()
	c, part := newTestCircuit(t, gate)
	defer c.Dispose()

	inputs := make([]bool, len(part.Inputs))
	tot := 1 << uint(len(part.Inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = (i & (1 << uint(bit))) != 0
		}
		for k, n := range part.Inputs {
			c.Force(wire(t, c, n), inputs[k])
		}
		if _, err := c.Settle(maxSettle); err != nil {
			t.Fatal(err)
		}
		for o, n := range part.Outputs {
			exp, got := result[o][i], c.Get(wire(t, c, n))
			if exp != got {
				t.Errorf("%s %v: %s = %v, got %v", part.Name, inputs, n, exp, got)
			}
		}
	}
}
