package hwsim_test

import (
	"testing"

	hw "github.com/db47h/ttsim/hwsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func wire(t *testing.T, c *hw.Circuit, name string) int {
	t.Helper()
	n, ok := c.Wire(name)
	if !ok {
		t.Fatalf("no wire named %s", name)
	}
	return n
}

func TestNewCircuit_empty(t *testing.T) {
	if _, err := hw.NewCircuit(0, nil); err == nil {
		t.Fatal("expected an error for an empty part list")
	}
}

// A ring of three inverters never settles.
func TestSettle_oscillator(t *testing.T) {
	c, err := hw.NewCircuit(0, nil,
		hl.Not("in=a, out=b"),
		hl.Not("in=b, out=c"),
		hl.Not("in=c, out=a"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	if _, err = c.Settle(100); err == nil {
		t.Fatal("expected oscillating circuit to fail to settle")
	}
	if c.Steps() != 100 {
		t.Fatalf("expected 100 steps, got %d", c.Steps())
	}
}

// Test propagation delays through a chain of gates.
func TestSettle_propagation(t *testing.T) {
	c, err := hw.NewCircuit(1, hw.In("in"),
		hl.Not("in=in, out=n0"),
		hl.Not("in=n0, out=n1"),
		hl.Not("in=n1, out=n2"),
		hl.Not("in=n2, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	in, out := wire(t, c, "in"), wire(t, c, "out")

	if _, err = c.Settle(16); err != nil {
		t.Fatal(err)
	}
	if c.Get(out) {
		t.Fatal("out = true with in = false")
	}

	c.Force(in, true)
	c.Step()
	if c.Get(out) {
		t.Fatal("input change propagated in a single step")
	}
	n, err := c.Settle(16)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Get(out) {
		t.Fatal("out = false with in = true")
	}
	// 3 more steps to reach out, one to detect stability.
	if n != 4 {
		t.Fatalf("expected 4 steps to settle, got %d", n)
	}
}

// Results must not depend on how components are spread over workers.
func TestCircuit_workers(t *testing.T) {
	xor, err := hw.Chip("XOR", "a, b", "out",
		hl.Nand("a=a, b=b, out=nandAB"),
		hl.Nand("a=a, b=nandAB, out=w0"),
		hl.Nand("a=b, b=nandAB, out=w1"),
		hl.Nand("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{0, 1, 2, 3, 8} {
		c, err := hw.NewCircuit(workers, hw.In("a, b"), xor("a=a, b=b, out=out"))
		if err != nil {
			t.Fatal(err)
		}
		a, b, out := wire(t, c, "a"), wire(t, c, "b"), wire(t, c, "out")
		for i := 0; i < 4; i++ {
			va, vb := i&2 != 0, i&1 != 0
			c.Force(a, va)
			c.Force(b, vb)
			if _, err := c.Settle(32); err != nil {
				t.Fatal(err)
			}
			if c.Get(out) != (va != vb) {
				t.Errorf("workers=%d: %v xor %v = %v", workers, va, vb, c.Get(out))
			}
		}
		if c.Size() != 4 {
			t.Errorf("expected 4 components, got %d", c.Size())
		}
		c.Dispose()
		c.Dispose()
	}
}

func TestCircuit_Bus(t *testing.T) {
	c, err := hw.NewCircuit(0, hw.In("in[4]"), hl.NotN(4)("in=in, out=out"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	if _, err = c.Bus("out", 4); err != nil {
		t.Fatal(err)
	}
	if _, err = c.Bus("out", 5); err == nil {
		t.Fatal("expected an error for a bus wider than declared")
	}
	if !c.IsInput("in[3]") || c.IsInput("out[0]") {
		t.Fatal("IsInput mismatch")
	}
}
