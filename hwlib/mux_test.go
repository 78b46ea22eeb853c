package hwlib_test

import (
	"testing"

	hw "github.com/db47h/ttsim/hwsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

func TestMuxN(t *testing.T) {
	m, err := hw.Chip("myMux4", "a[4], b[4], sel", "out[4]",
		hl.Mux("a=a[0], b=b[0], sel=sel, out=out[0]"),
		hl.Mux("a=a[1], b=b[1], sel=sel, out=out[1]"),
		hl.Mux("a=a[2], b=b[2], sel=sel, out=out[2]"),
		hl.Mux("a=a[3], b=b[3], sel=sel, out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, hl.MuxN(4), m)
}

func TestMux_fromGates(t *testing.T) {
	m, err := hw.Chip("MUX", "a, b, sel", "out",
		hl.Not("in=sel, out=notSel"),
		hl.And("a=a, b=notSel, out=w0"),
		hl.And("a=b, b=sel, out=w1"),
		hl.Or("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, hl.Mux, m)
}
