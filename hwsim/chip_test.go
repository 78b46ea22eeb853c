package hwsim_test

import (
	"testing"

	hw "github.com/db47h/ttsim/hwsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

func TestChip_errors(t *testing.T) {
	unkChip, err := hw.Chip("TESTCHIP", "a, b", "out",
		// chip input a is unused
		hl.Nand("a=b, b=b, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name  string
		in    string
		out   string
		parts []hw.Part
		err   string
	}{
		{"true_out", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=b, out=true"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:true: output pin connected to constant true input"},
		{"false_out", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=b, out=false"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:false: output pin connected to constant false input"},
		{"multi_out", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=b, out=a"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:a: chip input pin used as output"},
		{"multi_out2", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=b, out=x"),
			hl.Nand("a=a, b=b, out=x"),
			hl.Not("in=x, out=out"),
		}, "NAND.out:x: output pin already used as output"},
		{"no_output", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=wx, out=out"),
		}, "pin wx not connected to any output"},
		{"no_input", "a, b", "out", []hw.Part{
			hl.Nand("a=a, b=b, out=foo"),
			hl.Nand("a=a, b=b, out=out"),
		}, "pin foo not connected to any input"},
		{"unconnected_out", "a, b", "out", []hw.Part{}, "pin out not connected to any output"},
		{"in_and_out", "a, b", "a", []hw.Part{
			hl.Nand("a=a, b=b, out=out"),
		}, "pin a declared as both input and output"},
		{"unknown_pin", "a, b", "out", []hw.Part{
			hl.Nand("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part NAND"},
		{"unknown_pin_chip", "a, b", "out", []hw.Part{
			unkChip("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part TESTCHIP"},
		{"double_conn", "a, b", "out", []hw.Part{
			hl.Nand("a=a, a=b, out=out"),
		}, "pin a of part NAND connected more than once"},
		{"count_mismatch", "a[2]", "out[4]", []hw.Part{
			hl.NotN(4)("in[0..3]=a[0..1], out=out"),
		}, "pin count mismatch in connection in[0..3]=a[0..1] for part NOT4"},
		{"ok", "a, b", "out", []hw.Part{
			unkChip("a=a, b=b, out=out"),
		}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Chip(d.name, d.in, d.out, d.parts...)
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				trace(t, err)
				t.Errorf("Got error %q, expected %q", err, d.err)
			}
		})
	}
}

func TestChip_omitted_pins(t *testing.T) {
	var a, b, tr, f, o0, o1 int
	dummy := (&hw.PartSpec{
		Name:    "dummy",
		Inputs:  hw.In("a, b, t, f"),
		Outputs: hw.Out("o0, o1"),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, tr, f, o0, o1 = s.Pin("a"), s.Pin("b"), s.Pin("t"), s.Pin("f"), s.Pin("o0"), s.Pin("o1")
			return nil
		}}).NewPart
	// this is just to add another layer of testing.
	wrapper, err := hw.Chip("wrapper", "wa, wb", "wo0",
		dummy("a=wa, t=true, f=false, o0=wo0"),
	)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}

	c, err := hw.NewCircuit(0, nil, wrapper(""))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	if a != 0 || b != 0 || f != 0 { // 0 = false
		t.Errorf("a = %v, b = %v, f = %v, all must be 0", a, b, f)
	}
	if tr != 1 { // 1 = true
		t.Errorf("t = %v, must be 1", tr)
	}
	if o0 < 2 || o1 < 2 || o0 == o1 { // 2 = first allocated wire
		t.Errorf("o0 = %v, o1 = %v, both must be distinct wires >= 2", o0, o1)
	}
	if c.Size() != 0 {
		t.Errorf("expected no components, got %d", c.Size())
	}
}

func TestChip_fanout(t *testing.T) {
	gate, err := hw.Chip("FANOUT", "in", "a, b, bus[2]",
		hl.Buf("in=in, out=a"),
		hl.Buf("in=a, out=b"),
		hl.Buf("in=a, out=bus[0]"),
		hl.Buf("in=b, out=bus[1]"),
	)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	wrapper, err := hw.Chip("FANOUT_Wrapper", "in", "o[4]",
		gate("in=in, a=o[0], b=o[1], bus=o[2..3]"),
	)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	var out uint64
	c, err := hw.NewCircuit(0, nil,
		wrapper("in=true, o=wrapOut"),
		hl.OutputN(4, func(v uint64) { out = v })("in=wrapOut"),
	)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	defer c.Dispose()
	if _, err = c.Settle(16); err != nil {
		t.Fatal(err)
	}
	if out != 15 {
		t.Fatalf("out = %d != 15", out)
	}
}

func Test_gate_custom(t *testing.T) {
	and, err := hw.Chip("AND", "a, b", "out",
		hl.Nand("a=a, b=b, out=nand"),
		hl.Nand("a=nand, b=nand, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	or, err := hw.Chip("OR", "a, b", "out",
		hl.Nand("a=a, b=a, out=notA"),
		hl.Nand("a=b, b=b, out=notB"),
		hl.Nand("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	nor, err := hw.Chip("NOR", "a, b", "out",
		or("a=a, b=b, out=orAB"),
		hl.Nand("a=orAB, b=orAB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	xor, err := hw.Chip("XOR", "a, b", "out",
		hl.Nand("a=a, b=b, out=nandAB"),
		hl.Nand("a=a, b=nandAB, out=w0"),
		hl.Nand("a=b, b=nandAB, out=w1"),
		hl.Nand("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	dmux, err := hw.Chip("DMUX", "in, sel", "a, b",
		hl.Not("in=sel, out=notSel"),
		hl.And("a=in, b=notSel, out=a"),
		hl.And("a=in, b=sel, out=b"),
	)
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name    string
		custom  hw.NewPartFn
		builtin hw.NewPartFn
	}{
		{"AND", and, hl.And},
		{"OR", or, hl.Or},
		{"NOR", nor, hl.Nor},
		{"XOR", xor, hl.Xor},
		{"DMUX", dmux, hl.DMux},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			hwtest.ComparePart(t, d.builtin, d.custom)
		})
	}
}
