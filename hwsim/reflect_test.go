package hwsim_test

import (
	"testing"

	hw "github.com/db47h/ttsim/hwsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

type testPart struct {
	A   [4]int `hw:"in"`
	B   [4]int `hw:"in"`
	Sel int    `hw:"in"`
	Out [4]int `hw:"out"`
}

func (t *testPart) Update(c *hw.Circuit) {
	src := t.A
	if c.Get(t.Sel) {
		src = t.B
	}
	for i, p := range src {
		c.Set(t.Out[i], c.Get(p))
	}
}

func Test_MakePart(t *testing.T) {
	m, err := hw.Chip("myMux4", "a[4], b[4], sel", "out[4]",
		hl.Mux("a=a[0], b=b[0], sel=sel, out=out[0]"),
		hl.Mux("a=a[1], b=b[1], sel=sel, out=out[1]"),
		hl.Mux("a=a[2], b=b[2], sel=sel, out=out[2]"),
		hl.Mux("a=a[3], b=b[3], sel=sel, out=out[3]"),
	)
	if err != nil {
		t.Fatal(err)
	}

	sp := hw.MakePart((*testPart)(nil))
	if sp.Name != "testPart" {
		t.Errorf("expected part name testPart, got %s", sp.Name)
	}
	hwtest.ComparePart(t, m, sp.NewPart)
}

type badTag struct {
	X int `hw:"inout"`
}

func (*badTag) Update(*hw.Circuit) {}

type badType struct {
	X bool `hw:"in"`
}

func (*badType) Update(*hw.Circuit) {}

func Test_MakePart_panics(t *testing.T) {
	for _, u := range []hw.Updater{(*badTag)(nil), (*badType)(nil)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("MakePart(%T) did not panic", u)
				}
			}()
			hw.MakePart(u)
		}()
	}
}
