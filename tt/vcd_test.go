package tt_test

import (
	"bytes"
	"testing"

	"github.com/db47h/ttsim/tt"
	"github.com/db47h/ttsim/ttlib"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestVCD_golden(t *testing.T) {
	dev, err := tt.NewCircuitDevice(ttlib.Delay(1), 1)
	require.NoError(t, err)
	defer dev.Close()

	var buf bytes.Buffer
	h := tt.New(dev, tt.WithRecorder(tt.NewVCD(&buf)))
	_, err = h.StartClock(2, tt.Picosecond)
	require.NoError(t, err)
	require.NoError(t, h.Assign(tt.Ena, 1))
	require.NoError(t, h.Assign(tt.RstN, 1))
	require.NoError(t, h.Assign(tt.UIIn, 5))
	require.NoError(t, h.AdvanceCycles(1))
	require.NoError(t, h.Expect(tt.UOOut, 5))
	require.NoError(t, h.Assign(tt.UIIn, 0))
	require.NoError(t, h.AdvanceCycles(1))
	require.NoError(t, h.Close())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "delay1", buf.Bytes())
}

func TestVCD_errors(t *testing.T) {
	var buf bytes.Buffer
	v := tt.NewVCD(&buf)
	require.Error(t, v.Record(0, make([]uint64, 3)))
	require.NoError(t, v.Record(10, make([]uint64, len(tt.Pins()))))
	require.Error(t, v.Record(9, make([]uint64, len(tt.Pins()))))
	require.NoError(t, v.Flush())
	require.Contains(t, buf.String(), "$enddefinitions $end\n#10\n$dumpvars\n")
}
