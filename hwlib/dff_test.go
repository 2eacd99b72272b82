package hwlib_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	hl "github.com/db47h/logictrainer/hwlib"
	hw "github.com/db47h/logictrainer/hwsim"
	"github.com/db47h/logictrainer/hwtest"
)

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

func TestDFF(t *testing.T) {
	dff4, err := hw.Chip("DFF4", "in[4]", "out[4]",
		hl.DFF("in=in[0], out=out[0]"),
		hl.DFF("in=in[1], out=out[1]"),
		hl.DFF("in=in[2], out=out[2]"),
		hl.DFF("in=in[3], out=out[3]"),
	)
	require.NoError(t, err)

	d, err := hwtest.NewDriver(0, testTPC, 0, dff4)
	require.NoError(t, err)
	defer d.Close()

	for i := uint64(15); i < 16; i-- {
		require.NoError(t, d.Set("in", i))
		d.Advance(1)
		out, err := d.Get("out")
		require.NoError(t, err)
		require.Equal(t, i, out, "output for input %d", i)
	}
}

func Test_bit_register(t *testing.T) {
	reg, err := hw.Chip("BitReg", "in, load", "out",
		hl.Mux("a=out, b=in, sel=load, out=muxOut"),
		hl.DFF("in=muxOut, out=out"),
	)
	require.NoError(t, err)

	d, err := hwtest.NewDriver(0, testTPC, 1, reg)
	require.NoError(t, err)
	defer d.Close()

	var p uint64
	for i := 0; i < 1000; i++ {
		in, load := randBool(), randBool()
		require.NoError(t, d.SetInputs(map[string]uint64{"in": b2u(in), "load": b2u(load)}))
		d.Advance(1)
		if load {
			p = b2u(in)
		}
		out, _ := d.Get("out")
		require.Equal(t, p, out, "iteration %d: in=%v, load=%v", i, in, load)
	}
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// The DFF output must only change one step after a rising clock edge.
func TestDFF_edge(t *testing.T) {
	var in, out bool
	c, err := hw.NewCircuit(1, testTPC,
		hl.Input(func() bool { return in })("out=d"),
		hl.DFF("in=d, out=q"),
		hl.Output(func(v bool) { out = v })("in=q"),
	)
	require.NoError(t, err)
	defer c.Dispose()

	c.TickTock()
	require.True(t, c.AtTick())
	in = true
	for i := 0; i < testTPC; i++ {
		c.Step()
		require.False(t, out, "output changed %d steps after the edge", i+1)
	}
	require.True(t, c.AtTick())
	// capture, then output update
	c.Step()
	c.Step()
	require.True(t, out, "output not updated after the rising edge")
}
