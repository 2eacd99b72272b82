package logictrainer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lt "github.com/db47h/logictrainer"
	"github.com/db47h/logictrainer/hwlib"
	"github.com/db47h/logictrainer/hwsim"
	"github.com/db47h/logictrainer/hwtest"
)

func newModel(t *testing.T) *hwtest.Driver {
	t.Helper()
	d, err := hwtest.NewDriver(0, 0, 0, lt.ModelPart)
	require.NoError(t, err)
	return d
}

func sample(t *testing.T, d *hwtest.Driver) uint64 {
	t.Helper()
	v, err := d.Get(lt.PinOutput)
	require.NoError(t, err)
	return v
}

func TestModelPart_pinout(t *testing.T) {
	d := newModel(t)
	defer d.Close()
	assert.Equal(t, []string{"rst_n", "enable", "input_word[0]", "input_word[1]", "input_word[2]", "input_word[3]", "input_word[4]"}, d.Spec().Inputs)
	assert.Equal(t, []string{"output_bit"}, d.Spec().Outputs)
	assert.Equal(t, []hwtest.Port{{Name: lt.PinResetN}, {Name: lt.PinEnable}, {Name: lt.PinInputWord, Bits: lt.WordBits}}, d.Inputs())
}

func TestModelPart_reset(t *testing.T) {
	d := newModel(t)
	defer d.Close()

	require.NoError(t, d.SetInputs(map[string]uint64{
		lt.PinResetN:    0,
		lt.PinEnable:    1,
		lt.PinInputWord: lt.InputWord{Select: lt.SelOr, A: 1}.Pack(),
	}))
	d.Advance(2)
	assert.Equal(t, uint64(0), sample(t, d), "output must be low during reset")

	// first sample after release, all inputs zero: AND(0, 0)
	require.NoError(t, d.SetInputs(map[string]uint64{lt.PinResetN: 1, lt.PinInputWord: 0}))
	d.Advance(1)
	assert.Equal(t, uint64(0), sample(t, d))
}

func TestModelPart_registered(t *testing.T) {
	d := newModel(t)
	defer d.Close()

	require.NoError(t, d.SetInputs(map[string]uint64{lt.PinResetN: 1, lt.PinEnable: 1}))
	d.Advance(1)
	require.Equal(t, uint64(0), sample(t, d), "AND(0, 0)")
	w := lt.InputWord{Select: lt.SelNand}
	require.NoError(t, d.Set(lt.PinInputWord, w.Pack()))

	// idempotence: holding the same word yields the same output
	for i := 0; i < 4; i++ {
		d.Advance(1)
		assert.Equal(t, uint64(1), sample(t, d), "cycle %d", i)
	}
}

// The model output must only follow its inputs one step after a rising clock
// edge, however long the inputs have been stable before it.
func TestModelPart_edge(t *testing.T) {
	var word uint64
	var out bool
	on := func() bool { return true }
	c, err := hwsim.NewCircuit(1, hwtest.DefaultSPC,
		hwlib.Input(on)("out=rst_n"),
		hwlib.Input(on)("out=enable"),
		hwlib.InputN(lt.WordBits, func() uint64 { return word })("out=input_word"),
		lt.ModelPart("rst_n=rst_n, enable=enable, input_word=input_word, output_bit=q"),
		hwlib.Output(func(v bool) { out = v })("in=q"),
	)
	require.NoError(t, err)
	defer c.Dispose()

	c.TickTock()
	require.True(t, c.AtTick())
	word = lt.InputWord{Select: lt.SelNand}.Pack()
	for i := 0; i < hwtest.DefaultSPC; i++ {
		c.Step()
		require.False(t, out, "output changed %d steps after the edge", i+1)
	}
	require.True(t, c.AtTick())
	// capture, then output update
	c.Step()
	c.Step()
	assert.True(t, out, "NAND(0, 0) not registered on the rising edge")
}

func TestModelPart_enable(t *testing.T) {
	d := newModel(t)
	defer d.Close()

	require.NoError(t, d.SetInputs(map[string]uint64{lt.PinResetN: 1, lt.PinEnable: 0}))
	for _, w := range lt.Vectors(true) {
		require.NoError(t, d.Set(lt.PinInputWord, w.Pack()))
		d.Advance(1)
		assert.Equal(t, uint64(0), sample(t, d), "%s with enable low", w)
	}
}
