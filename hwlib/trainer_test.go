package hwlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lt "github.com/db47h/logictrainer"
	hl "github.com/db47h/logictrainer/hwlib"
	"github.com/db47h/logictrainer/hwtest"
)

func TestLogicTrainer_model(t *testing.T) {
	hwtest.ComparePart(t, testTPC, hl.LogicTrainerDepth, hl.LogicTrainer, lt.ModelPart)
}

func TestLogicTrainer_pinout(t *testing.T) {
	sp := hl.LogicTrainer("").PartSpec
	assert.Equal(t, []string{lt.PinResetN, lt.PinEnable,
		"input_word[0]", "input_word[1]", "input_word[2]", "input_word[3]", "input_word[4]"}, sp.Inputs)
	assert.Equal(t, []string{lt.PinOutput}, sp.Outputs)
}

func TestLogicTrainer(t *testing.T) {
	d, err := hwtest.NewDriver(0, testTPC, hl.LogicTrainerDepth, hl.LogicTrainer)
	require.NoError(t, err)
	defer d.Close()

	set := func(v map[string]uint64) {
		t.Helper()
		require.NoError(t, d.SetInputs(v))
	}
	sample := func() uint64 {
		t.Helper()
		out, err := d.Get(lt.PinOutput)
		require.NoError(t, err)
		return out
	}

	// reset forces the output low
	set(map[string]uint64{lt.PinResetN: 0, lt.PinEnable: 1, lt.PinInputWord: lt.InputWord{Select: lt.SelNand}.Pack()})
	d.Advance(2)
	require.Equal(t, uint64(0), sample(), "output during reset")
	set(map[string]uint64{lt.PinResetN: 1})

	for _, w := range lt.Vectors(true) {
		set(map[string]uint64{lt.PinInputWord: w.Pack()})
		d.Advance(1)
		assert.Equal(t, uint64(w.Expected()), sample(), "%s (%s)", w.Select, w)
	}

	// enable gating
	set(map[string]uint64{lt.PinEnable: 0})
	for _, w := range lt.Vectors(true) {
		set(map[string]uint64{lt.PinInputWord: w.Pack()})
		d.Advance(1)
		assert.Equal(t, uint64(0), sample(), "%s with enable low", w)
	}
}

// With too few steps per half cycle, inputs would not reach the flip-flop
// before the clock edge.
func TestLogicTrainer_spc(t *testing.T) {
	for _, spc := range []uint{2, 4, 8} {
		_, err := hwtest.NewDriver(0, spc, hl.LogicTrainerDepth, hl.LogicTrainer)
		assert.Error(t, err, "spc %d", spc)
	}
	d, err := hwtest.NewDriver(0, 0, hl.LogicTrainerDepth, hl.LogicTrainer)
	require.NoError(t, err)
	defer d.Close()
	assert.Equal(t, uint(hwtest.DefaultSPC), d.SPC())
}
