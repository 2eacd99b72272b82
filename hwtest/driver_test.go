package hwtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hl "github.com/db47h/logictrainer/hwlib"
	hw "github.com/db47h/logictrainer/hwsim"
	"github.com/db47h/logictrainer/hwtest"
)

func TestPorts(t *testing.T) {
	ports := hwtest.Ports([]string{"rst_n", "input_word[0]", "input_word[1]", "enable", "input_word[2]"})
	assert.Equal(t, []hwtest.Port{
		{Name: "rst_n"},
		{Name: "input_word", Bits: 3},
		{Name: "enable"},
	}, ports)
	assert.Equal(t, 1, ports[0].Width())
	assert.Equal(t, 3, ports[1].Width())
}

func TestDriver_ports(t *testing.T) {
	d, err := hwtest.NewDriver(1, 0, hl.LogicTrainerDepth, hl.LogicTrainer)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, []hwtest.Port{{Name: "rst_n"}, {Name: "enable"}, {Name: "input_word", Bits: 5}}, d.Inputs())
	assert.Equal(t, []hwtest.Port{{Name: "output_bit"}}, d.Outputs())
	assert.Equal(t, "LOGIC_TRAINER", d.Spec().Name)
	assert.Equal(t, 0, d.Cycles())
}

func TestDriver_errors(t *testing.T) {
	d, err := hwtest.NewDriver(1, 0, hl.LogicTrainerDepth, hl.LogicTrainer)
	require.NoError(t, err)
	defer d.Close()

	assert.EqualError(t, d.Set("foo", 1), `LOGIC_TRAINER: no such input "foo"`)
	assert.EqualError(t, d.Set("enable", 2), `LOGIC_TRAINER: value 0x2 out of range for 1 bits input "enable"`)
	assert.Error(t, d.Set("input_word", 32))
	assert.NoError(t, d.Set("input_word", 31))

	_, err = d.Get("bar")
	assert.EqualError(t, err, `LOGIC_TRAINER: no such output "bar"`)

	// nothing is changed on error
	require.NoError(t, d.Set("enable", 1))
	assert.Error(t, d.SetInputs(map[string]uint64{"enable": 0, "rst_n": 5}))
	require.NoError(t, d.SetInputs(map[string]uint64{"rst_n": 1, "input_word": 0x1f}))
	d.Advance(1)
	out, err := d.Get("output_bit")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), out, "select 7 must output 0")
	require.NoError(t, d.Set("input_word", 0x03)) // AND 1, 1
	d.Advance(1)
	assert.Equal(t, map[string]uint64{"output_bit": 1}, d.ReadOutputs(), "enable must still be high")
}

func TestDriver_noOutputs(t *testing.T) {
	_, err := hwtest.NewDriver(1, 0, 0, hl.Output(func(bool) {}))
	assert.EqualError(t, err, "part OUTPUT has no outputs")
}

// A registered output must reflect the inputs presented one Advance earlier,
// and no later.
func TestDriver_latency(t *testing.T) {
	shift, err := hw.Chip("SHIFT2", "in", "q0, q1",
		hl.DFF("in=in, out=q0"),
		hl.DFF("in=q0, out=q1"),
	)
	require.NoError(t, err)
	d, err := hwtest.NewDriver(0, 0, 0, shift)
	require.NoError(t, err)
	defer d.Close()

	seq := []uint64{1, 0, 1, 1, 0, 0, 1}
	var prev uint64
	for i, v := range seq {
		require.NoError(t, d.Set("in", v))
		d.Advance(1)
		out := d.ReadOutputs()
		assert.Equal(t, v, out["q0"], "q0 at cycle %d", i)
		assert.Equal(t, prev, out["q1"], "q1 at cycle %d", i)
		prev = v
	}
	assert.Equal(t, len(seq), d.Cycles())
	assert.Equal(t, uint(len(seq)*hwtest.DefaultSPC+hwtest.DefaultSPC/2), d.Steps())
}

func TestDriver_spc(t *testing.T) {
	_, err := hwtest.NewDriver(0, 8, hl.LogicTrainerDepth, hl.LogicTrainer)
	assert.EqualError(t, err, "LOGIC_TRAINER: 8 steps per cycle too short for depth 4, need at least 16")
	_, err = hwtest.NewDriver(0, 3, 2, hl.And)
	assert.EqualError(t, err, "AND: 4 steps per cycle too short for depth 2, need at least 8")

	td := []struct {
		spc, depth, exp uint
	}{
		{0, 0, hwtest.DefaultSPC},
		{0, hl.LogicTrainerDepth, hwtest.DefaultSPC},
		{0, 12, 32},
		{2, 0, 2},
		{9, hl.LogicTrainerDepth, 16},
	}
	for _, d := range td {
		drv, err := hwtest.NewDriver(1, d.spc, d.depth, hl.And)
		require.NoError(t, err, "spc %d, depth %d", d.spc, d.depth)
		assert.Equal(t, d.exp, drv.SPC(), "spc %d, depth %d", d.spc, d.depth)
		drv.Close()
	}
}
