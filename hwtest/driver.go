// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/logictrainer/hwlib"
	"github.com/db47h/logictrainer/hwsim"
	"github.com/pkg/errors"
)

// DefaultSPC is the default number of simulation steps per clock cycle used by
// drivers.
const DefaultSPC = 16

// A Port is a named input or output of a part. Bits is 0 for single pins.
type Port struct {
	Name string
	Bits int
}

// Width returns the number of pins in the port.
func (p Port) Width() int {
	if p.Bits == 0 {
		return 1
	}
	return p.Bits
}

// Ports groups the pin names of a PartSpec into ports, keeping the order of
// their first pin.
func Ports(pins []string) []Port {
	var ports []Port
	idx := make(map[string]int)
	for _, n := range pins {
		b := strings.IndexByte(n, '[')
		if b < 0 {
			idx[n] = len(ports)
			ports = append(ports, Port{Name: n})
			continue
		}
		bn := n[:b]
		if _, err := strconv.Atoi(n[b+1 : len(n)-1]); err != nil {
			panic(err)
		}
		i, ok := idx[bn]
		if !ok {
			i = len(ports)
			idx[bn] = i
			ports = append(ports, Port{Name: bn})
		}
		ports[i].Bits++
	}
	return ports
}

type input struct {
	Port
	v uint64
}

// A Driver is a cycle-accurate stimulus driver for a single part, the device
// under test (DUT). It owns the simulated clock: inputs set with Set or
// SetInputs are presented to the DUT and Advance runs the simulation for a
// given number of clock cycles, after which outputs can be sampled with Get
// or ReadOutputs.
//
// Between calls, the circuit is parked on a falling clock edge. New inputs
// propagate during the second half of the cycle, clocked parts capture them
// on the rising edge and outputs are sampled once they have settled, on the
// next falling edge. As a result, a registered output read after Advance(1)
// reflects the inputs set before that call.
//
// A Driver is not safe for concurrent use.
type Driver struct {
	c       *hwsim.Circuit
	spec    *hwsim.PartSpec
	inputs  []*input
	in      map[string]*input
	outputs []Port
	out     map[string][]int
}

// NewDriver wraps the part returned by dut in a new circuit. See
// hwsim.NewCircuit for the workers and stepsPerCycle parameters.
//
// depth is the number of parts on the longest path from the inputs of the DUT
// to its clocked parts or outputs. The driver's own input parts add one more
// step, and the whole path must fit in half a clock cycle: NewDriver returns an
// error if stepsPerCycle is too short for depth. A stepsPerCycle of 0 selects
// DefaultSPC, or the shortest valid cycle if DefaultSPC is too short.
//
// Callers must call Close once the driver is no longer needed.
func NewDriver(workers int, stepsPerCycle uint, depth uint, dut hwsim.NewPartFn) (*Driver, error) {
	spec := dut("").PartSpec
	need := hwsim.MinSPC(depth + 1)
	switch {
	case stepsPerCycle == 0:
		stepsPerCycle = DefaultSPC
		if stepsPerCycle < need {
			stepsPerCycle = need
		}
	case hwsim.RoundSPC(stepsPerCycle) < need:
		return nil, errors.Errorf("%s: %d steps per cycle too short for depth %d, need at least %d",
			spec.Name, hwsim.RoundSPC(stepsPerCycle), depth, need)
	}
	if len(spec.Outputs) == 0 {
		return nil, errors.New("part " + spec.Name + " has no outputs")
	}
	d := &Driver{
		spec:    spec,
		in:      make(map[string]*input),
		outputs: Ports(spec.Outputs),
		out:     make(map[string][]int),
	}

	var parts hwsim.Parts
	for _, p := range Ports(spec.Inputs) {
		in := &input{Port: p}
		d.inputs = append(d.inputs, in)
		d.in[p.Name] = in
		if p.Bits == 0 {
			parts = append(parts, hwlib.Input(func() bool { return in.v != 0 })("out="+p.Name))
		} else {
			parts = append(parts, hwlib.InputN(p.Bits, func() uint64 { return in.v })("out="+p.Name))
		}
	}
	parts = append(parts, dut(connString(spec.Inputs, spec.Outputs)))

	probe := &hwsim.PartSpec{
		Name:   "PROBE",
		Inputs: spec.Outputs,
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			for _, p := range d.outputs {
				if p.Bits == 0 {
					d.out[p.Name] = []int{s.Pin(p.Name)}
				} else {
					d.out[p.Name] = s.Bus(p.Name, p.Bits)
				}
			}
			return nil
		},
	}
	parts = append(parts, probe.NewPart(connString(spec.Outputs, nil)))

	c, err := hwsim.NewCircuit(workers, stepsPerCycle, parts...)
	if err != nil {
		return nil, errors.Wrap(err, "driver for "+spec.Name)
	}
	d.c = c
	// park on the first falling edge
	c.Tick()
	return d, nil
}

func connString(in, out []string) string {
	var b strings.Builder
	for _, l := range [][]string{in, out} {
		for _, n := range l {
			if b.Len() > 0 {
				b.WriteRune(',')
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(n)
		}
	}
	return b.String()
}

// Spec returns the PartSpec of the DUT.
func (d *Driver) Spec() *hwsim.PartSpec { return d.spec }

// Inputs returns the input ports of the DUT.
func (d *Driver) Inputs() []Port {
	ports := make([]Port, len(d.inputs))
	for i, in := range d.inputs {
		ports[i] = in.Port
	}
	return ports
}

// Outputs returns the output ports of the DUT.
func (d *Driver) Outputs() []Port { return append([]Port(nil), d.outputs...) }

// Set sets the value of input port name. Pin 0 of a bus is the lsb of v.
func (d *Driver) Set(name string, v uint64) error {
	in, ok := d.in[name]
	if !ok {
		return errors.Errorf("%s: no such input %q", d.spec.Name, name)
	}
	if w := in.Width(); w < 64 && v>>uint(w) != 0 {
		return errors.Errorf("%s: value %#x out of range for %d bits input %q", d.spec.Name, v, w, name)
	}
	in.v = v
	return nil
}

// SetInputs sets the values of several input ports. Ports not in v keep
// their current value. Nothing is changed if any of the values is invalid.
func (d *Driver) SetInputs(v map[string]uint64) error {
	names := make([]string, 0, len(v))
	for n := range v {
		names = append(names, n)
	}
	sort.Strings(names)
	prev := make(map[string]uint64, len(v))
	for _, n := range names {
		if in, ok := d.in[n]; ok {
			prev[n] = in.v
		}
		if err := d.Set(n, v[n]); err != nil {
			for pn, pv := range prev {
				d.in[pn].v = pv
			}
			return err
		}
	}
	return nil
}

// Advance runs the simulation for n clock cycles.
func (d *Driver) Advance(n int) {
	for i := 0; i < n; i++ {
		d.c.Tock()
		d.c.Tick()
	}
}

// Get returns the current value of output port name.
func (d *Driver) Get(name string) (uint64, error) {
	pins, ok := d.out[name]
	if !ok {
		return 0, errors.Errorf("%s: no such output %q", d.spec.Name, name)
	}
	return hwlib.Uint64(d.c, pins), nil
}

// ReadOutputs returns the values of all output ports.
func (d *Driver) ReadOutputs() map[string]uint64 {
	r := make(map[string]uint64, len(d.out))
	for n, pins := range d.out {
		r[n] = hwlib.Uint64(d.c, pins)
	}
	return r
}

// Cycles returns the number of clock cycles run so far.
func (d *Driver) Cycles() int { return int(d.c.Cycles()) }

// Size returns the component count of the underlying circuit.
func (d *Driver) Size() int { return d.c.Size() }

// SPC returns the number of simulation steps per clock cycle.
func (d *Driver) SPC() uint { return d.c.SPC() }

// Steps returns the number of simulation steps run so far.
func (d *Driver) Steps() uint { return d.c.Steps() }

// Close stops the simulation and releases its resources.
func (d *Driver) Close() error {
	d.c.Dispose()
	return nil
}
