// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts []Part
}

func (c *chip) mount(s *Socket) []Component {
	var cs []Component
	for _, p := range c.parts {
		cs = append(cs, s.Mount(p)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs (see ParseIOSpec for the
// syntax) will be the inputs and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Every internal wire must be driven by exactly one part output, and every
// part output must be read by some part or be a chip output. Unconnected part
// inputs are wired to False.
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	isIn := make(map[string]bool, len(ins))
	for _, n := range ins {
		isIn[n] = true
	}
	isOut := make(map[string]bool, len(outs))
	for _, n := range outs {
		if isIn[n] {
			return nil, errors.New(name + ": pin " + n + " declared as both input and output")
		}
		isOut[n] = true
	}

	drivers := make(map[string]string)
	readers := make(map[string]bool)
	var order []string // internal wires in order of first use

	for _, p := range parts {
		ws, err := p.wires()
		if err != nil {
			return nil, err
		}
		for _, k := range p.Inputs {
			if v, ok := ws[k]; ok {
				if !readers[v] && drivers[v] == "" {
					order = append(order, v)
				}
				readers[v] = true
			}
		}
		for _, k := range p.Outputs {
			v, ok := ws[k]
			if !ok {
				continue
			}
			if err := checkOutput(v, isIn, drivers); err != nil {
				return nil, errors.Wrap(err, p.Name+"."+k+":"+v)
			}
			if !readers[v] {
				order = append(order, v)
			}
			drivers[v] = p.Name + "." + k
		}
	}

	for _, v := range order {
		switch {
		case isConstant(v) || isIn[v]:
		case readers[v] && drivers[v] == "":
			return nil, errors.New("pin " + v + " not connected to any output")
		case !readers[v] && !isOut[v]:
			return nil, errors.New("pin " + v + " not connected to any input")
		}
	}

	c := &chip{
		PartSpec: PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts: append([]Part(nil), parts...),
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

func isConstant(name string) bool {
	return name == True || name == False || name == Clk
}

func checkOutput(wire string, isIn map[string]bool, drivers map[string]string) error {
	switch {
	case wire == Clk:
		return errors.New("output pin connected to clock signal")
	case wire == True || wire == False:
		return errors.New("output pin connected to constant " + wire + " input")
	case isIn[wire]:
		return errors.New("chip input pin used as output")
	case drivers[wire] != "":
		return errors.New("output pin already used as output")
	}
	return nil
}
