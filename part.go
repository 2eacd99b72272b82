// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logictrainer

import "github.com/db47h/logictrainer/hwsim"

// model is the behavioral logic trainer. It has the same pinout and timing as
// hwlib.LogicTrainer.
type model struct {
	RstN   int           `hw:"in,rst_n"`
	Enable int           `hw:"in"`
	Word   [WordBits]int `hw:"in,input_word"`
	Out    int           `hw:"out,output_bit"`

	q bool
}

func (m *model) Update(c *hwsim.Circuit) {
	if c.AtTick() {
		var v uint64
		for i, p := range m.Word {
			if c.Get(p) {
				v |= 1 << uint(i)
			}
		}
		// v always fits in WordBits
		w, _ := UnpackInputWord(v)
		m.q = c.Get(m.RstN) && c.Get(m.Enable) && w.Expected() == 1
	}
	c.Set(m.Out, m.q)
}

var modelSpec = hwsim.MakePart((*model)(nil))

// ModelPart returns the reference model packaged as a clocked part, for
// side by side comparison with a hardware implementation.
//
//	Inputs: rst_n, enable, input_word[5]
//	Outputs: output_bit
//	Function: output_bit(t) = rst_n(t-1) && enable(t-1) && Expected(input_word(t-1))
func ModelPart(w string) hwsim.Part { return modelSpec.NewPart(w) }
