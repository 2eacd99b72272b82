// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/logictrainer/hwsim"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
func Mux(w string) hwsim.Part { return mux.NewPart(w) }

var mux = &hwsim.PartSpec{
	Name:    "MUX",
	Inputs:  []string{pA, pB, pSel},
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return []hwsim.Component{func(c *hwsim.Circuit) {
			if c.Get(sel) {
				c.Set(out, c.Get(b))
			} else {
				c.Set(out, c.Get(a))
			}
		}}
	},
}

var mux8WayIn = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

// Mux8Way returns a 8-way multiplexer.
//
//	Inputs: a, b, c, d, e, f, g, h, sel[3]
//	Outputs: out
//	Function: out = a if sel == 0, b if sel == 1, ..., h if sel == 7
func Mux8Way(w string) hwsim.Part { return mux8Way.NewPart(w) }

var mux8Way = &hwsim.PartSpec{
	Name:    "MUX8WAY",
	Inputs:  append(append([]string(nil), mux8WayIn...), bus(3, pSel)...),
	Outputs: []string{pOut},
	Mount: func(s *hwsim.Socket) []hwsim.Component {
		var in [8]int
		for i, n := range mux8WayIn {
			in[i] = s.Pin(n)
		}
		sel, out := s.Bus(pSel, 3), s.Pin(pOut)
		return []hwsim.Component{func(c *hwsim.Circuit) {
			c.Set(out, c.Get(in[Uint64(c, sel)]))
		}}
	},
}
