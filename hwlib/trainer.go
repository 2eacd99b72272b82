// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	lt "github.com/db47h/logictrainer"
	"github.com/db47h/logictrainer/hwsim"
)

// LogicTrainerDepth is the number of parts on the longest path from the
// inputs of LogicTrainer to its flip-flop: function gate, Mux8Way, enable
// gate and reset gate.
const LogicTrainerDepth = 4

var logicTrainer = mustChip(hwsim.Chip("LOGIC_TRAINER",
	lt.PinResetN+", "+lt.PinEnable+", "+lt.PinInputWord+"["+strconv.Itoa(lt.WordBits)+"]", lt.PinOutput,
	// one gate per function, input_word[0] = a, input_word[1] = b
	And("a=input_word[0], b=input_word[1], out=fAnd"),
	Or("a=input_word[0], b=input_word[1], out=fOr"),
	Not("in=input_word[0], out=fNot"),
	Nand("a=input_word[0], b=input_word[1], out=fNand"),
	Nor("a=input_word[0], b=input_word[1], out=fNor"),
	Xor("a=input_word[0], b=input_word[1], out=fXor"),
	Xnor("a=input_word[0], b=input_word[1], out=fXnor"),
	// select code in input_word[2..4], code 7 selects false
	Mux8Way("a=fAnd, b=fOr, c=fNot, d=fNand, e=fNor, f=fXor, g=fXnor, h=false, sel[0..2]=input_word[2..4], out=fSel"),
	And("a=fSel, b=enable, out=gated"),
	And("a=gated, b=rst_n, out=d"),
	DFF("in=d, out=output_bit"),
))

// LogicTrainer returns the gate-level logic trainer: a clocked selector
// computing one of seven boolean functions of two operands.
//
//	Inputs: rst_n, enable, input_word[5]
//	Outputs: output_bit
//	Function: output_bit(t) = rst_n(t-1) && enable(t-1) && f(t-1)
//	          where f = fn[input_word[2..4]](input_word[0], input_word[1])
//	          and fn = AND, OR, NOT a, NAND, NOR, XOR, XNOR, false
//
// Drivers must give it at least LogicTrainerDepth steps per half cycle, plus
// the delay of their own input parts.
func LogicTrainer(w string) hwsim.Part { return logicTrainer(w) }

func mustChip(fn hwsim.NewPartFn, err error) hwsim.NewPartFn {
	if err != nil {
		panic(err)
	}
	return fn
}
