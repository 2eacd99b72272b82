// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logictrainer

import "strconv"

// A Bit is a 1 bit value, 0 or 1.
type Bit uint8

// BitOf converts a bool to a Bit.
func BitOf(b bool) Bit {
	if b {
		return 1
	}
	return 0
}

// A SelectCode is the 3 bits code choosing which boolean function the
// logic trainer computes.
type SelectCode uint8

// Select codes.
const (
	SelAnd SelectCode = iota
	SelOr
	SelNot
	SelNand
	SelNor
	SelXor
	SelXnor
	SelUndefined

	// NumFunctions is the number of defined functions (select codes 0 to 6).
	NumFunctions = int(SelUndefined)
)

var selNames = [...]string{"AND", "OR", "NOT", "NAND", "NOR", "XOR", "XNOR", "UNDEFINED"}

// String returns the name of the function selected by s.
func (s SelectCode) String() string {
	if int(s) < len(selNames) {
		return selNames[s]
	}
	return "SelectCode(" + strconv.Itoa(int(s)) + ")"
}

// Binary returns s as a 3 digits binary string, like "010".
func (s SelectCode) Binary() string {
	b := strconv.FormatUint(uint64(s&7), 2)
	for len(b) < 3 {
		b = "0" + b
	}
	return b
}

// Expected returns the output of the logic trainer for select code sel and
// operands a and b. Only the lsb of a and b is used. Codes outside of 0..6
// yield 0.
//
//	sel  function  result
//	000  AND       a & b
//	001  OR        a | b
//	010  NOT       ~a (b ignored)
//	011  NAND      ~(a & b)
//	100  NOR       ~(a | b)
//	101  XOR       a ^ b
//	110  XNOR      ~(a ^ b)
//	111  -         0
func Expected(sel SelectCode, a, b Bit) Bit {
	a, b = a&1, b&1
	var r Bit
	switch sel {
	case SelAnd:
		r = a & b
	case SelOr:
		r = a | b
	case SelNot:
		r = ^a
	case SelNand:
		r = ^(a & b)
	case SelNor:
		r = ^(a | b)
	case SelXor:
		r = a ^ b
	case SelXnor:
		r = ^(a ^ b)
	}
	return r & 1
}
