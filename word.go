// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logictrainer

import (
	"fmt"

	"github.com/pkg/errors"
)

// Bit layout of a packed InputWord.
//
//	bit    4   3   2   1   0
//	     +---+---+---+---+---+
//	     |  select   | b | a |
//	     +---+---+---+---+---+
const (
	BitA      = 0
	BitB      = 1
	BitSelect = 2

	// WordBits is the number of meaningful bits in a packed InputWord.
	WordBits = 5
)

// Pin names shared by every logic trainer implementation. PinInputWord is a
// WordBits wide bus carrying a packed InputWord.
const (
	PinResetN    = "rst_n"
	PinEnable    = "enable"
	PinInputWord = "input_word"
	PinOutput    = "output_bit"
)

// An InputWord is one stimulus vector: a select code and its two operands.
type InputWord struct {
	Select SelectCode
	A, B   Bit
}

// Pack returns w encoded in the input_word wire format. Out of range fields
// are truncated to their width.
func (w InputWord) Pack() uint64 {
	return uint64(w.A&1)<<BitA | uint64(w.B&1)<<BitB | uint64(w.Select&7)<<BitSelect
}

// Expected returns the reference output for w.
func (w InputWord) Expected() Bit {
	return Expected(w.Select, w.A, w.B)
}

func (w InputWord) String() string {
	return fmt.Sprintf("sel=%s, a=%d, b=%d", w.Select.Binary(), w.A, w.B)
}

// UnpackInputWord decodes a packed input word. It returns an error if any bit
// above bit 4 is set.
func UnpackInputWord(v uint64) (InputWord, error) {
	if v>>WordBits != 0 {
		return InputWord{}, errors.Errorf("input word %#x does not fit in %d bits", v, WordBits)
	}
	return InputWord{
		Select: SelectCode(v >> BitSelect & 7),
		A:      Bit(v >> BitA & 1),
		B:      Bit(v >> BitB & 1),
	}, nil
}

// Vectors returns the stimulus vectors for an exhaustive test, enumerated by
// select code, then a, then b. Select codes 0 to 6 are always included, and
// the undefined code 7 if includeUndefined is true.
func Vectors(includeUndefined bool) []InputWord {
	n := NumFunctions
	if includeUndefined {
		n++
	}
	vs := make([]InputWord, 0, n*4)
	for sel := 0; sel < n; sel++ {
		for a := Bit(0); a <= 1; a++ {
			for b := Bit(0); b <= 1; b++ {
				vs = append(vs, InputWord{Select: SelectCode(sel), A: a, B: b})
			}
		}
	}
	return vs
}
