// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package harness

import (
	"fmt"
	"strings"

	lt "github.com/db47h/logictrainer"
)

// A MismatchError reports a sampled output that disagrees with the reference
// model for an enabled stimulus vector.
type MismatchError struct {
	Word lt.InputWord
	Got  uint64
	Want lt.Bit
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch: sel=%s, a=%d, b=%d, got=%d, expected=%d",
		e.Word.Select.Binary(), e.Word.A, e.Word.B, e.Got, e.Want)
}

// A DisableError reports a nonzero output while enable is deasserted.
type DisableError struct {
	Got uint64
}

func (e *DisableError) Error() string {
	return fmt.Sprintf("disable failed: got %d, expected 0", e.Got)
}

// Failures is the error returned by Run in CollectAll mode. It holds every
// failure of the run, in order.
type Failures []error

func (f Failures) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d failures", len(f))
	for _, err := range f {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}
