// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides a cycle-accurate stimulus driver and utility
// functions for testing circuits.
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logictrainer/hwsim"
)

// maxExhaustiveBits is the input width above which ComparePart switches from
// exhaustive to random testing.
const maxExhaustiveBits = 12

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Parts with up to 12 input pins are tested exhaustively, larger ones with all
// inputs at 0, all at 1, and 4096 random input vectors. Outputs are compared
// one clock cycle after each input change, so clocked parts are compared on
// their registered outputs. See NewDriver for spc and depth, which apply to
// both parts.
func ComparePart(t *testing.T, spc uint, depth uint, part1, part2 hwsim.NewPartFn) {
	t.Helper()

	d1, err := NewDriver(0, spc, depth, part1)
	if err != nil {
		t.Fatal(err)
	}
	defer d1.Close()
	d2, err := NewDriver(0, spc, depth, part2)
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Close()

	// compare specs
	ps1, ps2 := d1.Spec(), d2.Spec()
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	ports := d1.Inputs()
	inBits := len(ps1.Inputs)

	apply := func(v uint64) map[string]uint64 {
		in := make(map[string]uint64, len(ports))
		for _, p := range ports {
			w := uint(p.Width())
			in[p.Name] = v & (1<<w - 1)
			v >>= w
		}
		for _, d := range []*Driver{d1, d2} {
			if err := d.SetInputs(in); err != nil {
				t.Fatal(err)
			}
			d.Advance(1)
		}
		return in
	}

	check := func(in map[string]uint64) {
		t.Helper()
		o1, o2 := d1.ReadOutputs(), d2.ReadOutputs()
		for _, p := range d1.Outputs() {
			if o1[p.Name] != o2[p.Name] {
				t.Fatal(errString(ports, in, p.Name, o1[p.Name], o2[p.Name]))
			}
		}
	}

	start := time.Now()

	if inBits <= maxExhaustiveBits {
		for v := uint64(0); v < 1<<uint(inBits); v++ {
			check(apply(v))
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		check(apply(0))
		check(apply(^uint64(0)))
		for i := 0; i < 1<<maxExhaustiveBits; i++ {
			check(apply(rnd.Uint64()))
		}
	}

	elapsed := time.Since(start)
	cycles := d1.Cycles()
	t.Logf("%d components. %d steps in %v. %d clock cycles => %.2f Hz", d1.Size(), d1.Steps(), elapsed, cycles, float64(cycles)/elapsed.Seconds())
}

func errString(ports []Port, in map[string]uint64, oname string, ex, got uint64) string {
	var b strings.Builder
	for _, p := range ports {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", p.Name, in[p.Name])
	}
	return fmt.Sprintf("\nExpected %s => %s=%d\nGot %d", b.String(), oname, ex, got)
}
