// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package harness verifies a clocked logic trainer circuit against the
// reference model.
//
// Run sequences reset, applies every stimulus vector, samples the registered
// output one clock cycle after each input change and compares it with
// logictrainer.Expected. It then checks that deasserting enable forces the
// output to 0. The circuit is accessed through a Driver, usually an
// hwtest.Driver wrapping hwlib.LogicTrainer.
package harness

import (
	"io"
	"log"

	lt "github.com/db47h/logictrainer"
	"github.com/pkg/errors"
)

// A Driver drives the simulated clock and the pins of the circuit under test.
// Advance must return once n rising clock edges have elapsed and the
// registered outputs have settled.
type Driver interface {
	SetInputs(v map[string]uint64) error
	Advance(n int)
	ReadOutputs() map[string]uint64
}

// MinResetCycles is the minimum number of clock cycles reset is held.
const MinResetCycles = 2

// Config configures a verification run. The zero value is a valid
// configuration.
type Config struct {
	// ResetCycles is the number of cycles reset is held asserted. Values
	// below MinResetCycles are raised to MinResetCycles.
	ResetCycles int
	// CollectAll disables the default fail-fast behavior: all failures are
	// collected and returned together as a Failures error.
	CollectAll bool
	// IncludeUndefined extends stimulus to the undefined select code 7.
	IncludeUndefined bool
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

// A Phase is a state of the verification run.
type Phase int

// Run phases, in order.
const (
	PhaseInit Phase = iota
	PhaseResetHold
	PhaseRelease
	PhaseStimulus
	PhaseDisableCheck
	PhaseDone
)

var phaseNames = [...]string{"init", "reset-hold", "release", "stimulus", "disable-check", "done"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// A Report summarizes a verification run.
type Report struct {
	// Phase reached by the run. PhaseDone if the run went through to the end.
	Phase Phase
	// Vectors is the number of output samples checked, including the
	// disable check.
	Vectors int
	// Cycles is the number of clock cycles run.
	Cycles int
	// Failures holds all failures in CollectAll mode.
	Failures Failures
}

type runner struct {
	d   Driver
	cfg Config
	log *log.Logger
	r   Report
}

// Run runs the verification sequence on d. It returns a nil error if the
// circuit matches the reference model.
//
// In the default fail-fast mode, the first failure stops the run and is
// returned as a *MismatchError or *DisableError, wrapped with a stack trace
// (use errors.Cause to retrieve it). Errors from the driver are always fatal.
func Run(d Driver, cfg Config) (*Report, error) {
	if cfg.ResetCycles < MinResetCycles {
		cfg.ResetCycles = MinResetCycles
	}
	r := &runner{d: d, cfg: cfg, log: cfg.Logger}
	if r.log == nil {
		r.log = log.New(io.Discard, "", 0)
	}
	err := r.run()
	return &r.r, err
}

func (r *runner) run() error {
	r.enter(PhaseInit)
	if err := r.set(map[string]uint64{
		lt.PinResetN:    0,
		lt.PinEnable:    1,
		lt.PinInputWord: 0,
	}); err != nil {
		return err
	}

	r.enter(PhaseResetHold)
	r.advance(r.cfg.ResetCycles)

	r.enter(PhaseRelease)
	if err := r.set(map[string]uint64{lt.PinResetN: 1}); err != nil {
		return err
	}
	r.advance(1)

	r.enter(PhaseStimulus)
	for _, w := range lt.Vectors(r.cfg.IncludeUndefined) {
		if err := r.set(map[string]uint64{lt.PinInputWord: w.Pack()}); err != nil {
			return err
		}
		r.advance(1)
		got, err := r.sample()
		if err != nil {
			return err
		}
		if want := w.Expected(); got != uint64(want) {
			if err := r.fail(&MismatchError{Word: w, Got: got, Want: want}); err != nil {
				return err
			}
			continue
		}
		r.log.Printf("%s %s: %d", w.Select, w, got)
	}

	r.enter(PhaseDisableCheck)
	w := lt.InputWord{Select: lt.SelAnd, A: 1, B: 1}
	if err := r.set(map[string]uint64{
		lt.PinEnable:    0,
		lt.PinInputWord: w.Pack(),
	}); err != nil {
		return err
	}
	r.advance(1)
	got, err := r.sample()
	if err != nil {
		return err
	}
	if got != 0 {
		if err := r.fail(&DisableError{Got: got}); err != nil {
			return err
		}
	}

	r.enter(PhaseDone)
	if len(r.r.Failures) > 0 {
		return errors.WithStack(r.r.Failures)
	}
	r.log.Printf("%d vectors checked in %d cycles", r.r.Vectors, r.r.Cycles)
	return nil
}

func (r *runner) enter(p Phase) {
	r.r.Phase = p
	r.log.Printf("phase %s (cycle %d)", p, r.r.Cycles)
}

func (r *runner) set(v map[string]uint64) error {
	return errors.Wrap(r.d.SetInputs(v), r.r.Phase.String())
}

func (r *runner) advance(n int) {
	r.d.Advance(n)
	r.r.Cycles += n
}

func (r *runner) sample() (uint64, error) {
	r.r.Vectors++
	v, ok := r.d.ReadOutputs()[lt.PinOutput]
	if !ok {
		return 0, errors.Errorf("%s: circuit has no %s output", r.r.Phase, lt.PinOutput)
	}
	return v, nil
}

// fail records a failure. It returns the failure, with a stack trace, if the
// run must stop.
func (r *runner) fail(err error) error {
	r.log.Printf("FAIL %v", err)
	if r.cfg.CollectAll {
		r.r.Failures = append(r.r.Failures, err)
		return nil
	}
	return errors.WithStack(err)
}
