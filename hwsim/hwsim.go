// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component is an updatable element of a running circuit. On each simulation
// step, it reads pin states from the current frame with Circuit.Get and writes
// its outputs to the next frame with Circuit.Set.
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	notSpec := &PartSpec{
//		Name:    "NOT",
//		Inputs:  []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
// Once defined, its NewPart method is a NewPartFn that can be used in Chip and
// NewCircuit:
//
//	func Not(c string) Part { return notSpec.NewPart(c) }
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Buses are expanded to individual pins: use ParseIOSpec
	// to convert a description like "a, bus[2]" to
	// []string{"a", "bus[0]", "bus[1]"}.
	Inputs []string
	// Output pin names.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed. Pin names are checked
// later by Chip.
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, conns}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for []Part.
type Parts []Part

// Circuit is a runnable circuit simulation.
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	count int  // wire count
	tpc   uint // steps per clock cycle
	tick  uint

	wc []chan struct{}
	wg sync.WaitGroup
}

// RoundSPC returns the number of steps per clock cycle that NewCircuit uses
// for stepsPerCycle: the next power of two, with a minimum of 2.
func RoundSPC(stepsPerCycle uint) uint {
	if stepsPerCycle < 2 {
		return 2
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	return stepsPerCycle + 1
}

// MinSPC returns the smallest number of steps per clock cycle whose half
// cycle lasts at least depth steps. A signal crossing depth parts in a row
// reaches clocked parts before the next rising edge if it starts on a falling
// edge.
func MinSPC(depth uint) uint {
	return RoundSPC(2 * depth)
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// stepsPerCycle indicates how many simulation steps to run per clock cycle. It
// is rounded with RoundSPC. Each built-in part takes one step to update its
// outputs, so half a cycle must be long enough for signals to cross the
// deepest combinational path (see MinSPC).
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
func NewCircuit(workers int, stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	// new circuit with room for constant value pins.
	cc := &Circuit{count: cstCount, tpc: RoundSPC(stepsPerCycle)}
	wrap, err := Chip("CIRCUIT", "", "", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	ups := newSocket(cc).Mount(wrap(""))
	ups = append(ups, updClock)
	cc.cs = ups
	cc.s0 = make([]bool, cc.count)
	cc.s1 = make([]bool, cc.count)
	cc.s0[cstTrue] = true
	cc.s1[cstTrue] = true
	cc.s0[cstClk] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	return cc, nil
}

func updClock(c *Circuit) {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("true or false constants have been overwritten")
	}

	tick := c.tick + 1
	switch {
	case tick&(c.tpc-1) == 0:
		c.s1[cstClk] = true
	case tick&(c.tpc/2-1) == 0:
		c.s1[cstClk] = false
	default:
		c.s1[cstClk] = c.s0[cstClk]
	}
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for range wc {
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
	c.wg.Done()
}

func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Steps returns the value of the step counter.
func (c *Circuit) Steps() uint {
	return c.tick
}

// SPC returns the stepsPerCycle value.
func (c *Circuit) SPC() uint {
	return c.tpc
}

// Cycles returns the number of rising clock edges since the circuit was
// created.
func (c *Circuit) Cycles() uint {
	return c.tick / c.tpc
}

// AtTick returns true if the current step is at the beginning of a clock cycle
// (rising edge of Clk).
func (c *Circuit) AtTick() bool {
	return c.tick&(c.tpc-1) == 0
}

// AtTock returns true if the current step is at the beginning of the second
// half of a clock cycle (falling edge of Clk).
func (c *Circuit) AtTock() bool {
	return (c.tick+c.tpc/2)&(c.tpc-1) == 0
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Step advances the simulation by one step.
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()
	c.tick++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the beginning of the next half clock cycle
// (falling edge).
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until the beginning of the next clock cycle
// (rising edge).
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }
