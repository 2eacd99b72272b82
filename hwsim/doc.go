/*
Package hwsim provides a naive, cycle-stepped hardware simulator and an API to
compose basic components (logic gates, muxers, flip-flops) into more complex
ones, using Go as a hardware description language.

A circuit is built from Parts, which are PartSpecs bound to a connection
string. Chip composes parts into a new part:

	and, err := hwsim.Chip("AND", "a, b", "out",
		hwlib.Nand("a=a, b=b, out=nand"),
		hwlib.Nand("a=nand, b=nand, out=out"),
	)

NewCircuit then mounts parts into a runnable Circuit. Every component reads pin
states from the current frame and writes the next one, so each built-in part
takes exactly one simulation step to update its outputs. A free-running clock
is available to all parts as the constant pin "clk"; clocked parts such as
hwlib.DFF sample their inputs on its rising edge.
*/
package hwsim
