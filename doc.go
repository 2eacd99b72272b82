/*
Package logictrainer is the reference model of a digital logic trainer: a
clocked, resettable, enable-gated selector computing one of seven two-input
boolean functions chosen by a 3 bits select code.

The circuit takes its operands and select code packed in a single 5 bits
input word (see InputWord), and presents its result on a registered output
one clock cycle later. Expected gives the reference output for any select
code and operands, and ModelPart packages it as an hwsim part with the same
pinout and timing as the gate-level hwlib.LogicTrainer.

The harness package exhaustively verifies a circuit against this model.
*/
package logictrainer
