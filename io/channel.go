// Package io provides the IN and OUT boundary of the acc8 machine.
//
// An Input supplies the value for each IN instruction; the machine blocks
// in Receive until a value is available. An Output observes the ACC value
// presented by each OUT instruction. Tape connects both to byte streams
// such as a console, and Queue holds a fixed sequence for scripted runs.
package io

// Input supplies values to the IN instruction.
type Input interface {
	// Receive blocks until the next value is available.
	Receive() (value int, err error)
}

// Output observes values presented by the OUT instruction.
type Output interface {
	// Send delivers one OUT value.
	Send(value uint8) error
}

// InputFunc adapts a function to the Input interface.
type InputFunc func() (int, error)

// Receive calls fn.
func (fn InputFunc) Receive() (int, error) {
	return fn()
}
