package emulator

import (
	"errors"

	"github.com/ezrec/acc8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrBreakpoint is returned when execution reaches an enabled breakpoint.
type ErrBreakpoint uint8

func (err ErrBreakpoint) Error() string {
	return f("breakpoint at %03d", uint8(err))
}

func (err ErrBreakpoint) Is(target error) (ok bool) {
	_, ok = target.(ErrBreakpoint)
	return
}

// ErrDataBreakpoint is returned after a store to a watched address.
type ErrDataBreakpoint uint8

func (err ErrDataBreakpoint) Error() string {
	return f("data breakpoint at %03d", uint8(err))
}

func (err ErrDataBreakpoint) Is(target error) (ok bool) {
	_, ok = target.(ErrDataBreakpoint)
	return
}

// isBreak returns true if the error is a breakpoint stop.
func isBreak(err error) bool {
	return errors.Is(err, ErrBreakpoint(0)) || errors.Is(err, ErrDataBreakpoint(0))
}
