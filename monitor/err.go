package monitor

import (
	"errors"

	"github.com/ezrec/acc8/translate"
)

var f = translate.From

var (
	ErrExiting       = errors.New(f("exiting program"))
	ErrNoProgram     = errors.New(f("no program loaded"))
	ErrSettingAbsent = errors.New(f("setting not found"))
)

// ErrAddressRange is a value that is not a memory address.
type ErrAddressRange int64

func (err ErrAddressRange) Error() string {
	return f("address %d out of range", int64(err))
}

// ErrBoolInvalid is a setting value that is not a boolean.
type ErrBoolInvalid string

func (err ErrBoolInvalid) Error() string {
	return f("invalid bool value '%v'", string(err))
}
