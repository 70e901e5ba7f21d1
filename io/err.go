package io

import (
	"errors"

	"github.com/ezrec/acc8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelEmpty = errors.New(f("channel empty"))
	ErrChannelFull  = errors.New(f("channel full"))
)

// ErrInputSyntax is an input word that is not an integer.
type ErrInputSyntax string

func (err ErrInputSyntax) Error() string {
	return f("input '%v' is not an integer", string(err))
}
