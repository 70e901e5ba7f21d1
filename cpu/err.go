package cpu

import (
	"errors"

	"github.com/ezrec/acc8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrInputMissing = errors.New(f("no input provider"))

	// Assembler errors
	ErrSymbolDuplicate   = errors.New(f("symbol duplicated"))
	ErrMnemonicInvalid   = errors.New(f("mnemonic invalid"))
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrOperandRange      = errors.New(f("operand out of range 0..255"))
	ErrCodeOverflow      = errors.New(f("code exceeds 256 bytes"))
	ErrDataFull          = errors.New(f("no free data address"))
	ErrDataOverlap       = errors.New(f("data region overlaps code"))
	ErrLabelSyntax       = errors.New(f("label syntax"))
	ErrVariableSyntax    = errors.New(f("DEC syntax"))
	ErrImageInvalid      = errors.New(f("program image invalid"))
	ErrExpressionInvalid = errors.New(f("expression is not an integer"))
)

// ErrSymbolMissing is an operand naming a symbol that was never defined.
type ErrSymbolMissing string

func (err ErrSymbolMissing) Error() string {
	return f("symbol %v missing", string(err))
}

func (err ErrSymbolMissing) Is(target error) (ok bool) {
	_, ok = target.(ErrSymbolMissing)
	return
}

// ErrOpcode is an invalid opcode byte found at PC.
type ErrOpcode uint8

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembler error in the source text.
// LineNo is 1-based.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
