package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape reads IN values as white space separated decimal integers from an
// io.Reader, and writes each OUT value as a line of decimal to an io.Writer.
//
// If Prompt is set, it is written to the output before each read, so a Tape
// on a console behaves as an interactive prompt.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Prompt string

	scanner *bufio.Scanner
	reader  io.Reader
}

var _ Input = (*Tape)(nil)
var _ Output = (*Tape)(nil)

// Rewind drops any buffered input, so the next read starts afresh from Input.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.reader = nil
}

// Receive reads the next integer word from the input stream.
func (tc *Tape) Receive() (value int, err error) {
	if tc.Input == nil {
		err = ErrChannelEmpty
		return
	}

	if tc.scanner == nil || tc.reader != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
		tc.reader = tc.Input
	}

	if len(tc.Prompt) > 0 && tc.Output != nil {
		_, err = io.WriteString(tc.Output, tc.Prompt)
		if err != nil {
			return
		}
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	word := strings.TrimSpace(tc.scanner.Text())
	value, err = strconv.Atoi(word)
	if err != nil {
		err = ErrInputSyntax(word)
	}

	return
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
