// Package programs bundles the acc8 example programs.
package programs

import (
	"embed"
	"errors"
	"io/fs"
	"strings"

	"github.com/ezrec/acc8/translate"
)

var f = translate.From

var (
	ErrProgramMissing = errors.New(f("example program missing"))
)

//go:embed *.asm
var sources embed.FS

// Names returns the names of the example programs, in order.
func Names() (names []string) {
	entries, _ := fs.ReadDir(sources, ".")
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".asm"))
	}
	return
}

// Source returns the assembly source of an example program.
func Source(name string) (source string, err error) {
	data, err := sources.ReadFile(strings.ToLower(name) + ".asm")
	if err != nil {
		err = ErrProgramMissing
		return
	}

	source = string(data)
	return
}
