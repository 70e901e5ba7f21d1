// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/ezrec/acc8/cpu"
	"github.com/ezrec/acc8/emulator"
)

type settings struct {
	HexMode            bool  `doc:"hexadecimal input mode"`
	MemDumpBytes       int   `doc:"default number of memory bytes to dump"`
	DisasmLines        int   `doc:"default number of lines to disassemble"`
	StepLinesToDisplay int   `doc:"max lines to display when stepping"`
	DataBase           int   `doc:"address of the first assembled variable"`
	RunInterval        int   `doc:"milliseconds between steps when running"`
	NextDisasmAddr     uint8 `doc:"address of next disassembly"`
	NextMemDumpAddr    uint8 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		HexMode:            false,
		MemDumpBytes:       64,
		DisasmLines:        10,
		StepLinesToDisplay: 20,
		DataBase:           cpu.DATA_BASE_DEFAULT,
		RunInterval:        int(emulator.RUN_INTERVAL_DEFAULT.Milliseconds()),
		NextDisasmAddr:     0,
		NextMemDumpAddr:    0,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := range settingsFields {
		field := settingsType.Field(i)
		doc, _ := field.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  field.Name,
			index: i,
			kind:  field.Type.Kind(),
			typ:   field.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(field.Name), &settingsFields[i])
	}
}

// Display writes every setting with its value and description.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, field := range settingsFields {
		v := value.Field(i)
		var text string
		switch field.kind {
		case reflect.Uint8:
			text = fmt.Sprintf("    %-18s %03d", field.name, uint8(v.Uint()))
		default:
			text = fmt.Sprintf("    %-18s %v", field.name, v)
		}
		fmt.Fprintf(w, "%-30s (%s)\n", text, field.doc)
	}
}

// Kind returns the kind of a setting, found by unique prefix.
func (s *settings) Kind(key string) reflect.Kind {
	field, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return field.kind
}

// Set updates a setting, found by unique prefix.
func (s *settings) Set(key string, value any) error {
	field, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	in := reflect.ValueOf(value)
	if !in.Type().ConvertibleTo(field.typ) || (field.kind == reflect.Bool) != (in.Kind() == reflect.Bool) {
		return errors.New(f("invalid type"))
	}

	out := reflect.ValueOf(s).Elem().Field(field.index)
	out.Set(in.Convert(field.typ))

	return nil
}
