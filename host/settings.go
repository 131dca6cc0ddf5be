// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/clac/calc"
	"github.com/beevik/prefixtree/v2"
)

// Upper bounds for the evaluator limits a user may configure.
const (
	maxParenDepthLimit = 4096
	maxStackDepthLimit = 65536
)

type settings struct {
	NumberBase      int    `yaml:"numberBase" doc:"default base for numbers without a prefix"`
	MaxParenDepth   int    `yaml:"maxParenDepth" doc:"max nesting of parentheses in expressions"`
	MaxStackDepth   int    `yaml:"maxStackDepth" doc:"max operators or values held while evaluating"`
	MemDumpBytes    int    `yaml:"memDumpBytes" doc:"default number of memory bytes to dump"`
	NextMemDumpAddr uint32 `yaml:"nextMemDumpAddr" doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		NumberBase:      10,
		MaxParenDepth:   calc.DefaultMaxDepth,
		MaxStackDepth:   calc.DefaultMaxStack,
		MemDumpBytes:    64,
		NextMemDumpAddr: 0,
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
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.String:
			s = fmt.Sprintf("    %-16s \"%s\"", f.name, v.String())
		case reflect.Uint32:
			s = fmt.Sprintf("    %-16s $%08X", f.name, uint32(v.Uint()))
		default:
			s = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-30s (%s)\n", s, f.doc)
	}
}

// Set assigns a value to the setting whose name begins with key. The
// settings are left unchanged if the new value is invalid.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return fmt.Errorf("setting '%s' not found", key)
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Type().Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Type().Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}
	vInConverted := vIn.Convert(f.typ)

	tmp := *s
	vOut := reflect.ValueOf(&tmp).Elem().Field(f.index)
	vOut.Set(vInConverted)
	if err := tmp.validate(); err != nil {
		return err
	}

	*s = tmp
	return nil
}

func (s *settings) validate() error {
	switch {
	case !calc.ValidBase(s.NumberBase):
		return fmt.Errorf("invalid NumberBase %d (must be 2, 8, 10 or 16)", s.NumberBase)
	case s.MaxParenDepth < 1 || s.MaxParenDepth > maxParenDepthLimit:
		return fmt.Errorf("invalid MaxParenDepth %d (must be 1 to %d)", s.MaxParenDepth, maxParenDepthLimit)
	case s.MaxStackDepth < 1 || s.MaxStackDepth > maxStackDepthLimit:
		return fmt.Errorf("invalid MaxStackDepth %d (must be 1 to %d)", s.MaxStackDepth, maxStackDepthLimit)
	case s.MemDumpBytes < 1:
		return fmt.Errorf("invalid MemDumpBytes %d", s.MemDumpBytes)
	default:
		return nil
	}
}

func (s *settings) evaluator() calc.Evaluator {
	return calc.Evaluator{
		Base:     s.NumberBase,
		MaxDepth: s.MaxParenDepth,
		MaxStack: s.MaxStackDepth,
	}
}
