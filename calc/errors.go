// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"errors"
	"fmt"
)

// An ErrorKind classifies an expression evaluation failure.
type ErrorKind byte

// Expression evaluation error kinds.
const (
	ErrNoExpression ErrorKind = 1 + iota
	ErrSyntax
	ErrParenthesis
	ErrDivisionByZero
	ErrStackOverflow
	ErrInternal
)

var kindText = []string{
	ErrNoExpression:   "No expression given",
	ErrSyntax:         "Syntax error",
	ErrParenthesis:    "Mismatched parenthesis",
	ErrDivisionByZero: "Undefined result (1/0)",
	ErrStackOverflow:  "Operation/value stack full",
	ErrInternal:       "Internal program error",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindText) && kindText[k] != "" {
		return kindText[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// An ExprError is returned when an expression cannot be evaluated. Offset is
// the index of the input character at which the problem was detected.
type ExprError struct {
	Kind   ErrorKind
	Offset int
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Errors wrapped by NumberError and RangeError.
var (
	ErrNumberPrefix   = errors.New("unrecognized number prefix")
	ErrNumberEmpty    = errors.New("value is empty")
	ErrNumberOverflow = errors.New("under/overflow")
	ErrNumberTrailing = errors.New("extra characters")
	ErrNumberRange    = errors.New("doesn't fit into 32 bits")
	ErrNumberBase     = errors.New("invalid number base")
	ErrRangeValues    = errors.New("invalid address values")
	ErrRangeOrder     = errors.New("invalid range")
)

// A NumberError describes a numeric literal that could not be parsed. Base
// is the radix detected for the literal, or 0 if none was detected.
type NumberError struct {
	Text string
	Base int
	Err  error
}

func (e *NumberError) Error() string {
	switch e.Err {
	case ErrNumberTrailing:
		return fmt.Sprintf("extra characters in %s based number '%s'", BaseName(e.Base), e.Text)
	case ErrNumberRange:
		return fmt.Sprintf("number '%s' doesn't fit into 32 bits", e.Text)
	case ErrNumberBase:
		return fmt.Sprintf("invalid number base %d", e.Base)
	default:
		return fmt.Sprintf("%v in '%s'", e.Err, e.Text)
	}
}

func (e *NumberError) Unwrap() error {
	return e.Err
}

// A RangeError describes an address range that failed to parse or whose
// bounds are out of order. When a bound fails to parse, Cause holds the
// *NumberError for that bound.
type RangeError struct {
	Text  string
	Lower uint32
	Upper uint32
	Err   error
	Cause error
}

func (e *RangeError) Error() string {
	switch {
	case e.Err == ErrRangeOrder:
		return fmt.Sprintf("invalid range ($%x > $%x)", e.Lower, e.Upper)
	case e.Cause != nil:
		return fmt.Sprintf("%v in '%s': %v", e.Err, e.Text, e.Cause)
	default:
		return fmt.Sprintf("%v in '%s'", e.Err, e.Text)
	}
}

func (e *RangeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// BaseName returns the English name of a number base.
func BaseName(base int) string {
	switch base {
	case 2:
		return "binary"
	case 8:
		return "octal"
	case 10:
		return "decimal"
	case 16:
		return "hexadecimal"
	default:
		return "unknown"
	}
}
