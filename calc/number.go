// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"errors"
	"math"
	"strconv"
)

// Single-character number prefixes.
const (
	prefixBin = '%'
	prefixDec = '#'
	prefixHex = '$'
)

// ValidBase reports whether base is one of the supported default number
// bases: 2, 8, 10 or 16.
func ValidBase(base int) bool {
	switch base {
	case 2, 8, 10, 16:
		return true
	default:
		return false
	}
}

// ParseNumber parses the numeric literal at the start of s. Unless the
// literal carries a prefix, it is interpreted in the default base. Supported
// prefixes are:
//
//	'$', "0x", "0h"  hexadecimal
//	'#', "0d"        decimal
//	'%', "0b"        binary
//	"0o"             octal
//
// It returns the value and the number of characters consumed. Characters
// following the literal are left unparsed. On failure the number of consumed
// characters is 0.
func ParseNumber(s string, defaultBase int) (v int64, n int, err error) {
	v, _, n, err = scanNumber(tstring(s), defaultBase)
	return v, n, err
}

// ParseUnsignedNumber parses s as a single numeric literal that must fit
// into an unsigned 32-bit integer. Trailing characters are an error.
func ParseUnsignedNumber(s string, defaultBase int) (uint32, error) {
	v, base, n, err := scanNumber(tstring(s), defaultBase)
	if err != nil {
		return 0, err
	}
	if n < len(s) {
		return 0, &NumberError{Text: s, Base: base, Err: ErrNumberTrailing}
	}
	if v < 0 || v > math.MaxUint32 {
		return 0, &NumberError{Text: s, Base: base, Err: ErrNumberRange}
	}
	return uint32(v), nil
}

func scanNumber(t tstring, defaultBase int) (v int64, base, n int, err error) {
	if !ValidBase(defaultBase) {
		return 0, 0, 0, &NumberError{Text: string(t), Base: defaultBase, Err: ErrNumberBase}
	}

	base, num := defaultBase, t
	switch {
	case len(t) == 0:
		return 0, 0, 0, &NumberError{Text: string(t), Err: ErrNumberEmpty}

	case t[0] == '0':
		if len(t) > 1 {
			if b := zeroPrefixBase(t[1]); b != 0 {
				base, num = b, t.consume(2)
			}
		}

	case !hexadecimal(t[0]):
		switch t[0] {
		case prefixBin:
			base = 2
		case prefixDec:
			base = 10
		case prefixHex:
			base = 16
		default:
			return 0, 0, 0, &NumberError{Text: string(t), Err: ErrNumberPrefix}
		}
		num = t.consume(1)
	}

	digits, _ := num.consumeWhile(digitFunc(base))
	if digits == "" {
		return 0, base, 0, &NumberError{Text: string(t), Base: base, Err: ErrNumberEmpty}
	}

	v, err = strconv.ParseInt(string(digits), base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			err = ErrNumberOverflow
		}
		return 0, base, 0, &NumberError{Text: string(t), Base: base, Err: err}
	}

	n = len(t) - len(num) + len(digits)
	return v, base, n, nil
}

func zeroPrefixBase(c byte) int {
	switch c {
	case 'b':
		return 2
	case 'o':
		return 8
	case 'd':
		return 10
	case 'h', 'x':
		return 16
	default:
		return 0
	}
}

func digitFunc(base int) func(c byte) bool {
	switch base {
	case 2:
		return binary
	case 8:
		return octal
	case 16:
		return hexadecimal
	default:
		return decimal
	}
}

//
// tstring
//

type tstring string

func (t tstring) consume(n int) tstring {
	return t[n:]
}

func (t tstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(t) && fn(t[i]); i++ {
	}
	return i
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := t.scanWhile(fn)
	return t[:i], t[i:]
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return (c >= '0' && c <= '9')
}

func octal(c byte) bool {
	return (c >= '0' && c <= '7')
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}
