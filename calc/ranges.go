// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import "strings"

// A Range is an inclusive span of addresses. A range parsed from a single
// value has Lower == Upper and Single set.
type Range struct {
	Lower  uint32
	Upper  uint32
	Single bool
}

// Len returns the number of addresses in the range.
func (r Range) Len() uint64 {
	return uint64(r.Upper) - uint64(r.Lower) + 1
}

// ParseRange parses either a single unsigned number or an inclusive range of
// the form "lower-upper", for example "$fa0000-$fa0100". Both bounds are
// parsed with ParseUnsignedNumber. A malformed range returns a *RangeError
// wrapping ErrRangeValues, and a range whose lower bound exceeds its upper
// bound returns a *RangeError wrapping ErrRangeOrder. The *NumberError of a
// bound that fails to parse is wrapped as well.
func ParseRange(s string, defaultBase int) (Range, error) {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		v, err := ParseUnsignedNumber(s, defaultBase)
		if err != nil {
			return Range{}, err
		}
		return Range{Lower: v, Upper: v, Single: true}, nil
	}

	lower, err := ParseUnsignedNumber(s[:i], defaultBase)
	if err != nil {
		return Range{}, &RangeError{Text: s, Err: ErrRangeValues, Cause: err}
	}
	upper, err := ParseUnsignedNumber(s[i+1:], defaultBase)
	if err != nil {
		return Range{}, &RangeError{Text: s, Lower: lower, Err: ErrRangeValues, Cause: err}
	}
	if lower > upper {
		return Range{}, &RangeError{Text: s, Lower: lower, Upper: upper, Err: ErrRangeOrder}
	}

	return Range{Lower: lower, Upper: upper}, nil
}
