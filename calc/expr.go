// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calc parses numbers, address ranges and integer expressions typed
// into a debugger.
//
// Numbers may carry a radix prefix ('$', '#', '%', "0x", "0h", "0d", "0b"
// or "0o"); otherwise they are read in a caller-supplied default base.
// Expressions support the binary operators | & ^ << >> + - * / with C-like
// precedence, the prefix operators - + ~, and nested parentheses. All
// arithmetic is performed on 64-bit signed integers.
package calc

// Default evaluator limits.
const (
	DefaultMaxDepth = 64
	DefaultMaxStack = 128
)

// opEnd is a pseudo-operator with the lowest precedence. Pushing it forces
// every pending operation at the current parenthesis level to be applied.
const opEnd byte = 0

// An Evaluator evaluates expressions. The zero value uses base 10 and the
// default limits. An Evaluator holds no state between calls and may be used
// concurrently.
type Evaluator struct {
	Base     int // default number base (2, 8, 10 or 16)
	MaxDepth int // maximum parenthesis nesting depth
	MaxStack int // maximum number of operators or values held at once, excluding the end marker
}

// Evaluate evaluates expr, reading unprefixed numbers in the given base.
func Evaluate(expr string, base int) (int64, error) {
	return Evaluator{Base: base}.Evaluate(expr)
}

// Evaluate evaluates expr. On failure the returned error is an *ExprError
// carrying the offset of the problem within expr.
func (ev Evaluator) Evaluate(expr string) (int64, error) {
	p := newExprParser(ev)
	return p.parse(expr)
}

type parenMark struct {
	ops  int // operator stack depth when the parenthesis opened
	vals int // value stack depth when the parenthesis opened
}

//
// exprParser
//

type exprParser struct {
	ops      []byte
	vals     []int64
	parens   []parenMark // parens[0] is the top level
	err      ErrorKind
	valid    bool // a complete value is pending
	base     int
	maxDepth int
	maxStack int
}

func newExprParser(ev Evaluator) *exprParser {
	p := &exprParser{
		base:     ev.Base,
		maxDepth: ev.MaxDepth,
		maxStack: ev.MaxStack,
	}
	if p.base == 0 {
		p.base = 10
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if p.maxStack <= 0 {
		p.maxStack = DefaultMaxStack
	}

	// The limits are enforced on push; the stacks start small and grow.
	p.ops = make([]byte, 0, min(p.maxStack, DefaultMaxStack)+1)
	p.vals = make([]int64, 0, min(p.maxStack, DefaultMaxStack)+1)
	p.parens = make([]parenMark, 1, min(p.maxDepth, DefaultMaxDepth)+1)
	return p
}

func (p *exprParser) parse(expr string) (int64, error) {
	if !ValidBase(p.base) {
		return 0, &NumberError{Base: p.base, Err: ErrNumberBase}
	}

	var value int64
	offset := 0

	for offset < len(expr) && p.err == 0 {
		c := expr[offset]
		switch {
		case whitespace(c):
			offset++

		case c == '~':
			p.unary(c)
			if p.err == 0 {
				offset++
			}

		case c == '<' || c == '>':
			if offset+1 >= len(expr) || expr[offset+1] != c {
				p.err = ErrSyntax
				break
			}
			p.operation(value, c)
			if p.err == 0 {
				offset += 2
			}

		case c == '|' || c == '&' || c == '^' || c == '+' || c == '-' || c == '*' || c == '/':
			p.operation(value, c)
			if p.err == 0 {
				offset++
			}

		case c == '(':
			p.openParen()
			if p.err == 0 {
				offset++
			}

		case c == ')':
			value = p.closeParen(value)
			if p.err == 0 {
				offset++
			}

		default:
			if p.valid {
				p.err = ErrSyntax
				break
			}
			v, _, n, err := scanNumber(tstring(expr[offset:]), p.base)
			if err != nil {
				p.err = ErrSyntax
				break
			}
			value, p.valid = v, true
			offset += n
		}
	}

	if p.err == 0 {
		switch {
		case p.valid:
			p.operation(value, opEnd)
			if p.err == 0 && p.depth() > 0 {
				p.err = ErrParenthesis
			}
		case len(p.vals) == 0 && len(p.ops) == 0 && p.depth() == 0:
			p.err = ErrNoExpression
		default:
			p.err = ErrSyntax
		}
	}

	if p.err != 0 {
		return 0, &ExprError{Kind: p.err, Offset: offset}
	}
	return p.vals[len(p.vals)-1], nil
}

func (p *exprParser) depth() int {
	return len(p.parens) - 1
}

func (p *exprParser) level() parenMark {
	return p.parens[len(p.parens)-1]
}

// pushOp and pushVal allow MaxStack entries plus one for the end marker.
func (p *exprParser) pushOp(op byte) bool {
	if len(p.ops) > p.maxStack {
		p.err = ErrStackOverflow
		return false
	}
	p.ops = append(p.ops, op)
	return true
}

func (p *exprParser) pushVal(v int64) bool {
	if len(p.vals) > p.maxStack {
		p.err = ErrStackOverflow
		return false
	}
	p.vals = append(p.vals, v)
	return true
}

// operation handles a binary operator following the pending value. If no
// value is pending, the operator is treated as a prefix operator instead.
func (p *exprParser) operation(value int64, op byte) {
	if !p.valid {
		p.unary(op)
		return
	}

	if !p.pushOp(op) || !p.pushVal(value) {
		return
	}

	mark := p.level()
	if len(p.ops)-1 > mark.ops {
		if len(p.vals)-1 == mark.vals {
			p.applyPrefix()
		} else {
			p.reduce()
		}
	}

	p.valid = false
}

// unary handles a prefix operator. Only one prefix operator is allowed at
// each parenthesis level, and it must come before any other operator at that
// level.
func (p *exprParser) unary(op byte) {
	if p.valid || len(p.ops) > p.level().ops {
		p.err = ErrSyntax
		return
	}

	switch op {
	case '+':
	case '-', '~':
		p.pushOp(op)
	default:
		p.err = ErrSyntax
	}
}

// applyPrefix applies the prefix operator sitting beneath the most recently
// pushed operator to the only value at the current level.
func (p *exprParser) applyPrefix() {
	n := len(p.ops)
	v := &p.vals[len(p.vals)-1]

	switch p.ops[n-2] {
	case '-':
		*v = -*v
	case '~':
		*v = ^*v
	default:
		p.err = ErrInternal
		return
	}

	p.ops[n-2] = p.ops[n-1]
	p.ops = p.ops[:n-1]
}

// reduce applies operators at the current level for as long as the
// precedence of the previous operator is not lower than that of the most
// recently pushed one.
func (p *exprParser) reduce() {
	mark := p.level()
	for len(p.ops)-1 > mark.ops {
		n := len(p.ops)
		prev, curr := precedence(p.ops[n-2]), precedence(p.ops[n-1])
		if prev < 0 || curr < -1 {
			p.err = ErrInternal
			return
		}
		if prev < curr {
			break
		}

		m := len(p.vals)
		v, err := applyOp(p.ops[n-2], p.vals[m-2], p.vals[m-1])
		if err != 0 {
			p.err = err
			return
		}
		p.vals[m-2] = v
		p.vals = p.vals[:m-1]

		p.ops[n-2] = p.ops[n-1]
		p.ops = p.ops[:n-1]
	}
}

func (p *exprParser) openParen() {
	if p.valid {
		p.err = ErrSyntax
		return
	}
	if p.depth() >= p.maxDepth {
		p.err = ErrStackOverflow
		return
	}
	p.parens = append(p.parens, parenMark{ops: len(p.ops), vals: len(p.vals)})
}

// closeParen evaluates the parenthesized expression, discards its stack
// contents and returns its value as the new pending value.
func (p *exprParser) closeParen(value int64) int64 {
	if !p.valid {
		p.err = ErrSyntax
		return value
	}
	if p.depth() == 0 {
		p.err = ErrParenthesis
		return value
	}

	p.operation(value, opEnd)
	if p.err != 0 {
		return value
	}
	value = p.vals[len(p.vals)-1]

	mark := p.level()
	p.ops = p.ops[:mark.ops]
	p.vals = p.vals[:mark.vals]
	p.parens = p.parens[:len(p.parens)-1]

	p.valid = true
	return value
}

// precedence returns the binding strength of a binary operator. It returns
// -1 for opEnd and -2 for anything that isn't a binary operator.
func precedence(op byte) int {
	switch op {
	case '|', '&', '^':
		return 0
	case '<', '>':
		return 1
	case '+', '-':
		return 2
	case '*', '/':
		return 3
	case opEnd:
		return -1
	default:
		return -2
	}
}

func applyOp(op byte, a, b int64) (int64, ErrorKind) {
	switch op {
	case '|':
		return a | b, 0
	case '&':
		return a & b, 0
	case '^':
		return a ^ b, 0
	case '<':
		return a << uint64(b), 0
	case '>':
		return a >> uint64(b), 0
	case '+':
		return a + b, 0
	case '-':
		return a - b, 0
	case '*':
		return a * b, 0
	case '/':
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, 0
	default:
		return 0, ErrInternal
	}
}
