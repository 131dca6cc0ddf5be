// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calc

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
)

func checkExpr(t *testing.T, expr string, base int, expected int64) {
	t.Helper()
	v, err := Evaluate(expr, base)
	if err != nil {
		t.Errorf("Evaluate(%q): unexpected error: %v", expr, err)
		return
	}
	if v != expected {
		t.Errorf("Evaluate(%q): exp: %d, got: %d", expr, expected, v)
	}
}

func checkExprError(t *testing.T, ev Evaluator, expr string, kind ErrorKind, offset int) {
	t.Helper()
	_, err := ev.Evaluate(expr)
	if err == nil {
		t.Errorf("Evaluate(%q): expected %v, didn't get an error", expr, kind)
		return
	}
	var ee *ExprError
	if !errors.As(err, &ee) {
		t.Errorf("Evaluate(%q): expected *ExprError, got %T", expr, err)
		return
	}
	if ee.Kind != kind || ee.Offset != offset {
		t.Errorf("Evaluate(%q): exp: %v at %d, got: %v at %d", expr, kind, offset, ee.Kind, ee.Offset)
	}
}

func TestExprPrecedence(t *testing.T) {
	checkExpr(t, "2+3*4", 10, 14)
	checkExpr(t, "2*3+4", 10, 10)
	checkExpr(t, "1+2<<3", 10, 24)
	checkExpr(t, "1<<2+3", 10, 32)
	checkExpr(t, "1|2<<3", 10, 17)
	checkExpr(t, "12&3+4", 10, 4)
	checkExpr(t, "6^3*2", 10, 0)
	checkExpr(t, "1|2&3^4", 10, 7)
	checkExpr(t, "1|6<<2+3*4", 10, 0x18001)
}

func TestExprAssociativity(t *testing.T) {
	checkExpr(t, "8-3-2", 10, 3)
	checkExpr(t, "64/4/2", 10, 8)
	checkExpr(t, "100/10*2", 10, 20)
	checkExpr(t, "1<<4>>2", 10, 4)
	checkExpr(t, "10-2+3", 10, 11)
}

func TestExprParentheses(t *testing.T) {
	checkExpr(t, "(2+3)*4", 10, 20)
	checkExpr(t, "2*(3+4)", 10, 14)
	checkExpr(t, "((1+2)*(3+4))", 10, 21)
	checkExpr(t, "(((7)))", 10, 7)
	checkExpr(t, "100/(2*(3+2))", 10, 10)
	checkExpr(t, " ( 1 + 2 ) * 3 ", 10, 9)
}

func TestExprUnary(t *testing.T) {
	checkExpr(t, "-5+3", 10, -2)
	checkExpr(t, "-5", 10, -5)
	checkExpr(t, "+5", 10, 5)
	checkExpr(t, "~0", 10, -1)
	checkExpr(t, "~$ff&$fff", 10, 0xf00)
	checkExpr(t, "-2*3", 10, -6)
	checkExpr(t, "2*(-3)", 10, -6)
	checkExpr(t, "-(2+3)", 10, -5)
	checkExpr(t, "10-(-2)", 10, 12)
	checkExpr(t, "(~1)+1", 10, -1)
}

func TestExprLiterals(t *testing.T) {
	checkExpr(t, "$ff+1", 10, 256)
	checkExpr(t, "%1010|#5", 16, 15)
	checkExpr(t, "0x10*0b10", 10, 32)
	checkExpr(t, "0o17+0d3", 16, 18)
	checkExpr(t, "ff+1", 16, 256)
	checkExpr(t, "10", 16, 16)
	checkExpr(t, "10", 8, 8)
	checkExpr(t, "101", 2, 5)
	checkExpr(t, "0", 10, 0)
}

func TestExprShift(t *testing.T) {
	checkExpr(t, "1<<4", 10, 16)
	checkExpr(t, "256>>4", 10, 16)
	checkExpr(t, "-16>>2", 10, -4)
	checkExpr(t, "1<<64", 10, 0)
	checkExpr(t, "-1>>70", 10, -1)
	checkExpr(t, "1<<(-1)", 10, 0)
}

func TestExprWraparound(t *testing.T) {
	checkExpr(t, "$7fffffffffffffff+1", 10, -1<<63)
	checkExpr(t, "$4000000000000000*4", 10, 0)
}

func TestExprErrors(t *testing.T) {
	var ev Evaluator
	checkExprError(t, ev, "", ErrNoExpression, 0)
	checkExprError(t, ev, "   ", ErrNoExpression, 3)
	checkExprError(t, ev, "1/0", ErrDivisionByZero, 3)
	checkExprError(t, ev, "1/0+2", ErrDivisionByZero, 3)
	checkExprError(t, ev, "4/(2-2)", ErrDivisionByZero, 7)
	checkExprError(t, ev, "(1+2", ErrParenthesis, 4)
	checkExprError(t, ev, "1+2)", ErrParenthesis, 3)
	checkExprError(t, ev, "1+", ErrSyntax, 2)
	checkExprError(t, ev, "1 2", ErrSyntax, 2)
	checkExprError(t, ev, "1<2", ErrSyntax, 1)
	checkExprError(t, ev, "1>", ErrSyntax, 1)
	checkExprError(t, ev, "*5", ErrSyntax, 0)
	checkExprError(t, ev, "--5", ErrSyntax, 1)
	checkExprError(t, ev, "2*-3", ErrSyntax, 2)
	checkExprError(t, ev, "5~", ErrSyntax, 1)
	checkExprError(t, ev, "()", ErrSyntax, 1)
	checkExprError(t, ev, "2(3)", ErrSyntax, 1)
	checkExprError(t, ev, "(", ErrSyntax, 1)
	checkExprError(t, ev, "1+x", ErrSyntax, 2)
	checkExprError(t, ev, "ff", ErrSyntax, 0)
	checkExprError(t, ev, "$", ErrSyntax, 0)
	checkExprError(t, ev, "99999999999999999999", ErrSyntax, 0)
}

func TestExprDepthLimit(t *testing.T) {
	var ev Evaluator

	expr := strings.Repeat("(", DefaultMaxDepth) + "1" + strings.Repeat(")", DefaultMaxDepth)
	v, err := ev.Evaluate(expr)
	if err != nil || v != 1 {
		t.Errorf("nesting at max depth: exp: 1, got: %d (%v)", v, err)
	}

	expr = strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	checkExprError(t, ev, expr, ErrStackOverflow, DefaultMaxDepth)

	small := Evaluator{MaxDepth: 2}
	if v, err := small.Evaluate("((1))"); err != nil || v != 1 {
		t.Errorf("nesting at depth 2: exp: 1, got: %d (%v)", v, err)
	}
	checkExprError(t, small, "(((1)))", ErrStackOverflow, 2)
}

func TestExprStackLimit(t *testing.T) {
	// Three pending operators plus the end marker.
	ev := Evaluator{MaxStack: 3}
	if v, err := ev.Evaluate("1|2<<3+4"); err != nil || v != 0x101 {
		t.Errorf("exp: $101, got: %d (%v)", v, err)
	}
	checkExprError(t, ev, "1|2<<3+4*5", ErrStackOverflow, 10)
	checkExprError(t, Evaluator{MaxStack: 2}, "1|2<<3+4", ErrStackOverflow, 8)

	// Every open parenthesis level holds an operator and a value, so
	// deep nesting eventually exhausts the stacks before the depth limit.
	deep := Evaluator{MaxDepth: 1000}
	expr := strings.Repeat("1|(", DefaultMaxStack) + "1" + strings.Repeat(")", DefaultMaxStack)
	if v, err := deep.Evaluate(expr); err != nil || v != 1 {
		t.Errorf("%d nested levels: exp: 1, got: %d (%v)", DefaultMaxStack, v, err)
	}
	expr = strings.Repeat("1|(", DefaultMaxStack+1) + "1" + strings.Repeat(")", DefaultMaxStack+1)
	_, err := deep.Evaluate(expr)
	var ee *ExprError
	if !errors.As(err, &ee) || ee.Kind != ErrStackOverflow {
		t.Errorf("expected stack overflow, got %v", err)
	}
}

func TestExprHugeLimits(t *testing.T) {
	evs := []Evaluator{
		{MaxStack: 1 << 62},
		{MaxDepth: math.MaxInt},
		{MaxStack: math.MaxInt, MaxDepth: math.MaxInt},
	}
	for _, ev := range evs {
		if v, err := ev.Evaluate("(1+2)*3"); err != nil || v != 9 {
			t.Errorf("%+v: exp: 9, got: %d (%v)", ev, v, err)
		}
	}

	ev := Evaluator{MaxDepth: math.MaxInt, MaxStack: math.MaxInt}
	n := 3 * DefaultMaxStack
	expr := strings.Repeat("1|(", n) + "1" + strings.Repeat(")", n)
	if v, err := ev.Evaluate(expr); err != nil || v != 1 {
		t.Errorf("%d nested levels: exp: 1, got: %d (%v)", n, v, err)
	}
}

func TestExprInvalidBase(t *testing.T) {
	_, err := Evaluate("1", 7)
	if !errors.Is(err, ErrNumberBase) {
		t.Errorf("expected ErrNumberBase, got %v", err)
	}
}

func TestExprRepeatable(t *testing.T) {
	var ev Evaluator
	for i := 0; i < 2; i++ {
		checkExpr(t, "(2+3)*4", 10, 20)
		checkExprError(t, ev, "(1+2", ErrParenthesis, 4)
	}
	checkExpr(t, "7", 10, 7)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, err := ev.Evaluate("(1+2)*3+" + strings.Repeat("1+", int(n)) + "0")
				if err != nil || v != 9+n {
					t.Errorf("concurrent evaluate: exp: %d, got: %d (%v)", 9+n, v, err)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()
}
