// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	"github.com/beevik/asm6502/parser"
)

// Resolve a statement argument to a concrete value. A false result
// means the argument is still symbolic: an undefined name, a string
// literal, or a binary expression with an operator other than '+'.
// Resolution is idempotent; resolving an already-numeric value returns
// the same value.
func (a *assembler) resolveExpr(e parser.Expr) (int, bool) {
	switch e := e.(type) {
	case *parser.Number:
		return e.Val, true

	case *parser.Symbol:
		return a.resolveName(e.Name)

	case *parser.BinaryExpr:
		// '+' is the only evaluated operator. Anything else stays
		// symbolic rather than computing a partial result.
		if e.Op != '+' {
			return 0, false
		}
		l, lok := a.resolveExpr(e.L)
		r, rok := a.resolveExpr(e.R)
		if !lok || !rok {
			return 0, false
		}
		return l + r, true

	default: // *parser.Text
		return 0, false
	}
}

// Return the name of the symbol blocking resolution of an expression,
// for error reporting. If no single symbol is to blame, the rendered
// expression is returned instead.
func (a *assembler) unresolvedName(e parser.Expr) string {
	switch e := e.(type) {
	case *parser.Symbol:
		if _, ok := a.resolveName(e.Name); !ok {
			return e.Name
		}

	case *parser.BinaryExpr:
		if e.Op == '+' {
			if _, ok := a.resolveExpr(e.L); !ok {
				return a.unresolvedName(e.L)
			}
			if _, ok := a.resolveExpr(e.R); !ok {
				return a.unresolvedName(e.R)
			}
		}
	}
	return exprString(e)
}

// Render an expression for logging and error messages.
func exprString(e parser.Expr) string {
	switch e := e.(type) {
	case *parser.Number:
		return fmt.Sprintf("$%X", e.Val)
	case *parser.Symbol:
		return e.Name
	case *parser.Text:
		return fmt.Sprintf("%q", e.Val)
	case *parser.BinaryExpr:
		return fmt.Sprintf("%s %c %s", exprString(e.L), e.Op, exprString(e.R))
	default:
		return "?"
	}
}
