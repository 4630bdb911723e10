// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	"github.com/beevik/asm6502/parser"
)

// A DuplicateLabelError reports a label defined more than once. It is
// detected during the label-collection pass.
type DuplicateLabelError struct {
	File string
	Line int
	Name string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("%s:%d: label '%s' defined more than once", e.File, e.Line, e.Name)
}

// An UndefinedLocalScopeError reports a local label defined before any
// global label has established a scope.
type UndefinedLocalScopeError struct {
	File string
	Line int
	Name string
}

func (e *UndefinedLocalScopeError) Error() string {
	return fmt.Sprintf("%s:%d: local label '%s' defined before any global label", e.File, e.Line, e.Name)
}

// An UnresolvedSymbolError reports an operand or directive argument that
// is still symbolic when its bytes must be emitted.
type UnresolvedSymbolError struct {
	File   string
	Line   int
	Symbol string
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("%s:%d: unresolved symbol '%s'", e.File, e.Line, e.Symbol)
}

// An InvalidMnemonicError reports an instruction mnemonic absent from
// the opcode table.
type InvalidMnemonicError struct {
	File     string
	Line     int
	Mnemonic string
}

func (e *InvalidMnemonicError) Error() string {
	return fmt.Sprintf("%s:%d: invalid mnemonic '%s'", e.File, e.Line, e.Mnemonic)
}

// An ArgumentRangeError reports a directive argument or operand value
// outside its legal range, such as an origin directive moving backward
// or a branch target too distant to encode.
type ArgumentRangeError struct {
	File string
	Line int
	Msg  string
}

func (e *ArgumentRangeError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// A StatementError reports any other statement-level assembly failure.
type StatementError struct {
	File string
	Line int
	Msg  string
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (a *assembler) duplicateLabel(at parser.Pos, name string) error {
	return &DuplicateLabelError{File: a.filename, Line: at.Line, Name: name}
}

func (a *assembler) undefinedLocalScope(at parser.Pos, name string) error {
	return &UndefinedLocalScopeError{File: a.filename, Line: at.Line, Name: name}
}

func (a *assembler) unresolved(at parser.Pos, e parser.Expr) error {
	return &UnresolvedSymbolError{File: a.filename, Line: at.Line, Symbol: a.unresolvedName(e)}
}

func (a *assembler) invalidMnemonic(at parser.Pos, mnemonic string) error {
	return &InvalidMnemonicError{File: a.filename, Line: at.Line, Mnemonic: mnemonic}
}

func (a *assembler) rangeErrorf(at parser.Pos, format string, args ...any) error {
	return &ArgumentRangeError{File: a.filename, Line: at.Line, Msg: fmt.Sprintf(format, args...)}
}

func (a *assembler) statementErrorf(at parser.Pos, format string, args ...any) error {
	return &StatementError{File: a.filename, Line: at.Line, Msg: fmt.Sprintf(format, args...)}
}
