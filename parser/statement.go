// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

// A Pos locates a statement within the parsed source text.
type Pos struct {
	Line   int // 1-based line number
	Column int // 0-based column
}

// A Statement is one parsed element of a source line. It is exactly one
// of: Label, Equate, Directive or Instruction.
type Statement interface {
	Pos() Pos
	statement()
}

// A Group holds the ordered statements produced from a single source
// line. A line carrying both a label and an instruction produces a
// two-statement group.
type Group []Statement

// A Label statement assigns the current address to a name. Local label
// names retain their leading '@' scope marker.
type Label struct {
	At   Pos
	Name string
}

// An Equate statement ("name = expr") defines a constant.
type Equate struct {
	At    Pos
	Name  string
	Value Expr
}

// A DirOp identifies a directive recognized by the assembler backend.
type DirOp byte

// All directives processed by the backend.
const (
	Origin DirOp = iota // .org
	Byte                // .db / .byte
	Word                // .dw / .word
	Reserve             // .dsb
	Align               // .align
	EnumOpen            // .enum
	EnumClose           // .ende
)

var dirName = []string{".org", ".db", ".dw", ".dsb", ".align", ".enum", ".ende"}

func (op DirOp) String() string {
	return dirName[op]
}

// A Directive statement carries a pseudo-op and its comma-separated
// argument expressions.
type Directive struct {
	At   Pos
	Op   DirOp
	Args []Expr
}

// An Instruction statement carries a 6502 mnemonic and its operand.
// A nil Operand means the implied form.
type Instruction struct {
	At       Pos
	Mnemonic string // uppercase
	Operand  Operand
}

func (s *Label) Pos() Pos       { return s.At }
func (s *Equate) Pos() Pos      { return s.At }
func (s *Directive) Pos() Pos   { return s.At }
func (s *Instruction) Pos() Pos { return s.At }

func (s *Label) statement()       {}
func (s *Equate) statement()      {}
func (s *Directive) statement()   {}
func (s *Instruction) statement() {}

// An Expr is a statement argument: a literal number, a symbol name, a
// quoted text literal, or a binary expression over two sub-expressions.
type Expr interface {
	expression()
}

// A Number is a literal numeric value.
type Number struct {
	Val int
}

// A Symbol is a reference to a label or constant by name. Local
// references retain their leading '@' scope marker.
type Symbol struct {
	Name string
}

// A Text is a quoted string literal, meaningful only as a byte-define
// directive argument.
type Text struct {
	Val string
}

// A BinaryExpr combines two sub-expressions with an operator. Only '+'
// is ever evaluated by the assembler; other operators stay symbolic.
type BinaryExpr struct {
	L  Expr
	Op byte
	R  Expr
}

func (e *Number) expression()     {}
func (e *Symbol) expression()     {}
func (e *Text) expression()       {}
func (e *BinaryExpr) expression() {}

// An Operand is the parsed parameter form of an instruction, which the
// encoder uses to disambiguate the addressing mode.
type Operand interface {
	operand()
}

// Immediate is the '#expr' operand form.
type Immediate struct {
	Expr Expr
}

// Plain is a bare expression operand: zero page, absolute or branch
// target depending on the instruction and the resolved value.
type Plain struct {
	Expr Expr
}

// Indexed is the 'expr,X' / 'expr,Y' operand form.
type Indexed struct {
	Base Expr
	Reg  byte // 'X' or 'Y'
}

// Indirect is the '(expr)' operand form.
type Indirect struct {
	Expr Expr
}

// IndirectX is the '(expr,X)' operand form.
type IndirectX struct {
	Expr Expr
}

// IndirectY is the '(expr),Y' operand form.
type IndirectY struct {
	Expr Expr
}

// Accumulator is the 'A' operand form used by shift instructions.
type Accumulator struct{}

func (o *Immediate) operand()   {}
func (o *Plain) operand()       {}
func (o *Indexed) operand()     {}
func (o *Indirect) operand()    {}
func (o *IndirectX) operand()   {}
func (o *IndirectY) operand()   {}
func (o *Accumulator) operand() {}
