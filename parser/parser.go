// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser converts 6502 assembly source text into the ordered
// statement groups consumed by the assembler backend. One source line
// produces one group; a line carrying a label and an instruction
// produces both statements in order.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// A SyntaxError describes a malformed source line.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, col %d: %s", e.Line, e.Column+1, e.Msg)
}

// Directive spellings accepted by the parser, with and without the
// leading dot.
var directives = map[string]DirOp{
	".org":   Origin,
	"org":    Origin,
	".db":    Byte,
	".byte":  Byte,
	"db":     Byte,
	".dw":    Word,
	".word":  Word,
	"dw":     Word,
	".dsb":   Reserve,
	"dsb":    Reserve,
	".align": Align,
	"align":  Align,
	".enum":  EnumOpen,
	"enum":   EnumOpen,
	".ende":  EnumClose,
	"ende":   EnumClose,
}

type parser struct {
	groups []Group
	errs   []*SyntaxError
}

// Parse reads assembly source text and returns its statement groups.
// The first malformed line aborts parsing with a *SyntaxError.
func Parse(r io.Reader) ([]Group, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	for row := 1; scanner.Scan(); row++ {
		line := newFstring(row, scanner.Text())
		p.parseLine(line.stripTrailingComment())
		if len(p.errs) > 0 {
			return nil, p.errs[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.groups, nil
}

func (p *parser) addError(l fstring, format string, args ...any) {
	p.errs = append(p.errs, &SyntaxError{
		Line:   l.row,
		Column: l.column,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (p *parser) emit(g Group) {
	if len(g) > 0 {
		p.groups = append(p.groups, g)
	}
}

// Parse a single line of assembly code.
func (p *parser) parseLine(line fstring) {
	if line.isEmpty() {
		return
	}

	var group Group
	if line.startsWith(whitespace) {
		group = p.parseUnlabeledLine(line.consumeWhitespace(), group)
	} else {
		group = p.parseLabeledLine(line)
	}
	p.emit(group)
}

// Parse a line that begins with a label or a constant name in the
// first column.
func (p *parser) parseLabeledLine(line fstring) Group {
	name, remain, ok := p.parseLabelName(line)
	if !ok {
		return nil
	}

	// A '=' following the name makes this a constant definition.
	if remain.startsWithChar('=') {
		value := remain.consume(1).consumeWhitespace()
		e, rest, ok := p.parseExpr(value)
		if !ok {
			return nil
		}
		if !rest.isEmpty() {
			p.addError(rest, "unexpected text after expression: '%s'", rest.str)
			return nil
		}
		if strings.HasPrefix(name, "@") {
			p.addError(line, "local label '%s' cannot define a constant", name)
			return nil
		}
		return Group{&Equate{At: line.pos(), Name: name, Value: e}}
	}

	group := Group{&Label{At: line.pos(), Name: name}}
	if remain.isEmpty() {
		return group
	}
	return p.parseUnlabeledLine(remain, group)
}

// Parse a label name at the start of a line, consuming an optional
// trailing colon.
func (p *parser) parseLabelName(line fstring) (name string, remain fstring, ok bool) {
	if !line.startsWith(labelStartChar) {
		s, _ := line.consumeUntil(whitespace)
		p.addError(line, "invalid label '%s'", s.str)
		return "", line, false
	}

	l := line
	local := l.startsWithChar('@')
	if local {
		l = l.consume(1)
	}

	word, l := l.consumeWhile(labelChar)
	if word.isEmpty() {
		p.addError(line, "invalid label '@'")
		return "", line, false
	}

	name = word.str
	if local {
		name = "@" + name
	}

	if l.startsWithChar(':') {
		l = l.consume(1)
	}
	if !l.isEmpty() && !l.startsWith(whitespace) && !l.startsWithChar('=') {
		s, _ := l.consumeUntil(whitespace)
		p.addError(l, "invalid label '%s%s'", name, s.str)
		return "", line, false
	}

	return name, l.consumeWhitespace(), true
}

// Parse the directive or instruction portion of a line.
func (p *parser) parseUnlabeledLine(line fstring, group Group) Group {
	word, remain := line.consumeWhile(wordChar)

	if op, ok := directives[strings.ToLower(word.str)]; ok {
		d := p.parseDirective(word.pos(), op, remain.consumeWhitespace())
		if d == nil {
			return nil
		}
		return append(group, d)
	}

	inst := p.parseInstruction(word, remain.consumeWhitespace())
	if inst == nil {
		return nil
	}
	return append(group, inst)
}

// Parse a directive's comma-separated argument list and validate its
// arity.
func (p *parser) parseDirective(at Pos, op DirOp, line fstring) *Directive {
	var args []Expr
	for remain := line; !remain.isEmpty(); {
		var arg fstring
		arg, remain = remain.consumeUntilUnquotedChar(',')
		if !remain.isEmpty() {
			remain = remain.consume(1).consumeWhitespace()
			if remain.isEmpty() {
				p.addError(remain, "missing argument after ','")
				return nil
			}
		}

		e, rest, ok := p.parseExpr(arg)
		if !ok {
			return nil
		}
		if !rest.isEmpty() {
			p.addError(rest, "unexpected text after expression: '%s'", rest.str)
			return nil
		}
		args = append(args, e)
	}

	switch op {
	case Origin, Reserve, Align, EnumOpen:
		if len(args) != 1 {
			p.addError(line, "%s requires exactly one argument", op)
			return nil
		}
	case EnumClose:
		if len(args) != 0 {
			p.addError(line, "%s takes no arguments", op)
			return nil
		}
	default:
		if len(args) == 0 {
			p.addError(line, "%s requires at least one argument", op)
			return nil
		}
	}

	return &Directive{At: at, Op: op, Args: args}
}

// Parse a 6502 instruction mnemonic and operand. Mnemonic validity is
// the assembler's concern; the parser only fixes the operand shape.
func (p *parser) parseInstruction(word, remain fstring) *Instruction {
	if word.isEmpty() || word.scanWhile(alpha) != len(word.str) {
		p.addError(word, "invalid mnemonic '%s'", word.str)
		return nil
	}

	operand, ok := p.parseOperand(remain)
	if !ok {
		return nil
	}

	return &Instruction{
		At:       word.pos(),
		Mnemonic: strings.ToUpper(word.str),
		Operand:  operand,
	}
}

// Parse an instruction operand, determining its addressing form from
// the leading syntax.
func (p *parser) parseOperand(line fstring) (Operand, bool) {
	switch {
	case line.isEmpty():
		return nil, true

	case line.str == "A" || line.str == "a":
		return &Accumulator{}, true

	case line.startsWithChar('#'):
		e, rest, ok := p.parseExpr(line.consume(1))
		if !ok {
			return nil, false
		}
		if !rest.isEmpty() {
			p.addError(rest, "unexpected text after operand: '%s'", rest.str)
			return nil, false
		}
		return &Immediate{Expr: e}, true

	case line.startsWithChar('('):
		return p.parseIndirect(line.consume(1))

	default:
		return p.parseAbsolute(line)
	}
}

// Parse a '(expr)', '(expr,X)' or '(expr),Y' operand.
func (p *parser) parseIndirect(line fstring) (Operand, bool) {
	inner, remain := line.consumeUntil(func(c byte) bool { return c == ',' || c == ')' })

	e, rest, ok := p.parseExpr(inner)
	if !ok {
		return nil, false
	}
	if !rest.isEmpty() {
		p.addError(rest, "unexpected text in indirect operand: '%s'", rest.str)
		return nil, false
	}

	var o Operand
	switch {
	case remain.startsWithString(",X)") || remain.startsWithString(",x)"):
		o, remain = &IndirectX{Expr: e}, remain.consume(3)
	case remain.startsWithString("),Y") || remain.startsWithString("),y"):
		o, remain = &IndirectY{Expr: e}, remain.consume(3)
	case remain.startsWithChar(')'):
		o, remain = &Indirect{Expr: e}, remain.consume(1)
	default:
		p.addError(remain, "unknown addressing mode format")
		return nil, false
	}

	if remain = remain.consumeWhitespace(); !remain.isEmpty() {
		p.addError(remain, "unexpected text after operand: '%s'", remain.str)
		return nil, false
	}
	return o, true
}

// Parse a bare, 'expr,X' or 'expr,Y' operand.
func (p *parser) parseAbsolute(line fstring) (Operand, bool) {
	inner, remain := line.consumeUntilChar(',')

	e, rest, ok := p.parseExpr(inner)
	if !ok {
		return nil, false
	}
	if !rest.isEmpty() {
		p.addError(rest, "unexpected text after operand: '%s'", rest.str)
		return nil, false
	}

	var o Operand
	switch {
	case remain.startsWithString(",X") || remain.startsWithString(",x"):
		o, remain = &Indexed{Base: e, Reg: 'X'}, remain.consume(2)
	case remain.startsWithString(",Y") || remain.startsWithString(",y"):
		o, remain = &Indexed{Base: e, Reg: 'Y'}, remain.consume(2)
	default:
		o = &Plain{Expr: e}
	}

	if remain = remain.consumeWhitespace(); !remain.isEmpty() {
		p.addError(remain, "unexpected text after operand: '%s'", remain.str)
		return nil, false
	}
	return o, true
}

// Parse an expression: a term, optionally followed by operator-term
// pairs combined left to right.
func (p *parser) parseExpr(line fstring) (e Expr, remain fstring, ok bool) {
	e, remain, ok = p.parseTerm(line.consumeWhitespace())
	if !ok {
		return nil, remain, false
	}

	for {
		remain = remain.consumeWhitespace()
		if !remain.startsWith(operatorChar) {
			return e, remain, true
		}
		op := remain.str[0]

		var right Expr
		right, remain, ok = p.parseTerm(remain.consume(1).consumeWhitespace())
		if !ok {
			return nil, remain, false
		}
		e = &BinaryExpr{L: e, Op: op, R: right}
	}
}

// Parse a single expression term: a numeric literal, a character or
// string literal, or a symbol reference.
func (p *parser) parseTerm(line fstring) (e Expr, remain fstring, ok bool) {
	switch {
	case line.startsWithChar('$'):
		return p.parseNumber(line.consume(1), 16, hexadecimal)

	case line.startsWithChar('%'):
		return p.parseNumber(line.consume(1), 2, binary)

	case line.startsWithString("0x") || line.startsWithString("0X"):
		return p.parseNumber(line.consume(2), 16, hexadecimal)

	case line.startsWithString("0b") || line.startsWithString("0B"):
		return p.parseNumber(line.consume(2), 2, binary)

	case line.startsWith(decimal):
		return p.parseNumber(line, 10, decimal)

	case line.startsWithChar('\''):
		// Only single ASCII characters are representable as one byte.
		if len(line.str) < 3 || line.str[2] != '\'' || line.str[1] >= utf8.RuneSelf {
			p.addError(line, "invalid character literal")
			return nil, line, false
		}
		return &Number{Val: int(line.str[1])}, line.consume(3), true

	case line.startsWith(stringQuote):
		quoted := line.consume(1)
		body, rest := quoted.consumeUntilChar('"')
		if rest.isEmpty() {
			p.addError(line, "unterminated string literal")
			return nil, line, false
		}
		return &Text{Val: body.str}, rest.consume(1), true

	case line.startsWith(symbolStartChar):
		l := line
		local := l.startsWithChar('@')
		if local {
			l = l.consume(1)
		}
		word, rest := l.consumeWhile(symbolChar)
		if word.isEmpty() {
			p.addError(line, "invalid symbol '@'")
			return nil, line, false
		}
		name := word.str
		if local {
			name = "@" + name
		}
		return &Symbol{Name: name}, rest, true

	default:
		p.addError(line, "expected expression")
		return nil, line, false
	}
}

// Parse a numeric literal in the given base.
func (p *parser) parseNumber(line fstring, base int, fn func(c byte) bool) (e Expr, remain fstring, ok bool) {
	numstr, remain := line.consumeWhile(fn)
	if numstr.isEmpty() {
		p.addError(line, "invalid number")
		return nil, line, false
	}

	v, err := strconv.ParseInt(numstr.str, base, 32)
	if err != nil {
		p.addError(numstr, "failed to parse number '%s'", numstr.str)
		return nil, line, false
	}

	return &Number{Val: int(v)}, remain, true
}
