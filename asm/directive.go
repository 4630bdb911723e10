// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/beevik/asm6502/parser"
)

// Dispatch a directive statement to its handler. Each handler reads and
// writes the program counter and optionally emits output bytes.
func (a *assembler) directive(d *parser.Directive) error {
	switch d.Op {
	case parser.Origin:
		return a.originDirective(d)
	case parser.Byte:
		return a.byteDirective(d)
	case parser.Word:
		return a.wordDirective(d)
	case parser.Reserve:
		return a.reserveDirective(d)
	case parser.Align:
		return a.alignDirective(d)
	case parser.EnumOpen:
		return a.enumOpenDirective(d)
	case parser.EnumClose:
		return a.enumCloseDirective(d)
	default:
		return a.statementErrorf(d.At, "unknown directive")
	}
}

// Resolve a directive argument that must have a concrete value at the
// point of use.
func (a *assembler) resolveNow(d *parser.Directive, e parser.Expr) (int, error) {
	v, ok := a.resolveExpr(e)
	if !ok {
		return 0, a.unresolved(d.At, e)
	}
	return v, nil
}

// The first origin directive authoritatively sets the program counter.
// Later ones emit zero-fill padding to bridge the gap and then jump the
// counter to the new address; moving the counter backward is an error.
func (a *assembler) originDirective(d *parser.Directive) error {
	if a.inScratch {
		return a.statementErrorf(d.At, "%s not allowed inside a %s block", d.Op, parser.EnumOpen)
	}

	target, err := a.resolveNow(d, d.Args[0])
	if err != nil {
		return err
	}

	if !a.originSet {
		a.originSet = true
		a.origin = target
		a.pc = target
		a.log("%s $%04X", d.Op, target)
		return nil
	}

	gap := target - a.pc
	if gap < 0 {
		return a.rangeErrorf(d.At, "%s target $%04X is behind the current address $%04X", d.Op, target, a.pc)
	}
	a.fill(gap)
	a.log("%s $%04X (pad %d)", d.Op, target, gap)
	return nil
}

// Emit one byte per argument: each character of a quoted text literal,
// the low byte of a resolved value, or a placeholder for an argument
// that is still symbolic. Placeholders are legal only during pass 1; one
// surviving into pass 2 is fatal.
func (a *assembler) byteDirective(d *parser.Directive) error {
	if a.inScratch {
		return a.statementErrorf(d.At, "%s not allowed inside a %s block", d.Op, parser.EnumOpen)
	}

	for _, arg := range d.Args {
		if t, ok := arg.(*parser.Text); ok {
			a.emit([]byte(t.Val)...)
			continue
		}

		v, ok := a.resolveExpr(arg)
		switch {
		case ok:
			a.emit(byte(v & 0xff))
		case a.pass == collectingLabels:
			a.advance(1)
		default:
			return a.unresolved(d.At, arg)
		}
	}
	return nil
}

// Emit two little-endian bytes per argument. The program counter
// advances by two per argument whether or not the value resolved.
func (a *assembler) wordDirective(d *parser.Directive) error {
	if a.inScratch {
		return a.statementErrorf(d.At, "%s not allowed inside a %s block", d.Op, parser.EnumOpen)
	}

	for _, arg := range d.Args {
		if _, isText := arg.(*parser.Text); isText {
			return a.statementErrorf(d.At, "string literal not allowed in %s", d.Op)
		}

		v, ok := a.resolveExpr(arg)
		switch {
		case ok:
			a.emit(byte(v&0xff), byte((v>>8)&0xff))
		case a.pass == collectingLabels:
			a.advance(2)
		default:
			return a.unresolved(d.At, arg)
		}
	}
	return nil
}

// Reserve space by emitting zero-fill bytes, keeping the output a
// contiguous memory image. Inside a scratch block the counter advances
// without emitting.
func (a *assembler) reserveDirective(d *parser.Directive) error {
	n, err := a.resolveNow(d, d.Args[0])
	if err != nil {
		return err
	}
	if n < 0 {
		return a.rangeErrorf(d.At, "%s length %d is negative", d.Op, n)
	}
	a.fill(n)
	return nil
}

// Pad the program counter up to the next multiple of the boundary with
// zero bytes.
func (a *assembler) alignDirective(d *parser.Directive) error {
	boundary, err := a.resolveNow(d, d.Args[0])
	if err != nil {
		return err
	}
	if boundary < 1 {
		return a.rangeErrorf(d.At, "%s boundary %d is not positive", d.Op, boundary)
	}

	pad := (boundary - (a.pc % boundary)) % boundary
	a.fill(pad)
	a.log("%s %d (pad %d)", d.Op, boundary, pad)
	return nil
}

// Open a scratch block: save the program counter into the single save
// slot and repoint it at the block's start address. Scratch blocks
// define symbolic offsets only and emit no bytes. Nesting is
// unsupported; a re-entrant open is an error rather than a silent
// overwrite of the saved counter.
func (a *assembler) enumOpenDirective(d *parser.Directive) error {
	if a.inScratch {
		return a.statementErrorf(d.At, "nested %s blocks are not supported", d.Op)
	}

	start, err := a.resolveNow(d, d.Args[0])
	if err != nil {
		return err
	}

	a.savedPC = a.pc
	a.inScratch = true
	a.pc = start
	a.log("%s $%04X", d.Op, start)
	return nil
}

// Close a scratch block, restoring the program counter from the save
// slot.
func (a *assembler) enumCloseDirective(d *parser.Directive) error {
	if !a.inScratch {
		return a.statementErrorf(d.At, "%s without a matching %s", d.Op, parser.EnumOpen)
	}

	a.pc = a.savedPC
	a.inScratch = false
	a.log("%s (restore $%04X)", d.Op, a.pc)
	return nil
}
