// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/beevik/asm6502/mos"
	"github.com/beevik/asm6502/parser"
)

// A modePredicate inspects an instruction's operand shape (and, where
// the rules require it, its resolved value) and reports the addressing
// mode it matches.
type modePredicate struct {
	name  string
	match func(a *assembler, st *parser.Instruction) (mos.Mode, bool)
}

// The addressing-mode priority chain, in increasing priority order. A
// later predicate's positive match overrides any earlier one, so
// selection scans the chain from highest priority down and returns the
// first match. The order is load-bearing: reordering changes which mode
// wins when an operand satisfies more than one predicate.
var modeChain = []modePredicate{
	{"zero-page", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		p, ok := st.Operand.(*parser.Plain)
		if !ok {
			return 0, false
		}
		v, resolved := a.resolveExpr(p.Expr)
		return mos.ZPG, resolved && v >= 0 && v <= 0xff
	}},
	{"immediate", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		_, ok := st.Operand.(*parser.Immediate)
		return mos.IMM, ok
	}},
	{"indexed", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		x, ok := st.Operand.(*parser.Indexed)
		if !ok {
			return 0, false
		}
		// The zero-page variant applies only when the base operand is
		// known to fit in one byte; a symbolic base gets the absolute
		// variant so both passes agree on instruction length.
		v, resolved := a.resolveExpr(x.Base)
		zp := resolved && v >= 0 && v <= 0xff
		switch {
		case x.Reg == 'X' && zp:
			return mos.ZPX, true
		case x.Reg == 'X':
			return mos.ABX, true
		case zp:
			return mos.ZPY, true
		default:
			return mos.ABY, true
		}
	}},
	{"indirect", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		_, ok := st.Operand.(*parser.Indirect)
		return mos.IND, ok
	}},
	{"absolute", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		p, ok := st.Operand.(*parser.Plain)
		if !ok {
			return 0, false
		}
		if st.Mnemonic == "JMP" || st.Mnemonic == "JSR" {
			return mos.ABS, true
		}
		v, resolved := a.resolveExpr(p.Expr)
		return mos.ABS, !resolved || v > 0xff
	}},
	{"indirect-indexed-y", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		_, ok := st.Operand.(*parser.IndirectY)
		return mos.IDY, ok
	}},
	{"indexed-indirect-x", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		_, ok := st.Operand.(*parser.IndirectX)
		return mos.IDX, ok
	}},
	{"implied", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		if st.Operand == nil {
			return mos.IMP, true
		}
		// A shift instruction with an accumulator operand is implied.
		_, acc := st.Operand.(*parser.Accumulator)
		return mos.IMP, acc && mos.IsShift(st.Mnemonic)
	}},
	{"branch", func(a *assembler, st *parser.Instruction) (mos.Mode, bool) {
		return mos.REL, mos.IsBranch(st.Mnemonic)
	}},
}

// Select the addressing mode for an instruction by scanning the
// priority chain from highest priority down.
func (a *assembler) selectMode(st *parser.Instruction) (mos.Mode, bool) {
	for i := len(modeChain) - 1; i >= 0; i-- {
		if m, ok := modeChain[i].match(a, st); ok {
			return m, true
		}
	}
	return 0, false
}

// Encode a single instruction. The addressing mode is selected once,
// during pass 1, and memoized so that pass 2 uses the same mode and
// instruction length even after forward references resolve.
func (a *assembler) instruction(st *parser.Instruction) error {
	if a.inScratch {
		return a.statementErrorf(st.At, "instruction not allowed inside a %s block", parser.EnumOpen)
	}

	row, ok := mos.Lookup(st.Mnemonic)
	if !ok {
		return a.invalidMnemonic(st.At, st.Mnemonic)
	}

	var mode mos.Mode
	if a.pass == collectingLabels {
		mode, ok = a.selectMode(st)
		if !ok {
			return a.statementErrorf(st.At, "unknown addressing mode format for '%s'", st.Mnemonic)
		}
		// Widen a zero-page selection to its absolute counterpart when
		// the mnemonic has no zero-page encoding (LDA $20,Y).
		if _, has := row.Opcode(mode); !has {
			if wide, ok := widen(mode); ok {
				if _, has := row.Opcode(wide); has {
					mode = wide
				}
			}
		}
		a.modes = append(a.modes, mode)
	} else {
		mode = a.modes[a.instIndex]
	}
	a.instIndex++

	opcode, ok := row.Opcode(mode)
	if !ok {
		return a.statementErrorf(st.At, "invalid addressing mode %s for '%s'", mode, st.Mnemonic)
	}

	a.log("%04X  %s %s Opcode:%02X", a.pc, st.Mnemonic, mode, opcode)

	switch mode {
	case mos.IMP:
		a.emit(opcode)
		return nil

	case mos.IMM, mos.ZPG, mos.ZPX, mos.ZPY, mos.IDX, mos.IDY:
		return a.encodeByteOperand(st, opcode)

	case mos.ABS, mos.ABX, mos.ABY, mos.IND:
		return a.encodeWordOperand(st, opcode)

	default: // mos.REL
		return a.encodeBranch(st, opcode)
	}
}

// Emit an opcode with a one-byte operand. The operand must be resolved
// by the time pass 2 emits it.
func (a *assembler) encodeByteOperand(st *parser.Instruction, opcode byte) error {
	if a.pass == collectingLabels {
		a.advance(2)
		return nil
	}

	e := operandExpr(st.Operand)
	v, ok := a.resolveExpr(e)
	if !ok {
		return a.unresolved(st.At, e)
	}
	if v < 0 || v > 0xff {
		return a.rangeErrorf(st.At, "operand value $%X does not fit in one byte", v)
	}

	a.emit(opcode, byte(v))
	return nil
}

// Emit an opcode with a two-byte little-endian operand.
func (a *assembler) encodeWordOperand(st *parser.Instruction, opcode byte) error {
	if a.pass == collectingLabels {
		a.advance(3)
		return nil
	}

	e := operandExpr(st.Operand)
	v, ok := a.resolveExpr(e)
	if !ok {
		return a.unresolved(st.At, e)
	}
	if v < 0 || v > 0xffff {
		return a.rangeErrorf(st.At, "operand value $%X does not fit in two bytes", v)
	}

	a.emit(opcode, byte(v&0xff), byte((v>>8)&0xff))
	return nil
}

// Emit a branch opcode and its signed relative offset. The offset is
// computed after the counter has been incremented for the opcode byte
// but before it is incremented for the offset byte.
func (a *assembler) encodeBranch(st *parser.Instruction, opcode byte) error {
	if a.pass == collectingLabels {
		a.advance(2)
		return nil
	}

	e := operandExpr(st.Operand)

	a.emit(opcode)
	pcNow := a.pc

	target, ok := a.resolveExpr(e)
	if !ok {
		return a.unresolved(st.At, e)
	}

	diff := target - pcNow - 1
	if diff < -128 || diff > 127 {
		return a.rangeErrorf(st.At, "branch target $%04X out of range", target)
	}

	var offset int
	if target < pcNow {
		offset = (0xff - (pcNow - target)) & 0xff
	} else {
		offset = (target - pcNow - 1) & 0xff
	}

	a.emit(byte(offset))
	return nil
}

// Return the absolute counterpart of a zero-page addressing mode.
func widen(m mos.Mode) (mos.Mode, bool) {
	switch m {
	case mos.ZPG:
		return mos.ABS, true
	case mos.ZPX:
		return mos.ABX, true
	case mos.ZPY:
		return mos.ABY, true
	default:
		return m, false
	}
}

// Return the expression carried by an instruction operand.
func operandExpr(o parser.Operand) parser.Expr {
	switch o := o.(type) {
	case *parser.Immediate:
		return o.Expr
	case *parser.Plain:
		return o.Expr
	case *parser.Indexed:
		return o.Base
	case *parser.Indirect:
		return o.Expr
	case *parser.IndirectX:
		return o.Expr
	case *parser.IndirectY:
		return o.Expr
	default:
		return nil
	}
}
