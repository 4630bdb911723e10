// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mos

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		name   string
		mode   Mode
		opcode byte
	}{
		{"LDA", IMM, 0xa9},
		{"LDA", ZPG, 0xa5},
		{"LDA", ABS, 0xad},
		{"LDA", IDX, 0xa1},
		{"LDA", IDY, 0xb1},
		{"STA", ABS, 0x8d},
		{"JMP", ABS, 0x4c},
		{"JMP", IND, 0x6c},
		{"JSR", ABS, 0x20},
		{"NOP", IMP, 0xea},
		{"ASL", IMP, 0x0a},
		{"LDX", ZPY, 0xb6},
		{"BNE", REL, 0xd0},
		{"RTS", IMP, 0x60},
	}

	for _, c := range cases {
		row, ok := Lookup(c.name)
		if !ok {
			t.Errorf("%s: not found", c.name)
			continue
		}
		op, ok := row.Opcode(c.mode)
		if !ok {
			t.Errorf("%s %s: mode not supported", c.name, c.mode)
			continue
		}
		if op != c.opcode {
			t.Errorf("%s %s: got $%02X, exp $%02X", c.name, c.mode, op, c.opcode)
		}
	}
}

func TestUnsupportedMode(t *testing.T) {
	row, ok := Lookup("STA")
	if !ok {
		t.Fatal("STA not found")
	}
	if _, ok := row.Opcode(IMM); ok {
		t.Error("STA should not support the immediate mode")
	}
}

func TestUnknownMnemonic(t *testing.T) {
	if _, ok := Lookup("XYZ"); ok {
		t.Error("XYZ should not be a valid mnemonic")
	}
}

func TestBranchSet(t *testing.T) {
	branches := []string{"BCC", "BCS", "BEQ", "BMI", "BNE", "BPL", "BVC", "BVS"}
	for _, b := range branches {
		if !IsBranch(b) {
			t.Errorf("%s should be a branch", b)
		}
	}
	if IsBranch("JMP") {
		t.Error("JMP should not be a branch")
	}
}

func TestShiftSet(t *testing.T) {
	shifts := []string{"ASL", "LSR", "ROL", "ROR"}
	for _, s := range shifts {
		if !IsShift(s) {
			t.Errorf("%s should be a shift", s)
		}
	}
	if IsShift("LDA") {
		t.Error("LDA should not be a shift")
	}
}

func TestRowModes(t *testing.T) {
	row, _ := Lookup("JMP")
	modes := row.Modes()
	if len(modes) != 2 || modes[0] != ABS || modes[1] != IND {
		t.Errorf("JMP modes: got %v", modes)
	}
}

func TestTableComplete(t *testing.T) {
	// Every documented NMOS mnemonic must be present.
	mnemonics := []string{
		"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI",
		"BNE", "BPL", "BRK", "BVC", "BVS", "CLC", "CLD", "CLI",
		"CLV", "CMP", "CPX", "CPY", "DEC", "DEX", "DEY", "EOR",
		"INC", "INX", "INY", "JMP", "JSR", "LDA", "LDX", "LDY",
		"LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
		"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA",
		"STX", "STY", "TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
	}
	for _, m := range mnemonics {
		if _, ok := Lookup(m); !ok {
			t.Errorf("%s missing from the opcode table", m)
		}
	}
}
