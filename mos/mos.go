// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mos holds the MOS 6502 opcode table consumed by the assembler.
// The table maps each mnemonic to a fixed-width row of opcode values, one
// column per addressing mode.
package mos

// Mode identifies a 6502 addressing mode. The values double as column
// indexes into an opcode table row.
type Mode byte

// All 6502 addressing modes.
const (
	IMM Mode = iota // Immediate
	ZPG             // Zero Page
	ZPX             // Zero Page, X indexed
	ZPY             // Zero Page, Y indexed
	ABS             // Absolute
	ABX             // Absolute, X indexed
	ABY             // Absolute, Y indexed
	IND             // Indirect
	IDX             // Indexed Indirect, X
	IDY             // Indirect Indexed, Y
	IMP             // Implied (includes accumulator forms)
	REL             // Relative (branch)

	numModes = int(REL) + 1
)

var modeName = []string{
	"IMM",
	"ZPG",
	"ZPX",
	"ZPY",
	"ABS",
	"ABX",
	"ABY",
	"IND",
	"IDX",
	"IDY",
	"IMP",
	"REL",
}

func (m Mode) String() string {
	return modeName[m]
}

// A Row is a fixed-width table row containing one opcode value per
// addressing mode. Columns the mnemonic doesn't support hold -1.
type Row [numModes]int16

// Opcode returns the opcode byte for the requested addressing mode.
// It returns false if the mnemonic doesn't support the mode.
func (r Row) Opcode(m Mode) (byte, bool) {
	v := r[m]
	if v < 0 {
		return 0, false
	}
	return byte(v), true
}

// Modes returns all addressing modes supported by the row.
func (r Row) Modes() []Mode {
	var modes []Mode
	for i, v := range r {
		if v >= 0 {
			modes = append(modes, Mode(i))
		}
	}
	return modes
}

// An opdata entry associates a mnemonic and addressing mode with an
// opcode byte value.
type opdata struct {
	name   string
	mode   Mode
	opcode byte
}

// All NMOS 6502 instructions.
var data = []opdata{
	{"ADC", IMM, 0x69},
	{"ADC", ZPG, 0x65},
	{"ADC", ZPX, 0x75},
	{"ADC", ABS, 0x6d},
	{"ADC", ABX, 0x7d},
	{"ADC", ABY, 0x79},
	{"ADC", IDX, 0x61},
	{"ADC", IDY, 0x71},

	{"AND", IMM, 0x29},
	{"AND", ZPG, 0x25},
	{"AND", ZPX, 0x35},
	{"AND", ABS, 0x2d},
	{"AND", ABX, 0x3d},
	{"AND", ABY, 0x39},
	{"AND", IDX, 0x21},
	{"AND", IDY, 0x31},

	{"ASL", IMP, 0x0a}, // accumulator
	{"ASL", ZPG, 0x06},
	{"ASL", ZPX, 0x16},
	{"ASL", ABS, 0x0e},
	{"ASL", ABX, 0x1e},

	{"BCC", REL, 0x90},
	{"BCS", REL, 0xb0},
	{"BEQ", REL, 0xf0},
	{"BMI", REL, 0x30},
	{"BNE", REL, 0xd0},
	{"BPL", REL, 0x10},
	{"BVC", REL, 0x50},
	{"BVS", REL, 0x70},

	{"BIT", ZPG, 0x24},
	{"BIT", ABS, 0x2c},

	{"BRK", IMP, 0x00},

	{"CLC", IMP, 0x18},
	{"CLD", IMP, 0xd8},
	{"CLI", IMP, 0x58},
	{"CLV", IMP, 0xb8},

	{"CMP", IMM, 0xc9},
	{"CMP", ZPG, 0xc5},
	{"CMP", ZPX, 0xd5},
	{"CMP", ABS, 0xcd},
	{"CMP", ABX, 0xdd},
	{"CMP", ABY, 0xd9},
	{"CMP", IDX, 0xc1},
	{"CMP", IDY, 0xd1},

	{"CPX", IMM, 0xe0},
	{"CPX", ZPG, 0xe4},
	{"CPX", ABS, 0xec},

	{"CPY", IMM, 0xc0},
	{"CPY", ZPG, 0xc4},
	{"CPY", ABS, 0xcc},

	{"DEC", ZPG, 0xc6},
	{"DEC", ZPX, 0xd6},
	{"DEC", ABS, 0xce},
	{"DEC", ABX, 0xde},

	{"DEX", IMP, 0xca},
	{"DEY", IMP, 0x88},

	{"EOR", IMM, 0x49},
	{"EOR", ZPG, 0x45},
	{"EOR", ZPX, 0x55},
	{"EOR", ABS, 0x4d},
	{"EOR", ABX, 0x5d},
	{"EOR", ABY, 0x59},
	{"EOR", IDX, 0x41},
	{"EOR", IDY, 0x51},

	{"INC", ZPG, 0xe6},
	{"INC", ZPX, 0xf6},
	{"INC", ABS, 0xee},
	{"INC", ABX, 0xfe},

	{"INX", IMP, 0xe8},
	{"INY", IMP, 0xc8},

	{"JMP", ABS, 0x4c},
	{"JMP", IND, 0x6c},

	{"JSR", ABS, 0x20},

	{"LDA", IMM, 0xa9},
	{"LDA", ZPG, 0xa5},
	{"LDA", ZPX, 0xb5},
	{"LDA", ABS, 0xad},
	{"LDA", ABX, 0xbd},
	{"LDA", ABY, 0xb9},
	{"LDA", IDX, 0xa1},
	{"LDA", IDY, 0xb1},

	{"LDX", IMM, 0xa2},
	{"LDX", ZPG, 0xa6},
	{"LDX", ZPY, 0xb6},
	{"LDX", ABS, 0xae},
	{"LDX", ABY, 0xbe},

	{"LDY", IMM, 0xa0},
	{"LDY", ZPG, 0xa4},
	{"LDY", ZPX, 0xb4},
	{"LDY", ABS, 0xac},
	{"LDY", ABX, 0xbc},

	{"LSR", IMP, 0x4a}, // accumulator
	{"LSR", ZPG, 0x46},
	{"LSR", ZPX, 0x56},
	{"LSR", ABS, 0x4e},
	{"LSR", ABX, 0x5e},

	{"NOP", IMP, 0xea},

	{"ORA", IMM, 0x09},
	{"ORA", ZPG, 0x05},
	{"ORA", ZPX, 0x15},
	{"ORA", ABS, 0x0d},
	{"ORA", ABX, 0x1d},
	{"ORA", ABY, 0x19},
	{"ORA", IDX, 0x01},
	{"ORA", IDY, 0x11},

	{"PHA", IMP, 0x48},
	{"PHP", IMP, 0x08},
	{"PLA", IMP, 0x68},
	{"PLP", IMP, 0x28},

	{"ROL", IMP, 0x2a}, // accumulator
	{"ROL", ZPG, 0x26},
	{"ROL", ZPX, 0x36},
	{"ROL", ABS, 0x2e},
	{"ROL", ABX, 0x3e},

	{"ROR", IMP, 0x6a}, // accumulator
	{"ROR", ZPG, 0x66},
	{"ROR", ZPX, 0x76},
	{"ROR", ABS, 0x6e},
	{"ROR", ABX, 0x7e},

	{"RTI", IMP, 0x40},
	{"RTS", IMP, 0x60},

	{"SBC", IMM, 0xe9},
	{"SBC", ZPG, 0xe5},
	{"SBC", ZPX, 0xf5},
	{"SBC", ABS, 0xed},
	{"SBC", ABX, 0xfd},
	{"SBC", ABY, 0xf9},
	{"SBC", IDX, 0xe1},
	{"SBC", IDY, 0xf1},

	{"SEC", IMP, 0x38},
	{"SED", IMP, 0xf8},
	{"SEI", IMP, 0x78},

	{"STA", ZPG, 0x85},
	{"STA", ZPX, 0x95},
	{"STA", ABS, 0x8d},
	{"STA", ABX, 0x9d},
	{"STA", ABY, 0x99},
	{"STA", IDX, 0x81},
	{"STA", IDY, 0x91},

	{"STX", ZPG, 0x86},
	{"STX", ZPY, 0x96},
	{"STX", ABS, 0x8e},

	{"STY", ZPG, 0x84},
	{"STY", ZPX, 0x94},
	{"STY", ABS, 0x8c},

	{"TAX", IMP, 0xaa},
	{"TAY", IMP, 0xa8},
	{"TSX", IMP, 0xba},
	{"TXA", IMP, 0x8a},
	{"TXS", IMP, 0x9a},
	{"TYA", IMP, 0x98},
}

// Mnemonics for the eight relative-branch instructions.
var branches = map[string]bool{
	"BCC": true,
	"BCS": true,
	"BEQ": true,
	"BMI": true,
	"BNE": true,
	"BPL": true,
	"BVC": true,
	"BVS": true,
}

// Mnemonics for the accumulator-form shift and rotate instructions.
var shifts = map[string]bool{
	"ASL": true,
	"LSR": true,
	"ROL": true,
	"ROR": true,
}

var opcodes map[string]Row

// Build the opcode table from the instruction data.
func init() {
	opcodes = make(map[string]Row, len(data))
	for _, d := range data {
		row, ok := opcodes[d.name]
		if !ok {
			for i := range row {
				row[i] = -1
			}
		}
		row[d.mode] = int16(d.opcode)
		opcodes[d.name] = row
	}
}

// Lookup returns the opcode table row for an uppercase mnemonic. It
// returns false if the mnemonic is not a 6502 instruction.
func Lookup(mnemonic string) (Row, bool) {
	row, ok := opcodes[mnemonic]
	return row, ok
}

// IsBranch reports whether the uppercase mnemonic is one of the eight
// relative-branch instructions.
func IsBranch(mnemonic string) bool {
	return branches[mnemonic]
}

// IsShift reports whether the uppercase mnemonic is a shift or rotate
// instruction with an accumulator form.
func IsShift(mnemonic string) bool {
	return shifts[mnemonic]
}
