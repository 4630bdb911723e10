// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func assemble(code string) (*Assembly, error) {
	return Assemble(strings.NewReader(code), "test", ExportConfig{}, os.Stdout, 0)
}

func checkASM(t *testing.T, asm string, expected string) {
	t.Helper()

	a, err := assemble(asm)
	if err != nil {
		t.Error(err)
		return
	}

	s := byteString(a.Code)
	if s != expected {
		t.Error("code doesn't match expected")
		t.Errorf("got: %s\n", s)
		t.Errorf("exp: %s\n", expected)
	}
}

func TestAddressingModes(t *testing.T) {
	asm := `
	LDA #$20
	LDA $20
	LDA $2000
	LDA $20,X
	LDA $2000,X
	LDA $2000,Y
	LDA $20,Y
	LDX $20,Y
	JMP ($2000)
	JMP ($20)
	LDA ($20,X)
	LDA ($20),Y
	ASL A
	ASL $10
	NOP`

	checkASM(t, asm, "A920A520AD0020B520BD0020B90020B92000B620"+
		"6C00206C2000A120B1200A0610EA")
}

func TestImmediate(t *testing.T) {
	checkASM(t, "\tLDA #$01", "A901")
}

func TestJmpJsrAlwaysAbsolute(t *testing.T) {
	asm := `
	JMP $0010
	JSR $0010`

	checkASM(t, asm, "4C1000201000")
}

func TestOriginPadding(t *testing.T) {
	asm := `
	.org $8000
	.org $8010
END:
	.db $FF`

	a, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}
	if a.Origin != 0x8000 {
		t.Errorf("origin: got $%04X, exp $8000", a.Origin)
	}
	if got := byteString(a.Code); got != strings.Repeat("00", 16)+"FF" {
		t.Errorf("code: got %s", got)
	}
	if a.Labels["END"] != 0x8010 {
		t.Errorf("END: got $%04X, exp $8010", a.Labels["END"])
	}
}

func TestOriginBackward(t *testing.T) {
	asm := `
	.org $8000
	.org $7000`

	_, err := assemble(asm)
	var rangeErr *ArgumentRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected ArgumentRangeError, got %v", err)
	}
}

func TestBackwardBranch(t *testing.T) {
	asm := `
	.org $8000
LOOP:
	NOP
	NOP
	BNE LOOP`

	// BNE's opcode lands at $8002; with the counter at $8003 the
	// offset to $8000 is $FF-3 = $FC.
	checkASM(t, asm, "EAEAD0FC")
}

func TestForwardBranch(t *testing.T) {
	asm := `
	.org $8000
	BNE SKIP
	NOP
SKIP:`

	checkASM(t, asm, "D001EA")
}

func TestBranchOutOfRange(t *testing.T) {
	asm := `
	.org $8000
FAR:
	.dsb 300
	BNE FAR`

	_, err := assemble(asm)
	var rangeErr *ArgumentRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected ArgumentRangeError, got %v", err)
	}
}

func TestForwardReference(t *testing.T) {
	asm := `
	.org $8000
	JMP TARGET
	.dsb 4
TARGET:
	.db $01`

	checkASM(t, asm, "4C0780"+"00000000"+"01")
}

func TestWordForwardReference(t *testing.T) {
	asm := `
	.org $8000
	.dw TARGET
TARGET:`

	checkASM(t, asm, "0280")
}

func TestLocalLabels(t *testing.T) {
	asm := `
	.org $8000
FIRST:
@loop:	DEX
	BNE @loop
SECOND:
@loop:	DEY
	BNE @loop`

	a, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}

	if got := byteString(a.Code); got != "CAD0FD88D0FD" {
		t.Errorf("code: got %s, exp CAD0FD88D0FD", got)
	}

	debug := "P:0000:FIRST\n" +
		"P:0000:loop\n" +
		"P:0003:@SECOND_loop\n" +
		"P:0003:SECOND\n"
	if a.Debug != debug {
		t.Errorf("debug symbols don't match expected")
		t.Errorf("got:\n%s", a.Debug)
		t.Errorf("exp:\n%s", debug)
	}
}

func TestLocalLabelWithoutScope(t *testing.T) {
	asm := `
@loop:	NOP`

	_, err := assemble(asm)
	var scopeErr *UndefinedLocalScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("expected UndefinedLocalScopeError, got %v", err)
	}
	if scopeErr.Name != "@loop" {
		t.Errorf("name: got %s, exp @loop", scopeErr.Name)
	}
}

func TestDuplicateLabel(t *testing.T) {
	asm := `
START:
	NOP
START:`

	_, err := assemble(asm)
	var dupErr *DuplicateLabelError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateLabelError, got %v", err)
	}
	if dupErr.Name != "START" {
		t.Errorf("name: got %s, exp START", dupErr.Name)
	}
}

func TestUnresolvedSymbol(t *testing.T) {
	asm := `
	JMP NOWHERE`

	_, err := assemble(asm)
	var unresErr *UnresolvedSymbolError
	if !errors.As(err, &unresErr) {
		t.Fatalf("expected UnresolvedSymbolError, got %v", err)
	}
	if unresErr.Symbol != "NOWHERE" {
		t.Errorf("symbol: got %s, exp NOWHERE", unresErr.Symbol)
	}
}

func TestInvalidMnemonic(t *testing.T) {
	asm := `
	XYZ $10`

	_, err := assemble(asm)
	var mnErr *InvalidMnemonicError
	if !errors.As(err, &mnErr) {
		t.Fatalf("expected InvalidMnemonicError, got %v", err)
	}
	if mnErr.Mnemonic != "XYZ" {
		t.Errorf("mnemonic: got %s, exp XYZ", mnErr.Mnemonic)
	}
}

func TestInvalidAddressingMode(t *testing.T) {
	asm := `
	STA #$10`

	_, err := assemble(asm)
	var stErr *StatementError
	if !errors.As(err, &stErr) {
		t.Errorf("expected StatementError, got %v", err)
	}
}

func TestScratchBlock(t *testing.T) {
	asm := `
	.org $8000
	.enum $0000
ptr:	.dsb 2
tmp:	.dsb 1
	.ende
	LDA ptr
	STA tmp`

	a, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}

	// Scratch blocks emit nothing; ptr and tmp are zero-page offsets.
	if got := byteString(a.Code); got != "A5008502" {
		t.Errorf("code: got %s, exp A5008502", got)
	}
	if a.Labels["ptr"] != 0 || a.Labels["tmp"] != 2 {
		t.Errorf("offsets: ptr=%d tmp=%d", a.Labels["ptr"], a.Labels["tmp"])
	}
}

func TestScratchBlockReentrant(t *testing.T) {
	asm := `
	.enum $00
	.enum $10`

	if _, err := assemble(asm); err == nil {
		t.Error("expected error on nested .enum")
	}
}

func TestScratchBlockCloseWithoutOpen(t *testing.T) {
	if _, err := assemble("\t.ende"); err == nil {
		t.Error("expected error on unmatched .ende")
	}
}

func TestScratchBlockUnclosed(t *testing.T) {
	if _, err := assemble("\t.enum $00"); err == nil {
		t.Error("expected error on unclosed .enum")
	}
}

func TestAlign(t *testing.T) {
	asm := `
	.db $FF
	.align 4
	.db $FE
	.align 2
	.db $FD
	.align 1
	.db $FC`

	checkASM(t, asm, "FF000000FE00FDFC")
}

func TestReserve(t *testing.T) {
	asm := `
	.db $01
	.dsb 3
	.db $02`

	// Reserved space is zero-filled so the image stays contiguous.
	checkASM(t, asm, "0100000002")
}

func TestDataBytes(t *testing.T) {
	asm := `
	.db "AB", $00
	.db 'f'
	.db $ABCD
	.db 1+2+3`

	checkASM(t, asm, "41420066CD06")
}

func TestCharLiteralPunctuation(t *testing.T) {
	asm := `
	.db ';', ','
	.db ';' ; trailing comment`

	// The ';' and ',' characters inside char literals are data, not a
	// comment start or an argument separator.
	checkASM(t, asm, "3B2C3B")
}

func TestDataWords(t *testing.T) {
	asm := `
	.dw $ABCD, $01
	.dw 1+2`

	checkASM(t, asm, "CDAB01000300")
}

func TestConstants(t *testing.T) {
	asm := `
TEN = $0A
	LDA #TEN
	LDX #TEN+1`

	checkASM(t, asm, "A90AA20B")
}

func TestConstantPrecedence(t *testing.T) {
	asm := `
VALUE = $05
	.org $8000
VALUE:
	LDA #VALUE`

	// Constants win over labels when resolving a bare name.
	checkASM(t, asm, "A905")
}

func TestForwardConstantKeepsAbsolute(t *testing.T) {
	asm := `
	.org $8000
	LDA ADDR
ADDR = $10`

	// The addressing mode is fixed during pass 1, when ADDR is still
	// symbolic, so the instruction stays absolute even though the value
	// later fits in the zero page.
	checkASM(t, asm, "AD1000")
}

func TestDeterminism(t *testing.T) {
	asm := `
	.org $8000
RESET:
	LDX #$FF
	TXS
@wait:	DEX
	BNE @wait
	JSR DRAW
	JMP RESET
DRAW:
	LDA $2002
	RTS
	.dw RESET, DRAW`

	a1, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}
	a2, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}

	if byteString(a1.Code) != byteString(a2.Code) {
		t.Error("two assemblies of the same input differ")
	}
	if a1.Debug != a2.Debug {
		t.Error("two debug exports of the same input differ")
	}
}
