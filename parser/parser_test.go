// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) []Group {
	t.Helper()
	groups, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return groups
}

func parseOne(t *testing.T, src string) Statement {
	t.Helper()
	groups := parse(t, src)
	if len(groups) != 1 || len(groups[0]) != 1 {
		t.Fatalf("expected a single statement, got %d groups", len(groups))
	}
	return groups[0][0]
}

func TestLabeledInstruction(t *testing.T) {
	groups := parse(t, "START:\tLDX #$10")
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("expected one group of two statements, got %v", groups)
	}

	label, ok := groups[0][0].(*Label)
	if !ok || label.Name != "START" {
		t.Errorf("expected label START, got %#v", groups[0][0])
	}
	if label.Pos() != (Pos{Line: 1, Column: 0}) {
		t.Errorf("unexpected label position %+v", label.Pos())
	}

	inst, ok := groups[0][1].(*Instruction)
	if !ok || inst.Mnemonic != "LDX" {
		t.Fatalf("expected LDX instruction, got %#v", groups[0][1])
	}
	imm, ok := inst.Operand.(*Immediate)
	if !ok {
		t.Fatalf("expected immediate operand, got %#v", inst.Operand)
	}
	if n, ok := imm.Expr.(*Number); !ok || n.Val != 0x10 {
		t.Errorf("expected number $10, got %#v", imm.Expr)
	}
}

func TestEquate(t *testing.T) {
	eq, ok := parseOne(t, "TEN = 10").(*Equate)
	if !ok {
		t.Fatal("expected equate statement")
	}
	if eq.Name != "TEN" {
		t.Errorf("name: got %s", eq.Name)
	}
	if n, ok := eq.Value.(*Number); !ok || n.Val != 10 {
		t.Errorf("value: got %#v", eq.Value)
	}
}

func TestLocalLabel(t *testing.T) {
	label, ok := parseOne(t, "@loop:").(*Label)
	if !ok || label.Name != "@loop" {
		t.Errorf("expected local label @loop, got %#v", label)
	}
}

func TestMnemonicCase(t *testing.T) {
	inst, ok := parseOne(t, "\tlda #1").(*Instruction)
	if !ok || inst.Mnemonic != "LDA" {
		t.Errorf("expected mnemonic LDA, got %#v", inst)
	}
}

func TestOperandForms(t *testing.T) {
	cases := []struct {
		operand string
		want    Operand
	}{
		{"", nil},
		{"A", &Accumulator{}},
		{"#$10", &Immediate{}},
		{"$10", &Plain{}},
		{"$10,X", &Indexed{}},
		{"$10,y", &Indexed{}},
		{"($10)", &Indirect{}},
		{"($10,X)", &IndirectX{}},
		{"($10),Y", &IndirectY{}},
	}

	for _, c := range cases {
		src := "\tLDA"
		if c.operand != "" {
			src += " " + c.operand
		}
		inst, ok := parseOne(t, src).(*Instruction)
		if !ok {
			t.Errorf("%s: expected instruction", c.operand)
			continue
		}
		switch c.want.(type) {
		case nil:
			if inst.Operand != nil {
				t.Errorf("%s: expected implied form, got %#v", c.operand, inst.Operand)
			}
		case *Accumulator:
			if _, ok := inst.Operand.(*Accumulator); !ok {
				t.Errorf("%s: expected accumulator form", c.operand)
			}
		case *Immediate:
			if _, ok := inst.Operand.(*Immediate); !ok {
				t.Errorf("%s: expected immediate form", c.operand)
			}
		case *Plain:
			if _, ok := inst.Operand.(*Plain); !ok {
				t.Errorf("%s: expected plain form", c.operand)
			}
		case *Indexed:
			if _, ok := inst.Operand.(*Indexed); !ok {
				t.Errorf("%s: expected indexed form", c.operand)
			}
		case *Indirect:
			if _, ok := inst.Operand.(*Indirect); !ok {
				t.Errorf("%s: expected indirect form", c.operand)
			}
		case *IndirectX:
			if _, ok := inst.Operand.(*IndirectX); !ok {
				t.Errorf("%s: expected indexed-indirect form", c.operand)
			}
		case *IndirectY:
			if _, ok := inst.Operand.(*IndirectY); !ok {
				t.Errorf("%s: expected indirect-indexed form", c.operand)
			}
		}
	}
}

func TestIndexedRegister(t *testing.T) {
	inst := parseOne(t, "\tLDA $10,Y").(*Instruction)
	idx := inst.Operand.(*Indexed)
	if idx.Reg != 'Y' {
		t.Errorf("register: got %c, exp Y", idx.Reg)
	}
}

func TestNumberBases(t *testing.T) {
	cases := []struct {
		src string
		val int
	}{
		{"$ff", 255},
		{"%1010", 10},
		{"0x10", 16},
		{"0B11", 3},
		{"42", 42},
		{"'A'", 65},
		{"';'", 59},
		{"','", 44},
	}

	for _, c := range cases {
		eq := parseOne(t, "V = "+c.src).(*Equate)
		n, ok := eq.Value.(*Number)
		if !ok || n.Val != c.val {
			t.Errorf("%s: got %#v, exp %d", c.src, eq.Value, c.val)
		}
	}
}

func TestExprChain(t *testing.T) {
	eq := parseOne(t, "V = 1+2-3").(*Equate)

	outer, ok := eq.Value.(*BinaryExpr)
	if !ok || outer.Op != '-' {
		t.Fatalf("expected '-' at top level, got %#v", eq.Value)
	}
	inner, ok := outer.L.(*BinaryExpr)
	if !ok || inner.Op != '+' {
		t.Fatalf("expected '+' on the left, got %#v", outer.L)
	}
	if n := inner.L.(*Number); n.Val != 1 {
		t.Errorf("leftmost term: got %d", n.Val)
	}
}

func TestDirectiveSpellings(t *testing.T) {
	cases := []struct {
		src string
		op  DirOp
	}{
		{"\t.org $8000", Origin},
		{"\torg $8000", Origin},
		{"\t.ORG $8000", Origin},
		{"\t.db 1", Byte},
		{"\t.byte 1", Byte},
		{"\t.dw 1", Word},
		{"\t.word 1", Word},
		{"\t.dsb 1", Reserve},
		{"\t.align 2", Align},
		{"\t.enum 0", EnumOpen},
		{"\t.ende", EnumClose},
	}

	for _, c := range cases {
		d, ok := parseOne(t, c.src).(*Directive)
		if !ok || d.Op != c.op {
			t.Errorf("%s: got %#v", c.src, parseOne(t, c.src))
		}
	}
}

func TestDirectiveArgs(t *testing.T) {
	d := parseOne(t, "\t.db \"A,B\", $01, 'c'").(*Directive)
	if len(d.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(d.Args))
	}
	if s, ok := d.Args[0].(*Text); !ok || s.Val != "A,B" {
		t.Errorf("arg 0: got %#v", d.Args[0])
	}
	if n, ok := d.Args[2].(*Number); !ok || n.Val != 'c' {
		t.Errorf("arg 2: got %#v", d.Args[2])
	}
}

func TestComments(t *testing.T) {
	inst, ok := parseOne(t, "\tNOP ; do nothing").(*Instruction)
	if !ok || inst.Mnemonic != "NOP" || inst.Operand != nil {
		t.Errorf("got %#v", inst)
	}

	d := parseOne(t, "\t.db \"a;b\" ; tail").(*Directive)
	if s, ok := d.Args[0].(*Text); !ok || s.Val != "a;b" {
		t.Errorf("got %#v", d.Args[0])
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []string{
		"\tLDA $",
		"\t.org",
		"\t.org 1, 2",
		"\t.ende 1",
		"\t.db",
		"\t.db 1,",
		"\tLDA ($10",
		"\t.db \"abc",
		"1BAD:",
		"@x = 1",
		"\tLDA 'ab'",
		"V = 'é'",
		"V = '\xe9'",
	}

	for _, src := range cases {
		_, err := Parse(strings.NewReader(src))
		if err == nil {
			t.Errorf("%q: expected syntax error", src)
			continue
		}
		if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("%q: expected *SyntaxError, got %T", src, err)
		}
	}
}
