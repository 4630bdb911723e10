// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass 6502 assembler backend. It consumes
// the statement groups produced by the parser package, resolves labels
// and constants, processes directives, encodes instructions, and renders
// a debug-symbol table for import into external debuggers.
package asm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/asm6502/mos"
	"github.com/beevik/asm6502/parser"
)

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// A pass identifies which of the two assembly passes is running.
type pass byte

const (
	// Pass 1 populates the symbol tables and fixes every instruction's
	// addressing mode, discarding generated bytes.
	collectingLabels pass = iota

	// Pass 2 re-runs the same statement sequence with a fully populated
	// symbol table and collects the final machine code.
	emittingCode
)

var passName = []string{"Collecting labels", "Emitting code"}

// The assembler is the state object for one assembly invocation. All
// mutable tables and the program counter live here; nothing is shared
// across invocations.
type assembler struct {
	pass      pass                      // current pass
	pc        int                       // the program counter
	origin    int                       // address fixed by the first origin directive
	originSet bool                      // origin directive seen this pass
	savedPC   int                       // single save slot for scratch blocks
	inScratch bool                      // inside a scratch block
	scope     string                    // most recently defined global label
	globals   map[string]int            // global label -> address
	locals    map[string]map[string]int // scope owner -> local label -> address
	constants map[string]parser.Expr    // constant -> defining expression
	resolving map[string]bool           // constants being resolved (cycle guard)
	modes     []mos.Mode                // addressing mode fixed per instruction in pass 1
	instIndex int                       // index of next instruction statement
	code      []byte                    // generated machine code
	filename  string                    // source name used in errors
	exportCfg ExportConfig              // debug-symbol export configuration
	out       io.Writer                 // output used for verbose logging
	verbose   bool                      // verbose output
}

// Assembly contains the assembled machine code and other data associated
// with the machine code.
type Assembly struct {
	Code   []byte         // assembled machine code
	Origin uint16         // address of the first emitted byte
	Labels map[string]int // global label -> address
	Debug  string         // rendered debug-symbol text
}

// ReadFrom reads machine code from a binary input source.
func (a *Assembly) ReadFrom(r io.Reader) (n int64, err error) {
	a.Code, err = io.ReadAll(r)
	n = int64(len(a.Code))
	if n > 0x10000 {
		return n, fmt.Errorf("code exceeded 64K size")
	}
	return n, err
}

// WriteTo saves machine code as binary data into an output writer.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(a.Code)
	return int64(nn), err
}

// Assemble reads 6502 assembly code from the provided stream and runs
// the two-pass assembly process on it. The filename is used only for
// error reporting. A fresh assembly context is constructed per call;
// re-entrant calls share no state.
func Assemble(r io.Reader, filename string, cfg ExportConfig, out io.Writer, options Option) (*Assembly, error) {
	if out == nil {
		out = os.Stdout
	}

	groups, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	a := &assembler{
		globals:   make(map[string]int),
		locals:    make(map[string]map[string]int),
		constants: make(map[string]parser.Expr),
		resolving: make(map[string]bool),
		filename:  filename,
		exportCfg: cfg.orDefaults(),
		out:       out,
		verbose:   (options & Verbose) != 0,
	}

	for _, p := range []pass{collectingLabels, emittingCode} {
		if err := a.runPass(p, groups); err != nil {
			return nil, err
		}
	}

	return &Assembly{
		Code:   a.code,
		Origin: uint16(a.origin),
		Labels: a.globals,
		Debug:  renderDebug(a.globals, a.locals, a.exportCfg),
	}, nil
}

// AssembleFile reads a file containing 6502 assembly code, assembles it,
// and produces a binary output file and a debug-symbol file alongside the
// source file.
func AssembleFile(path string, options Option, out io.Writer) (*Assembly, error) {
	inFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	assembly, err := Assemble(inFile, path, DefaultExportConfig(), out, options)
	if err != nil {
		fmt.Fprintln(out, err)
		return nil, err
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]
	binPath := prefix + ".bin"
	binFile, err := os.OpenFile(binPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	defer binFile.Close()

	if _, err = assembly.WriteTo(binFile); err != nil {
		return nil, err
	}

	mlbPath := prefix + ".mlb"
	mlbFile, err := os.OpenFile(mlbPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	defer mlbFile.Close()

	if _, err = io.WriteString(mlbFile, assembly.Debug); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path),
		filepath.Base(binPath),
		filepath.Base(mlbPath))
	return assembly, nil
}

// Run one full pass over the statement stream. The program counter, the
// origin flag, the scratch-block slot and the active label scope all
// reset to their initial values at the start of each pass.
func (a *assembler) runPass(p pass, groups []parser.Group) error {
	a.pass = p
	a.pc = 0
	a.originSet = false
	a.savedPC = 0
	a.inScratch = false
	a.scope = ""
	a.instIndex = 0
	a.logSection(passName[p])

	for _, g := range groups {
		for _, st := range g {
			if err := a.process(st); err != nil {
				return err
			}
		}
	}

	if a.inScratch {
		return a.statementErrorf(parser.Pos{}, "%s block left open at end of input", parser.EnumOpen)
	}
	return nil
}

// Dispatch a single statement to its handler.
func (a *assembler) process(st parser.Statement) error {
	switch st := st.(type) {
	case *parser.Label:
		return a.defineLabel(st)
	case *parser.Equate:
		return a.defineConstant(st)
	case *parser.Directive:
		return a.directive(st)
	case *parser.Instruction:
		return a.instruction(st)
	default:
		return a.statementErrorf(st.Pos(), "unknown statement kind")
	}
}

// Emit machine code bytes. Pass 1 and scratch blocks only advance the
// program counter; pass 2 appends to the final output.
func (a *assembler) emit(b ...byte) {
	if a.pass == emittingCode && !a.inScratch {
		a.code = append(a.code, b...)
	}
	a.pc += len(b)
}

// Advance the program counter without emitting bytes.
func (a *assembler) advance(n int) {
	a.pc += n
}

// Emit n zero-fill bytes.
func (a *assembler) fill(n int) {
	if a.pass == emittingCode && !a.inScratch {
		a.code = append(a.code, make([]byte, n)...)
	}
	a.pc += n
}

// In verbose mode, log a string to the output writer.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a section header to the output writer.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
