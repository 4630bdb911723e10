// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor implements an interactive shell around the assembler.
// Within the monitor it is possible to assemble source files, load
// previously assembled binaries, look up exported labels by unique name
// prefix, dump the bytes of the assembled image, and save debug-symbol
// files for import into external debuggers.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"

	"github.com/beevik/asm6502/asm"
)

// A Monitor runs the interactive command loop. It holds the most recent
// assembly result so follow-up commands can inspect it.
type Monitor struct {
	input        *bufio.Scanner
	output       *bufio.Writer
	interactive  bool
	lastCmd      *cmd.Selection
	options      asm.Option
	assembly     *asm.Assembly
	symbols      *prefixtree.Tree[string]
	nextDumpAddr uint16
}

// New creates a new monitor.
func New(options asm.Option) *Monitor {
	return &Monitor{
		options: options,
		symbols: prefixtree.New[string](),
	}
}

// RunCommands accepts commands from a reader and outputs the results to a
// writer. If the commands are interactive, a prompt is displayed while the
// monitor waits for the next command to be entered.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive

	if interactive {
		m.println("asm6502 monitor. Type 'help' for a list of commands.")
	}

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				m.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}
		} else if m.lastCmd != nil {
			c = *m.lastCmd
		}

		if c.Command == nil {
			continue
		}
		m.lastCmd = &c

		handler := c.Command.Data.(func(*Monitor, cmd.Selection) error)
		err = handler(m, c)
		if err != nil {
			break
		}
	}

	m.flush()
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...any) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.printf("* ")
	}
}

func (m *Monitor) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		m.printf("Usage: %s\n", c.Usage)
	}
}

// Replace the active assembly and rebuild the symbol prefix tree from its
// exported labels.
func (m *Monitor) setAssembly(a *asm.Assembly) {
	m.assembly = a
	m.symbols = prefixtree.New[string]()
	for name := range a.Labels {
		m.symbols.Add(strings.ToLower(name), name)
	}
	m.nextDumpAddr = a.Origin
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		m.println("asm6502 commands:")
		for _, b := range briefs {
			m.printf("    %-15s  %s\n", b.name, b.brief)
		}
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		if s.Command.Usage != "" {
			m.printf("Usage: %s\n\n", s.Command.Usage)
		}
		switch {
		case s.Command.Description != "":
			m.printf("%s\n", s.Command.Description)
		case s.Command.Brief != "":
			m.printf("%s.\n", s.Command.Brief)
		}
	}
	return nil
}

func (m *Monitor) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	assembly, err := asm.AssembleFile(filename, m.options, m.output)
	if err != nil {
		m.printf("Failed to assemble '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.setAssembly(assembly)
	m.printf("Loaded %d symbols.\n", len(assembly.Labels))
	return nil
}

func (m *Monitor) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	origin := uint16(0x8000)
	if len(c.Args) >= 2 {
		a, err := parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		origin = a
	}

	file, err := os.Open(filename)
	if err != nil {
		m.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	assembly := &asm.Assembly{Origin: origin, Labels: map[string]int{}}
	if _, err := assembly.ReadFrom(file); err != nil {
		m.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.setAssembly(assembly)
	m.printf("Loaded '%s' at $%04X (%d bytes).\n",
		filepath.Base(filename), origin, len(assembly.Code))
	return nil
}

func (m *Monitor) cmdSymbol(c cmd.Selection) error {
	if m.assembly == nil {
		m.println("Nothing assembled.")
		return nil
	}

	if len(c.Args) == 0 {
		type symbol struct {
			name string
			addr int
		}
		all := make([]symbol, 0, len(m.assembly.Labels))
		for name, addr := range m.assembly.Labels {
			all = append(all, symbol{name, addr})
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].addr != all[j].addr {
				return all[i].addr < all[j].addr
			}
			return all[i].name < all[j].name
		})
		for _, s := range all {
			m.printf("%-16s $%04X\n", s.name, s.addr)
		}
		return nil
	}

	name, err := m.symbols.FindValue(strings.ToLower(c.Args[0]))
	switch err {
	case prefixtree.ErrPrefixNotFound:
		m.printf("Symbol matching '%s' not found.\n", c.Args[0])
		return nil
	case prefixtree.ErrPrefixAmbiguous:
		m.printf("Symbol prefix '%s' is ambiguous.\n", c.Args[0])
		return nil
	}

	m.printf("%-16s $%04X\n", name, m.assembly.Labels[name])
	return nil
}

func (m *Monitor) cmdDump(c cmd.Selection) error {
	if m.assembly == nil || len(m.assembly.Code) == 0 {
		m.println("Nothing assembled.")
		return nil
	}

	addr := m.nextDumpAddr
	if len(c.Args) > 0 && c.Args[0] != "$" {
		a, err := parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(64)
	if len(c.Args) >= 2 {
		b, err := parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		bytes = b
	}

	m.dumpCode(addr, bytes)

	m.nextDumpAddr = addr + bytes
	m.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (m *Monitor) cmdExport(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}
	if m.assembly == nil {
		m.println("Nothing assembled.")
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".mlb"
	}

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		m.printf("Failed to create '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	if _, err := io.WriteString(file, m.assembly.Debug); err != nil {
		m.printf("Failed to save '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.printf("Exported debug symbols to '%s'.\n", filepath.Base(filename))
	return nil
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	return errors.New("Exiting program")
}
