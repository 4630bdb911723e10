// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/beevik/term"

	"github.com/beevik/asm6502/asm"
	"github.com/beevik/asm6502/monitor"
)

var (
	assemble string
	verbose  bool
)

func init() {
	flag.StringVar(&assemble, "a", "", "assemble file")
	flag.BoolVar(&verbose, "v", false, "verbose assembly output")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: asm6502 [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	var options asm.Option
	if verbose {
		options |= asm.Verbose
	}

	// Do command-line assemble if requested.
	if assemble != "" {
		_, err := asm.AssembleFile(assemble, options, os.Stdout)
		if err != nil {
			fmt.Printf("Failed to assemble file '%s'.\n", assemble)
			os.Exit(1)
		}
		os.Exit(0)
	}

	m := monitor.New(options)

	// Run commands contained in command-line files.
	args := flag.Args()
	for _, filename := range args {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		m.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Run commands interactively, with a prompt only when stdin is a
	// terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	m.RunCommands(os.Stdin, os.Stdout, interactive)
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
