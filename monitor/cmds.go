// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import "github.com/beevik/cmd"

var cmds *cmd.Tree

// Ordered summary of the top-level commands, used by the help command.
var briefs = []struct {
	name  string
	brief string
}{
	{"assemble", "Assemble a source file"},
	{"load", "Load an assembled binary file"},
	{"symbol", "Look up or list exported symbols"},
	{"dump", "Dump assembled code bytes"},
	{"export", "Save the debug-symbol file"},
	{"quit", "Quit the program"},
}

func init() {
	root := cmd.NewTree("asm6502")
	root.AddCommand(cmd.Command{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Monitor).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:  "assemble",
		Brief: "Assemble a source file",
		Description: "Run the assembler on the specified source file," +
			" producing a binary file and a debug-symbol file if successful." +
			" The assembled labels become available to the symbol and dump" +
			" commands.",
		Usage: "assemble <filename>",
		Data:  (*Monitor).cmdAssemble,
	})
	root.AddCommand(cmd.Command{
		Name:  "load",
		Brief: "Load an assembled binary file",
		Description: "Load the contents of an assembled binary file so its" +
			" bytes can be inspected with the dump command. An origin address" +
			" may be specified as a second parameter; it defaults to $8000.",
		Usage: "load <filename> [<origin>]",
		Data:  (*Monitor).cmdLoad,
	})
	root.AddCommand(cmd.Command{
		Name:  "symbol",
		Brief: "Look up or list exported symbols",
		Description: "Look up the address of a label exported by the most" +
			" recent assembly. A unique prefix of the label name is" +
			" sufficient. When used without arguments, all exported labels" +
			" are listed in address order.",
		Usage: "symbol [<name>]",
		Data:  (*Monitor).cmdSymbol,
	})
	root.AddCommand(cmd.Command{
		Name:  "dump",
		Brief: "Dump assembled code bytes",
		Description: "Dump the bytes of the most recent assembly starting" +
			" from the specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the dump" +
			" continues from where the last dump left off.",
		Usage: "dump [<address>] [<bytes>]",
		Data:  (*Monitor).cmdDump,
	})
	root.AddCommand(cmd.Command{
		Name:  "export",
		Brief: "Save the debug-symbol file",
		Description: "Save the debug-symbol table of the most recent" +
			" assembly to the specified file.",
		Usage: "export <filename>",
		Data:  (*Monitor).cmdExport,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Monitor).cmdQuit,
	})

	// Add command shortcuts.
	root.AddShortcut("a", "assemble")
	root.AddShortcut("l", "load")
	root.AddShortcut("s", "symbol")
	root.AddShortcut("sym", "symbol")
	root.AddShortcut("d", "dump")
	root.AddShortcut("e", "export")
	root.AddShortcut("q", "quit")
	root.AddShortcut("?", "help")

	cmds = root
}
