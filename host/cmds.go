// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	// Create a command tree, where the data stored with each command is a
	// host callback capable of handling the command.
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "clac"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "evaluate",
		Brief: "Evaluate an expression",
		Description: "Evaluate an integer expression. Expressions may use" +
			" the operators | & ^ << >> + - * /, the prefix operators - + ~," +
			" and parentheses. Numbers without a prefix are read in the" +
			" configured number base. Use $ or 0x for hexadecimal, # or 0d" +
			" for decimal, % or 0b for binary and 0o for octal.",
		Usage: "evaluate <expression>",
		Data:  (*Host).cmdEvaluate,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a script file",
		Description: "Load a script file from disk and execute the" +
			" commands it contains.",
		Usage: "execute <filename>",
		Data:  (*Host).cmdExecute,
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory",
		Description: "Dump the contents of memory. Pass either a" +
			" start address, in which case MemDumpBytes bytes are" +
			" dumped, or an address range such as $1000-$10ff. If no" +
			" address is specified, the dump continues from where the" +
			" last dump left off.",
		Usage: "memory dump [<address>|<range>]",
		Data:  (*Host).cmdMemoryDump,
	})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the" +
			" specified address. The values to assign should be a" +
			" series of space-separated byte values. You may use an" +
			" expression for each byte value.",
		Usage: "memory set <address> <byte> [<byte> ...]",
		Data:  (*Host).cmdMemorySet,
	})
	me.AddCommand(cmd.CommandDescriptor{
		Name:  "fill",
		Brief: "Fill a memory range",
		Description: "Fill every byte of an inclusive address range" +
			" with a value. The value may be an expression.",
		Usage: "memory fill <range> <byte>",
		Data:  (*Host).cmdMemoryFill,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "number",
		Brief: "Parse an address or register value",
		Description: "Parse a single unsigned 32-bit number the way" +
			" addresses are parsed, and display it in every base.",
		Usage: "number <value>",
		Data:  (*Host).cmdNumber,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "range",
		Brief: "Parse an address range",
		Description: "Parse a single address or an inclusive address" +
			" range of the form <lower>-<upper>, and display its bounds" +
			" and length.",
		Usage: "range <address>|<lower>-<upper>",
		Data:  (*Host).cmdRange,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see" +
			" the current values of all configuration variables, type set" +
			" without any arguments. Values are expressions, so use a" +
			" prefix such as # when changing NumberBase from a non-decimal" +
			" base.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})

	// Add command shortcuts.
	root.AddShortcut("?", "help")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("x", "execute")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("mf", "memory fill")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("n", "number")

	cmds = root
}
