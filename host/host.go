// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive debugger calculator. It evaluates
// expressions, parses addresses and address ranges, and inspects a sparse
// 32-bit memory space using the calc package.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/clac/calc"
	"github.com/beevik/cmd"
)

// A selection is a command looked up in the command tree together with the
// arguments that followed it.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// ErrQuit is returned by RunCommands when the quit command was entered.
var ErrQuit = errors.New("quit requested")

const (
	maxDumpBytes = 1 << 16
	maxFillBytes = 1 << 24
)

// A Host reads debugger commands and writes their results.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *selection
	settings    *settings
	mem         *memory
}

// New creates a new host with default settings.
func New() *Host {
	return &Host{
		settings: newSettings(),
		mem:      newMemory(),
	}
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered. It returns nil once the
// reader is exhausted, or ErrQuit if the quit command was entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) error {
	h.output = bufio.NewWriter(w)
	defer h.flush()

	if interactive {
		h.println()
	}
	return h.runCommands(r, interactive)
}

func (h *Host) runCommands(r io.Reader, interactive bool) error {
	prevInput, prevInteractive := h.input, h.interactive
	defer func() {
		h.input, h.interactive = prevInput, prevInteractive
	}()
	h.input = bufio.NewScanner(r)
	h.interactive = interactive

	for {
		h.prompt()

		line, err := h.getLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var c selection
		if strings.TrimSpace(line) != "" {
			n, args, err := cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			if t, ok := n.(*cmd.Tree); ok {
				t.DisplayHelp(h.output)
				h.flush()
				continue
			}
			c = selection{Command: n.(*cmd.Command), Args: args}
		} else if h.interactive && h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, selection) error)
		if err := handler(h, c); err != nil {
			return err
		}
	}
}

// Evaluate evaluates an expression using the host's number base and
// evaluator limits.
func (h *Host) Evaluate(expr string) (int64, error) {
	return h.settings.evaluator().Evaluate(expr)
}

// ParseRange parses an address or address range using the host's number
// base.
func (h *Host) ParseRange(s string) (calc.Range, error) {
	return calc.ParseRange(s, h.settings.NumberBase)
}

// SetSetting changes the value of a configuration variable. The key may be
// any unambiguous prefix of the variable name.
func (h *Host) SetSetting(key string, value any) error {
	return h.settings.Set(key, value)
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) cmdEvaluate(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	expr := strings.Join(c.Args, " ")
	v, err := h.Evaluate(expr)
	if err != nil {
		h.displayExprError(expr, err)
		return nil
	}

	h.printf("= %s\n", formatValue(v))
	return nil
}

func (h *Host) cmdExecute(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	return h.runCommands(file, false)
}

func (h *Host) cmdHelp(c selection) error {
	if err := cmds.GetHelp(h.output, c.Args); err != nil {
		h.printf("%v.\n", err)
		return nil
	}
	h.flush()
	return nil
}

func (h *Host) cmdMemoryDump(c selection) error {
	addr, bytes := h.settings.NextMemDumpAddr, uint64(h.settings.MemDumpBytes)
	if len(c.Args) > 0 {
		r, err := h.ParseRange(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = r.Lower
		if !r.Single {
			bytes = r.Len()
		}
	}

	if bytes > maxDumpBytes {
		h.printf("Dump limited to %d bytes.\n", maxDumpBytes)
		bytes = maxDumpBytes
	}

	h.settings.NextMemDumpAddr = h.dumpMemory(addr, bytes)
	h.lastCmd.Args = nil
	return nil
}

func (h *Host) cmdMemorySet(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := calc.ParseUnsignedNumber(c.Args[0], h.settings.NumberBase)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(c.Args)-1)
	for _, expr := range c.Args[1:] {
		v, err := h.Evaluate(expr)
		if err != nil {
			h.displayExprError(expr, err)
			return nil
		}
		b = append(b, byte(v))
	}

	h.mem.StoreBytes(addr, b)
	h.printf("Stored %d byte(s) at $%08X.\n", len(b), addr)
	return nil
}

func (h *Host) cmdMemoryFill(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	r, err := h.ParseRange(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if r.Len() > maxFillBytes {
		h.printf("Range too large to fill (max %d bytes).\n", maxFillBytes)
		return nil
	}

	expr := strings.Join(c.Args[1:], " ")
	v, err := h.Evaluate(expr)
	if err != nil {
		h.displayExprError(expr, err)
		return nil
	}

	h.mem.Fill(r.Lower, r.Upper, byte(v))
	h.printf("Filled $%08X-$%08X with $%02X.\n", r.Lower, r.Upper, byte(v))
	return nil
}

func (h *Host) cmdNumber(c selection) error {
	if len(c.Args) != 1 {
		h.displayUsage(c.Command)
		return nil
	}

	v, err := calc.ParseUnsignedNumber(c.Args[0], h.settings.NumberBase)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("= %s\n", formatValue(int64(v)))
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return ErrQuit
}

func (h *Host) cmdRange(c selection) error {
	if len(c.Args) != 1 {
		h.displayUsage(c.Command)
		return nil
	}

	r, err := h.ParseRange(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if r.Single {
		h.printf("Address $%08X.\n", r.Lower)
	} else {
		h.printf("Range $%08X-$%08X (%d bytes).\n", r.Lower, r.Upper, r.Len())
	}
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c.Command)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")
		v, err := h.Evaluate(value)
		if err != nil {
			h.displayExprError(value, err)
			return nil
		}

		if err := h.settings.Set(key, v); err != nil {
			h.printf("%v.\n", err)
			return nil
		}
		h.println("Setting updated.")
	}

	return nil
}

// dumpMemory displays bytes bytes of memory starting at addr0 and returns
// the address following the last byte displayed.
func (h *Host) dumpMemory(addr0 uint32, bytes uint64) (next uint32) {
	if bytes == 0 {
		return addr0
	}

	addr1 := uint64(addr0) + bytes - 1
	if addr1 > 0xffffffff {
		addr1 = 0xffffffff
	}

	buf := []byte("        -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-uint64(addr0) < 8 {
		addrToBuf(addr0, buf[0:8])
		for a, c1, c2 := uint64(addr0), 10, 36; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.LoadByte(uint32(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return uint32(addr1 + 1)
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint64(addr0) &^ 7
	stop := (addr1 + 8) &^ 7

	for row := start; row < stop; row += 8 {
		addrToBuf(uint32(row), buf[0:8])
		for a, c1, c2 := row, 10, 36; c1 < 33; a, c1, c2 = a+1, c1+3, c2+1 {
			if a >= uint64(addr0) && a <= addr1 {
				m := h.mem.LoadByte(uint32(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
	return uint32(addr1 + 1)
}

func (h *Host) displayExprError(expr string, err error) {
	var ee *calc.ExprError
	if !errors.As(err, &ee) {
		h.printf("%v\n", err)
		return
	}
	h.printf("    %s\n    %s^\n%s.\n", expr, strings.Repeat(" ", ee.Offset), ee.Kind)
}

func (h *Host) displayUsage(c *cmd.Command) {
	c.DisplayUsage(h.output)
	h.flush()
}

func formatValue(v int64) string {
	return fmt.Sprintf("$%X (hex), #%d (dec), %%%b (bin)", uint64(v), v, uint64(v))
}
