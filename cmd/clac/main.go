// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clac is an interactive debugger calculator.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/clac/host"
	"github.com/beevik/term"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "clac [script ...]",
	Short: "Debugger expression calculator",
	Long: "clac evaluates integer expressions, numbers and address ranges the" +
		" way a debugger command line does. Script files named on the command" +
		" line are executed first; then commands are read from standard input.",
	SilenceUsage: true,
	RunE:         run,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

var rangeCmd = &cobra.Command{
	Use:   "range <address>|<lower>-<upper>",
	Short: "Parse a single address or address range",
	Args:  cobra.ExactArgs(1),
	RunE:  runRange,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ")"
	rootCmd.SetVersionTemplate("clac version {{.Version}}\n")

	rootCmd.PersistentFlags().Int("base", 0, "default number base: 2, 8, 10 or 16 (env CLAC_BASE)")
	rootCmd.PersistentFlags().String("config", "", "YAML settings file (env CLAC_CONFIG)")

	rootCmd.AddCommand(evalCmd, rangeCmd)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("clac: ")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	h, err := newHost(cmd)
	if err != nil {
		return err
	}

	// Run commands contained in command-line files.
	for _, filename := range args {
		file, err := os.Open(filename)
		if err != nil {
			return err
		}
		err = h.RunCommands(file, os.Stdout, false)
		file.Close()
		switch {
		case errors.Is(err, host.ErrQuit):
			return nil
		case err != nil:
			return err
		}
	}

	// Run commands interactively.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	err = h.RunCommands(os.Stdin, os.Stdout, interactive)
	if errors.Is(err, host.ErrQuit) {
		return nil
	}
	return err
}

func runEval(cmd *cobra.Command, args []string) error {
	h, err := newHost(cmd)
	if err != nil {
		return err
	}

	expr := strings.Join(args, " ")
	v, err := h.Evaluate(expr)
	if err != nil {
		return fmt.Errorf("'%s': %w", expr, err)
	}

	fmt.Printf("$%X #%d\n", uint64(v), v)
	return nil
}

func runRange(cmd *cobra.Command, args []string) error {
	h, err := newHost(cmd)
	if err != nil {
		return err
	}

	r, err := h.ParseRange(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("$%08X $%08X %d\n", r.Lower, r.Upper, r.Len())
	return nil
}

// options holds the host settings chosen on the command line or through
// the environment.
type options struct {
	base       int
	configFile string
}

// resolveOptions applies the CLAC_BASE and CLAC_CONFIG environment variables
// to any value not given on the command line. An unparsable CLAC_BASE is
// logged and ignored.
func resolveOptions(flagBase int, flagConfig string, getenv func(string) string) options {
	o := options{configFile: getenv("CLAC_CONFIG")}
	if flagConfig != "" {
		o.configFile = flagConfig
	}

	if v := getenv("CLAC_BASE"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Warning: ignoring CLAC_BASE=%q: %v", v, err)
		} else {
			o.base = b
		}
	}
	if flagBase != 0 {
		o.base = flagBase
	}
	return o
}

// newHost creates a host configured from, in increasing order of priority,
// the settings file and the number base option.
func (o options) newHost() (*host.Host, error) {
	h := host.New()

	if o.configFile != "" {
		if err := h.LoadConfigFile(o.configFile); err != nil {
			return nil, err
		}
	}

	if o.base != 0 {
		if err := h.SetSetting("NumberBase", o.base); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func newHost(cmd *cobra.Command) (*host.Host, error) {
	base, _ := cmd.Flags().GetInt("base")
	config, _ := cmd.Flags().GetString("config")
	return resolveOptions(base, config, os.Getenv).newHost()
}
