// Copyright 2026 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the ncexpr command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"netcalc.org/go/expr"
	"netcalc.org/go/internal/ncdebug"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		if err := c.setup(); err != nil {
			return err
		}
		return f(c, args)
	}
}

func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "ncexpr",
		Short: "ncexpr evaluates and rewrites network calculus expressions.",
		Long: `ncexpr reads expressions of network calculus, written as YAML or JSON
documents, and evaluates, renders or rewrites them.

A document describes one node of an expression tree:

	op: minimum
	args:
	  - op: convolution
	    args:
	      - curve: beta
	      - placeholder: f
	  - value: 3/4

Curves are known only by name. Their properties are given with the
--property flag, as in --property beta=concave, and are used to decide
whether an identity applies.

Setting NCEXPR_DEBUG=strict=1 turns ignored errors into failures, and
NCEXPR_DEBUG=logeval=1 together with --verbose logs each computed node.
NCEXPR_DEBUG accepts the settings ` + strings.Join(ncdebug.Names(), ", ") + `.`,

		SilenceUsage: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newEvalCmd(c),
		newRenderCmd(c),
		newRewriteCmd(c),
		newVersionCmd(c),
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the ncexpr tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	return New(args).Run(ctx)
}

// Command is the ncexpr command or one of its subcommands.
type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	// settings is given to every expression read by the command.
	settings *expr.Settings

	logger *slog.Logger

	// Only set once any error has been written to Stderr.
	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that should be used for error messages.
// Writing to it will result in the command's exit code being 1.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// SetOutput sets the output of the command and all its subcommands.
func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOutput(w)
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

// Run executes the command.
func (c *Command) Run(ctx context.Context) (err error) {
	defer recoverError(&err)

	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case panicError:
		*err = e.Err
	default:
		panic(e)
	}
}

// New creates the top-level command for the given arguments.
func New(args []string) *Command {
	cmd := newRootCmd()
	cmd.root.SetArgs(args)
	return cmd
}

// setup reads the debug settings and configures logging for the active
// command.
func (c *Command) setup() error {
	if err := ncdebug.Init(); err != nil {
		return err
	}
	level := slog.LevelWarn
	if flagVerbose.Bool(c) {
		level = slog.LevelDebug
	}
	w := c.root.ErrOrStderr()
	c.logger = slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
	c.settings = &expr.Settings{Logger: c.logger}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

type panicError struct {
	Err error
}

func exit() {
	panic(panicError{ErrPrintedError})
}
