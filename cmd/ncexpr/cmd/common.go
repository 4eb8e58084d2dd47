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

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"netcalc.org/go/encoding/exprfile"
	"netcalc.org/go/expr"
)

func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

// printer returns a printer localized for the user's language.
func printer() *message.Printer {
	return message.NewPrinter(getLang())
}

func exitOnErr(cmd *Command, err error, fatal bool) {
	if err == nil {
		return
	}
	printer().Fprintf(cmd.Stderr(), "%v\n", err)
	if fatal {
		exit()
	}
}

// readInput returns the contents of the named file, or of standard input
// if name is "-".
func readInput(cmd *Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// decodeOptions returns the options for decoding the documents given to
// cmd. Curve leaves resolve to curves that carry the properties declared
// with the --property flag.
func decodeOptions(cmd *Command) (*exprfile.Options, error) {
	props := map[string][]expr.Property{}
	for _, s := range flagProperty.StringArray(cmd) {
		name, prop, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s %q: want NAME=PROPERTY", flagProperty, s)
		}
		p, ok := expr.LookupProperty(prop)
		if !ok {
			return nil, fmt.Errorf("invalid --%s %q: unknown property %q", flagProperty, s, prop)
		}
		props[name] = append(props[name], p)
	}
	return &exprfile.Options{
		Curves: func(name string) (expr.Curve, bool) {
			return newSymbol(name, props[name]...), true
		},
		Settings: cmd.settings,
	}, nil
}

// decodeFile decodes the single expression in the named file.
func decodeFile(cmd *Command, name string) (expr.Node, error) {
	opts, err := decodeOptions(cmd)
	if err != nil {
		return nil, err
	}
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	x, err := exprfile.Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return x, nil
}

// symbol is a curve known only by its name and declared properties. Two
// symbols are equivalent if they have the same name.
type symbol struct {
	name  string
	props uint32
}

func newSymbol(name string, props ...expr.Property) *symbol {
	s := &symbol{name: name}
	for _, p := range props {
		s.props |= 1 << p
	}
	return s
}

func (s *symbol) Equivalent(c expr.Curve) bool {
	t, ok := c.(*symbol)
	return ok && t.name == s.name
}

func (s *symbol) Is(p expr.Property) bool { return s.props&(1<<p) != 0 }

func (s *symbol) String() string { return s.name }
