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

	"github.com/spf13/cobra"

	"netcalc.org/go/encoding/exprfile"
	"netcalc.org/go/expr"
	"netcalc.org/go/expr/identities"
)

func newRewriteCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite FILE",
		Short: "simplify an expression using identities",
		Long: `rewrite applies identities to the expression in FILE, left to right,
until none applies or --limit passes have been made, and prints the result.

By default all built-in identities are used. The --identity flag selects
built-in identities by name, and --identities-file adds identities read
from a YAML file of the form

	- name: min-self
	  left:
	    op: minimum
	    args: [{placeholder: f}, {placeholder: f}]
	  right: {placeholder: f}
	  hypotheses:
	    - {placeholder: f, property: concave}

An identity whose hypotheses name a curve property applies only if the
curve has that property; see --property.

The result is printed in the format given by --out: unicode, latex,
yaml or json.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runRewrite),
	}
	addCurveFlags(cmd.Flags())
	addRenderFlags(cmd.Flags())
	cmd.Flags().StringArrayP(string(flagIdentity), "i", nil, "use the built-in identity with this name")
	cmd.Flags().String(string(flagIdentitiesFile), "", "read more identities from this file")
	cmd.Flags().Int(string(flagLimit), expr.DefaultRewriteLimit, "maximum number of passes")
	cmd.Flags().String(string(flagOut), "unicode", "output format (unicode|latex|yaml|json)")
	return cmd
}

func runRewrite(cmd *Command, args []string) error {
	x, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}
	reg, err := registry(cmd)
	if err != nil {
		return err
	}
	y, passes, err := expr.Rewrite(x, reg, flagLimit.Int(cmd))
	exitOnErr(cmd, err, true)
	cmd.logger.Info("rewrite done", "identities", reg.Len(), "passes", passes)

	var out []byte
	switch format := flagOut.String(cmd); format {
	case "yaml":
		out, err = exprfile.Encode(y)
	case "json":
		out, err = exprfile.EncodeJSON(y)
	default:
		var s string
		s, err = render(cmd, y, format)
		out = []byte(s + "\n")
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// registry returns the identities selected by the flags of cmd.
func registry(cmd *Command) (*expr.Registry, error) {
	reg := expr.NewRegistry()
	names := flagIdentity.StringArray(cmd)
	file := flagIdentitiesFile.String(cmd)
	if len(names) == 0 && file == "" {
		identities.Register(reg)
		return reg, nil
	}
	for _, name := range names {
		eq, ok := identities.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown identity %q", name)
		}
		reg.Add(eq.Left.Op(), eq)
	}
	if file == "" {
		return reg, nil
	}
	opts, err := decodeOptions(cmd)
	if err != nil {
		return nil, err
	}
	data, err := readInput(cmd, file)
	if err != nil {
		return nil, err
	}
	eqs, err := exprfile.DecodeEquivalences(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	for _, eq := range eqs {
		reg.Add(eq.Left.Op(), eq)
	}
	return reg, nil
}
