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
	"math"

	"github.com/spf13/cobra"

	"netcalc.org/go/expr"
)

func newRenderCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "print an expression as text or LaTeX",
		Long: `render prints the expression in FILE.

The --format flag selects unicode or latex output. Named subexpressions
are shown by their name once --depth levels of named nodes have been
expanded. The --at flag selects a subexpression by its position, such as
/LeftOperand/Operand(2).

Examples:

  $ cat <<EOF > delay.yaml
  op: delay-by
  args:
    - curve: beta
    - value: 3/4
      name: T
  EOF

  $ ncexpr render --rationals-as-names delay.yaml
  beta ⊗ δ_T
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runRender),
	}
	addCurveFlags(cmd.Flags())
	addRenderFlags(cmd.Flags())
	cmd.Flags().String(string(flagFormat), "unicode", "output format (unicode|latex)")
	cmd.Flags().String(string(flagAt), "", "render only the subexpression at this position")
	return cmd
}

func runRender(cmd *Command, args []string) error {
	x, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}
	if at := flagAt.String(cmd); at != "" {
		p, err := expr.ParsePosition(at)
		if err != nil {
			return err
		}
		x, err = expr.At(x, p)
		exitOnErr(cmd, err, true)
	}
	s, err := render(cmd, x, flagFormat.String(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}

// render formats x using the render flags of cmd.
func render(cmd *Command, x expr.Node, format string) (string, error) {
	depth := flagDepth.Int(cmd)
	if depth < 0 {
		depth = math.MaxInt
	}
	names := flagRationalNames.Bool(cmd)
	switch format {
	case "unicode":
		return x.ToUnicodeString(depth, names), nil
	case "latex":
		return x.ToLatexString(depth, names), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}
