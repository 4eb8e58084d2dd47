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

	"netcalc.org/go/expr"
)

func newEvalCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "compute the value of an expression",
		Long: `eval computes the value of the expression in FILE and prints it.

Rational results are printed in lowest terms, as in 5/6 or +Inf. Curve
operators need a curve algebra, which ncexpr does not provide, so only
expressions whose curve subexpressions are not computed can be evaluated.
A FILE of - reads from standard input.

Examples:

  $ cat <<EOF > sum.yaml
  op: rational-addition
  args:
    - value: 1/2
    - value: 1/3
  EOF

  $ ncexpr eval sum.yaml
  5/6
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runEval),
	}
	addCurveFlags(cmd.Flags())
	return cmd
}

func runEval(cmd *Command, args []string) error {
	x, err := decodeFile(cmd, args[0])
	if err != nil {
		return err
	}
	var v any
	switch x := x.(type) {
	case *expr.RationalExpression:
		v, err = x.Value()
	case *expr.CurveExpression:
		v, err = x.Value()
	}
	exitOnErr(cmd, err, true)
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
