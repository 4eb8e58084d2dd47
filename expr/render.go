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

package expr

import (
	"fmt"
	"strings"

	"netcalc.org/go/rational"
)

// ToLatexString renders x as LaTeX. See Node.
func (x *Expression[T]) ToLatexString(depth int, showRationalsAsName bool) string {
	return renderer{latex: true, depth: depth, rationalNames: showRationalsAsName}.render(x).s
}

// ToUnicodeString renders x as plain Unicode text. See Node.
func (x *Expression[T]) ToUnicodeString(depth int, showRationalsAsName bool) string {
	return renderer{depth: depth, rationalNames: showRationalsAsName}.render(x).s
}

type rendered struct {
	s string

	// delimited is set if s can be used as an operand without
	// parentheses.
	delimited bool
}

type renderer struct {
	latex         bool
	depth         int
	rationalNames bool
}

func (r renderer) render(x Node) rendered {
	if r.depth <= 0 && x.Name() != "" && x.Op().Shape() != LeafShape {
		return rendered{x.Name(), true}
	}
	return Accept[rendered](x, r)
}

func (r renderer) VisitLeaf(x Node) rendered {
	if x.Op() != RationalLeafOp || (r.rationalNames && x.Name() != "") {
		return rendered{x.Name(), true}
	}
	return r.rational(rationalLeaf(x))
}

func (r renderer) rational(v rational.Rational) rendered {
	minus := "-"
	if !r.latex {
		minus = "−"
	}
	switch {
	case v.IsPlusInfinite():
		if r.latex {
			return rendered{`+\infty`, false}
		}
		return rendered{"+∞", false}
	case v.IsMinusInfinite():
		if r.latex {
			return rendered{`-\infty`, false}
		}
		return rendered{minus + "∞", false}
	}
	s := v.Abs().String()
	if num, den, ok := strings.Cut(s, "/"); ok && r.latex {
		s = `\frac{` + num + `}{` + den + `}`
	}
	if v.Sign() < 0 {
		return rendered{minus + s, false}
	}
	return rendered{s, true}
}

func (r renderer) VisitUnary(x Node, a Node) rendered { return r.operator(x, a) }

func (r renderer) VisitBinary(x Node, a, b Node) rendered { return r.operator(x, a, b) }

func (r renderer) VisitNary(x Node, args []Node) rendered { return r.operator(x, args...) }

func (r renderer) operator(x Node, args ...Node) rendered {
	nt := x.Op().info().unicode
	if r.latex {
		nt = x.Op().info().latex
	}
	sub := r
	sub.depth--
	strs := make([]string, len(args))
	for i, a := range args {
		c := sub.render(a)
		if !c.delimited && !nt.encloses {
			c.s = r.parens(c.s)
		}
		strs[i] = c.s
	}
	switch {
	case nt.sep != "":
		return rendered{strings.Join(strs, nt.sep), false}
	case x.Op().Shape() == NaryShape:
		return rendered{fmt.Sprintf(nt.tmpl, strings.Join(strs, ", ")), nt.delimited}
	}
	vals := make([]any, len(strs))
	for i, s := range strs {
		vals[i] = s
	}
	return rendered{fmt.Sprintf(nt.tmpl, vals...), nt.delimited}
}

func (r renderer) parens(s string) string {
	if r.latex {
		return `\left(` + s + `\right)`
	}
	return "(" + s + ")"
}
