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

import "fmt"

// A Domain is the kind of value an expression computes.
type Domain uint8

const (
	noDomain Domain = iota

	// CurveDomain expressions compute a Curve.
	CurveDomain

	// RationalDomain expressions compute a rational.Rational.
	RationalDomain
)

func (d Domain) String() string {
	switch d {
	case CurveDomain:
		return "curve"
	case RationalDomain:
		return "rational"
	}
	return fmt.Sprintf("Domain(%d)", uint8(d))
}

// A Shape classifies operators by how they hold their operands.
type Shape uint8

const (
	// LeafShape nodes have no operands.
	LeafShape Shape = iota

	// UnaryShape nodes have a single operand.
	UnaryShape

	// BinaryShape nodes have a left and a right operand. Their operator is
	// neither commutative nor associative.
	BinaryShape

	// NaryShape nodes have two or more operands of the node's own domain.
	// Their operator is commutative and associative.
	NaryShape
)

func (s Shape) String() string {
	switch s {
	case LeafShape:
		return "leaf"
	case UnaryShape:
		return "unary"
	case BinaryShape:
		return "binary"
	case NaryShape:
		return "n-ary"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// An Op identifies the kind of an expression node. The set of operators is
// closed: behavior that depends on the kind of a node switches on its Op.
type Op uint8

const (
	NoOp Op = iota

	// Leaves.
	CurveLeafOp
	CurvePlaceholderOp
	RationalLeafOp
	RationalPlaceholderOp

	// Curve n-ary operators.
	AdditionOp
	MinimumOp
	MaximumOp
	ConvolutionOp
	MaxPlusConvolutionOp

	// Curve binary operators.
	SubtractionOp
	DeconvolutionOp
	MaxPlusDeconvolutionOp
	CompositionOp
	DelayByOp
	ForwardByOp
	HorizontalShiftOp
	VerticalShiftOp
	ScaleOp

	// Curve unary operators.
	SubAdditiveClosureOp
	SuperAdditiveClosureOp
	LowerPseudoInverseOp
	UpperPseudoInverseOp
	ToNonNegativeOp
	ToUpperNonDecreasingOp
	ToLowerNonDecreasingOp
	ToLeftContinuousOp
	ToRightContinuousOp
	NegateOp
	WithZeroOriginOp

	// Rational n-ary operators.
	RationalAdditionOp
	RationalProductOp
	RationalMinimumOp
	RationalMaximumOp
	RationalLCMOp
	RationalGCDOp

	// Rational binary operators.
	RationalSubtractionOp
	RationalDivisionOp
	HorizontalDeviationOp
	VerticalDeviationOp
	ValueAtOp
	LeftLimitAtOp
	RightLimitAtOp

	// Rational unary operators.
	RationalNegateOp
	RationalInvertOp

	numOps
)

// notation describes how an operator is written in one output format.
//
// If sep is set, the operands are joined by it. Otherwise tmpl is a format
// string: unary and binary templates refer to their operands with %[1]s and
// %[2]s, n-ary templates receive the operands joined by ", ".
type notation struct {
	sep  string
	tmpl string

	// delimited is set if the rendering needs no parentheses when used as
	// an operand of another operator.
	delimited bool

	// encloses is set if the template already delimits each of its
	// operands, so that they are never parenthesized.
	encloses bool
}

type opInfo struct {
	name     string // Go name, as used by String
	key      string // stable identifier used in expression files
	domain   Domain
	shape    Shape
	operands []Domain // unary and binary: one per operand; n-ary: one for all

	latex   notation
	unicode notation
}

const (
	c = CurveDomain
	r = RationalDomain
)

var opInfos = [numOps]opInfo{
	NoOp: {name: "NoOp", key: "none"},

	CurveLeafOp:           {name: "CurveLeaf", key: "curve", domain: c, shape: LeafShape},
	CurvePlaceholderOp:    {name: "CurvePlaceholder", key: "curve-placeholder", domain: c, shape: LeafShape},
	RationalLeafOp:        {name: "RationalLeaf", key: "rational", domain: r, shape: LeafShape},
	RationalPlaceholderOp: {name: "RationalPlaceholder", key: "rational-placeholder", domain: r, shape: LeafShape},

	AdditionOp:           nary("Addition", "addition", c, infixOf(` + `, ` + `)),
	MinimumOp:            nary("Minimum", "minimum", c, infixOf(` \wedge `, ` ∧ `)),
	MaximumOp:            nary("Maximum", "maximum", c, infixOf(` \vee `, ` ∨ `)),
	ConvolutionOp:        nary("Convolution", "convolution", c, infixOf(` \otimes `, ` ⊗ `)),
	MaxPlusConvolutionOp: nary("MaxPlusConvolution", "max-plus-convolution", c, infixOf(` \overline{\otimes} `, ` ⊗̅ `)),

	SubtractionOp:          binary("Subtraction", "subtraction", c, c, c, infixOf(` - `, ` − `)),
	DeconvolutionOp:        binary("Deconvolution", "deconvolution", c, c, c, infixOf(` \oslash `, ` ⊘ `)),
	MaxPlusDeconvolutionOp: binary("MaxPlusDeconvolution", "max-plus-deconvolution", c, c, c, infixOf(` \overline{\oslash} `, ` ⊘̅ `)),
	CompositionOp:          binary("Composition", "composition", c, c, c, infixOf(` \circ `, ` ∘ `)),
	DelayByOp:              binary("DelayBy", "delay-by", c, c, r, templ(`%[1]s \otimes \delta_{%[2]s}`, `%[1]s ⊗ δ_%[2]s`, false)),
	ForwardByOp:            binary("ForwardBy", "forward-by", c, c, r, templ(`%[1]s \oslash \delta_{%[2]s}`, `%[1]s ⊘ δ_%[2]s`, false)),
	HorizontalShiftOp:      binary("HorizontalShift", "horizontal-shift", c, c, r, templ(`%[1]s\left(t + %[2]s\right)`, `%[1]s(t + %[2]s)`, true)),
	VerticalShiftOp:        binary("VerticalShift", "vertical-shift", c, c, r, templ(`%[1]s + %[2]s`, `%[1]s + %[2]s`, false)),
	ScaleOp:                binary("Scale", "scale", c, c, r, templ(`%[2]s \cdot %[1]s`, `%[2]s·%[1]s`, false)),

	SubAdditiveClosureOp:   unary("SubAdditiveClosure", "sub-additive-closure", c, c, wrapOf(`\overline{%[1]s}`, `closure(%[1]s)`)),
	SuperAdditiveClosureOp: unary("SuperAdditiveClosure", "super-additive-closure", c, c, wrapOf(`\underline{%[1]s}`, `superclosure(%[1]s)`)),
	LowerPseudoInverseOp:   unary("LowerPseudoInverse", "lower-pseudo-inverse", c, c, templ(`%[1]s^{-1}_{\downarrow}`, `%[1]s⁻¹↓`, true)),
	UpperPseudoInverseOp:   unary("UpperPseudoInverse", "upper-pseudo-inverse", c, c, templ(`%[1]s^{-1}_{\uparrow}`, `%[1]s⁻¹↑`, true)),
	ToNonNegativeOp:        unary("ToNonNegative", "to-non-negative", c, c, wrapOf(`\left[%[1]s\right]^{+}`, `[%[1]s]⁺`)),
	ToUpperNonDecreasingOp: unary("ToUpperNonDecreasing", "to-upper-non-decreasing", c, c, wrapOf(`\left[%[1]s\right]_{\uparrow}`, `[%[1]s]↑`)),
	ToLowerNonDecreasingOp: unary("ToLowerNonDecreasing", "to-lower-non-decreasing", c, c, wrapOf(`\left[%[1]s\right]_{\downarrow}`, `[%[1]s]↓`)),
	ToLeftContinuousOp:     unary("ToLeftContinuous", "to-left-continuous", c, c, wrapOf(`\left[%[1]s\right]_{\leftarrow}`, `[%[1]s]←`)),
	ToRightContinuousOp:    unary("ToRightContinuous", "to-right-continuous", c, c, wrapOf(`\left[%[1]s\right]_{\rightarrow}`, `[%[1]s]→`)),
	NegateOp:               unary("Negate", "negate", c, c, templ(`-%[1]s`, `−%[1]s`, false)),
	WithZeroOriginOp:       unary("WithZeroOrigin", "with-zero-origin", c, c, templ(`%[1]s^{\circ}`, `%[1]s°`, true)),

	RationalAdditionOp: nary("RationalAddition", "rational-addition", r, infixOf(` + `, ` + `)),
	RationalProductOp:  nary("RationalProduct", "rational-product", r, infixOf(` \cdot `, ` · `)),
	RationalMinimumOp:  nary("RationalMinimum", "rational-minimum", r, wrapOf(`\min\left\{%s\right\}`, `min{%s}`)),
	RationalMaximumOp:  nary("RationalMaximum", "rational-maximum", r, wrapOf(`\max\left\{%s\right\}`, `max{%s}`)),
	RationalLCMOp:      nary("RationalLCM", "rational-lcm", r, wrapOf(`\operatorname{lcm}\left(%s\right)`, `lcm(%s)`)),
	RationalGCDOp:      nary("RationalGCD", "rational-gcd", r, wrapOf(`\gcd\left(%s\right)`, `gcd(%s)`)),

	RationalSubtractionOp: binary("RationalSubtraction", "rational-subtraction", r, r, r, infixOf(` - `, ` − `)),
	RationalDivisionOp: binary("RationalDivision", "rational-division", r, r, r, notations{
		notation{tmpl: `\frac{%[1]s}{%[2]s}`, delimited: true, encloses: true},
		notation{tmpl: `%[1]s / %[2]s`},
	}),
	HorizontalDeviationOp: binary("HorizontalDeviation", "horizontal-deviation", r, c, c, wrapOf(`h\left(%[1]s, %[2]s\right)`, `h(%[1]s, %[2]s)`)),
	VerticalDeviationOp:   binary("VerticalDeviation", "vertical-deviation", r, c, c, wrapOf(`v\left(%[1]s, %[2]s\right)`, `v(%[1]s, %[2]s)`)),
	ValueAtOp:             binary("ValueAt", "value-at", r, c, r, templ(`%[1]s\left(%[2]s\right)`, `%[1]s(%[2]s)`, true)),
	LeftLimitAtOp:         binary("LeftLimitAt", "left-limit-at", r, c, r, templ(`%[1]s\left(%[2]s^{-}\right)`, `%[1]s(%[2]s⁻)`, true)),
	RightLimitAtOp:        binary("RightLimitAt", "right-limit-at", r, c, r, templ(`%[1]s\left(%[2]s^{+}\right)`, `%[1]s(%[2]s⁺)`, true)),

	RationalNegateOp: unary("RationalNegate", "rational-negate", r, r, templ(`-%[1]s`, `−%[1]s`, false)),
	RationalInvertOp: unary("RationalInvert", "rational-invert", r, r, notations{
		notation{tmpl: `\frac{1}{%[1]s}`, delimited: true, encloses: true},
		notation{tmpl: `1/%[1]s`},
	}),
}

// notations holds the LaTeX and Unicode notation of an operator.
type notations [2]notation

func infixOf(latex, unicode string) notations {
	return notations{{sep: latex}, {sep: unicode}}
}

func wrapOf(latex, unicode string) notations {
	return notations{
		{tmpl: latex, delimited: true, encloses: true},
		{tmpl: unicode, delimited: true, encloses: true},
	}
}

func templ(latex, unicode string, delimited bool) notations {
	return notations{
		{tmpl: latex, delimited: delimited},
		{tmpl: unicode, delimited: delimited},
	}
}

func nary(name, key string, d Domain, n notations) opInfo {
	return opInfo{name: name, key: key, domain: d, shape: NaryShape, operands: []Domain{d}, latex: n[0], unicode: n[1]}
}

func binary(name, key string, d, left, right Domain, n notations) opInfo {
	return opInfo{name: name, key: key, domain: d, shape: BinaryShape, operands: []Domain{left, right}, latex: n[0], unicode: n[1]}
}

func unary(name, key string, d, operand Domain, n notations) opInfo {
	return opInfo{name: name, key: key, domain: d, shape: UnaryShape, operands: []Domain{operand}, latex: n[0], unicode: n[1]}
}

func (op Op) info() *opInfo {
	if op >= numOps {
		return &opInfos[NoOp]
	}
	return &opInfos[op]
}

func (op Op) String() string {
	if op >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opInfos[op].name
}

// Key returns the stable identifier of op used in expression files, such as
// "max-plus-convolution".
func (op Op) Key() string { return op.info().key }

// Domain returns the domain of the values computed by nodes of kind op.
func (op Op) Domain() Domain { return op.info().domain }

// Shape returns how nodes of kind op hold their operands.
func (op Op) Shape() Shape { return op.info().shape }

// IsPlaceholder reports whether op is one of the placeholder leaf kinds.
func (op Op) IsPlaceholder() bool {
	return op == CurvePlaceholderOp || op == RationalPlaceholderOp
}

// OperandDomain returns the domain required of the i-th operand of op.
func (op Op) OperandDomain(i int) Domain {
	inf := op.info()
	switch inf.shape {
	case NaryShape:
		return inf.operands[0]
	case UnaryShape, BinaryShape:
		if i < len(inf.operands) {
			return inf.operands[i]
		}
	}
	return noDomain
}

// LookupOp returns the operator with the given key.
func LookupOp(key string) (Op, bool) {
	for op := NoOp + 1; op < numOps; op++ {
		if opInfos[op].key == key {
			return op, true
		}
	}
	return NoOp, false
}

// Ops returns all operators, leaves included.
func Ops() []Op {
	ops := make([]Op, 0, numOps-1)
	for op := NoOp + 1; op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}
