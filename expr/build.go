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
	"netcalc.org/go/rational"
)

// An Option configures a leaf node.
type Option func(*leafOptions)

type leafOptions struct {
	name     string
	settings *Settings
}

// Named sets the name of a leaf.
func Named(name string) Option {
	return func(o *leafOptions) { o.name = name }
}

// WithSettings sets the settings of a leaf. Nodes built on top of the
// leaf inherit them.
func WithSettings(s *Settings) Option {
	return func(o *leafOptions) { o.settings = s }
}

func newLeaf[T any](op Op, v T, name string, opts []Option) *Expression[T] {
	o := leafOptions{name: name}
	for _, f := range opts {
		f(&o)
	}
	return &Expression[T]{
		op:       op,
		name:     o.name,
		settings: o.settings,
		payload:  v,
		cache:    newCache(v, op),
	}
}

// NewCurve returns a leaf holding the curve c.
func NewCurve(c Curve, name string, opts ...Option) *CurveExpression {
	return newLeaf(CurveLeafOp, c, name, opts)
}

// CurvePlaceholder returns a curve placeholder with the given name.
func CurvePlaceholder(name string, opts ...Option) *CurveExpression {
	return newLeaf[Curve](CurvePlaceholderOp, nil, name, opts)
}

// NewRational returns a leaf holding v. Unless a name is given with
// Named, the leaf is unnamed and renders as its value.
func NewRational(v rational.Rational, opts ...Option) *RationalExpression {
	return newLeaf(RationalLeafOp, v, "", opts)
}

// RationalNumber returns a leaf holding num/den. It panics if both num and
// den are zero.
func RationalNumber(num, den int64, opts ...Option) *RationalExpression {
	return NewRational(rational.MustNew(num, den), opts...)
}

// RationalPlaceholder returns a rational placeholder with the given name.
func RationalPlaceholder(name string, opts ...Option) *RationalExpression {
	return newLeaf(RationalPlaceholderOp, rational.Zero, name, opts)
}

// Build returns a node of kind op with the given operands. The operands of
// an n-ary node that are themselves of kind op are replaced by their own
// operands. Build reports ErrInvalidStructure if the number or domains of
// the operands do not suit op.
func Build(op Op, args ...Node) (Node, error) {
	if op.Shape() == NaryShape {
		args = flatten(op, args)
	}
	if err := check(op, args); err != nil {
		return nil, err
	}
	return newNode(op, "", args), nil
}

// Combine combines x and y under the n-ary operator op. If either is
// already of kind op, its operands are merged in.
func Combine(op Op, x, y Node) (Node, error) {
	if op.Shape() != NaryShape {
		return nil, structuralf("%v is not an n-ary operator", op)
	}
	return Build(op, x, y)
}

func check(op Op, args []Node) error {
	switch op.Shape() {
	case LeafShape:
		return structuralf("leaf %v cannot be built from operands", op)
	case NaryShape:
		if len(args) < 2 {
			return structuralf("%v needs at least 2 operands, got %d", op, len(args))
		}
	case UnaryShape:
		if len(args) != 1 {
			return structuralf("%v needs 1 operand, got %d", op, len(args))
		}
	case BinaryShape:
		if len(args) != 2 {
			return structuralf("%v needs 2 operands, got %d", op, len(args))
		}
	default:
		return structuralf("unknown operator %v", op)
	}
	for i, a := range args {
		if a == nil {
			return structuralf("operand %d of %v is nil", i, op)
		}
		if want := op.OperandDomain(i); a.Domain() != want {
			return structuralf("operand %d of %v is a %v expression; want %v", i, op, a.Domain(), want)
		}
	}
	return nil
}

// newNode returns a node for op, which must suit args. It inherits the
// settings of the first operand that has any.
func newNode(op Op, name string, args []Node) Node {
	var s *Settings
	for _, a := range args {
		if s = a.Settings(); s != nil {
			break
		}
	}
	switch op.Domain() {
	case CurveDomain:
		return &CurveExpression{op: op, name: name, settings: s, args: args, cache: &cache[Curve]{}}
	case RationalDomain:
		return &RationalExpression{op: op, name: name, settings: s, args: args, cache: &cache[rational.Rational]{}}
	}
	panic("expr: operator without domain: " + op.String())
}

// flatten returns args with every node of kind op replaced by its
// operands.
func flatten(op Op, args []Node) []Node {
	flat := make([]Node, 0, len(args))
	for _, a := range args {
		if a != nil && a.Op() == op {
			flat = append(flat, a.Operands()...)
		} else {
			flat = append(flat, a)
		}
	}
	return flat
}

func nodes[T any](x, y *Expression[T], more []*Expression[T]) []Node {
	args := make([]Node, 0, 2+len(more))
	args = append(args, x, y)
	for _, m := range more {
		args = append(args, m)
	}
	return args
}

func curveNary(op Op, f, g *CurveExpression, more []*CurveExpression) *CurveExpression {
	return newNode(op, "", flatten(op, nodes(f, g, more))).(*CurveExpression)
}

func rationalNary(op Op, a, b *RationalExpression, more []*RationalExpression) *RationalExpression {
	return newNode(op, "", flatten(op, nodes(a, b, more))).(*RationalExpression)
}

func curveOf(op Op, args ...Node) *CurveExpression {
	return newNode(op, "", args).(*CurveExpression)
}

func rationalOf(op Op, args ...Node) *RationalExpression {
	return newNode(op, "", args).(*RationalExpression)
}

// Addition returns the pointwise sum of its operands.
func Addition(f, g *CurveExpression, more ...*CurveExpression) *CurveExpression {
	return curveNary(AdditionOp, f, g, more)
}

// Minimum returns the pointwise minimum of its operands.
func Minimum(f, g *CurveExpression, more ...*CurveExpression) *CurveExpression {
	return curveNary(MinimumOp, f, g, more)
}

// Maximum returns the pointwise maximum of its operands.
func Maximum(f, g *CurveExpression, more ...*CurveExpression) *CurveExpression {
	return curveNary(MaximumOp, f, g, more)
}

// Convolution returns the min-plus convolution of its operands.
func Convolution(f, g *CurveExpression, more ...*CurveExpression) *CurveExpression {
	return curveNary(ConvolutionOp, f, g, more)
}

// MaxPlusConvolution returns the max-plus convolution of its operands.
func MaxPlusConvolution(f, g *CurveExpression, more ...*CurveExpression) *CurveExpression {
	return curveNary(MaxPlusConvolutionOp, f, g, more)
}

// Subtraction returns f - g.
func Subtraction(f, g *CurveExpression) *CurveExpression { return curveOf(SubtractionOp, f, g) }

// Deconvolution returns the min-plus deconvolution of f by g.
func Deconvolution(f, g *CurveExpression) *CurveExpression { return curveOf(DeconvolutionOp, f, g) }

// MaxPlusDeconvolution returns the max-plus deconvolution of f by g.
func MaxPlusDeconvolution(f, g *CurveExpression) *CurveExpression {
	return curveOf(MaxPlusDeconvolutionOp, f, g)
}

// Composition returns f(g(t)).
func Composition(f, g *CurveExpression) *CurveExpression { return curveOf(CompositionOp, f, g) }

// DelayBy returns f delayed by d.
func DelayBy(f *CurveExpression, d *RationalExpression) *CurveExpression {
	return curveOf(DelayByOp, f, d)
}

// ForwardBy returns f anticipated by d.
func ForwardBy(f *CurveExpression, d *RationalExpression) *CurveExpression {
	return curveOf(ForwardByOp, f, d)
}

// HorizontalShift returns f(t + d).
func HorizontalShift(f *CurveExpression, d *RationalExpression) *CurveExpression {
	return curveOf(HorizontalShiftOp, f, d)
}

// VerticalShift returns f(t) + d.
func VerticalShift(f *CurveExpression, d *RationalExpression) *CurveExpression {
	return curveOf(VerticalShiftOp, f, d)
}

// Scale returns k·f(t).
func Scale(f *CurveExpression, k *RationalExpression) *CurveExpression {
	return curveOf(ScaleOp, f, k)
}

// SubAdditiveClosure returns the sub-additive closure of f.
func SubAdditiveClosure(f *CurveExpression) *CurveExpression {
	return curveOf(SubAdditiveClosureOp, f)
}

// SuperAdditiveClosure returns the super-additive closure of f.
func SuperAdditiveClosure(f *CurveExpression) *CurveExpression {
	return curveOf(SuperAdditiveClosureOp, f)
}

// LowerPseudoInverse returns the lower pseudo-inverse of f.
func LowerPseudoInverse(f *CurveExpression) *CurveExpression {
	return curveOf(LowerPseudoInverseOp, f)
}

// UpperPseudoInverse returns the upper pseudo-inverse of f.
func UpperPseudoInverse(f *CurveExpression) *CurveExpression {
	return curveOf(UpperPseudoInverseOp, f)
}

// ToNonNegative returns max(f, 0).
func ToNonNegative(f *CurveExpression) *CurveExpression { return curveOf(ToNonNegativeOp, f) }

// ToUpperNonDecreasing returns the smallest non-decreasing upper bound of f.
func ToUpperNonDecreasing(f *CurveExpression) *CurveExpression {
	return curveOf(ToUpperNonDecreasingOp, f)
}

// ToLowerNonDecreasing returns the largest non-decreasing lower bound of f.
func ToLowerNonDecreasing(f *CurveExpression) *CurveExpression {
	return curveOf(ToLowerNonDecreasingOp, f)
}

// ToLeftContinuous returns the left-continuous version of f.
func ToLeftContinuous(f *CurveExpression) *CurveExpression {
	return curveOf(ToLeftContinuousOp, f)
}

// ToRightContinuous returns the right-continuous version of f.
func ToRightContinuous(f *CurveExpression) *CurveExpression {
	return curveOf(ToRightContinuousOp, f)
}

// Negate returns -f.
func Negate(f *CurveExpression) *CurveExpression { return curveOf(NegateOp, f) }

// WithZeroOrigin returns f with its value at 0 set to 0.
func WithZeroOrigin(f *CurveExpression) *CurveExpression { return curveOf(WithZeroOriginOp, f) }

// RationalAddition returns the sum of its operands.
func RationalAddition(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalAdditionOp, a, b, more)
}

// RationalProduct returns the product of its operands.
func RationalProduct(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalProductOp, a, b, more)
}

// RationalMinimum returns the smallest of its operands.
func RationalMinimum(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalMinimumOp, a, b, more)
}

// RationalMaximum returns the largest of its operands.
func RationalMaximum(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalMaximumOp, a, b, more)
}

// RationalLCM returns the least common multiple of its operands.
func RationalLCM(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalLCMOp, a, b, more)
}

// RationalGCD returns the greatest common divisor of its operands.
func RationalGCD(a, b *RationalExpression, more ...*RationalExpression) *RationalExpression {
	return rationalNary(RationalGCDOp, a, b, more)
}

// RationalSubtraction returns a - b.
func RationalSubtraction(a, b *RationalExpression) *RationalExpression {
	return rationalOf(RationalSubtractionOp, a, b)
}

// RationalDivision returns a / b.
func RationalDivision(a, b *RationalExpression) *RationalExpression {
	return rationalOf(RationalDivisionOp, a, b)
}

// RationalNegate returns -a.
func RationalNegate(a *RationalExpression) *RationalExpression {
	return rationalOf(RationalNegateOp, a)
}

// RationalInvert returns 1/a.
func RationalInvert(a *RationalExpression) *RationalExpression {
	return rationalOf(RationalInvertOp, a)
}

// HorizontalDeviation returns the horizontal deviation between the arrival
// curve a and the service curve b, a bound on delay.
func HorizontalDeviation(a, b *CurveExpression) *RationalExpression {
	return rationalOf(HorizontalDeviationOp, a, b)
}

// VerticalDeviation returns the vertical deviation between the arrival
// curve a and the service curve b, a bound on backlog.
func VerticalDeviation(a, b *CurveExpression) *RationalExpression {
	return rationalOf(VerticalDeviationOp, a, b)
}

// ValueAt returns f(t).
func ValueAt(f *CurveExpression, t *RationalExpression) *RationalExpression {
	return rationalOf(ValueAtOp, f, t)
}

// LeftLimitAt returns the limit of f at t from the left.
func LeftLimitAt(f *CurveExpression, t *RationalExpression) *RationalExpression {
	return rationalOf(LeftLimitAtOp, f, t)
}

// RightLimitAt returns the limit of f at t from the right.
func RightLimitAt(f *CurveExpression, t *RationalExpression) *RationalExpression {
	return rationalOf(RightLimitAtOp, f, t)
}
