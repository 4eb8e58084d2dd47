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

	"netcalc.org/go/rational"
)

// Value returns the value computed by x. Successful results are cached, so
// the operators below x are computed at most once. Failures are not
// cached.
func (x *Expression[T]) Value() (T, error) {
	if p := x.cache.value.Load(); p != nil {
		return *p, nil
	}
	res := Accept[result](x, evaluator{})
	if res.err != nil {
		var zero T
		return zero, res.err
	}
	v, ok := res.v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v computed %T", ErrInvalidStructure, x.op, res.v)
	}
	x.cache.value.CompareAndSwap(nil, &v)
	if debugFlags().LogEval > 0 {
		x.settings.logger().Debug("computed", "op", x.op, "name", x.name)
	}
	return *x.cache.value.Load(), nil
}

// Compute is an alias for Value.
func (x *Expression[T]) Compute() (T, error) { return x.Value() }

type result struct {
	v   any
	err error
}

// evaluator computes the value of a single node from the values of its
// operands.
type evaluator struct{}

func (evaluator) VisitLeaf(x Node) result {
	if x.IsPlaceholder() {
		return result{err: fmt.Errorf("%w: %s", ErrPlaceholder, x.Name())}
	}
	return result{v: x.leaf()}
}

func (e evaluator) VisitUnary(x Node, a Node) result { return e.apply(x, a) }

func (e evaluator) VisitBinary(x Node, a, b Node) result { return e.apply(x, a, b) }

func (e evaluator) VisitNary(x Node, args []Node) result { return e.apply(x, args...) }

func (evaluator) apply(x Node, operands ...Node) result {
	args := make([]any, len(operands))
	curves := false
	for i, a := range operands {
		v, err := a.computeAny()
		if err != nil {
			return result{err: err}
		}
		args[i] = v
		curves = curves || a.Domain() == CurveDomain
	}

	op := x.Op()
	if !curves {
		v, err := rationalOp(op, args)
		if err != nil {
			return result{err: fmt.Errorf("%v: %w", op, err)}
		}
		return result{v: v}
	}

	s := x.Settings()
	if s == nil {
		s = DefaultSettings()
	}
	alg, err := s.algebra(op)
	if err != nil {
		return result{err: err}
	}
	if debugFlags().LogEval > 0 {
		s.logger().Debug("curve operator", "op", op, "args", len(args))
	}
	var v any
	switch op.Domain() {
	case CurveDomain:
		v, err = alg.Curve(op, args)
	default:
		v, err = alg.Rational(op, args)
	}
	if err != nil {
		return result{err: fmt.Errorf("%v: %w", op, err)}
	}
	return result{v: v}
}

// rationalOp computes an operator whose operands are all rationals.
func rationalOp(op Op, args []any) (rational.Rational, error) {
	xs := make([]rational.Rational, len(args))
	for i, a := range args {
		xs[i] = a.(rational.Rational)
	}
	switch op {
	case RationalAdditionOp:
		return rational.Sum(xs[0], xs[1:]...)
	case RationalProductOp:
		return rational.Product(xs[0], xs[1:]...)
	case RationalMinimumOp:
		return rational.Min(xs[0], xs[1:]...), nil
	case RationalMaximumOp:
		return rational.Max(xs[0], xs[1:]...), nil
	case RationalLCMOp:
		return fold(xs, rational.Rational.LCM)
	case RationalGCDOp:
		return fold(xs, rational.Rational.GCD)
	case RationalSubtractionOp:
		return xs[0].Sub(xs[1])
	case RationalDivisionOp:
		return xs[0].Quo(xs[1])
	case RationalNegateOp:
		return xs[0].Neg(), nil
	case RationalInvertOp:
		return xs[0].Inv()
	}
	return rational.Zero, structuralf("%v cannot be computed from rationals", op)
}

func fold(xs []rational.Rational, f func(x, y rational.Rational) (rational.Rational, error)) (rational.Rational, error) {
	acc := xs[0]
	for _, y := range xs[1:] {
		var err error
		if acc, err = f(acc, y); err != nil {
			return acc, err
		}
	}
	return acc, nil
}
