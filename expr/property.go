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

// HasProperty reports whether the value of x has property p.
//
// Where the kind of x and the properties of its operands establish p, the
// value of x is not computed. Otherwise the property is checked on the
// value, which is computed if needed. Results are cached per node.
//
// For rational nodes, NonNegative and WellDefined are supported; every
// other property is reported as not holding.
func HasProperty(x Node, p Property) (bool, error) {
	if p >= numProperties {
		return false, fmt.Errorf("unknown property %v", p)
	}
	c := x.props()
	if v, ok := c.load(p); ok {
		return v, nil
	}
	res := Accept[propResult](x, inference{p})
	if res.err != nil {
		return false, res.err
	}
	c.store(p, res.ok)
	return res.ok, nil
}

// Is reports whether the value of x has property p. See HasProperty.
func (x *Expression[T]) Is(p Property) (bool, error) { return HasProperty(x, p) }

type propResult struct {
	ok  bool
	err error
}

// inference derives a property of a node, first from the rules of its
// operator and then from its value.
type inference struct {
	p Property
}

func (v inference) VisitLeaf(x Node) propResult {
	return v.fromValue(x)
}

func (v inference) VisitUnary(x Node, a Node) propResult {
	return v.infer(x, []Node{a})
}

func (v inference) VisitBinary(x Node, a, b Node) propResult {
	return v.infer(x, []Node{a, b})
}

func (v inference) VisitNary(x Node, args []Node) propResult {
	return v.infer(x, args)
}

func (v inference) infer(x Node, args []Node) propResult {
	if x.Domain() == CurveDomain && v.curveRule(x.Op(), args) {
		return propResult{ok: true}
	}
	if x.Domain() == RationalDomain && v.rationalRule(x.Op(), args) {
		return propResult{ok: true}
	}
	return v.fromValue(x)
}

func (v inference) fromValue(x Node) propResult {
	val, err := x.computeAny()
	if err != nil {
		return propResult{err: err}
	}
	switch val := val.(type) {
	case Curve:
		return propResult{ok: val.Is(v.p)}
	case rational.Rational:
		switch v.p {
		case NonNegative:
			return propResult{ok: val.Sign() >= 0}
		case WellDefined:
			return propResult{ok: true}
		}
		return propResult{}
	}
	return propResult{err: structuralf("%v computed %T", x.Op(), val)}
}

// all reports whether every operand is known to have all of ps. Operands
// whose properties cannot be established count as not having them.
func all(args []Node, ps ...Property) bool {
	for _, a := range args {
		for _, p := range ps {
			if ok, err := HasProperty(a, p); err != nil || !ok {
				return false
			}
		}
	}
	return true
}

func anyOf(args []Node, p Property) bool {
	for _, a := range args {
		if ok, err := HasProperty(a, p); err == nil && ok {
			return true
		}
	}
	return false
}

// curveRule reports whether an operator of kind op applied to args is known
// to produce a curve with the property.
func (v inference) curveRule(op Op, args []Node) bool {
	switch v.p {
	case SubAdditive:
		switch op {
		case SubAdditiveClosureOp:
			return true
		case AdditionOp, ConvolutionOp:
			return all(args, SubAdditive)
		}

	case SuperAdditive:
		switch op {
		case SuperAdditiveClosureOp:
			return true
		case AdditionOp, MaxPlusConvolutionOp:
			return all(args, SuperAdditive)
		}

	case NonNegative:
		switch op {
		case ToNonNegativeOp:
			return true
		case AdditionOp, MinimumOp, ConvolutionOp:
			return all(args, NonNegative)
		case MaximumOp:
			return anyOf(args, NonNegative)
		case SubAdditiveClosureOp:
			return all(args, NonNegative)
		}

	case NonDecreasing:
		switch op {
		case ToUpperNonDecreasingOp, ToLowerNonDecreasingOp,
			LowerPseudoInverseOp, UpperPseudoInverseOp:
			return true
		case AdditionOp, MinimumOp, MaximumOp,
			ConvolutionOp, MaxPlusConvolutionOp, SubAdditiveClosureOp:
			return all(args, NonDecreasing)
		case DelayByOp:
			return all(args[:1], NonDecreasing, NonNegative)
		}

	case LeftContinuous:
		switch op {
		case ToLeftContinuousOp, LowerPseudoInverseOp:
			return true
		case AdditionOp, MinimumOp, MaximumOp:
			return all(args, LeftContinuous)
		case CompositionOp:
			return all(args, LeftContinuous) && all(args[1:], NonDecreasing)
		}

	case RightContinuous:
		switch op {
		case ToRightContinuousOp, UpperPseudoInverseOp:
			return true
		case AdditionOp, MinimumOp, MaximumOp:
			return all(args, RightContinuous)
		case CompositionOp:
			return all(args, RightContinuous) && all(args[1:], NonDecreasing)
		}

	case Concave:
		switch op {
		case AdditionOp, MinimumOp:
			return all(args, Concave)
		case ConvolutionOp:
			return all(args, Concave, ZeroAtZero)
		}

	case Convex:
		switch op {
		case AdditionOp, MaximumOp, ConvolutionOp:
			return all(args, Convex)
		}

	case ZeroAtZero:
		switch op {
		case SubAdditiveClosureOp, WithZeroOriginOp:
			return true
		case AdditionOp, MinimumOp, MaximumOp, ConvolutionOp:
			return all(args, ZeroAtZero)
		}

	case WellDefined:
		switch op {
		case SubtractionOp, DeconvolutionOp, MaxPlusDeconvolutionOp, CompositionOp:
			return false
		}
		return all(args, WellDefined)
	}
	return false
}

func (v inference) rationalRule(op Op, args []Node) bool {
	if v.p != NonNegative {
		return false
	}
	switch op {
	case RationalLCMOp, RationalGCDOp:
		return true
	case RationalAdditionOp, RationalProductOp, RationalMinimumOp:
		return all(args, NonNegative)
	case RationalMaximumOp:
		return anyOf(args, NonNegative)
	}
	return false
}
