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

// A Curve is a curve value. Curves are opaque to this package: they are
// supplied as leaves and produced by a CurveAlgebra.
type Curve interface {
	// Equivalent reports whether the curve denotes the same function as d.
	Equivalent(d Curve) bool

	// Is reports whether the curve has property p.
	Is(p Property) bool
}

// A CurveAlgebra computes the operators that involve curves.
//
// Each argument passed to its methods is either a Curve or a
// rational.Rational, following the operand domains of op.
type CurveAlgebra interface {
	// Curve computes op, an operator of the curve domain.
	Curve(op Op, args []any) (Curve, error)

	// Rational computes op, an operator of the rational domain with at
	// least one curve operand.
	Rational(op Op, args []any) (rational.Rational, error)
}

// A Property is a mathematical property of a curve.
type Property uint8

const (
	SubAdditive Property = iota
	SuperAdditive
	NonNegative
	NonDecreasing
	LeftContinuous
	RightContinuous
	Concave
	Convex
	ZeroAtZero
	WellDefined

	numProperties
)

var propertyNames = [numProperties]string{
	SubAdditive:     "sub-additive",
	SuperAdditive:   "super-additive",
	NonNegative:     "non-negative",
	NonDecreasing:   "non-decreasing",
	LeftContinuous:  "left-continuous",
	RightContinuous: "right-continuous",
	Concave:         "concave",
	Convex:          "convex",
	ZeroAtZero:      "zero-at-zero",
	WellDefined:     "well-defined",
}

func (p Property) String() string {
	if p < numProperties {
		return propertyNames[p]
	}
	return fmt.Sprintf("Property(%d)", uint8(p))
}

// LookupProperty returns the property with the given name, such as
// "sub-additive".
func LookupProperty(name string) (Property, bool) {
	for p, s := range propertyNames {
		if s == name {
			return Property(p), true
		}
	}
	return 0, false
}

// Properties returns all known properties.
func Properties() []Property {
	ps := make([]Property, numProperties)
	for i := range ps {
		ps[i] = Property(i)
	}
	return ps
}
