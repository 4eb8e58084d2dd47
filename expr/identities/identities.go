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

// Package identities provides well-known equivalences of network calculus.
//
// Placeholders named f, g and h stand for curves; a and b stand for
// rationals.
package identities

import (
	"netcalc.org/go/expr"
)

var (
	f = expr.CurvePlaceholder("f")
	g = expr.CurvePlaceholder("g")
	h = expr.CurvePlaceholder("h")
	a = expr.RationalPlaceholder("a")
	b = expr.RationalPlaceholder("b")
)

func is(placeholder string, p expr.Property) expr.Hypothesis {
	return expr.Hypothesis{Placeholder: placeholder, Property: p}
}

var (
	// MinimumIdempotence: f ∧ f ≡ f.
	MinimumIdempotence = expr.NewEquivalence("minimum-idempotence", expr.Minimum(f, f), f)

	// MaximumIdempotence: f ∨ f ≡ f.
	MaximumIdempotence = expr.NewEquivalence("maximum-idempotence", expr.Maximum(f, f), f)

	// ConvolutionDistributesOverMinimum: f ⊗ (g ∧ h) ≡ (f ⊗ g) ∧ (f ⊗ h).
	ConvolutionDistributesOverMinimum = expr.NewEquivalence("convolution-distributes-over-minimum",
		expr.Convolution(f, expr.Minimum(g, h)),
		expr.Minimum(expr.Convolution(f, g), expr.Convolution(f, h)))

	// SubAdditiveClosureOfMinimum: closure(f ∧ g) ≡ closure(f) ⊗ closure(g).
	SubAdditiveClosureOfMinimum = expr.NewEquivalence("sub-additive-closure-of-minimum",
		expr.SubAdditiveClosure(expr.Minimum(f, g)),
		expr.Convolution(expr.SubAdditiveClosure(f), expr.SubAdditiveClosure(g)))

	// ClosureIdempotence: closure(closure(f)) ≡ closure(f).
	ClosureIdempotence = expr.NewEquivalence("closure-idempotence",
		expr.SubAdditiveClosure(expr.SubAdditiveClosure(f)),
		expr.SubAdditiveClosure(f))

	// SubAdditiveClosureOfSubAdditive: closure(f) ≡ f for a sub-additive f
	// with f(0) = 0.
	SubAdditiveClosureOfSubAdditive = expr.NewEquivalence("sub-additive-closure-of-sub-additive",
		expr.SubAdditiveClosure(f), f,
		is("f", expr.SubAdditive), is("f", expr.ZeroAtZero))

	// SelfConvolutionOfSubAdditive: f ⊗ f ≡ f for a sub-additive f with
	// f(0) = 0.
	SelfConvolutionOfSubAdditive = expr.NewEquivalence("self-convolution-of-sub-additive",
		expr.Convolution(f, f), f,
		is("f", expr.SubAdditive), is("f", expr.ZeroAtZero))

	// ConvolutionOfConcave: f ⊗ g ≡ f ∧ g for concave f and g that are
	// zero at zero.
	ConvolutionOfConcave = expr.NewEquivalence("convolution-of-concave",
		expr.Convolution(f, g), expr.Minimum(f, g),
		is("f", expr.Concave), is("f", expr.ZeroAtZero),
		is("g", expr.Concave), is("g", expr.ZeroAtZero))

	// DeconvolutionChain: (f ⊘ g) ⊘ h ≡ f ⊘ (g ⊗ h).
	DeconvolutionChain = expr.NewEquivalence("deconvolution-chain",
		expr.Deconvolution(expr.Deconvolution(f, g), h),
		expr.Deconvolution(f, expr.Convolution(g, h)))

	// DelayComposition: delaying by a and then by b delays by a + b.
	DelayComposition = expr.NewEquivalence("delay-composition",
		expr.DelayBy(expr.DelayBy(f, a), b),
		expr.DelayBy(f, expr.RationalAddition(a, b)))

	// DoubleNegation: −(−f) ≡ f.
	DoubleNegation = expr.NewEquivalence("double-negation", expr.Negate(expr.Negate(f)), f)

	// RationalAdditionZero: a + 0 ≡ a.
	RationalAdditionZero = expr.NewEquivalence("rational-addition-zero",
		expr.RationalAddition(a, expr.RationalNumber(0, 1)), a)

	// RationalProductOne: a · 1 ≡ a.
	RationalProductOne = expr.NewEquivalence("rational-product-one",
		expr.RationalProduct(a, expr.RationalNumber(1, 1)), a)

	// RationalDoubleNegation: −(−a) ≡ a.
	RationalDoubleNegation = expr.NewEquivalence("rational-double-negation",
		expr.RationalNegate(expr.RationalNegate(a)), a)

	// RationalDoubleInversion: 1/(1/a) ≡ a.
	RationalDoubleInversion = expr.NewEquivalence("rational-double-inversion",
		expr.RationalInvert(expr.RationalInvert(a)), a)
)

// All returns the equivalences of this package.
func All() []*expr.Equivalence {
	return []*expr.Equivalence{
		MinimumIdempotence,
		MaximumIdempotence,
		ConvolutionDistributesOverMinimum,
		SubAdditiveClosureOfMinimum,
		ClosureIdempotence,
		SubAdditiveClosureOfSubAdditive,
		SelfConvolutionOfSubAdditive,
		ConvolutionOfConcave,
		DeconvolutionChain,
		DelayComposition,
		DoubleNegation,
		RationalAdditionZero,
		RationalProductOne,
		RationalDoubleNegation,
		RationalDoubleInversion,
	}
}

// Lookup returns the equivalence with the given name.
func Lookup(name string) (*expr.Equivalence, bool) {
	for _, eq := range All() {
		if eq.Name == name {
			return eq, true
		}
	}
	return nil, false
}

// Register adds the equivalences of this package to reg, each under the
// kind of its left side.
func Register(reg *expr.Registry) {
	for _, eq := range All() {
		reg.Add(eq.Left.Op(), eq)
	}
}
