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

package expr_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"netcalc.org/go/expr"
	"netcalc.org/go/internal/ncdebug"
)

var (
	pf = expr.CurvePlaceholder("f")
	pg = expr.CurvePlaceholder("g")
	pa = expr.RationalPlaceholder("a")
	pb = expr.RationalPlaceholder("b")

	minIdempotence = expr.NewEquivalence("min-idempotence", expr.Minimum(pf, pf), pf)
	delayComposes  = expr.NewEquivalence("delay-composition",
		expr.DelayBy(expr.DelayBy(pf, pa), pb),
		expr.DelayBy(pf, expr.RationalAddition(pa, pb)))
	closureOfSubAdditive = expr.NewEquivalence("closure-of-sub-additive",
		expr.SubAdditiveClosure(pf), pf,
		expr.Hypothesis{Placeholder: "f", Property: expr.SubAdditive},
		expr.Hypothesis{Placeholder: "f", Property: expr.ZeroAtZero})
)

func TestEqual(t *testing.T) {
	e := newEnv()
	f, g, h := e.curve("f"), e.curve("g"), e.curve("h")
	half := expr.RationalNumber(1, 2)

	testCases := []struct {
		name string
		x, y expr.Node
		want bool
	}{
		{"commutative", expr.Minimum(f, g), expr.Minimum(g, f), true},
		{"multiset", expr.Minimum(f, f, g), expr.Minimum(f, g, g), false},
		{"arity", expr.Minimum(f, g), expr.Minimum(f, g, h), false},
		{"binaryOrder", expr.Subtraction(f, g), expr.Subtraction(g, f), false},
		{"kind", expr.Minimum(f, g), expr.Maximum(f, g), false},
		{"leafValue", e.curve("f"), f, true},
		{"rationalValue", expr.RationalNumber(2, 4), half, true},
		{"rationalNamed", expr.RationalNumber(1, 2, expr.Named("T")), half, true},
		{"placeholder", pf, expr.CurvePlaceholder("f"), true},
		{"placeholderName", pf, pg, false},
		{"nested", expr.DelayBy(expr.Minimum(f, g), half), expr.DelayBy(expr.Minimum(g, f), expr.RationalNumber(1, 2)), true},
		{"operatorName", expr.Minimum(f, g).WithName("m"), expr.Minimum(g, f), true},
		{"domain", pf, pa, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(expr.Equal(tc.x, tc.y), tc.want))
			qt.Assert(t, qt.Equals(expr.Equal(tc.y, tc.x), tc.want))
		})
	}
}

func TestReplaceByValue(t *testing.T) {
	e := newEnv()
	f, g, h, k := e.curve("f"), e.curve("g"), e.curve("h"), e.curve("k")

	x := expr.Addition(expr.Convolution(f, g), expr.Negate(expr.Convolution(g, f)))
	y, err := x.ReplaceByValue(expr.Convolution(f, g), h, false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(y.Equal(expr.Addition(h, expr.Negate(h)))), qt.Commentf("%v", y))

	// A subset of the operands of an n-ary node.
	x = expr.Minimum(f, g, h)
	y, err = x.ReplaceByValue(expr.Minimum(h, f), k, false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(y.Equal(expr.Minimum(g, k))), qt.Commentf("%v", y))

	// A replacement of the same kind is merged.
	y, err = x.ReplaceByValue(g, expr.Minimum(k, k), false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(y.Operands(), 4))

	_, err = x.ReplaceByValue(expr.Maximum(f, g), k, false)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrUnmatched))

	y, err = x.ReplaceByValue(expr.Maximum(f, g), k, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(y, x))

	_, err = x.ReplaceByValue(f, expr.RationalNumber(1, 1), true)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))
}

func TestApplyEquivalence(t *testing.T) {
	e := newEnv()
	f, g := e.curve("f"), e.curve("g")
	sub := e.curve("s", expr.SubAdditive, expr.ZeroAtZero)

	testCases := []struct {
		name  string
		x     *expr.CurveExpression
		eq    *expr.Equivalence
		check expr.CheckType
		want  *expr.CurveExpression // nil if unchanged
	}{{
		name: "noMatch",
		x:    expr.Convolution(f, g),
		eq:   minIdempotence,
	}, {
		name: "inconsistentBinding",
		x:    expr.Minimum(f, g),
		eq:   minIdempotence,
	}, {
		name: "nested",
		x:    expr.Addition(expr.Minimum(f, f), g),
		eq:   minIdempotence,
		want: expr.Addition(f, g),
	}, {
		name: "subset",
		x:    expr.Minimum(f, g, f),
		eq:   minIdempotence,
		want: expr.Minimum(f, g),
	}, {
		name: "everyMatch",
		x:    expr.Convolution(expr.Minimum(f, f), expr.Minimum(g, g)),
		eq:   minIdempotence,
		want: expr.Convolution(f, g),
	}, {
		name: "leftOnly",
		x:    expr.DelayBy(expr.DelayBy(f, expr.RationalNumber(1, 2)), expr.RationalNumber(1, 4)),
		eq:   delayComposes,
		want: expr.DelayBy(f, expr.RationalAddition(expr.RationalNumber(1, 2), expr.RationalNumber(1, 4))),
	}, {
		name: "leftOnlyIgnoresRight",
		x:    expr.DelayBy(f, expr.RationalAddition(expr.RationalNumber(1, 2), expr.RationalNumber(1, 4))),
		eq:   delayComposes,
	}, {
		name:  "rightOnly",
		x:     expr.DelayBy(f, expr.RationalAddition(expr.RationalNumber(1, 2), expr.RationalNumber(1, 4))),
		eq:    delayComposes,
		check: expr.CheckRightOnly,
		want:  expr.DelayBy(expr.DelayBy(f, expr.RationalNumber(1, 2)), expr.RationalNumber(1, 4)),
	}, {
		name:  "bothSides",
		x:     expr.DelayBy(f, expr.RationalAddition(expr.RationalNumber(1, 2), expr.RationalNumber(1, 4))),
		eq:    delayComposes,
		check: expr.CheckBothSides,
		want:  expr.DelayBy(expr.DelayBy(f, expr.RationalNumber(1, 2)), expr.RationalNumber(1, 4)),
	}, {
		name: "hypothesesHold",
		x:    expr.Negate(expr.SubAdditiveClosure(sub)),
		eq:   closureOfSubAdditive,
		want: expr.Negate(sub),
	}, {
		name: "hypothesesFail",
		x:    expr.SubAdditiveClosure(f),
		eq:   closureOfSubAdditive,
	}, {
		name: "hypothesesPlaceholder",
		x:    expr.SubAdditiveClosure(pg),
		eq:   closureOfSubAdditive,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			y, err := tc.x.ApplyEquivalence(tc.eq, tc.check)
			qt.Assert(t, qt.IsNil(err))
			if tc.want == nil {
				qt.Assert(t, qt.Equals(y, tc.x))
				return
			}
			qt.Assert(t, qt.IsTrue(y.Equal(tc.want)), qt.Commentf("got %v, want %v", y, tc.want))
		})
	}
	qt.Assert(t, qt.Equals(e.alg.Total(), 0))
}

func TestApplyEquivalenceByPosition(t *testing.T) {
	e := newEnv()
	f, g, h := e.curve("f"), e.curve("g"), e.curve("h")
	x := expr.Maximum(expr.Minimum(f, f), expr.Convolution(expr.Minimum(g, g), h))

	y, err := x.ApplyEquivalenceByPosition(expr.RootPosition().Index(1), minIdempotence, expr.CheckLeftOnly)
	qt.Assert(t, qt.IsNil(err))
	want := expr.Maximum(expr.Minimum(f, f), expr.Convolution(g, h))
	qt.Assert(t, qt.IsTrue(y.Equal(want)), qt.Commentf("%v", y))

	y, err = x.ApplyEquivalenceByPosition(expr.RootPosition().Index(1).Index(1), minIdempotence, expr.CheckLeftOnly)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(y, x))

	_, err = x.ApplyEquivalenceByPosition(expr.RootPosition().Operand(), minIdempotence, expr.CheckLeftOnly)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))
}

func TestMakeEquivalence(t *testing.T) {
	_, err := expr.MakeEquivalence("mixed", pf, pa)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))

	eq, err := expr.MakeEquivalence("min", expr.Minimum(pf, pf), pf)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(eq.String(), "min: f ∧ f ≡ f"))
	qt.Assert(t, qt.Equals(closureOfSubAdditive.String(),
		"closure-of-sub-additive: closure(f) ≡ f if f is sub-additive, f is zero-at-zero"))
}

func TestRewrite(t *testing.T) {
	e := newEnv()
	f, g := e.curve("f"), e.curve("g")
	reg := expr.NewRegistry()
	qt.Assert(t, qt.IsTrue(reg.Add(expr.MinimumOp, minIdempotence)))
	qt.Assert(t, qt.IsTrue(reg.Add(expr.DelayByOp, delayComposes)))

	x := expr.DelayBy(
		expr.DelayBy(expr.Convolution(expr.Minimum(f, f), expr.Minimum(g, g)), expr.RationalNumber(1, 2)),
		expr.RationalNumber(1, 2))
	y, n, err := x.Rewrite(reg, 0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n, 2))
	want := expr.DelayBy(expr.Convolution(f, g),
		expr.RationalAddition(expr.RationalNumber(1, 2), expr.RationalNumber(1, 2)))
	qt.Assert(t, qt.IsTrue(y.Equal(want)), qt.Commentf("%v", y))

	_, n, err = x.Rewrite(reg, 1)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(n, 1))
}

// sameEquivalence compares equivalences by identity.
var sameEquivalence = cmp.Comparer(func(x, y *expr.Equivalence) bool { return x == y })

func TestRegistry(t *testing.T) {
	reg := expr.NewRegistry()
	qt.Assert(t, qt.IsFalse(reg.Add(expr.MaximumOp, minIdempotence)))
	qt.Assert(t, qt.HasLen(reg.Lookup(expr.MaximumOp), 0))

	qt.Assert(t, qt.IsTrue(reg.Add(expr.MinimumOp, minIdempotence)))
	qt.Assert(t, qt.IsTrue(reg.Add(expr.DelayByOp, delayComposes)))
	qt.Assert(t, qt.CmpEquals(reg.Lookup(expr.MinimumOp), []*expr.Equivalence{minIdempotence}, sameEquivalence))
	qt.Assert(t, qt.Equals(reg.Len(), 2))
	qt.Assert(t, qt.CmpEquals(reg.All(), []*expr.Equivalence{minIdempotence, delayComposes}, sameEquivalence))
}

func TestRegistryStrict(t *testing.T) {
	qt.Assert(t, qt.IsNil(ncdebug.Init()))
	old := ncdebug.Flags
	t.Cleanup(func() { ncdebug.Flags = old })
	ncdebug.Flags.Strict = true

	reg := expr.NewRegistry()
	qt.Assert(t, qt.PanicMatches(func() {
		reg.Add(expr.MaximumOp, minIdempotence)
	}, `assertion failed: equivalence min-idempotence has left side Minimum; registered for Maximum`))
}

func TestRegistryConcurrent(t *testing.T) {
	reg := expr.NewRegistry()
	const workers, each = 8, 50

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < each; i++ {
				if !reg.Add(expr.MinimumOp, minIdempotence) {
					return fmt.Errorf("add %d rejected", i)
				}
				if len(reg.Lookup(expr.MinimumOp)) == 0 {
					return fmt.Errorf("lookup %d saw no equivalences", i)
				}
			}
			return nil
		})
	}
	qt.Assert(t, qt.IsNil(g.Wait()))
	qt.Assert(t, qt.HasLen(reg.Lookup(expr.MinimumOp), workers*each))
}
