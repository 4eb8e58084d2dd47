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
	"errors"
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/sync/errgroup"

	"netcalc.org/go/expr"
	"netcalc.org/go/internal/curvetest"
	"netcalc.org/go/rational"
)

// env holds curve leaves backed by an instrumented algebra.
type env struct {
	alg      *curvetest.Algebra
	settings *expr.Settings
}

func newEnv() *env {
	alg := &curvetest.Algebra{}
	return &env{alg: alg, settings: &expr.Settings{Algebra: alg}}
}

func (e *env) curve(name string, props ...expr.Property) *expr.CurveExpression {
	return expr.NewCurve(curvetest.New(name, props...), name, expr.WithSettings(e.settings))
}

func TestRationalAddition(t *testing.T) {
	x := expr.RationalAddition(expr.RationalNumber(3, 4), expr.RationalNumber(1, 4))
	v, err := x.Value()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(v.Equal(rational.One)), qt.Commentf("got %v", v))
	qt.Assert(t, qt.IsTrue(x.IsComputed()))
}

func TestRationalOperators(t *testing.T) {
	n := expr.RationalNumber
	testCases := []struct {
		name string
		x    *expr.RationalExpression
		want string
	}{{
		name: "product",
		x:    expr.RationalProduct(n(2, 3), n(3, 4), n(2, 1)),
		want: "1",
	}, {
		name: "min",
		x:    expr.RationalMinimum(n(2, 3), n(-1, 4), expr.NewRational(rational.PlusInfinity)),
		want: "-1/4",
	}, {
		name: "max",
		x:    expr.RationalMaximum(n(2, 3), n(5, 6)),
		want: "5/6",
	}, {
		name: "subtraction",
		x:    expr.RationalSubtraction(n(1, 2), n(1, 3)),
		want: "1/6",
	}, {
		name: "division",
		x:    expr.RationalDivision(n(1, 2), n(3, 4)),
		want: "2/3",
	}, {
		name: "negate",
		x:    expr.RationalNegate(n(1, 2)),
		want: "-1/2",
	}, {
		name: "invert",
		x:    expr.RationalInvert(n(-2, 5)),
		want: "-5/2",
	}, {
		name: "lcm",
		x:    expr.RationalLCM(n(1, 2), n(2, 3)),
		want: "2",
	}, {
		name: "gcd",
		x:    expr.RationalGCD(n(1, 2), n(2, 3)),
		want: "1/6",
	}, {
		name: "nested",
		x:    expr.RationalAddition(expr.RationalProduct(n(1, 2), n(1, 2)), expr.RationalNegate(n(1, 4))),
		want: "0",
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.x.Value()
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(v.String(), tc.want))
		})
	}
}

func TestRationalErrors(t *testing.T) {
	_, err := expr.RationalDivision(expr.RationalNumber(1, 1), expr.RationalNumber(0, 1)).Value()
	qt.Assert(t, qt.ErrorIs(err, rational.ErrDivideByZero))

	inf := expr.NewRational(rational.PlusInfinity)
	_, err = expr.RationalAddition(inf, expr.RationalNegate(inf)).Value()
	qt.Assert(t, qt.ErrorIs(err, rational.ErrUndetermined))
}

func TestFlatten(t *testing.T) {
	e := newEnv()
	f, g, h := e.curve("f"), e.curve("g"), e.curve("h")

	x := expr.Minimum(expr.Minimum(f, g), h)
	qt.Assert(t, qt.HasLen(x.Operands(), 3))
	qt.Assert(t, qt.IsTrue(expr.Equal(x, expr.Minimum(f, expr.Minimum(g, h)))))

	y := expr.Addition(expr.Minimum(f, g), h)
	qt.Assert(t, qt.HasLen(y.Operands(), 2))

	z, err := expr.Combine(expr.MinimumOp, x, expr.Addition(g, h))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(z.Operands(), 4))

	z, err = expr.Combine(expr.ConvolutionOp, x, h)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(z.Operands(), 2))

	_, err = expr.Combine(expr.SubtractionOp, f, g)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))
}

func TestBuild(t *testing.T) {
	e := newEnv()
	f, g := e.curve("f"), e.curve("g")
	half := expr.RationalNumber(1, 2)

	testCases := []struct {
		name    string
		op      expr.Op
		args    []expr.Node
		wantErr bool
	}{
		{name: "nary", op: expr.ConvolutionOp, args: []expr.Node{f, g}},
		{name: "naryTooFew", op: expr.ConvolutionOp, args: []expr.Node{f}, wantErr: true},
		{name: "binary", op: expr.DelayByOp, args: []expr.Node{f, half}},
		{name: "binaryDomain", op: expr.DelayByOp, args: []expr.Node{f, g}, wantErr: true},
		{name: "binaryArity", op: expr.SubtractionOp, args: []expr.Node{f, g, f}, wantErr: true},
		{name: "unary", op: expr.NegateOp, args: []expr.Node{f}},
		{name: "unaryDomain", op: expr.NegateOp, args: []expr.Node{half}, wantErr: true},
		{name: "rational", op: expr.ValueAtOp, args: []expr.Node{f, half}},
		{name: "leaf", op: expr.CurveLeafOp, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, err := expr.Build(tc.op, tc.args...)
			if tc.wantErr {
				qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(x.Op(), tc.op))
			qt.Assert(t, qt.Equals(x.Domain(), tc.op.Domain()))
			qt.Assert(t, qt.Equals(x.Settings(), e.settings))
		})
	}
}

func TestSettingsInherited(t *testing.T) {
	e := newEnv()
	x := expr.Addition(expr.CurvePlaceholder("p"), e.curve("f"))
	qt.Assert(t, qt.Equals(x.Settings(), e.settings))

	y := expr.Addition(expr.CurvePlaceholder("p"), expr.CurvePlaceholder("q"))
	qt.Assert(t, qt.IsNil(y.Settings()))
}

func TestMemoization(t *testing.T) {
	e := newEnv()
	c := expr.Convolution(e.curve("f"), e.curve("g"))
	qt.Assert(t, qt.IsFalse(c.IsComputed()))

	x := expr.Minimum(c, expr.SubAdditiveClosure(c))
	v1, err := x.Value()
	qt.Assert(t, qt.IsNil(err))
	v2, err := x.Compute()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v1, v2))
	qt.Assert(t, qt.Equals(v1.(*curvetest.Curve).Form,
		"minimum(convolution(f, g), sub-additive-closure(convolution(f, g)))"))

	qt.Assert(t, qt.Equals(e.alg.Calls(expr.ConvolutionOp), 1))
	qt.Assert(t, qt.Equals(e.alg.Calls(expr.SubAdditiveClosureOp), 1))
	qt.Assert(t, qt.Equals(e.alg.Calls(expr.MinimumOp), 1))
	qt.Assert(t, qt.IsTrue(c.IsComputed()))
}

// Goroutines computing a shared tree for the first time all observe the
// value that was cached, and the same properties.
func TestConcurrentMemoization(t *testing.T) {
	e := newEnv()
	e.alg.Rationals = map[expr.Op]rational.Rational{expr.ValueAtOp: rational.MustNew(3, 4)}
	f := e.curve("f", expr.SubAdditive, expr.ZeroAtZero)
	m := expr.Minimum(expr.Convolution(f, e.curve("g", expr.Concave)), expr.SubAdditiveClosure(f))
	at := expr.ValueAt(m, expr.RationalNumber(1, 2))
	props := expr.Properties()

	const workers = 16
	curves := make([]expr.Curve, workers)
	values := make([]rational.Rational, workers)
	found := make([][]bool, workers)
	var grp errgroup.Group
	for w := 0; w < workers; w++ {
		grp.Go(func() error {
			for _, p := range props {
				ok, err := expr.HasProperty(m, p)
				if err != nil {
					return err
				}
				found[w] = append(found[w], ok)
			}
			c, err := m.Value()
			if err != nil {
				return err
			}
			v, err := at.Value()
			if err != nil {
				return err
			}
			curves[w], values[w] = c, v
			return nil
		})
	}
	qt.Assert(t, qt.IsNil(grp.Wait()))

	for w := 1; w < workers; w++ {
		qt.Assert(t, qt.Equals(curves[w], curves[0]), qt.Commentf("worker %d", w))
		qt.Assert(t, qt.IsTrue(values[w].Equal(values[0])), qt.Commentf("worker %d", w))
		qt.Assert(t, qt.DeepEquals(found[w], found[0]), qt.Commentf("worker %d", w))
	}
	qt.Assert(t, qt.Equals(curves[0].(*curvetest.Curve).Form,
		"minimum(convolution(f, g), sub-additive-closure(f))"))
	qt.Assert(t, qt.Equals(values[0].String(), "3/4"))
	qt.Assert(t, qt.IsTrue(m.IsComputed()))
	qt.Assert(t, qt.IsTrue(at.IsComputed()))

	calls := e.alg.Total()
	c, err := m.Value()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(c, curves[0]))
	_, err = expr.HasProperty(m, expr.Concave)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(e.alg.Total(), calls))
}

func TestFailuresNotCached(t *testing.T) {
	e := newEnv()
	boom := errors.New("boom")
	e.alg.Fail = boom
	x := expr.Convolution(e.curve("f"), e.curve("g"))

	_, err := x.Value()
	qt.Assert(t, qt.ErrorIs(err, boom))
	qt.Assert(t, qt.IsFalse(x.IsComputed()))

	e.alg.Fail = nil
	_, err = x.Value()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(e.alg.Calls(expr.ConvolutionOp), 2))
}

func TestPlaceholderValue(t *testing.T) {
	e := newEnv()
	x := expr.Convolution(expr.CurvePlaceholder("p"), e.curve("g"))
	_, err := x.Value()
	qt.Assert(t, qt.ErrorIs(err, expr.ErrPlaceholder))
	qt.Assert(t, qt.Equals(e.alg.Total(), 0))

	_, err = expr.RationalAddition(expr.RationalPlaceholder("a"), expr.RationalNumber(1, 1)).Value()
	qt.Assert(t, qt.ErrorIs(err, expr.ErrPlaceholder))
}

func TestNoAlgebra(t *testing.T) {
	f := expr.NewCurve(curvetest.New("f"), "f")
	_, err := expr.Negate(f).Value()
	qt.Assert(t, qt.ErrorIs(err, expr.ErrNoAlgebra))
}

func TestRationalFromCurves(t *testing.T) {
	e := newEnv()
	e.alg.Rationals = map[expr.Op]rational.Rational{
		expr.HorizontalDeviationOp: rational.MustNew(5, 2),
	}
	d := expr.HorizontalDeviation(e.curve("alpha"), e.curve("beta"))
	v, err := expr.RationalAddition(d, expr.RationalNumber(1, 2)).Value()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.String(), "3"))
	qt.Assert(t, qt.Equals(e.alg.Calls(expr.HorizontalDeviationOp), 1))
}

func TestWithName(t *testing.T) {
	e := newEnv()
	x := expr.Convolution(e.curve("f"), e.curve("g"))
	_, err := x.Value()
	qt.Assert(t, qt.IsNil(err))

	y := x.WithName("h")
	qt.Assert(t, qt.Equals(x.Name(), ""))
	qt.Assert(t, qt.Equals(y.Name(), "h"))
	qt.Assert(t, qt.IsTrue(y.IsComputed()))
	qt.Assert(t, qt.IsTrue(expr.Equal(x, y)))

	_, err = y.Value()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(e.alg.Calls(expr.ConvolutionOp), 1))
}

func TestLeaf(t *testing.T) {
	e := newEnv()
	f := e.curve("f")
	c, ok := f.Leaf()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(c.Equivalent(curvetest.New("f"))))
	qt.Assert(t, qt.IsTrue(f.IsComputed()))

	_, ok = expr.CurvePlaceholder("p").Leaf()
	qt.Assert(t, qt.IsFalse(ok))
	_, ok = expr.Negate(f).Leaf()
	qt.Assert(t, qt.IsFalse(ok))
}

func TestOperands(t *testing.T) {
	e := newEnv()
	f, g := e.curve("f"), e.curve("g")
	half := expr.RationalNumber(1, 2)

	d := expr.DelayBy(f, half)
	qt.Assert(t, qt.Equals(d.LeftOperand(), expr.Node(f)))
	qt.Assert(t, qt.Equals(d.RightOperand(), expr.Node(half)))
	qt.Assert(t, qt.Equals(expr.Negate(g).Operand(), expr.Node(g)))
	qt.Assert(t, qt.PanicMatches(func() { d.Operand() }, `expr: DelayBy node is not unary`))

	x := expr.Minimum(f, g)
	ops := x.Operands()
	ops[0] = g
	qt.Assert(t, qt.Equals(x.Operands()[0], expr.Node(f)))
}

func TestOps(t *testing.T) {
	for _, op := range expr.Ops() {
		got, ok := expr.LookupOp(op.Key())
		qt.Assert(t, qt.IsTrue(ok), qt.Commentf("%v", op))
		qt.Assert(t, qt.Equals(got, op))
		qt.Assert(t, qt.Not(qt.Equals(op.Domain().String(), "Domain(0)")), qt.Commentf("%v", op))
	}
	_, ok := expr.LookupOp("bogus")
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.Equals(expr.MaxPlusConvolutionOp.Key(), "max-plus-convolution"))
	qt.Assert(t, qt.Equals(expr.ValueAtOp.OperandDomain(1), expr.RationalDomain))
}
