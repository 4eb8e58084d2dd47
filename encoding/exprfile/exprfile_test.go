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

package exprfile_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"netcalc.org/go/encoding/exprfile"
	"netcalc.org/go/expr"
	"netcalc.org/go/internal/curvetest"
	"netcalc.org/go/rational"
)

const minimumDoc = `
op: minimum
name: m
args:
  - op: convolution
    args:
      - placeholder: f
      - curve: beta
  - op: delay-by
    args:
      - placeholder: g
      - value: 3/4
        name: T
`

func curves(name string) (expr.Curve, bool) {
	if name == "beta" {
		return curvetest.New("beta"), true
	}
	return nil, false
}

func TestDecode(t *testing.T) {
	x, err := exprfile.Decode([]byte(minimumDoc), &exprfile.Options{Curves: curves})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(x.Name(), "m"))

	beta := expr.NewCurve(curvetest.New("beta"), "beta")
	want := expr.Minimum(
		expr.Convolution(expr.CurvePlaceholder("f"), beta),
		expr.DelayBy(expr.CurvePlaceholder("g"), expr.RationalNumber(3, 4)))
	qt.Assert(t, qt.IsTrue(expr.Equal(x, want)), qt.Commentf("%v", x))
	qt.Assert(t, qt.Equals(x.ToUnicodeString(10, true), "(f ⊗ beta) ∧ (g ⊗ δ_T)"))
}

func TestDecodeJSON(t *testing.T) {
	const doc = `{"op": "rational-addition", "args": [{"value": "3/4"}, {"value": 1}, {"placeholder": "a", "domain": "rational"}]}`
	x, err := exprfile.Decode([]byte(doc), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(x.Domain(), expr.RationalDomain))
	qt.Assert(t, qt.HasLen(x.Operands(), 3))
	qt.Assert(t, qt.Equals(x.String(), "3/4 + 1 + a"))
}

func TestDecodeSettings(t *testing.T) {
	s := &expr.Settings{Algebra: &curvetest.Algebra{}}
	x, err := exprfile.Decode([]byte(minimumDoc), &exprfile.Options{Curves: curves, Settings: s})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(x.Settings(), s))
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		wantErr string
	}{{
		name:    "notMapping",
		doc:     `[1, 2]`,
		wantErr: `exprfile: 1:1: expression must be a mapping`,
	}, {
		name:    "unknownField",
		doc:     "op: negate\nfoo: 1\n",
		wantErr: `exprfile: 2:1: unknown field "foo"`,
	}, {
		name:    "unknownOp",
		doc:     `op: frobnicate`,
		wantErr: `exprfile: 1:5: unknown operator "frobnicate"`,
	}, {
		name:    "leafOp",
		doc:     `op: curve`,
		wantErr: `exprfile: 1:5: unknown operator "curve"`,
	}, {
		name:    "twoKinds",
		doc:     `{value: 1, placeholder: f}`,
		wantErr: `exprfile: 1:1: expression needs exactly one of op, value, placeholder or curve`,
	}, {
		name:    "badValue",
		doc:     `value: 0/0`,
		wantErr: `exprfile: 1:8: .*`,
	}, {
		name:    "arity",
		doc:     "op: minimum\nargs: [{placeholder: f}]\n",
		wantErr: `exprfile: 1:5: expr: invalid structure: Minimum needs at least 2 operands, got 1`,
	}, {
		name:    "domain",
		doc:     "op: negate\nargs: [{placeholder: a, domain: rational}]\n",
		wantErr: `exprfile: 1:5: expr: invalid structure: operand 0 of Negate is a rational expression; want curve`,
	}, {
		name:    "unknownDomain",
		doc:     `{placeholder: a, domain: integer}`,
		wantErr: `exprfile: 1:26: unknown domain "integer"`,
	}, {
		name:    "noCurves",
		doc:     `curve: beta`,
		wantErr: `exprfile: 1:8: no curves available for "beta"`,
	}, {
		name:    "argsOnLeaf",
		doc:     `{value: 1, args: []}`,
		wantErr: `exprfile: 1:18: args only apply to operators`,
	}, {
		name:    "twoDocuments",
		doc:     "value: 1\n---\nvalue: 2\n",
		wantErr: `exprfile: found 2 documents, want 1`,
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := exprfile.Decode([]byte(tc.doc), nil)
			qt.Assert(t, qt.ErrorMatches(err, tc.wantErr))
		})
	}

	_, err := exprfile.Decode([]byte("op: minimum\nargs: [{placeholder: f}]\n"), nil)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))
	_, err = exprfile.Decode([]byte(`value: 0/0`), nil)
	qt.Assert(t, qt.ErrorIs(err, rational.ErrUndetermined))
}

func TestRoundTrip(t *testing.T) {
	x, err := exprfile.Decode([]byte(minimumDoc), &exprfile.Options{Curves: curves})
	qt.Assert(t, qt.IsNil(err))

	for _, encode := range []func(expr.Node) ([]byte, error){exprfile.Encode, exprfile.EncodeJSON} {
		b, err := encode(x)
		qt.Assert(t, qt.IsNil(err))
		y, err := exprfile.Decode(b, &exprfile.Options{Curves: curves})
		qt.Assert(t, qt.IsNil(err), qt.Commentf("%s", b))
		qt.Assert(t, qt.IsTrue(expr.Equal(x, y)))
		qt.Assert(t, qt.Equals(y.Name(), "m"))
	}
}

func TestEncode(t *testing.T) {
	x := expr.RationalAddition(expr.RationalNumber(1, 2, expr.Named("T")), expr.RationalPlaceholder("a"))
	b, err := exprfile.Encode(x)
	qt.Assert(t, qt.IsNil(err))
	want := `op: rational-addition
args:
  - name: T
    value: 1/2
  - placeholder: a
    domain: rational
`
	qt.Assert(t, qt.Equals(string(b), want), qt.Commentf("%s", cmp.Diff(want, string(b))))
}

func TestDecodeEquivalences(t *testing.T) {
	const doc = `
- name: closure-of-sub-additive
  left: {op: sub-additive-closure, args: [{placeholder: f}]}
  right: {placeholder: f}
  hypotheses:
    - {placeholder: f, property: sub-additive}
    - {placeholder: f, property: zero-at-zero}
- name: add-zero
  left: {op: rational-addition, args: [{placeholder: a, domain: rational}, {value: 0}]}
  right: {placeholder: a, domain: rational}
`
	eqs, err := exprfile.DecodeEquivalences([]byte(doc), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(eqs, 2))
	qt.Assert(t, qt.Equals(eqs[0].String(),
		"closure-of-sub-additive: closure(f) ≡ f if f is sub-additive, f is zero-at-zero"))
	qt.Assert(t, qt.Equals(eqs[1].Left.Op(), expr.RationalAdditionOp))

	_, err = exprfile.DecodeEquivalences([]byte(`[{name: x, left: {placeholder: f}, right: {placeholder: a, domain: rational}}]`), nil)
	qt.Assert(t, qt.ErrorIs(err, expr.ErrInvalidStructure))

	_, err = exprfile.DecodeEquivalences([]byte("- name: x\n  left: {placeholder: f}\n  right: {placeholder: f}\n  hypotheses: [{placeholder: f, property: round}]\n"), nil)
	qt.Assert(t, qt.ErrorMatches(err, `exprfile: 4:16: unknown property "round"`))

	eqs, err = exprfile.DecodeEquivalences(nil, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(eqs, 0))
}
