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

package rational

import (
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Big is an extended rational with arbitrary-precision numerator and
// denominator.
//
// The zero value is 0. Big values are immutable: the integers they hold are
// never modified after construction and may be shared between values.
type Big struct {
	num *apd.BigInt // nil denotes 0
	den *apd.BigInt // nil denotes 1; 0 denotes an infinity
}

var (
	bigZero = apd.NewBigInt(0)
	bigOne  = apd.NewBigInt(1)
	bigTen  = apd.NewBigInt(10)

	// BigPlusInfinity is +∞.
	BigPlusInfinity = Big{num: apd.NewBigInt(1), den: apd.NewBigInt(0)}

	// BigMinusInfinity is -∞.
	BigMinusInfinity = Big{num: apd.NewBigInt(-1), den: apd.NewBigInt(0)}
)

// NewBig returns num/den in lowest terms. A zero denominator yields an
// infinity with the sign of num; 0/0 reports ErrUndetermined.
func NewBig(num, den int64) (Big, error) {
	return makeBig(apd.NewBigInt(num), apd.NewBigInt(den))
}

// NewBigFromInts is like NewBig for arbitrary-precision integers. The
// arguments are not retained.
func NewBigFromInts(num, den *apd.BigInt) (Big, error) {
	return makeBig(new(apd.BigInt).Set(num), new(apd.BigInt).Set(den))
}

// BigFromInt64 returns i as a Big.
func BigFromInt64(i int64) Big {
	if i == 0 {
		return Big{}
	}
	return Big{num: apd.NewBigInt(i)}
}

// BigFromFloat64 returns the exact value of f. Infinite values map to the
// corresponding infinity; NaN reports ErrUndetermined.
func BigFromFloat64(f float64) (Big, error) {
	switch {
	case math.IsNaN(f):
		return Big{}, ErrUndetermined
	case math.IsInf(f, 1):
		return BigPlusInfinity, nil
	case math.IsInf(f, -1):
		return BigMinusInfinity, nil
	}
	r := new(big.Rat).SetFloat64(f)
	num := new(apd.BigInt).SetMathBigInt(r.Num())
	den := new(apd.BigInt).SetMathBigInt(r.Denom())
	return makeBig(num, den)
}

// ParseBig parses s, which must be of the form "n", "n/d", "+Inf", "-Inf"
// or "Inf". The result is reduced to lowest terms.
func ParseBig(s string) (Big, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "+Inf", "Inf", "+∞", "∞":
		return BigPlusInfinity, nil
	case "-Inf", "-∞":
		return BigMinusInfinity, nil
	}
	ns, ds, hasDen := strings.Cut(s, "/")
	num, ok := new(apd.BigInt).SetString(strings.TrimSpace(ns), 10)
	if !ok {
		return Big{}, malformed(s)
	}
	den := apd.NewBigInt(1)
	if hasDen {
		if den, ok = den.SetString(strings.TrimSpace(ds), 10); !ok {
			return Big{}, malformed(s)
		}
	}
	return makeBig(num, den)
}

// makeBig normalizes num/den. It takes ownership of both arguments.
func makeBig(num, den *apd.BigInt) (Big, error) {
	if den.Sign() == 0 {
		switch num.Sign() {
		case 0:
			return Big{}, ErrUndetermined
		case 1:
			return BigPlusInfinity, nil
		default:
			return BigMinusInfinity, nil
		}
	}
	if num.Sign() == 0 {
		return Big{}, nil
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	var g apd.BigInt
	g.GCD(nil, nil, new(apd.BigInt).Abs(num), den)
	if g.Cmp(bigOne) != 0 {
		num.Quo(num, &g)
		den.Quo(den, &g)
	}
	if den.Cmp(bigOne) == 0 {
		den = nil
	}
	return Big{num: num, den: den}, nil
}

func bigInfinity(sign int) Big {
	if sign < 0 {
		return BigMinusInfinity
	}
	return BigPlusInfinity
}

func (x Big) n() *apd.BigInt {
	if x.num == nil {
		return bigZero
	}
	return x.num
}

func (x Big) d() *apd.BigInt {
	if x.den == nil {
		return bigOne
	}
	return x.den
}

// Num returns a copy of the numerator of x. It is ±1 for infinities.
func (x Big) Num() *apd.BigInt { return new(apd.BigInt).Set(x.n()) }

// Den returns a copy of the denominator of x. It is 0 for infinities.
func (x Big) Den() *apd.BigInt { return new(apd.BigInt).Set(x.d()) }

func (x Big) Sign() int             { return x.n().Sign() }
func (x Big) IsZero() bool          { return x.Sign() == 0 }
func (x Big) IsInfinite() bool      { return x.den != nil && x.den.Sign() == 0 }
func (x Big) IsFinite() bool        { return !x.IsInfinite() }
func (x Big) IsPlusInfinite() bool  { return x.IsInfinite() && x.Sign() > 0 }
func (x Big) IsMinusInfinite() bool { return x.IsInfinite() && x.Sign() < 0 }

// IsInteger reports whether x is a finite integer.
func (x Big) IsInteger() bool { return x.den == nil }

// Neg returns -x.
func (x Big) Neg() Big {
	if x.IsZero() {
		return x
	}
	return Big{num: new(apd.BigInt).Neg(x.n()), den: x.den}
}

// Abs returns |x|.
func (x Big) Abs() Big {
	if x.Sign() >= 0 {
		return x
	}
	return x.Neg()
}

// Add returns x+y. Adding infinities of opposite sign reports
// ErrUndetermined.
func (x Big) Add(y Big) (Big, error) {
	if x.IsInfinite() || y.IsInfinite() {
		s, err := addInfinities(x.Sign(), x.IsInfinite(), y.Sign(), y.IsInfinite())
		if err != nil {
			return Big{}, err
		}
		return bigInfinity(s), nil
	}
	if x.den == nil && y.den == nil {
		return makeBig(new(apd.BigInt).Add(x.n(), y.n()), apd.NewBigInt(1))
	}
	var a, b apd.BigInt
	a.Mul(x.n(), y.d())
	b.Mul(y.n(), x.d())
	num := new(apd.BigInt).Add(&a, &b)
	den := new(apd.BigInt).Mul(x.d(), y.d())
	return makeBig(num, den)
}

// Sub returns x-y.
func (x Big) Sub(y Big) (Big, error) {
	return x.Add(y.Neg())
}

// Mul returns x*y. A zero operand yields zero even if the other operand is
// infinite.
func (x Big) Mul(y Big) (Big, error) {
	if x.IsZero() || y.IsZero() {
		return Big{}, nil
	}
	if x.IsInfinite() || y.IsInfinite() {
		return bigInfinity(x.Sign() * y.Sign()), nil
	}
	num := new(apd.BigInt).Mul(x.n(), y.n())
	den := new(apd.BigInt).Mul(x.d(), y.d())
	return makeBig(num, den)
}

// Quo returns x/y.
//
// Division of zero by zero and of an infinity by an infinity reports
// ErrUndetermined; division of any other value by zero reports
// ErrDivideByZero. A finite value divided by an infinity is zero.
func (x Big) Quo(y Big) (Big, error) {
	switch {
	case y.IsZero():
		if x.IsZero() {
			return Big{}, ErrUndetermined
		}
		return Big{}, ErrDivideByZero
	case x.IsInfinite() && y.IsInfinite():
		return Big{}, ErrUndetermined
	case x.IsInfinite():
		return bigInfinity(x.Sign() * y.Sign()), nil
	case y.IsInfinite():
		return Big{}, nil
	}
	inv, err := y.Inv()
	if err != nil {
		return Big{}, err
	}
	return x.Mul(inv)
}

// Inv returns 1/x. The inverse of an infinity is zero.
func (x Big) Inv() (Big, error) {
	switch {
	case x.IsZero():
		return Big{}, ErrDivideByZero
	case x.IsInfinite():
		return Big{}, nil
	}
	return makeBig(new(apd.BigInt).Set(x.d()), new(apd.BigInt).Set(x.n()))
}

// Rem returns the remainder x - y*trunc(x/y), which has the sign of x.
// The remainder of a finite value by an infinity is the value itself.
func (x Big) Rem(y Big) (Big, error) {
	switch {
	case x.IsInfinite():
		return Big{}, ErrUndetermined
	case y.IsZero():
		if x.IsZero() {
			return Big{}, ErrUndetermined
		}
		return Big{}, ErrDivideByZero
	case y.IsInfinite(), x.IsZero():
		return x, nil
	}
	q, err := x.Quo(y)
	if err != nil {
		return Big{}, err
	}
	t := Big{num: new(apd.BigInt).Quo(q.n(), q.d())}
	p, err := y.Mul(t)
	if err != nil {
		return Big{}, err
	}
	return x.Sub(p)
}

// maxBigExponent bounds the exponent of Big.Pow for bases other than 0
// and ±1.
const maxBigExponent = 1 << 24

// Pow returns x raised to the n-th power. Negative exponents invert x
// first. The zero-th power of an infinity reports ErrUndetermined, and an
// exponent beyond 1<<24 reports ErrOverflow unless x is 0, ±1 or infinite.
func (x Big) Pow(n int) (Big, error) {
	switch {
	case n == 0:
		if x.IsInfinite() {
			return Big{}, ErrUndetermined
		}
		return BigFromInt64(1), nil
	case n < 0:
		inv, err := x.Inv()
		if err != nil {
			return Big{}, err
		}
		if n == math.MinInt {
			// -n is not representable.
			y, err := inv.Pow(math.MaxInt)
			if err != nil {
				return Big{}, err
			}
			return y.Mul(inv)
		}
		return inv.Pow(-n)
	case x.IsInfinite():
		if n%2 == 0 {
			return BigPlusInfinity, nil
		}
		return x, nil
	case x.IsZero():
		return x, nil
	case n > maxBigExponent && !(x.IsInteger() && x.n().CmpAbs(bigOne) == 0):
		return Big{}, ErrOverflow
	}
	e := apd.NewBigInt(int64(n))
	num := new(apd.BigInt).Exp(x.n(), e, nil)
	den := new(apd.BigInt).Exp(x.d(), e, nil)
	return makeBig(num, den)
}

// Floor returns the greatest integer not larger than x. Infinities are
// returned unchanged.
func (x Big) Floor() Big {
	if x.den == nil || x.IsInfinite() {
		return x
	}
	// Euclidean division rounds towards -∞ for a positive divisor.
	q := new(apd.BigInt).Div(x.n(), x.d())
	if q.Sign() == 0 {
		return Big{}
	}
	return Big{num: q}
}

// Ceil returns the least integer not smaller than x. Infinities are
// returned unchanged.
func (x Big) Ceil() Big {
	return x.Neg().Floor().Neg()
}

// GCD returns the greatest rational g such that x/g and y/g are both
// integers. The result is non-negative.
func (x Big) GCD(y Big) (Big, error) {
	if x.IsInfinite() || y.IsInfinite() {
		return Big{}, ErrInfinite
	}
	var a, b apd.BigInt
	a.Abs(x.n())
	b.Abs(y.n())
	num := new(apd.BigInt).GCD(nil, nil, &a, &b)
	if num.Sign() == 0 {
		return Big{}, nil
	}
	return makeBig(num, lcmInt(x.d(), y.d()))
}

// LCM returns the least non-negative rational that is an integer multiple of
// both x and y. It is zero if either operand is zero.
func (x Big) LCM(y Big) (Big, error) {
	if x.IsInfinite() || y.IsInfinite() {
		return Big{}, ErrInfinite
	}
	if x.IsZero() || y.IsZero() {
		return Big{}, nil
	}
	var a, b apd.BigInt
	a.Abs(x.n())
	b.Abs(y.n())
	den := new(apd.BigInt).GCD(nil, nil, x.d(), y.d())
	return makeBig(lcmInt(&a, &b), den)
}

// lcmInt returns the least common multiple of two positive integers.
func lcmInt(a, b *apd.BigInt) *apd.BigInt {
	var g apd.BigInt
	g.GCD(nil, nil, a, b)
	z := new(apd.BigInt).Quo(a, &g)
	return z.Mul(z, b)
}

// Cmp returns -1, 0 or 1 depending on whether x is smaller than, equal to,
// or larger than y. Infinities are outside the range of all finite values.
func (x Big) Cmp(y Big) int {
	if x.IsInfinite() || y.IsInfinite() {
		return cmpInfinities(x.Sign(), x.IsInfinite(), y.Sign(), y.IsInfinite())
	}
	if x.den == nil && y.den == nil {
		return x.n().Cmp(y.n())
	}
	var a, b apd.BigInt
	a.Mul(x.n(), y.d())
	b.Mul(y.n(), x.d())
	return a.Cmp(&b)
}

func (x Big) Equal(y Big) bool { return x.Cmp(y) == 0 }
func (x Big) Less(y Big) bool  { return x.Cmp(y) < 0 }

// Int64 returns x truncated towards zero. It reports ErrInfinite for
// infinities. The result is (math.MinInt64, ErrAbove) for x < math.MinInt64,
// and (math.MaxInt64, ErrBelow) for x > math.MaxInt64.
func (x Big) Int64() (int64, error) {
	if x.IsInfinite() {
		return 0, ErrInfinite
	}
	t := new(apd.BigInt).Quo(x.n(), x.d())
	if !t.IsInt64() {
		if t.Sign() < 0 {
			return math.MinInt64, ErrAbove
		}
		return math.MaxInt64, ErrBelow
	}
	return t.Int64(), nil
}

// Float64 returns the float64 value nearest to x. Infinities report
// ErrInfinite together with the matching float infinity. If x is too large
// to be represented by a float64, the result is (+Inf, ErrAbove) or
// (-Inf, ErrBelow). If x is too small, the result is (0, ErrBelow) or
// (-0, ErrAbove).
func (x Big) Float64() (float64, error) {
	if x.IsInfinite() {
		return math.Inf(x.Sign()), ErrInfinite
	}
	if x.IsZero() {
		return 0, nil
	}
	r := new(big.Rat).SetFrac(x.n().MathBigInt(), x.d().MathBigInt())
	f, _ := r.Float64()
	return checkFloat(f, x.Sign())
}

func checkFloat(f float64, sign int) (float64, error) {
	switch {
	case math.IsInf(f, 1):
		return f, ErrAbove
	case math.IsInf(f, -1):
		return f, ErrBelow
	case f == 0 && sign > 0:
		return 0, ErrBelow
	case f == 0 && sign < 0:
		return math.Copysign(0, -1), ErrAbove
	}
	return f, nil
}

// Fixed converts x to the fixed-width representation. It reports
// ErrOverflow if the numerator or denominator does not fit.
func (x Big) Fixed() (Fixed, error) {
	if x.IsInfinite() {
		return fixedInfinity(x.Sign()), nil
	}
	n, d := x.n(), x.d()
	if !n.IsInt64() || !d.IsInt64() || n.Int64() == math.MinInt64 {
		return Fixed{}, ErrOverflow
	}
	return Fixed{num: n.Int64(), den: d.Int64()}.canon(), nil
}

// String returns x as "n", "n/d", "+Inf" or "-Inf".
func (x Big) String() string {
	switch {
	case x.IsPlusInfinite():
		return "+Inf"
	case x.IsMinusInfinite():
		return "-Inf"
	case x.den == nil:
		return x.n().String()
	}
	return x.n().String() + "/" + x.d().String()
}
