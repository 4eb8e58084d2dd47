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
	"math/bits"
	"strconv"
)

// Fixed is an extended rational with int64 numerator and denominator.
//
// Neither component is ever math.MinInt64, so negation is always exact.
// Operations whose intermediate products overflow are recomputed with Big;
// only results that do not themselves fit report ErrOverflow. Fixed is
// therefore indistinguishable from Big for every value it can hold.
//
// The zero value is 0. Fixed values are comparable with ==.
type Fixed struct {
	num int64
	den int64 // 0 with a non-zero num denotes an infinity
}

var (
	// FixedPlusInfinity is +∞.
	FixedPlusInfinity = Fixed{num: 1}

	// FixedMinusInfinity is -∞.
	FixedMinusInfinity = Fixed{num: -1}
)

// NewFixed returns num/den in lowest terms. A zero denominator yields an
// infinity with the sign of num; 0/0 reports ErrUndetermined.
func NewFixed(num, den int64) (Fixed, error) {
	if num == math.MinInt64 || den == math.MinInt64 {
		b, err := NewBig(num, den)
		if err != nil {
			return Fixed{}, err
		}
		return b.Fixed()
	}
	return makeFixed(num, den)
}

// FixedFromInt64 returns i as a Fixed. It reports ErrOverflow for
// math.MinInt64.
func FixedFromInt64(i int64) (Fixed, error) {
	return NewFixed(i, 1)
}

// FixedFromFloat64 returns the exact value of f. Infinite values map to the
// corresponding infinity; NaN reports ErrUndetermined.
func FixedFromFloat64(f float64) (Fixed, error) {
	b, err := BigFromFloat64(f)
	if err != nil {
		return Fixed{}, err
	}
	return b.Fixed()
}

// ParseFixed parses s in the syntax accepted by ParseBig.
func ParseFixed(s string) (Fixed, error) {
	b, err := ParseBig(s)
	if err != nil {
		return Fixed{}, err
	}
	return b.Fixed()
}

// makeFixed normalizes num/den, neither of which is math.MinInt64.
func makeFixed(num, den int64) (Fixed, error) {
	if den == 0 {
		switch {
		case num == 0:
			return Fixed{}, ErrUndetermined
		case num > 0:
			return FixedPlusInfinity, nil
		default:
			return FixedMinusInfinity, nil
		}
	}
	if num == 0 {
		return Fixed{}, nil
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd64(abs64(num), den); g != 1 {
		num, den = num/g, den/g
	}
	return Fixed{num: num, den: den}, nil
}

func fixedInfinity(sign int) Fixed {
	if sign < 0 {
		return FixedMinusInfinity
	}
	return FixedPlusInfinity
}

// canon maps every representation of zero to the zero value.
func (x Fixed) canon() Fixed {
	if x.num == 0 {
		return Fixed{}
	}
	return x
}

// Num returns the numerator of x. It is ±1 for infinities.
func (x Fixed) Num() int64 { return x.num }

// Den returns the denominator of x. It is 0 for infinities.
func (x Fixed) Den() int64 {
	if x.num == 0 {
		return 1
	}
	return x.den
}

// Big converts x to the arbitrary-precision representation.
func (x Fixed) Big() Big {
	switch {
	case x.IsPlusInfinite():
		return BigPlusInfinity
	case x.IsMinusInfinite():
		return BigMinusInfinity
	case x.num == 0:
		return Big{}
	}
	b, _ := NewBig(x.num, x.den)
	return b
}

func (x Fixed) Sign() int             { return sgn64(x.num) }
func (x Fixed) IsZero() bool          { return x.num == 0 }
func (x Fixed) IsInfinite() bool      { return x.den == 0 && x.num != 0 }
func (x Fixed) IsFinite() bool        { return !x.IsInfinite() }
func (x Fixed) IsPlusInfinite() bool  { return x.IsInfinite() && x.num > 0 }
func (x Fixed) IsMinusInfinite() bool { return x.IsInfinite() && x.num < 0 }

// IsInteger reports whether x is a finite integer.
func (x Fixed) IsInteger() bool { return x.num == 0 || x.den == 1 }

// Neg returns -x.
func (x Fixed) Neg() Fixed { return Fixed{num: -x.num, den: x.den} }

// Abs returns |x|.
func (x Fixed) Abs() Fixed { return Fixed{num: abs64(x.num), den: x.den} }

// viaBig applies op to the Big forms of x and y and converts back.
func (x Fixed) viaBig(y Fixed, op func(Big, Big) (Big, error)) (Fixed, error) {
	r, err := op(x.Big(), y.Big())
	if err != nil {
		return Fixed{}, err
	}
	return r.Fixed()
}

// Add returns x+y. See Big.Add.
func (x Fixed) Add(y Fixed) (Fixed, error) {
	if x.IsInfinite() || y.IsInfinite() {
		s, err := addInfinities(x.Sign(), x.IsInfinite(), y.Sign(), y.IsInfinite())
		if err != nil {
			return Fixed{}, err
		}
		return fixedInfinity(s), nil
	}
	switch {
	case x.num == 0:
		return y, nil
	case y.num == 0:
		return x, nil
	}
	g := gcd64(x.den, y.den)
	xd, yd := x.den/g, y.den/g
	a, ok1 := mul64(x.num, yd)
	b, ok2 := mul64(y.num, xd)
	n, ok3 := add64(a, b)
	d, ok4 := mul64(xd, y.den)
	if !(ok1 && ok2 && ok3 && ok4) {
		return x.viaBig(y, Big.Add)
	}
	return makeFixed(n, d)
}

// Sub returns x-y.
func (x Fixed) Sub(y Fixed) (Fixed, error) {
	return x.Add(y.Neg())
}

// Mul returns x*y. See Big.Mul.
func (x Fixed) Mul(y Fixed) (Fixed, error) {
	if x.IsZero() || y.IsZero() {
		return Fixed{}, nil
	}
	if x.IsInfinite() || y.IsInfinite() {
		return fixedInfinity(x.Sign() * y.Sign()), nil
	}
	// Divide out the cross factors first: x and y are reduced, but
	// x.num may share factors with y.den and vice versa.
	xn, xd, yn, yd := x.num, x.den, y.num, y.den
	if g := gcd64(abs64(xn), yd); g != 1 {
		xn, yd = xn/g, yd/g
	}
	if g := gcd64(abs64(yn), xd); g != 1 {
		yn, xd = yn/g, xd/g
	}
	n, ok1 := mul64(xn, yn)
	d, ok2 := mul64(xd, yd)
	if !ok1 || !ok2 {
		return Fixed{}, ErrOverflow
	}
	return Fixed{num: n, den: d}, nil
}

// Quo returns x/y. See Big.Quo.
func (x Fixed) Quo(y Fixed) (Fixed, error) {
	switch {
	case y.IsZero():
		if x.IsZero() {
			return Fixed{}, ErrUndetermined
		}
		return Fixed{}, ErrDivideByZero
	case x.IsInfinite() && y.IsInfinite():
		return Fixed{}, ErrUndetermined
	case x.IsInfinite():
		return fixedInfinity(x.Sign() * y.Sign()), nil
	case y.IsInfinite():
		return Fixed{}, nil
	}
	inv, err := y.Inv()
	if err != nil {
		return Fixed{}, err
	}
	return x.Mul(inv)
}

// Inv returns 1/x. See Big.Inv.
func (x Fixed) Inv() (Fixed, error) {
	switch {
	case x.IsZero():
		return Fixed{}, ErrDivideByZero
	case x.IsInfinite():
		return Fixed{}, nil
	case x.num < 0:
		return Fixed{num: -x.den, den: -x.num}, nil
	}
	return Fixed{num: x.den, den: x.num}, nil
}

// Rem returns x - y*trunc(x/y). See Big.Rem.
func (x Fixed) Rem(y Fixed) (Fixed, error) {
	switch {
	case x.IsInfinite():
		return Fixed{}, ErrUndetermined
	case y.IsZero():
		if x.IsZero() {
			return Fixed{}, ErrUndetermined
		}
		return Fixed{}, ErrDivideByZero
	case y.IsInfinite(), x.IsZero():
		return x, nil
	}
	q, err := x.Quo(y)
	if err != nil {
		return x.viaBig(y, Big.Rem)
	}
	p, err := y.Mul(Fixed{num: q.num / q.den, den: 1}.canon())
	if err != nil {
		return x.viaBig(y, Big.Rem)
	}
	r, err := x.Sub(p)
	if err != nil {
		return x.viaBig(y, Big.Rem)
	}
	return r, nil
}

// Pow returns x raised to the n-th power. See Big.Pow.
func (x Fixed) Pow(n int) (Fixed, error) {
	switch {
	case n == 0:
		if x.IsInfinite() {
			return Fixed{}, ErrUndetermined
		}
		return Fixed{num: 1, den: 1}, nil
	case n < 0:
		inv, err := x.Inv()
		if err != nil {
			return Fixed{}, err
		}
		if n == math.MinInt {
			// -n is not representable.
			y, err := inv.Pow(math.MaxInt)
			if err != nil {
				return Fixed{}, err
			}
			return y.Mul(inv)
		}
		return inv.Pow(-n)
	case x.IsInfinite():
		if n%2 == 0 {
			return FixedPlusInfinity, nil
		}
		return x, nil
	}
	z := Fixed{num: 1, den: 1}
	b := x
	for {
		var err error
		if n&1 != 0 {
			if z, err = z.Mul(b); err != nil {
				return Fixed{}, err
			}
		}
		n >>= 1
		if n == 0 {
			return z, nil
		}
		if b, err = b.Mul(b); err != nil {
			return Fixed{}, err
		}
	}
}

// Floor returns the greatest integer not larger than x. Infinities are
// returned unchanged.
func (x Fixed) Floor() Fixed {
	if x.IsInteger() || x.IsInfinite() {
		return x
	}
	q := x.num / x.den
	if x.num < 0 {
		q--
	}
	return Fixed{num: q, den: 1}.canon()
}

// Ceil returns the least integer not smaller than x. Infinities are
// returned unchanged.
func (x Fixed) Ceil() Fixed {
	return x.Neg().Floor().Neg()
}

// GCD returns the greatest common divisor of x and y. See Big.GCD.
func (x Fixed) GCD(y Fixed) (Fixed, error) {
	if x.IsInfinite() || y.IsInfinite() {
		return Fixed{}, ErrInfinite
	}
	n := gcd64(abs64(x.num), abs64(y.num))
	if n == 0 {
		return Fixed{}, nil
	}
	g := gcd64(x.Den(), y.Den())
	d, ok := mul64(x.Den()/g, y.Den())
	if !ok {
		return x.viaBig(y, Big.GCD)
	}
	return makeFixed(n, d)
}

// LCM returns the least common multiple of x and y. See Big.LCM.
func (x Fixed) LCM(y Fixed) (Fixed, error) {
	if x.IsInfinite() || y.IsInfinite() {
		return Fixed{}, ErrInfinite
	}
	if x.IsZero() || y.IsZero() {
		return Fixed{}, nil
	}
	a, b := abs64(x.num), abs64(y.num)
	n, ok := mul64(a/gcd64(a, b), b)
	if !ok {
		return x.viaBig(y, Big.LCM)
	}
	return makeFixed(n, gcd64(x.den, y.den))
}

// Cmp compares x and y. See Big.Cmp.
func (x Fixed) Cmp(y Fixed) int {
	if x.IsInfinite() || y.IsInfinite() {
		return cmpInfinities(x.Sign(), x.IsInfinite(), y.Sign(), y.IsInfinite())
	}
	if xs, ys := x.Sign(), y.Sign(); xs != ys {
		return cmpInt(xs, ys)
	}
	if x.Den() == y.Den() {
		return cmpInt64(x.num, y.num)
	}
	a, ok1 := mul64(x.num, y.Den())
	b, ok2 := mul64(y.num, x.Den())
	if !ok1 || !ok2 {
		return x.Big().Cmp(y.Big())
	}
	return cmpInt64(a, b)
}

func (x Fixed) Equal(y Fixed) bool { return x.Cmp(y) == 0 }
func (x Fixed) Less(y Fixed) bool  { return x.Cmp(y) < 0 }

// Int64 returns x truncated towards zero. It reports ErrInfinite for
// infinities.
func (x Fixed) Int64() (int64, error) {
	if x.IsInfinite() {
		return 0, ErrInfinite
	}
	return x.num / x.Den(), nil
}

// Float64 returns the float64 value nearest to x. See Big.Float64.
func (x Fixed) Float64() (float64, error) {
	if x.IsInfinite() {
		return math.Inf(x.Sign()), ErrInfinite
	}
	if x.IsZero() {
		return 0, nil
	}
	f, _ := new(big.Rat).SetFrac64(x.num, x.den).Float64()
	return checkFloat(f, x.Sign())
}

// String returns x as "n", "n/d", "+Inf" or "-Inf".
func (x Fixed) String() string {
	switch {
	case x.IsPlusInfinite():
		return "+Inf"
	case x.IsMinusInfinite():
		return "-Inf"
	case x.IsInteger():
		return strconv.FormatInt(x.num, 10)
	}
	return strconv.FormatInt(x.num, 10) + "/" + strconv.FormatInt(x.den, 10)
}

// mul64 returns a*b and whether the product is representable. Neither the
// arguments nor the result are math.MinInt64.
func mul64(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(abs64(a)), uint64(abs64(b)))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	if (a < 0) != (b < 0) {
		return -int64(lo), true
	}
	return int64(lo), true
}

// add64 returns a+b and whether the sum is representable.
func add64(a, b int64) (int64, bool) {
	c := a + b
	if (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) || c == math.MinInt64 {
		return 0, false
	}
	return c, true
}

// gcd64 returns the greatest common divisor of two non-negative integers.
func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func sgn64(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
