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

// Package rational implements exact rational numbers extended with signed
// infinities.
//
// Two backends implement the same arithmetic contract:
//
//   - Big stores its numerator and denominator as arbitrary-precision
//     integers. It overflows only for powers with exponents beyond 1<<24.
//   - Fixed stores them as int64 values. Every operation whose exact result
//     does not fit returns ErrOverflow; results are never wrapped or
//     saturated.
//
// Rational is an alias for one of the two, selected at build time. Builds use
// Big unless the ncfixed build tag is set.
//
// A value is always kept in lowest terms with a non-negative denominator.
// A zero denominator denotes an infinity, with a numerator of +1 or -1
// giving its sign. The form 0/0 is never constructed: operations that would
// produce it report ErrUndetermined.
package rational

import "errors"

var (
	// ErrUndetermined indicates an algebraically undefined form such as
	// 0/0, ∞-∞ or ∞/∞.
	ErrUndetermined = errors.New("rational: undetermined result")

	// ErrDivideByZero indicates a division of a non-zero value by zero.
	ErrDivideByZero = errors.New("rational: division by zero")

	// ErrOverflow indicates that an exact result does not fit in the
	// fixed-width representation.
	ErrOverflow = errors.New("rational: overflow")

	// ErrInfinite indicates that an infinite value was passed where only
	// finite values are allowed.
	ErrInfinite = errors.New("rational: infinite")

	// ErrBelow indicates that a value was rounded down in a conversion.
	ErrBelow = errors.New("rational: value was rounded down")

	// ErrAbove indicates that a value was rounded up in a conversion.
	ErrAbove = errors.New("rational: value was rounded up")

	// ErrMalformed indicates a textual or serialized form that does not
	// denote a valid rational.
	ErrMalformed = errors.New("rational: malformed value")
)

// Number is the arithmetic contract shared by Big and Fixed.
type Number[T any] interface {
	Add(y T) (T, error)
	Sub(y T) (T, error)
	Mul(y T) (T, error)
	Quo(y T) (T, error)
	Rem(y T) (T, error)
	Pow(n int) (T, error)
	Inv() (T, error)
	Neg() T
	Abs() T
	Floor() T
	Ceil() T
	GCD(y T) (T, error)
	LCM(y T) (T, error)

	Cmp(y T) int
	Equal(y T) bool
	Less(y T) bool
	Sign() int

	IsZero() bool
	IsFinite() bool
	IsInfinite() bool
	IsPlusInfinite() bool
	IsMinusInfinite() bool
	IsInteger() bool

	Int64() (int64, error)
	Float64() (float64, error)

	String() string
}

// Min returns the smallest of its arguments.
func Min[T Number[T]](x T, ys ...T) T {
	for _, y := range ys {
		if y.Cmp(x) < 0 {
			x = y
		}
	}
	return x
}

// Max returns the largest of its arguments.
func Max[T Number[T]](x T, ys ...T) T {
	for _, y := range ys {
		if y.Cmp(x) > 0 {
			x = y
		}
	}
	return x
}

// Sum adds all its arguments from left to right.
func Sum[T Number[T]](x T, ys ...T) (T, error) {
	var err error
	for _, y := range ys {
		if x, err = x.Add(y); err != nil {
			return x, err
		}
	}
	return x, nil
}

// Product multiplies all its arguments from left to right.
func Product[T Number[T]](x T, ys ...T) (T, error) {
	var err error
	for _, y := range ys {
		if x, err = x.Mul(y); err != nil {
			return x, err
		}
	}
	return x, nil
}

// addInfinities implements the addition table for the case where at least
// one of the operands is infinite. The arguments are the signs of the
// operands and whether they are infinite.
func addInfinities(xs int, xinf bool, ys int, yinf bool) (sign int, err error) {
	switch {
	case xinf && yinf:
		if xs != ys {
			return 0, ErrUndetermined
		}
		return xs, nil
	case xinf:
		return xs, nil
	default:
		return ys, nil
	}
}

// cmpInfinities compares two values at least one of which is infinite.
func cmpInfinities(xs int, xinf bool, ys int, yinf bool) int {
	switch {
	case xinf && yinf:
		return cmpInt(xs, ys)
	case xinf:
		return xs
	default:
		return -ys
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
