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
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// DefaultDecimalPrecision is the number of significant digits used by
// Decimal when no precision is given. It matches IEEE 754 decimal128.
const DefaultDecimalPrecision = 34

// Decimal returns x rounded to a decimal with the given number of
// significant digits, or DefaultDecimalPrecision if precision is 0.
// Trailing zeros are removed.
// It reports ErrInfinite for infinities.
func (x Big) Decimal(precision uint32) (*apd.Decimal, error) {
	if x.IsInfinite() {
		return nil, ErrInfinite
	}
	if precision == 0 {
		precision = DefaultDecimalPrecision
	}
	ctx := apd.BaseContext.WithPrecision(precision)
	var d apd.Decimal
	_, err := ctx.Quo(&d, apd.NewWithBigInt(x.n(), 0), apd.NewWithBigInt(x.d(), 0))
	if err != nil {
		return nil, fmt.Errorf("rational: converting %v to decimal: %w", x, err)
	}
	d.Reduce(&d)
	// Keep whole numbers in plain notation.
	for ; d.Exponent > 0; d.Exponent-- {
		d.Coeff.Mul(&d.Coeff, bigTen)
	}
	return &d, nil
}

// Decimal returns x rounded to a decimal. See Big.Decimal.
func (x Fixed) Decimal(precision uint32) (*apd.Decimal, error) {
	return x.Big().Decimal(precision)
}

// BigFromDecimal returns the exact value of d. Infinite decimals map to
// the corresponding infinity; NaN values report ErrUndetermined.
func BigFromDecimal(d *apd.Decimal) (Big, error) {
	switch d.Form {
	case apd.Finite:
	case apd.Infinite:
		if d.Negative {
			return BigMinusInfinity, nil
		}
		return BigPlusInfinity, nil
	default:
		return Big{}, ErrUndetermined
	}
	num := new(apd.BigInt).Set(&d.Coeff)
	if d.Negative {
		num.Neg(num)
	}
	exp := int64(d.Exponent)
	if exp < 0 {
		exp = -exp
	}
	scale := new(apd.BigInt).Exp(bigTen, apd.NewBigInt(exp), nil)
	if d.Exponent >= 0 {
		return makeBig(num.Mul(num, scale), apd.NewBigInt(1))
	}
	return makeBig(num, scale)
}

// FixedFromDecimal returns the exact value of d. It reports ErrOverflow if
// the value does not fit. See BigFromDecimal.
func FixedFromDecimal(d *apd.Decimal) (Fixed, error) {
	b, err := BigFromDecimal(d)
	if err != nil {
		return Fixed{}, err
	}
	return b.Fixed()
}
