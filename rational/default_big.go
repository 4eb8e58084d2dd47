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

//go:build !ncfixed

package rational

import "github.com/cockroachdb/apd/v3"

// Rational is the rational type used throughout the module. It is Big
// unless the ncfixed build tag is set, in which case it is Fixed.
type Rational = Big

// Backend names the implementation behind Rational: "big" or "fixed".
const Backend = "big"

var (
	Zero          = Big{}
	One           = BigFromInt64(1)
	PlusInfinity  = BigPlusInfinity
	MinusInfinity = BigMinusInfinity
)

// New returns num/den in lowest terms. See NewBig.
func New(num, den int64) (Rational, error) { return NewBig(num, den) }

// FromInt64 returns i as a Rational.
func FromInt64(i int64) (Rational, error) { return BigFromInt64(i), nil }

// FromFloat64 returns the exact value of f. See BigFromFloat64.
func FromFloat64(f float64) (Rational, error) { return BigFromFloat64(f) }

// FromDecimal returns the exact value of d. See BigFromDecimal.
func FromDecimal(d *apd.Decimal) (Rational, error) { return BigFromDecimal(d) }

// Parse parses s. See ParseBig.
func Parse(s string) (Rational, error) { return ParseBig(s) }
