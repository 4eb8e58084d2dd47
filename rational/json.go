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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// A finite rational with denominator 1 is encoded as a JSON integer. Any
// other finite rational is encoded as {"num": n, "den": d}. Infinities
// cannot be encoded; decoding rejects a zero denominator as well as objects
// with missing or extra fields.

type jsonPair struct {
	Num *json.Number `json:"num"`
	Den *json.Number `json:"den"`
}

func malformed(s string) error {
	return fmt.Errorf("%w: %q", ErrMalformed, s)
}

func marshalJSON(num, den string, integer bool) []byte {
	if integer {
		return []byte(num)
	}
	return []byte(`{"num":` + num + `,"den":` + den + `}`)
}

// unmarshalJSON splits a JSON rational into its numerator and denominator
// literals.
func unmarshalJSON(b []byte) (num, den string, err error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var p jsonPair
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if p.Num == nil || p.Den == nil {
			return "", "", malformed(string(b))
		}
		return p.Num.String(), p.Den.String(), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return n.String(), "1", nil
}

// MarshalJSON implements json.Marshaler. It reports ErrInfinite for
// infinities.
func (x Big) MarshalJSON() ([]byte, error) {
	if x.IsInfinite() {
		return nil, ErrInfinite
	}
	return marshalJSON(x.n().String(), x.d().String(), x.IsInteger()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (x *Big) UnmarshalJSON(b []byte) error {
	ns, ds, err := unmarshalJSON(b)
	if err != nil {
		return err
	}
	num, ok1 := new(apd.BigInt).SetString(ns, 10)
	den, ok2 := new(apd.BigInt).SetString(ds, 10)
	if !ok1 || !ok2 || den.Sign() == 0 {
		return malformed(string(b))
	}
	r, err := makeBig(num, den)
	if err != nil {
		return err
	}
	*x = r
	return nil
}

// MarshalJSON implements json.Marshaler. It reports ErrInfinite for
// infinities.
func (x Fixed) MarshalJSON() ([]byte, error) {
	if x.IsInfinite() {
		return nil, ErrInfinite
	}
	return marshalJSON(strconv.FormatInt(x.num, 10), strconv.FormatInt(x.Den(), 10), x.IsInteger()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (x *Fixed) UnmarshalJSON(b []byte) error {
	ns, ds, err := unmarshalJSON(b)
	if err != nil {
		return err
	}
	num, err1 := strconv.ParseInt(ns, 10, 64)
	den, err2 := strconv.ParseInt(ds, 10, 64)
	if err1 != nil || err2 != nil || den == 0 {
		return malformed(string(b))
	}
	r, err := NewFixed(num, den)
	if err != nil {
		return err
	}
	*x = r
	return nil
}
