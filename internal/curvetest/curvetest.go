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

// Package curvetest provides a symbolic curve algebra for tests. It counts
// the operations it is asked to compute.
package curvetest

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"netcalc.org/go/expr"
	"netcalc.org/go/rational"
)

// A Curve is a symbolic curve. Two curves are equivalent if their forms
// are equal.
type Curve struct {
	// Form describes how the curve was built, such as "convolution(f, g)".
	Form string

	// Props lists the properties the curve has.
	Props []expr.Property
}

// New returns a curve with the given form and properties.
func New(form string, props ...expr.Property) *Curve {
	return &Curve{Form: form, Props: props}
}

func (c *Curve) Equivalent(d expr.Curve) bool {
	e, ok := d.(*Curve)
	return ok && e.Form == c.Form
}

func (c *Curve) Is(p expr.Property) bool {
	return slices.Contains(c.Props, p)
}

func (c *Curve) String() string { return c.Form }

// Algebra computes operators symbolically. The zero value is ready to use.
type Algebra struct {
	// Rationals holds the value returned for rational-valued operators.
	// Operators without an entry compute zero.
	Rationals map[expr.Op]rational.Rational

	// Props lists the properties of the curves computed for an operator.
	Props map[expr.Op][]expr.Property

	// Fail, if set, is returned by every call.
	Fail error

	mu    sync.Mutex
	calls map[expr.Op]int
}

func (a *Algebra) record(op expr.Op) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calls == nil {
		a.calls = map[expr.Op]int{}
	}
	a.calls[op]++
}

// Calls returns how many times op was computed.
func (a *Algebra) Calls(op expr.Op) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[op]
}

// Total returns the number of operators computed.
func (a *Algebra) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		n += c
	}
	return n
}

func (a *Algebra) Curve(op expr.Op, args []any) (expr.Curve, error) {
	a.record(op)
	if a.Fail != nil {
		return nil, a.Fail
	}
	forms, err := formsOf(op, args)
	if err != nil {
		return nil, err
	}
	return &Curve{
		Form:  op.Key() + "(" + strings.Join(forms, ", ") + ")",
		Props: a.Props[op],
	}, nil
}

func (a *Algebra) Rational(op expr.Op, args []any) (rational.Rational, error) {
	a.record(op)
	if a.Fail != nil {
		return rational.Zero, a.Fail
	}
	if _, err := formsOf(op, args); err != nil {
		return rational.Zero, err
	}
	if v, ok := a.Rationals[op]; ok {
		return v, nil
	}
	return rational.Zero, nil
}

// formsOf describes the arguments. The arguments of n-ary operators are
// sorted, so that the result does not depend on their order.
func formsOf(op expr.Op, args []any) ([]string, error) {
	forms := make([]string, len(args))
	for i, x := range args {
		switch x := x.(type) {
		case *Curve:
			forms[i] = x.Form
		case rational.Rational:
			forms[i] = x.String()
		default:
			return nil, fmt.Errorf("curvetest: unexpected argument %T for %v", x, op)
		}
	}
	if op.Shape() == expr.NaryShape {
		sort.Strings(forms)
	}
	return forms, nil
}
