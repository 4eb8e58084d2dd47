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

// Package expr represents network-calculus computations as immutable
// expression trees.
//
// A tree is built from leaves, which hold a Curve, a rational.Rational or a
// named placeholder, and from operators such as Convolution or ValueAt.
// Every node belongs to one of two domains: CurveExpression nodes compute
// a Curve and RationalExpression nodes compute a rational.Rational.
//
// Trees are never modified. Renaming, replacement and rewriting return new
// trees that share the unchanged subtrees of the original. Each node caches
// its computed value and the curve properties derived for it, so computing
// a shared subtree more than once costs nothing.
//
// Curve operators are computed by the CurveAlgebra found in the Settings of
// a node. Operators between rationals are computed by this package.
package expr

import (
	"math"
	"slices"
	"sync/atomic"

	"netcalc.org/go/rational"
)

// A Node is an expression of either domain.
//
// All implementations are provided by this package: a Node is always a
// *CurveExpression or a *RationalExpression.
type Node interface {
	// Op reports the kind of the node.
	Op() Op

	// Name returns the name of the node, or "" if it has none. Placeholders
	// and curve leaves always have a name.
	Name() string

	// Domain reports the domain of the node's value.
	Domain() Domain

	// Operands returns the operands of the node, in order.
	Operands() []Node

	// Settings returns the settings of the node, or nil if it has none.
	Settings() *Settings

	// IsComputed reports whether the value of the node is cached.
	IsComputed() bool

	// IsPlaceholder reports whether the node is a placeholder leaf.
	IsPlaceholder() bool

	// ToLatexString renders the node as LaTeX. Named nodes are rendered
	// by name once depth levels have been expanded. Rational leaves are
	// rendered by value unless showRationalsAsName is set and they have a
	// name.
	ToLatexString(depth int, showRationalsAsName bool) string

	// ToUnicodeString is like ToLatexString, but renders plain Unicode.
	ToUnicodeString(depth int, showRationalsAsName bool) string

	String() string

	leaf() any
	rebuild(args []Node) Node
	computeAny() (any, error)
	props() *propertyCache
}

// Expression is a node computing a value of type T.
type Expression[T any] struct {
	op       Op
	name     string
	settings *Settings
	payload  T
	args     []Node
	cache    *cache[T]
}

type (
	// CurveExpression is an expression computing a Curve.
	CurveExpression = Expression[Curve]

	// RationalExpression is an expression computing a rational.Rational.
	RationalExpression = Expression[rational.Rational]
)

type cache[T any] struct {
	value atomic.Pointer[T]
	propertyCache
}

// propertyCache holds one slot per property.
type propertyCache struct {
	slots [numProperties]atomic.Uint32
}

const (
	unknown uint32 = iota
	known
	knownTrue
)

func (c *propertyCache) load(p Property) (v, ok bool) {
	switch c.slots[p].Load() {
	case known:
		return false, true
	case knownTrue:
		return true, true
	}
	return false, false
}

func (c *propertyCache) store(p Property, v bool) {
	s := known
	if v {
		s = knownTrue
	}
	c.slots[p].Store(s)
}

func (x *Expression[T]) Op() Op              { return x.op }
func (x *Expression[T]) Name() string        { return x.name }
func (x *Expression[T]) Domain() Domain      { return x.op.Domain() }
func (x *Expression[T]) Settings() *Settings { return x.settings }
func (x *Expression[T]) IsPlaceholder() bool { return x.op.IsPlaceholder() }
func (x *Expression[T]) IsComputed() bool    { return x.cache.value.Load() != nil }

// Operands returns a copy of the operands of x.
func (x *Expression[T]) Operands() []Node { return slices.Clone(x.args) }

// Operand returns the operand of a unary node.
func (x *Expression[T]) Operand() Node { return x.operand(UnaryShape, 0) }

// LeftOperand returns the left operand of a binary node.
func (x *Expression[T]) LeftOperand() Node { return x.operand(BinaryShape, 0) }

// RightOperand returns the right operand of a binary node.
func (x *Expression[T]) RightOperand() Node { return x.operand(BinaryShape, 1) }

func (x *Expression[T]) operand(s Shape, i int) Node {
	if x.op.Shape() != s {
		panic("expr: " + x.op.String() + " node is not " + s.String())
	}
	return x.args[i]
}

// Leaf returns the value held by a leaf node. It reports false for
// operators and placeholders.
func (x *Expression[T]) Leaf() (v T, ok bool) {
	if x.op.Shape() != LeafShape || x.op.IsPlaceholder() {
		return v, false
	}
	return x.payload, true
}

// WithName returns a copy of x with the given name. The copy shares the
// operands and cached results of x.
func (x *Expression[T]) WithName(name string) *Expression[T] {
	y := *x
	y.name = name
	return &y
}

// WithSettings returns a copy of x that uses s. The copy shares the
// operands of x but not its cached results.
func (x *Expression[T]) WithSettings(s *Settings) *Expression[T] {
	y := *x
	y.settings = s
	y.cache = newCache(x.payload, x.op)
	return &y
}

// Equal reports whether x and y are structurally equal. See Equal.
func (x *Expression[T]) Equal(y Node) bool { return Equal(x, y) }

// RootPosition returns the position of x relative to itself.
func (x *Expression[T]) RootPosition() Position { return RootPosition() }

func (x *Expression[T]) String() string {
	return x.ToUnicodeString(math.MaxInt, false)
}

func (x *Expression[T]) leaf() any { return x.payload }

func (x *Expression[T]) props() *propertyCache { return &x.cache.propertyCache }

func (x *Expression[T]) computeAny() (any, error) {
	v, err := x.Value()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// rebuild returns a node of the same kind, name and settings as x with
// the given operands.
func (x *Expression[T]) rebuild(args []Node) Node {
	return &Expression[T]{
		op:       x.op,
		name:     x.name,
		settings: x.settings,
		args:     args,
		cache:    newCache[T](x.payload, x.op),
	}
}

// newCache returns an empty cache, or, for a value leaf, a cache holding
// its value.
func newCache[T any](v T, op Op) *cache[T] {
	c := &cache[T]{}
	if op == CurveLeafOp || op == RationalLeafOp {
		c.value.Store(&v)
	}
	return c
}
