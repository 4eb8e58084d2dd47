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

package expr

import (
	"fmt"
	"slices"
)

// A Hypothesis is a condition on a placeholder that must hold for an
// equivalence to apply.
type Hypothesis struct {
	// Placeholder names a placeholder of the side being matched.
	Placeholder string

	// Property must hold for the node bound to the placeholder.
	Property Property
}

func (h Hypothesis) String() string {
	return h.Placeholder + " is " + h.Property.String()
}

// An Equivalence states that two expression patterns denote the same
// value, possibly subject to hypotheses. The placeholders of either side
// stand for arbitrary subtrees of their domain.
type Equivalence struct {
	Name       string
	Left       Node
	Right      Node
	Hypotheses []Hypothesis

	// Whether the placeholders of the right side all occur on the left,
	// and conversely.
	leftToRight bool
	rightToLeft bool
}

// NewEquivalence returns the equivalence left ≡ right.
func NewEquivalence[T any](name string, left, right *Expression[T], hyps ...Hypothesis) *Equivalence {
	eq, err := MakeEquivalence(name, left, right, hyps...)
	if err != nil {
		panic(err)
	}
	return eq
}

// MakeEquivalence is like NewEquivalence for nodes of either domain. It
// reports an error if the sides are of different domains.
func MakeEquivalence(name string, left, right Node, hyps ...Hypothesis) (*Equivalence, error) {
	if left.Domain() != right.Domain() {
		return nil, structuralf("equivalence %s relates a %v expression to a %v expression", name, left.Domain(), right.Domain())
	}
	l, r := Placeholders(left), Placeholders(right)
	return &Equivalence{
		Name:        name,
		Left:        left,
		Right:       right,
		Hypotheses:  slices.Clone(hyps),
		leftToRight: subset(r, l),
		rightToLeft: subset(l, r),
	}, nil
}

func subset(xs, of []PlaceholderRef) bool {
	for _, x := range xs {
		if !slices.Contains(of, x) {
			return false
		}
	}
	return true
}

func (eq *Equivalence) String() string {
	s := fmt.Sprintf("%s: %s ≡ %s", eq.Name, eq.Left, eq.Right)
	for i, h := range eq.Hypotheses {
		if i == 0 {
			s += " if "
		} else {
			s += ", "
		}
		s += h.String()
	}
	return s
}

// A CheckType selects the directions in which an equivalence is applied.
type CheckType uint8

const (
	// CheckLeftOnly rewrites matches of the left side into the right side.
	CheckLeftOnly CheckType = iota

	// CheckRightOnly rewrites matches of the right side into the left side.
	CheckRightOnly

	// CheckBothSides tries the left side first, then the right side.
	CheckBothSides
)

func (c CheckType) String() string {
	switch c {
	case CheckLeftOnly:
		return "left"
	case CheckRightOnly:
		return "right"
	case CheckBothSides:
		return "both"
	}
	return fmt.Sprintf("CheckType(%d)", uint8(c))
}

// applyAt applies eq to x itself. It reports whether x matched.
func (eq *Equivalence) applyAt(x Node, check CheckType) (Node, bool, error) {
	type direction struct{ pattern, template Node }
	var dirs []direction
	if check != CheckRightOnly && eq.leftToRight {
		dirs = append(dirs, direction{eq.Left, eq.Right})
	}
	if check != CheckLeftOnly && eq.rightToLeft {
		dirs = append(dirs, direction{eq.Right, eq.Left})
	}
	for _, d := range dirs {
		b, used, ok := patterns.matchTop(d.pattern, x)
		if !ok || !eq.holds(b) {
			continue
		}
		y, err := substitute(d.template, b)
		if err != nil {
			return nil, false, fmt.Errorf("equivalence %s: %w", eq.Name, err)
		}
		if used != nil {
			y = splice(x, used, y)
		}
		return y, true, nil
	}
	return x, false, nil
}

// holds reports whether the hypotheses of eq are established for b. A
// hypothesis that cannot be checked does not hold.
func (eq *Equivalence) holds(b bindings) bool {
	for _, h := range eq.Hypotheses {
		x, ok := b[PlaceholderRef{h.Placeholder, CurveDomain}]
		if !ok {
			if x, ok = b[PlaceholderRef{h.Placeholder, RationalDomain}]; !ok {
				return false
			}
		}
		if ok, err := HasProperty(x, h.Property); err != nil || !ok {
			return false
		}
	}
	return true
}

// ApplyEquivalence returns a tree like x in which every match of eq is
// rewritten into the other side of eq. Matches are searched from the root
// down, and a rewritten subtree is not searched further. If nothing
// matches, x is returned unchanged.
func ApplyEquivalence(x Node, eq *Equivalence, check CheckType) (Node, error) {
	y, _, err := applyAll(x, func(n Node) (Node, bool, error) {
		return eq.applyAt(n, check)
	})
	return y, err
}

// ApplyEquivalenceByPosition is like ApplyEquivalence, but only rewrites
// matches within the subtree at position p.
func ApplyEquivalenceByPosition(x Node, p Position, eq *Equivalence, check CheckType) (Node, error) {
	sub, err := At(x, p)
	if err != nil {
		return nil, err
	}
	y, changed, err := applyAll(sub, func(n Node) (Node, bool, error) {
		return eq.applyAt(n, check)
	})
	if err != nil || !changed {
		return x, err
	}
	return ReplaceByPosition(x, p, y)
}

func applyAll(x Node, apply func(Node) (Node, bool, error)) (Node, bool, error) {
	if y, ok, err := apply(x); err != nil || ok {
		return y, ok, err
	}
	if x.Op().Shape() == LeafShape {
		return x, false, nil
	}
	args := x.Operands()
	changed := false
	for i, a := range args {
		b, ok, err := applyAll(a, apply)
		if err != nil {
			return nil, false, err
		}
		if ok {
			args[i] = b
			changed = true
		}
	}
	if !changed {
		return x, false, nil
	}
	if x.Op().Shape() == NaryShape {
		args = flatten(x.Op(), args)
	}
	return x.rebuild(args), true, nil
}

// DefaultRewriteLimit is the number of passes made by Rewrite if no
// positive limit is given.
const DefaultRewriteLimit = 64

// Rewrite repeatedly applies the equivalences of reg to x, left to right,
// until no more apply or limit passes have been made. In each pass a node
// is rewritten by the first equivalence registered for its kind that
// matches it. Rewrite returns the result and the number of passes that
// changed the tree.
func Rewrite(x Node, reg *Registry, limit int) (Node, int, error) {
	if limit <= 0 {
		limit = DefaultRewriteLimit
	}
	for i := 0; i < limit; i++ {
		y, changed, err := applyAll(x, func(n Node) (Node, bool, error) {
			for _, eq := range reg.Lookup(n.Op()) {
				if y, ok, err := eq.applyAt(n, CheckLeftOnly); err != nil || ok {
					return y, ok, err
				}
			}
			return n, false, nil
		})
		if err != nil {
			return nil, i, err
		}
		if !changed {
			return x, i, nil
		}
		x = y
	}
	return x, limit, nil
}

// ApplyEquivalence is like the package function of that name, but keeps
// the type of x.
func (x *Expression[T]) ApplyEquivalence(eq *Equivalence, check CheckType) (*Expression[T], error) {
	return typed[T](ApplyEquivalence(x, eq, check))
}

// ApplyEquivalenceByPosition is like the package function of that name,
// but keeps the type of x.
func (x *Expression[T]) ApplyEquivalenceByPosition(p Position, eq *Equivalence, check CheckType) (*Expression[T], error) {
	return typed[T](ApplyEquivalenceByPosition(x, p, eq, check))
}

// Rewrite is like the package function of that name, but keeps the type
// of x.
func (x *Expression[T]) Rewrite(reg *Registry, limit int) (*Expression[T], int, error) {
	y, n, err := Rewrite(x, reg, limit)
	if err != nil {
		return nil, n, err
	}
	z, err := typed[T](y, nil)
	return z, n, err
}

func typed[T any](x Node, err error) (*Expression[T], error) {
	if err != nil {
		return nil, err
	}
	y, ok := x.(*Expression[T])
	if !ok {
		return nil, structuralf("rewrite produced a %v expression of the wrong type", x.Domain())
	}
	return y, nil
}
