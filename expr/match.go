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
	"maps"

	"netcalc.org/go/rational"
)

// Equal reports whether x and y are structurally equal: they have the same
// kind, equal leaves and equal operands. The operands of n-ary nodes are
// compared as multisets, so that Minimum(f, g) equals Minimum(g, f).
// Placeholders are equal if they have the same name. Leaves are compared
// by value, not by name. Names of operator nodes are ignored.
func Equal(x, y Node) bool {
	_, ok := literal.match(x, y, nil)
	return ok
}

// bindings maps placeholders of a pattern to the nodes they matched. It is
// never modified once shared.
type bindings map[PlaceholderRef]Node

func (b bindings) with(ref PlaceholderRef, x Node) bindings {
	c := maps.Clone(b)
	if c == nil {
		c = bindings{}
	}
	c[ref] = x
	return c
}

// A matcher matches patterns against trees.
type matcher struct {
	// bind is set if placeholders of the pattern match any node of their
	// domain. Otherwise placeholders only match placeholders of the same
	// name.
	bind bool
}

var (
	literal  = matcher{}
	patterns = matcher{bind: true}
)

func (m matcher) match(p, x Node, b bindings) (bindings, bool) {
	if p == x && !m.bind {
		return b, true
	}
	if m.bind && p.IsPlaceholder() {
		if p.Domain() != x.Domain() {
			return nil, false
		}
		ref := PlaceholderRef{p.Name(), p.Domain()}
		if bound, ok := b[ref]; ok {
			return b, Equal(bound, x)
		}
		return b.with(ref, x), true
	}
	if p.Op() != x.Op() {
		return nil, false
	}
	switch p.Op().Shape() {
	case LeafShape:
		return b, leafEqual(p, x)
	case NaryShape:
		b, _, ok := m.matchOperands(p.Operands(), x.Operands(), b, false)
		return b, ok
	}
	ps, xs := p.Operands(), x.Operands()
	for i := range ps {
		var ok bool
		if b, ok = m.match(ps[i], xs[i], b); !ok {
			return nil, false
		}
	}
	return b, true
}

// matchOperands finds a one-to-one assignment of the patterns ps to the
// nodes xs. If partial is set, some of xs may be left unassigned. It
// returns which of xs were assigned.
func (m matcher) matchOperands(ps, xs []Node, b bindings, partial bool) (bindings, []bool, bool) {
	if len(ps) > len(xs) || (!partial && len(ps) != len(xs)) {
		return nil, nil, false
	}
	used := make([]bool, len(xs))
	b, ok := m.assign(ps, xs, used, b)
	if !ok {
		return nil, nil, false
	}
	return b, used, true
}

func (m matcher) assign(ps, xs []Node, used []bool, b bindings) (bindings, bool) {
	if len(ps) == 0 {
		return b, true
	}
	for j, x := range xs {
		if used[j] {
			continue
		}
		nb, ok := m.match(ps[0], x, b)
		if !ok {
			continue
		}
		used[j] = true
		if nb, ok = m.assign(ps[1:], xs, used, nb); ok {
			return nb, true
		}
		used[j] = false
	}
	return nil, false
}

// matchTop matches p against x. An n-ary pattern may also match some of the
// operands of an n-ary node of the same kind; used then reports which, and
// is nil if all of x was matched.
func (m matcher) matchTop(p, x Node) (b bindings, used []bool, ok bool) {
	if p.Op().Shape() == NaryShape && p.Op() == x.Op() {
		ps, xs := p.Operands(), x.Operands()
		if len(xs) > len(ps) {
			return m.matchOperands(ps, xs, nil, true)
		}
	}
	b, ok = m.match(p, x, nil)
	return b, nil, ok
}

func leafEqual(p, x Node) bool {
	switch p.Op() {
	case CurvePlaceholderOp, RationalPlaceholderOp:
		return p.Name() == x.Name()
	case CurveLeafOp:
		pc, _ := p.leaf().(Curve)
		xc, _ := x.leaf().(Curve)
		if pc == nil || xc == nil {
			return pc == nil && xc == nil && p.Name() == x.Name()
		}
		return pc.Equivalent(xc)
	case RationalLeafOp:
		return rationalLeaf(p).Equal(rationalLeaf(x))
	}
	return false
}

// splice replaces the operands of the n-ary node x marked in used by repl,
// which takes the place of the first of them.
func splice(x Node, used []bool, repl Node) Node {
	var args []Node
	placed := false
	for j, a := range x.Operands() {
		switch {
		case !used[j]:
			args = append(args, a)
		case !placed:
			args = append(args, repl)
			placed = true
		}
	}
	return x.rebuild(flatten(x.Op(), args))
}

// substitute returns the template t with its placeholders replaced by the
// nodes bound to them. Unchanged subtrees of t are reused.
func substitute(t Node, b bindings) (Node, error) {
	if t.IsPlaceholder() {
		x, ok := b[PlaceholderRef{t.Name(), t.Domain()}]
		if !ok {
			return nil, structuralf("placeholder %s is not bound", t.Name())
		}
		return x, nil
	}
	if t.Op().Shape() == LeafShape {
		return t, nil
	}
	args := t.Operands()
	changed := false
	for i, a := range args {
		s, err := substitute(a, b)
		if err != nil {
			return nil, err
		}
		changed = changed || s != a
		args[i] = s
	}
	if !changed {
		return t, nil
	}
	if t.Op().Shape() == NaryShape {
		args = flatten(t.Op(), args)
	}
	if t.Settings() != nil {
		return t.rebuild(args), nil
	}
	return newNode(t.Op(), t.Name(), args), nil
}

func rationalLeaf(x Node) rational.Rational {
	v, _ := x.leaf().(rational.Rational)
	return v
}
