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

// A Visitor computes a result of type R for a node. Accept selects the
// method by the shape of the node; implementations select their behavior
// by switching on its Op.
type Visitor[R any] interface {
	VisitLeaf(x Node) R
	VisitUnary(x Node, operand Node) R
	VisitBinary(x Node, left, right Node) R
	VisitNary(x Node, operands []Node) R
}

// Accept calls the method of v that handles x.
func Accept[R any](x Node, v Visitor[R]) R {
	switch x.Op().Shape() {
	case UnaryShape:
		args := x.Operands()
		return v.VisitUnary(x, args[0])
	case BinaryShape:
		args := x.Operands()
		return v.VisitBinary(x, args[0], args[1])
	case NaryShape:
		return v.VisitNary(x, x.Operands())
	}
	return v.VisitLeaf(x)
}

// Walk traverses the tree rooted at x in depth-first order. If before
// returns false for a node, its operands are skipped.
func Walk(x Node, before func(Node) bool) {
	if !before(x) {
		return
	}
	for _, a := range x.Operands() {
		Walk(a, before)
	}
}

// A PlaceholderRef identifies a placeholder by name and domain.
type PlaceholderRef struct {
	Name   string
	Domain Domain
}

// Placeholders returns the distinct placeholders in the tree rooted at x,
// in order of first appearance.
func Placeholders(x Node) []PlaceholderRef {
	var refs []PlaceholderRef
	seen := map[PlaceholderRef]bool{}
	Walk(x, func(n Node) bool {
		if n.IsPlaceholder() {
			ref := PlaceholderRef{n.Name(), n.Domain()}
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
		return true
	})
	return refs
}
