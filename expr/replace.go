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

import "fmt"

// ReplaceByValue returns a tree like x in which every occurrence of pattern
// is replaced by repl. Occurrences are found by structural equality, as
// defined by Equal, searching from the root down; a replaced subtree is
// not searched further. An n-ary pattern also matches a subset of the
// operands of an n-ary node of the same kind.
//
// If pattern does not occur in x, ReplaceByValue returns x unchanged if
// ignoreUnmatched is set, and an error wrapping ErrUnmatched otherwise.
func ReplaceByValue(x, pattern, repl Node, ignoreUnmatched bool) (Node, error) {
	if pattern.Domain() != repl.Domain() {
		return nil, structuralf("cannot replace %v expression with %v expression", pattern.Domain(), repl.Domain())
	}
	y, found := replaceValue(x, pattern, repl)
	if !found && !ignoreUnmatched {
		return nil, fmt.Errorf("%w: %v", ErrUnmatched, pattern)
	}
	return y, nil
}

func replaceValue(x, pattern, repl Node) (Node, bool) {
	if _, used, ok := literal.matchTop(pattern, x); ok {
		if used == nil {
			return repl, true
		}
		return splice(x, used, repl), true
	}
	return mapOperands(x, func(a Node) (Node, bool) {
		return replaceValue(a, pattern, repl)
	})
}

// mapOperands applies f to the operands of x and rebuilds x if any of them
// changed. Operands of n-ary nodes that become of the same kind as x are
// merged into it.
func mapOperands(x Node, f func(Node) (Node, bool)) (Node, bool) {
	if x.Op().Shape() == LeafShape {
		return x, false
	}
	args := x.Operands()
	changed := false
	for i, a := range args {
		if b, ok := f(a); ok {
			args[i] = b
			changed = true
		}
	}
	if !changed {
		return x, false
	}
	if x.Op().Shape() == NaryShape {
		args = flatten(x.Op(), args)
	}
	return x.rebuild(args), true
}

// ReplaceByValue is like the package function of that name, but keeps the
// type of x.
func (x *Expression[T]) ReplaceByValue(pattern, repl Node, ignoreUnmatched bool) (*Expression[T], error) {
	y, err := ReplaceByValue(x, pattern, repl, ignoreUnmatched)
	if err != nil {
		return nil, err
	}
	z, ok := y.(*Expression[T])
	if !ok {
		return nil, structuralf("cannot replace %v expression with %v expression", x.Domain(), y.Domain())
	}
	return z, nil
}
