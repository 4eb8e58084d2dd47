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
	"strconv"
	"strings"
)

// A StepKind is the kind of a Step.
type StepKind uint8

const (
	// OperandStep selects the operand of a unary node.
	OperandStep StepKind = iota

	// LeftOperandStep selects the left operand of a binary node.
	LeftOperandStep

	// RightOperandStep selects the right operand of a binary node.
	RightOperandStep

	// IndexStep selects an operand of an n-ary node by index.
	IndexStep
)

// A Step selects one operand of a node.
type Step struct {
	Kind  StepKind
	Index int // for IndexStep
}

func (s Step) String() string {
	switch s.Kind {
	case OperandStep:
		return "Operand"
	case LeftOperandStep:
		return "LeftOperand"
	case RightOperandStep:
		return "RightOperand"
	}
	return "Operand(" + strconv.Itoa(s.Index) + ")"
}

// index returns the index of the operand of x selected by s.
func (s Step) index(x Node) (int, error) {
	shape := x.Op().Shape()
	switch {
	case s.Kind == OperandStep && shape == UnaryShape:
		return 0, nil
	case s.Kind == LeftOperandStep && shape == BinaryShape:
		return 0, nil
	case s.Kind == RightOperandStep && shape == BinaryShape:
		return 1, nil
	case s.Kind == IndexStep && shape == NaryShape:
		if n := len(x.Operands()); s.Index < 0 || s.Index >= n {
			return 0, structuralf("step %v out of range for %v node with %d operands", s, x.Op(), n)
		}
		return s.Index, nil
	}
	return 0, structuralf("step %v does not apply to %v node", s, x.Op())
}

// A Position is the path from the root of a tree to one of its nodes.
// The zero Position is the root.
type Position struct {
	steps []Step
}

// RootPosition returns the position of the root.
func RootPosition() Position { return Position{} }

// Operand returns the position of the operand of the unary node at p.
func (p Position) Operand() Position { return p.append(Step{Kind: OperandStep}) }

// LeftOperand returns the position of the left operand of the binary node
// at p.
func (p Position) LeftOperand() Position { return p.append(Step{Kind: LeftOperandStep}) }

// RightOperand returns the position of the right operand of the binary
// node at p.
func (p Position) RightOperand() Position { return p.append(Step{Kind: RightOperandStep}) }

// Index returns the position of the i-th operand of the n-ary node at p.
func (p Position) Index(i int) Position { return p.append(Step{Kind: IndexStep, Index: i}) }

func (p Position) append(s Step) Position {
	steps := make([]Step, len(p.steps)+1)
	copy(steps, p.steps)
	steps[len(p.steps)] = s
	return Position{steps}
}

// Steps returns the steps of p from the root.
func (p Position) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// IsRoot reports whether p is the root position.
func (p Position) IsRoot() bool { return len(p.steps) == 0 }

// Equal reports whether p and q denote the same position.
func (p Position) Equal(q Position) bool {
	if len(p.steps) != len(q.steps) {
		return false
	}
	for i, s := range p.steps {
		if s != q.steps[i] {
			return false
		}
	}
	return true
}

// String returns p as slash-separated steps, such as
// "/LeftOperand/Operand(2)". The root is "/".
func (p Position) String() string {
	if len(p.steps) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.steps {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePosition parses a position in the format returned by
// Position.String. The empty string denotes the root.
func ParsePosition(s string) (Position, error) {
	var p Position
	for _, tok := range strings.Split(s, "/") {
		switch tok {
		case "":
			continue
		case "Operand":
			p = p.Operand()
		case "LeftOperand":
			p = p.LeftOperand()
		case "RightOperand":
			p = p.RightOperand()
		default:
			arg, ok := strings.CutPrefix(tok, "Operand(")
			arg, ok2 := strings.CutSuffix(arg, ")")
			i, err := strconv.Atoi(arg)
			if !ok || !ok2 || err != nil || i < 0 {
				return Position{}, fmt.Errorf("invalid position step %q in %q", tok, s)
			}
			p = p.Index(i)
		}
	}
	return p, nil
}

// At returns the node of the tree rooted at x found at position p.
func At(x Node, p Position) (Node, error) {
	for _, s := range p.steps {
		i, err := s.index(x)
		if err != nil {
			return nil, fmt.Errorf("at %v: %w", p, err)
		}
		x = x.Operands()[i]
	}
	return x, nil
}

// ReplaceByPosition returns a tree like x in which the node at position p
// is replaced by repl. The replacement must be of the domain that the
// operand at p requires. Nodes off the path to p are shared with x, and
// n-ary operands are never merged, so that repl is found again at p.
func ReplaceByPosition(x Node, p Position, repl Node) (Node, error) {
	y, err := replaceAt(x, p.steps, repl)
	if err != nil {
		return nil, fmt.Errorf("replace at %v: %w", p, err)
	}
	return y, nil
}

func replaceAt(x Node, steps []Step, repl Node) (Node, error) {
	if len(steps) == 0 {
		if repl.Domain() != x.Domain() {
			return nil, structuralf("cannot replace %v expression with %v expression", x.Domain(), repl.Domain())
		}
		return repl, nil
	}
	i, err := steps[0].index(x)
	if err != nil {
		return nil, err
	}
	args := x.Operands()
	if args[i], err = replaceAt(args[i], steps[1:], repl); err != nil {
		return nil, err
	}
	return x.rebuild(args), nil
}

// At returns the node found at position p below x.
func (x *Expression[T]) At(p Position) (Node, error) { return At(x, p) }

// ReplaceByPosition is like the package function of that name, but keeps
// the type of x.
func (x *Expression[T]) ReplaceByPosition(p Position, repl Node) (*Expression[T], error) {
	y, err := ReplaceByPosition(x, p, repl)
	if err != nil {
		return nil, err
	}
	return y.(*Expression[T]), nil
}

// Positions returns the positions of all nodes of the tree rooted at x, in
// depth-first order starting with the root.
func Positions(x Node) []Position {
	var ps []Position
	var walk func(n Node, p Position)
	walk = func(n Node, p Position) {
		ps = append(ps, p)
		args := n.Operands()
		for i, a := range args {
			switch n.Op().Shape() {
			case UnaryShape:
				walk(a, p.Operand())
			case BinaryShape:
				if i == 0 {
					walk(a, p.LeftOperand())
				} else {
					walk(a, p.RightOperand())
				}
			default:
				walk(a, p.Index(i))
			}
		}
	}
	walk(x, RootPosition())
	return ps
}
