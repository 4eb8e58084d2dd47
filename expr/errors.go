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
	"errors"
	"fmt"
)

var (
	// ErrInvalidStructure indicates an expression tree that breaks the
	// rules of its operators, such as an operand of the wrong domain, a
	// position that does not exist or an unbound placeholder.
	ErrInvalidStructure = errors.New("expr: invalid structure")

	// ErrPlaceholder indicates an attempt to compute the value of a tree
	// that contains a placeholder.
	ErrPlaceholder = errors.New("expr: placeholder has no value")

	// ErrUnmatched indicates that a pattern was not found in a tree.
	ErrUnmatched = errors.New("expr: pattern not found")

	// ErrNoAlgebra indicates that a curve operator was computed without
	// a CurveAlgebra.
	ErrNoAlgebra = errors.New("expr: no curve algebra")
)

func structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStructure, fmt.Sprintf(format, args...))
}
