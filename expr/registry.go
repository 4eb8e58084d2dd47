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
	"sync"

	"netcalc.org/go/internal/ncdebug"
)

// A Registry holds equivalences keyed by the kind of node heading their
// left side. It is safe for concurrent use.
type Registry struct {
	mu sync.Mutex // serializes writers
	m  sync.Map   // Op -> []*Equivalence, never modified once stored
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the registry used by AddEquivalence and
// Equivalences.
var DefaultRegistry = NewRegistry()

// Add registers eq for nodes of kind op and reports whether it did so. An
// equivalence whose left side is not headed by op is not registered.
func (r *Registry) Add(op Op, eq *Equivalence) bool {
	if eq.Left.Op() != op {
		initDebug()
		ncdebug.Assertf(false, "equivalence %s has left side %v; registered for %v", eq.Name, eq.Left.Op(), op)
		debugLogger().Debug("ignoring equivalence", "name", eq.Name, "op", op, "left", eq.Left.Op())
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.Lookup(op)
	eqs := make([]*Equivalence, len(old), len(old)+1)
	copy(eqs, old)
	r.m.Store(op, append(eqs, eq))
	return true
}

// Lookup returns the equivalences registered for op, in registration
// order. The result must not be modified.
func (r *Registry) Lookup(op Op) []*Equivalence {
	v, ok := r.m.Load(op)
	if !ok {
		return nil
	}
	return v.([]*Equivalence)
}

// Len returns the number of registered equivalences.
func (r *Registry) Len() int {
	n := 0
	r.m.Range(func(_, v any) bool {
		n += len(v.([]*Equivalence))
		return true
	})
	return n
}

// All returns all registered equivalences, ordered by operator and then by
// registration.
func (r *Registry) All() []*Equivalence {
	var all []*Equivalence
	for _, op := range Ops() {
		all = append(all, r.Lookup(op)...)
	}
	return all
}

// AddEquivalence registers eq with DefaultRegistry.
func AddEquivalence(op Op, eq *Equivalence) bool {
	return DefaultRegistry.Add(op, eq)
}

// Equivalences returns the equivalences registered with DefaultRegistry
// for op.
func Equivalences(op Op) []*Equivalence {
	return DefaultRegistry.Lookup(op)
}
