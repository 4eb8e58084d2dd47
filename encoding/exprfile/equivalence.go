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

package exprfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"netcalc.org/go/expr"
)

// DecodeEquivalences decodes a sequence of equivalences such as
//
//	# closure.yaml
//	- name: closure-of-sub-additive
//	  left: {op: sub-additive-closure, args: [{placeholder: f}]}
//	  right: {placeholder: f}
//	  hypotheses:
//	    - {placeholder: f, property: sub-additive}
//	    - {placeholder: f, property: zero-at-zero}
func DecodeEquivalences(data []byte, opts *Options) ([]*expr.Equivalence, error) {
	if opts == nil {
		opts = &Options{}
	}
	var yn yaml.Node
	if err := yaml.Unmarshal(data, &yn); err != nil {
		return nil, fmt.Errorf("exprfile: %w", err)
	}
	d := &decoder{opts: opts}
	seq := document(&yn)
	if seq.Kind == 0 || seq.Kind == yaml.DocumentNode {
		return nil, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, d.errorf(seq, "equivalences must be a sequence")
	}
	var eqs []*expr.Equivalence
	for _, item := range seq.Content {
		eq, err := d.equivalence(item)
		if err != nil {
			return nil, err
		}
		eqs = append(eqs, eq)
	}
	return eqs, nil
}

func (d *decoder) equivalence(yn *yaml.Node) (*expr.Equivalence, error) {
	if yn.Kind != yaml.MappingNode {
		return nil, d.errorf(yn, "equivalence must be a mapping")
	}
	var (
		name        string
		left, right expr.Node
		hyps        []expr.Hypothesis
		err         error
	)
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		switch k.Value {
		case "name":
			name = v.Value
		case "left":
			left, err = d.node(v)
		case "right":
			right, err = d.node(v)
		case "hypotheses":
			hyps, err = d.hypotheses(v)
		default:
			err = d.errorf(k, "unknown field %q", k.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if name == "" || left == nil || right == nil {
		return nil, d.errorf(yn, "equivalence needs a name, a left and a right side")
	}
	eq, err := expr.MakeEquivalence(name, left, right, hyps...)
	if err != nil {
		return nil, d.wrap(yn, err)
	}
	return eq, nil
}

func (d *decoder) hypotheses(yn *yaml.Node) ([]expr.Hypothesis, error) {
	var raw []struct {
		Placeholder string `yaml:"placeholder"`
		Property    string `yaml:"property"`
	}
	if err := yn.Decode(&raw); err != nil {
		return nil, d.wrap(yn, err)
	}
	hyps := make([]expr.Hypothesis, len(raw))
	for i, h := range raw {
		p, ok := expr.LookupProperty(h.Property)
		if !ok {
			return nil, d.errorf(yn.Content[i], "unknown property %q", h.Property)
		}
		if h.Placeholder == "" {
			return nil, d.errorf(yn.Content[i], "hypothesis needs a placeholder")
		}
		hyps[i] = expr.Hypothesis{Placeholder: h.Placeholder, Property: p}
	}
	return hyps, nil
}
