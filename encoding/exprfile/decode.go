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

// Package exprfile converts between expression trees and their description
// as YAML or JSON documents.
//
// A document is a mapping describing one node:
//
//	op: minimum            # an operator, by key
//	name: m                # optional
//	args:
//	  - op: convolution
//	    args:
//	      - placeholder: f # a curve placeholder
//	      - curve: beta    # a named curve, resolved by Options.Curves
//	  - op: delay-by
//	    args:
//	      - placeholder: g
//	      - value: 3/4     # a rational, also "+Inf" or "-2"
//	        name: T
//	  - placeholder: a
//	    domain: rational
//
// Since JSON is a subset of YAML, JSON documents of the same shape are
// accepted too.
package exprfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"netcalc.org/go/expr"
	"netcalc.org/go/rational"
)

// Options configures decoding.
type Options struct {
	// Curves resolves the curve leaves of a document by name. If nil,
	// documents may not contain curve leaves.
	Curves func(name string) (expr.Curve, bool)

	// Settings is given to every leaf of the decoded tree.
	Settings *expr.Settings
}

// Decode decodes the single expression document in data.
func Decode(data []byte, opts *Options) (expr.Node, error) {
	docs, err := DecodeAll(data, opts)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("exprfile: found %d documents, want 1", len(docs))
	}
	return docs[0], nil
}

// DecodeAll decodes all documents of a YAML stream.
func DecodeAll(data []byte, opts *Options) ([]expr.Node, error) {
	if opts == nil {
		opts = &Options{}
	}
	d := &decoder{opts: opts}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var xs []expr.Node
	for {
		var yn yaml.Node
		err := dec.Decode(&yn)
		if errors.Is(err, io.EOF) {
			return xs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("exprfile: %w", err)
		}
		x, err := d.node(document(&yn))
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
}

func document(yn *yaml.Node) *yaml.Node {
	if yn.Kind == yaml.DocumentNode && len(yn.Content) == 1 {
		return yn.Content[0]
	}
	return yn
}

type decoder struct {
	opts *Options
}

func (d *decoder) errorf(yn *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("exprfile: %d:%d: %s", yn.Line, yn.Column, fmt.Sprintf(format, args...))
}

func (d *decoder) wrap(yn *yaml.Node, err error) error {
	return fmt.Errorf("exprfile: %d:%d: %w", yn.Line, yn.Column, err)
}

// fields holds the entries of a node mapping.
type fields struct {
	op, name, value, placeholder, curve, domain *yaml.Node
	args                                        *yaml.Node
}

func (d *decoder) fields(yn *yaml.Node) (*fields, error) {
	if yn.Kind != yaml.MappingNode {
		return nil, d.errorf(yn, "expression must be a mapping")
	}
	f := &fields{}
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		var dst **yaml.Node
		switch k.Value {
		case "op":
			dst = &f.op
		case "name":
			dst = &f.name
		case "value":
			dst = &f.value
		case "placeholder":
			dst = &f.placeholder
		case "curve":
			dst = &f.curve
		case "domain":
			dst = &f.domain
		case "args":
			if v.Kind != yaml.SequenceNode {
				return nil, d.errorf(v, "args must be a sequence")
			}
			f.args = v
			continue
		default:
			return nil, d.errorf(k, "unknown field %q", k.Value)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, d.errorf(v, "%s must be a scalar", k.Value)
		}
		*dst = v
	}
	return f, nil
}

func text(yn *yaml.Node) string {
	if yn == nil {
		return ""
	}
	return yn.Value
}

func (d *decoder) node(yn *yaml.Node) (expr.Node, error) {
	f, err := d.fields(yn)
	if err != nil {
		return nil, err
	}
	kinds := 0
	for _, k := range []*yaml.Node{f.op, f.value, f.placeholder, f.curve} {
		if k != nil {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, d.errorf(yn, "expression needs exactly one of op, value, placeholder or curve")
	}
	if f.domain != nil && f.placeholder == nil {
		return nil, d.errorf(f.domain, "domain only applies to placeholders")
	}
	if f.args != nil && f.op == nil {
		return nil, d.errorf(f.args, "args only apply to operators")
	}
	name := text(f.name)
	leafOpts := []expr.Option{expr.WithSettings(d.opts.Settings)}

	switch {
	case f.value != nil:
		v, err := rational.Parse(f.value.Value)
		if err != nil {
			return nil, d.wrap(f.value, err)
		}
		if name != "" {
			leafOpts = append(leafOpts, expr.Named(name))
		}
		return expr.NewRational(v, leafOpts...), nil

	case f.placeholder != nil:
		if f.placeholder.Value == "" {
			return nil, d.errorf(f.placeholder, "placeholder needs a name")
		}
		if f.name != nil {
			return nil, d.errorf(f.name, "placeholders are named by the placeholder field")
		}
		switch text(f.domain) {
		case "", "curve":
			return expr.CurvePlaceholder(f.placeholder.Value, leafOpts...), nil
		case "rational":
			return expr.RationalPlaceholder(f.placeholder.Value, leafOpts...), nil
		}
		return nil, d.errorf(f.domain, "unknown domain %q", f.domain.Value)

	case f.curve != nil:
		if d.opts.Curves == nil {
			return nil, d.errorf(f.curve, "no curves available for %q", f.curve.Value)
		}
		c, ok := d.opts.Curves(f.curve.Value)
		if !ok {
			return nil, d.errorf(f.curve, "unknown curve %q", f.curve.Value)
		}
		if name == "" {
			name = f.curve.Value
		}
		return expr.NewCurve(c, name, leafOpts...), nil
	}

	op, ok := expr.LookupOp(f.op.Value)
	if !ok || op.Shape() == expr.LeafShape {
		return nil, d.errorf(f.op, "unknown operator %q", f.op.Value)
	}
	var args []expr.Node
	if f.args != nil {
		for _, a := range f.args.Content {
			x, err := d.node(a)
			if err != nil {
				return nil, err
			}
			args = append(args, x)
		}
	}
	x, err := expr.Build(op, args...)
	if err != nil {
		return nil, d.wrap(f.op, err)
	}
	if name != "" {
		x = WithName(x, name)
	}
	return x, nil
}

// WithName returns a copy of x with the given name.
func WithName(x expr.Node, name string) expr.Node {
	switch x := x.(type) {
	case *expr.CurveExpression:
		return x.WithName(name)
	case *expr.RationalExpression:
		return x.WithName(name)
	}
	panic(fmt.Sprintf("exprfile: unexpected node type %T", x))
}
