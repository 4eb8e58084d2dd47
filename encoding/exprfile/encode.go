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
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"netcalc.org/go/expr"
)

// Doc is the document form of a node.
type Doc struct {
	Op          string `yaml:"op,omitempty" json:"op,omitempty"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Domain      string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Curve       string `yaml:"curve,omitempty" json:"curve,omitempty"`
	Args        []*Doc `yaml:"args,omitempty" json:"args,omitempty"`
}

// FromNode returns the document describing x. Curve leaves are described
// by their name.
func FromNode(x expr.Node) *Doc {
	switch x.Op() {
	case expr.CurveLeafOp:
		return &Doc{Curve: x.Name()}
	case expr.CurvePlaceholderOp:
		return &Doc{Placeholder: x.Name()}
	case expr.RationalPlaceholderOp:
		return &Doc{Placeholder: x.Name(), Domain: "rational"}
	case expr.RationalLeafOp:
		v, _ := x.(*expr.RationalExpression).Leaf()
		return &Doc{Value: v.String(), Name: x.Name()}
	}
	d := &Doc{Op: x.Op().Key(), Name: x.Name()}
	for _, a := range x.Operands() {
		d.Args = append(d.Args, FromNode(a))
	}
	return d
}

// Encode returns x as a YAML document.
func Encode(x expr.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromNode(x)); err != nil {
		return nil, fmt.Errorf("exprfile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("exprfile: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON returns x as an indented JSON document.
func EncodeJSON(x expr.Node) ([]byte, error) {
	b, err := json.MarshalIndent(FromNode(x), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exprfile: %w", err)
	}
	return append(b, '\n'), nil
}
