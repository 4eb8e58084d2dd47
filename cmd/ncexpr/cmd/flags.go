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

package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Common flags
const (
	flagAt             flagName = "at"
	flagDepth          flagName = "depth"
	flagFormat         flagName = "format"
	flagIdentitiesFile flagName = "identities-file"
	flagIdentity       flagName = "identity"
	flagLimit          flagName = "limit"
	flagOut            flagName = "out"
	flagProperty       flagName = "property"
	flagRationalNames  flagName = "rationals-as-names"
	flagVerbose        flagName = "verbose"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.BoolP(string(flagVerbose), "v", false,
		"print information about progress")
}

func addCurveFlags(f *pflag.FlagSet) {
	f.StringArrayP(string(flagProperty), "p", nil,
		"declare a property of a named curve, as in beta=concave")
}

func addRenderFlags(f *pflag.FlagSet) {
	f.Int(string(flagDepth), -1,
		"expand named subexpressions up to this depth (negative: no limit)")
	f.Bool(string(flagRationalNames), false,
		"show named rationals by their name")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) StringArray(cmd *Command) []string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetStringArray(string(f))
	return v
}
