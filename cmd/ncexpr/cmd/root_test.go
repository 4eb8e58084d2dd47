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
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestHelp(t *testing.T) {
	run := func(args ...string) error {
		cmd := New(args)
		cmd.SetOutput(io.Discard)
		return cmd.Run(context.Background())
	}
	for _, args := range [][]string{
		{"help"},
		{"--help"},
		{"-h"},
		{"help", "eval"},
		{"eval", "--help"},
		{"render", "-h"},
		{"help", "rewrite"},
	} {
		qt.Check(t, qt.IsNil(run(args...)), qt.Commentf("args %q", args))
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := New([]string{"frobnicate"})
	cmd.SetOutput(io.Discard)
	err := cmd.Run(context.Background())
	qt.Assert(t, qt.ErrorMatches(err, `unknown command "frobnicate" for "ncexpr"`))
}

func TestHelpListsDebugSettings(t *testing.T) {
	var buf bytes.Buffer
	cmd := New([]string{"--help"})
	cmd.SetOutput(&buf)
	qt.Assert(t, qt.IsNil(cmd.Run(context.Background())))
	qt.Assert(t, qt.StringContains(buf.String(), "NCEXPR_DEBUG accepts the settings logeval, strict."))
}
