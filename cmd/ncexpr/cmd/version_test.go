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
	"runtime/debug"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"netcalc.org/go/rational"
)

func TestBuildVersion(t *testing.T) {
	vcs := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}
	testCases := []struct {
		name    string
		linked  string
		main    string
		setting []debug.BuildSetting
		want    string
	}{
		{name: "Devel", main: "(devel)", want: "(devel)"},
		{name: "Module", main: "v0.3.1", setting: vcs, want: "v0.3.1"},
		{name: "Pseudo", main: "(devel)", setting: vcs, want: "v0.0.0-20260102030405-0123456789ab"},
		{name: "Linked", linked: "v1.0.0", main: "v0.3.1", setting: vcs, want: "v1.0.0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			old := version
			t.Cleanup(func() { version = old })
			version = tc.linked

			bi := &debug.BuildInfo{Settings: tc.setting}
			bi.Main.Version = tc.main
			qt.Assert(t, qt.Equals(buildVersion(bi), tc.want))
		})
	}
}

func TestPrintVersion(t *testing.T) {
	bi := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "-ldflags", Value: "-s"},
		{Key: "GOOS", Value: "linux"},
		{Key: "vcs.modified", Value: "true"},
	}}
	var b strings.Builder
	printVersion(&b, bi)
	out := b.String()
	qt.Assert(t, qt.StringContains(out, "rational backend: "+rational.Backend+"\n"))
	qt.Assert(t, qt.StringContains(out, "            GOOS linux\n"))
	qt.Assert(t, qt.StringContains(out, "    vcs.modified true\n"))
	qt.Assert(t, qt.Not(qt.StringContains(out, "ldflags")))
}
