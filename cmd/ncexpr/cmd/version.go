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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"

	"netcalc.org/go/rational"
)

func newVersionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print ncexpr version and build details",
		Long: `version prints the version of ncexpr, the arithmetic backend used for
rationals and the settings the binary was built with.

The backend is big unless ncexpr was built with -tags ncfixed, in which
case rationals are limited to 64-bit numerators and denominators and
operations that leave that range fail.
`,
		Args: cobra.NoArgs,
		RunE: mkRunE(c, runVersion),
	}
	return cmd
}

// version may be set with
// -ldflags='-X netcalc.org/go/cmd/ncexpr/cmd.version=<version>'.
var version string

func runVersion(cmd *Command, args []string) error {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("no build information in binary")
	}
	if v := os.Getenv("NCEXPR_VERSION_TEST_CFG"); v != "" {
		var extra []debug.BuildSetting
		if err := json.Unmarshal([]byte(v), &extra); err != nil {
			return err
		}
		bi.Settings = append(bi.Settings, extra...)
	}
	printVersion(cmd.OutOrStdout(), bi)
	return nil
}

func printVersion(w io.Writer, bi *debug.BuildInfo) {
	fmt.Fprintf(w, "ncexpr version %s\n", buildVersion(bi))
	fmt.Fprintf(w, "rational backend: %s\n", rational.Backend)
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	for _, s := range bi.Settings {
		if s.Value != "" && reportedSetting(s.Key) {
			fmt.Fprintf(w, "%16s %s\n", s.Key, s.Value)
		}
	}
}

// buildVersion returns the version set at link time, the version of the
// main module, or a pseudo-version derived from VCS information, in that
// order of preference.
func buildVersion(bi *debug.BuildInfo) string {
	if version != "" {
		return version
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var rev string
	var at time.Time
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at, _ = time.Parse(time.RFC3339Nano, s.Value)
		}
	}
	if rev == "" {
		return "(devel)"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return module.PseudoVersion("", "", at, rev)
}

// reportedSetting reports whether a build setting affects how ncexpr
// computes or identifies the source it was built from.
func reportedSetting(key string) bool {
	switch key {
	case "-tags", "GOOS", "GOARCH", "CGO_ENABLED":
		return true
	}
	return strings.HasPrefix(key, "vcs.")
}
