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
	"log/slog"
	"sync"
	"sync/atomic"

	"netcalc.org/go/internal/ncdebug"
)

// Settings configures how expressions are computed.
//
// A node built from operands uses the settings of its first operand that
// has any. A node without settings uses DefaultSettings.
type Settings struct {
	// Algebra computes the operators that involve curves.
	Algebra CurveAlgebra

	// Logger receives debug output. If nil, slog.Default is used.
	Logger *slog.Logger
}

var defaultSettings atomic.Pointer[Settings]

func init() {
	defaultSettings.Store(&Settings{})
}

// DefaultSettings returns the settings used by nodes that have none.
func DefaultSettings() *Settings {
	return defaultSettings.Load()
}

// SetDefaultSettings replaces the settings used by nodes that have none.
func SetDefaultSettings(s *Settings) {
	if s == nil {
		s = &Settings{}
	}
	defaultSettings.Store(s)
}

func (s *Settings) logger() *slog.Logger {
	if s == nil || s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Settings) algebra(op Op) (CurveAlgebra, error) {
	if s == nil || s.Algebra == nil {
		return nil, fmt.Errorf("%w: cannot compute %v", ErrNoAlgebra, op)
	}
	return s.Algebra, nil
}

var initDebug = sync.OnceFunc(func() {
	if err := ncdebug.Init(); err != nil {
		slog.Default().Warn("ignoring debug settings", "err", err)
	}
})

// debugFlags returns the NCEXPR_DEBUG settings. A malformed variable is
// reported once and otherwise ignored.
func debugFlags() ncdebug.Config {
	initDebug()
	return ncdebug.Flags
}

func debugLogger() *slog.Logger {
	return DefaultSettings().logger()
}
