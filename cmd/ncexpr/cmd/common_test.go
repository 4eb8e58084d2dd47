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
	"testing"

	"github.com/go-quicktest/qt"

	"netcalc.org/go/expr"
)

func TestSymbol(t *testing.T) {
	beta := newSymbol("beta", expr.Concave, expr.ZeroAtZero)
	qt.Assert(t, qt.IsTrue(beta.Is(expr.Concave)))
	qt.Assert(t, qt.IsTrue(beta.Is(expr.ZeroAtZero)))
	qt.Assert(t, qt.IsFalse(beta.Is(expr.Convex)))

	qt.Assert(t, qt.IsTrue(beta.Equivalent(newSymbol("beta"))))
	qt.Assert(t, qt.IsFalse(beta.Equivalent(newSymbol("gamma"))))
	qt.Assert(t, qt.Equals(beta.String(), "beta"))
}

func TestGetLang(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	qt.Assert(t, qt.Equals(getLang().String(), "de-DE"))
}
