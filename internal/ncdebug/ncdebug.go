// Package ncdebug holds the debug settings read from the NCEXPR_DEBUG
// environment variable.
package ncdebug

import (
	"fmt"
	"sync"

	"netcalc.org/go/internal/envflag"
)

// EnvVar names the environment variable holding the debug settings.
const EnvVar = "NCEXPR_DEBUG"

// Flags holds the debug settings. It is set by Init.
var Flags Config

// Config holds the known NCEXPR_DEBUG settings.
type Config struct {
	// Strict turns soft failures into panics. For instance, registering an
	// equivalence under an operator that does not head its left side is
	// ignored unless Strict is set.
	Strict bool

	// LogEval sets the verbosity of evaluation logging.
	//
	//	0: no logging
	//	1: log each computed node
	LogEval int
}

// Init initializes Flags. It is safe to call more than once.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, EnvVar)
})

// Assertf panics with the formatted message if Strict is set and cond is
// false. It reports whether cond holds.
func Assertf(cond bool, format string, args ...any) bool {
	if !cond && Flags.Strict {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
	return cond
}

// Names returns the names of the settings accepted in NCEXPR_DEBUG.
func Names() []string {
	return envflag.Names[Config]()
}
