package envflag

import (
	"testing"

	"github.com/go-quicktest/qt"
)

type settings struct {
	Trace     bool
	SlowCheck bool
	Depth     int    `envflag:"default:3"`
	Format    string `envflag:"default:unicode"`
	Cached    bool   `envflag:"default:true"`
}

type legacy struct {
	Old bool `envflag:"deprecated"`
	On  bool `envflag:"deprecated,default:true"`
}

var defaults = settings{Depth: 3, Format: "unicode", Cached: true}

func TestParse(t *testing.T) {
	testCases := []struct {
		env     string
		want    settings
		wantErr string
	}{{
		env:  "",
		want: defaults,
	}, {
		env:  ",,",
		want: defaults,
	}, {
		env:  "trace",
		want: settings{Trace: true, Depth: 3, Format: "unicode", Cached: true},
	}, {
		env:  "SlowCheck=1,cached=false",
		want: settings{SlowCheck: true, Depth: 3, Format: "unicode"},
	}, {
		env:  "depth=10,format=latex",
		want: settings{Depth: 10, Format: "latex", Cached: true},
	}, {
		env:     "bogus",
		want:    defaults,
		wantErr: `unknown flag "bogus"`,
	}, {
		env:     "depth",
		want:    defaults,
		wantErr: `value needed for int flag "depth"`,
	}, {
		env:     "trace,bogus,depth=7",
		want:    settings{Trace: true, Depth: 7, Format: "unicode", Cached: true},
		wantErr: `unknown flag "bogus"`,
	}}
	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			var got settings
			err := Parse(&got, tc.env)
			if tc.wantErr != "" {
				qt.Assert(t, qt.ErrorMatches(err, tc.wantErr))
			} else {
				qt.Assert(t, qt.IsNil(err))
			}
			qt.Assert(t, qt.Equals(got, tc.want))
		})
	}
}

func TestInvalid(t *testing.T) {
	var got settings
	err := Parse(&got, "depth=many")
	qt.Assert(t, qt.ErrorIs(err, ErrInvalid))
	qt.Assert(t, qt.Equals(got, defaults))

	err = Parse(&got, "trace=maybe")
	qt.Assert(t, qt.ErrorIs(err, ErrInvalid))
}

func TestDeprecated(t *testing.T) {
	var got legacy
	qt.Assert(t, qt.IsNil(Parse(&got, "old=false,on=true")))
	qt.Assert(t, qt.Equals(got, legacy{On: true}))

	err := Parse(&got, "old")
	qt.Assert(t, qt.ErrorMatches(err, `cannot change default value of deprecated flag "old"`))
}

func TestInit(t *testing.T) {
	t.Setenv("NCEXPR_TEST", "trace,depth=1")
	var got settings
	qt.Assert(t, qt.IsNil(Init(&got, "NCEXPR_TEST")))
	qt.Assert(t, qt.Equals(got, settings{Trace: true, Depth: 1, Format: "unicode", Cached: true}))

	t.Setenv("NCEXPR_TEST", "nope")
	err := Init(&got, "NCEXPR_TEST")
	qt.Assert(t, qt.ErrorMatches(err, `cannot parse NCEXPR_TEST: unknown flag "nope"`))
}

func TestNames(t *testing.T) {
	qt.Assert(t, qt.DeepEquals(Names[settings](), []string{"cached", "depth", "format", "slowcheck", "trace"}))
}
