// Package envflag decodes comma-separated settings from an environment
// variable into the fields of a struct.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalid indicates a setting whose value cannot be parsed.
var ErrInvalid = errors.New("invalid value")

type invalidError struct{ error }

func (invalidError) Is(err error) bool { return err == ErrInvalid }

// Init calls Parse with the contents of the environment variable envVar.
func Init[T any](flags *T, envVar string) error {
	if err := Parse(flags, os.Getenv(envVar)); err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse sets the fields of flags from env, a list of name=value settings
// separated by commas. Names match field names case insensitively. A bool
// setting may omit its value, in which case it is set to true. Empty
// elements are ignored.
//
// Fields start out with their zero value, or with the value given by a
// field tag such as `envflag:"default:3"`. A field tagged
// `envflag:"deprecated"` may only be set to its default value.
//
// Fields of kind bool, int and string are supported.
func Parse[T any](flags *T, env string) error {
	v := reflect.ValueOf(flags).Elem()
	fields, err := fieldsOf(v)
	if err != nil {
		return err
	}

	var errs []error
	for _, setting := range strings.Split(env, ",") {
		if setting == "" {
			continue
		}
		name, text, explicit := strings.Cut(setting, "=")
		f, ok := fields[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown flag %q", setting))
			continue
		}
		dst := v.Field(f.index)
		var x any
		switch {
		case explicit:
			x, err = decode(f.name, dst.Kind(), text)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		case dst.Kind() == reflect.Bool:
			x = true
		default:
			errs = append(errs, fmt.Errorf("value needed for %s flag %q", dst.Kind(), f.name))
			continue
		}
		if f.deprecated {
			if dst.Interface() != x {
				errs = append(errs, fmt.Errorf("cannot change default value of deprecated flag %q", f.name))
			}
			continue
		}
		dst.Set(reflect.ValueOf(x))
	}
	return errors.Join(errs...)
}

// Names returns the lower-cased names of the settings accepted for T, sorted.
func Names[T any]() []string {
	t := reflect.TypeFor[T]()
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		names = append(names, strings.ToLower(t.Field(i).Name))
	}
	sort.Strings(names)
	return names
}

type field struct {
	name       string
	index      int
	deprecated bool
}

// fieldsOf indexes the fields of the struct v and resets them to their
// defaults.
func fieldsOf(v reflect.Value) (map[string]field, error) {
	t := v.Type()
	fields := make(map[string]field, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		f := field{name: strings.ToLower(sf.Name), index: i}
		v.Field(i).SetZero()

		tag, ok := sf.Tag.Lookup("envflag")
		if ok {
			for _, opt := range strings.Split(tag, ",") {
				key, arg, hasArg := strings.Cut(opt, ":")
				switch key {
				case "default":
					x, err := decode(f.name, sf.Type.Kind(), arg)
					if err != nil {
						return nil, err
					}
					v.Field(i).Set(reflect.ValueOf(x))
				case "deprecated":
					if hasArg {
						return nil, fmt.Errorf("cannot have a value for deprecated tag")
					}
					f.deprecated = true
				default:
					return nil, fmt.Errorf("unknown envflag tag %q", opt)
				}
			}
		}
		fields[f.name] = f
	}
	return fields, nil
}

func decode(name string, kind reflect.Kind, text string) (any, error) {
	var (
		x   any
		err error
	)
	switch kind {
	case reflect.Bool:
		x, err = strconv.ParseBool(text)
	case reflect.Int:
		x, err = strconv.Atoi(text)
	case reflect.String:
		x = text
	default:
		return nil, invalidError{fmt.Errorf("unsupported kind %s", kind)}
	}
	if err != nil {
		return nil, invalidError{fmt.Errorf("invalid %s value for %s: %v", kind, name, err)}
	}
	return x, nil
}
