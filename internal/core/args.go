package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Args is the normalized form of one call's arguments.
//
// Without a signature the call is an opaque positional sequence (Positional).
// With a signature every argument is keyed by its parameter name (Named is
// non-nil, possibly empty).
type Args struct {
	Positional []any
	Named      map[string]any
}

// Named carries keyword arguments. Pass it as the last argument to Call, On,
// or CalledWith:
//
//	fn.Call(2, impmock.Named{"b": 3})
type Named map[string]any

// At returns the positional argument at index i.
func (a Args) At(i int) (any, bool) {
	if i < 0 || i >= len(a.Positional) {
		return nil, false
	}

	return a.Positional[i], true
}

// Get returns the argument bound to the named parameter.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.Named[name]

	return v, ok
}

// Keyed reports whether the arguments were normalized against a signature.
func (a Args) Keyed() bool {
	return a.Named != nil
}

// Len returns the number of arguments.
func (a Args) Len() int {
	if a.Keyed() {
		return len(a.Named)
	}

	return len(a.Positional)
}

// String renders positional args as (1, "a") and keyed args as {a: 1, b: "a"},
// keys sorted.
func (a Args) String() string {
	if !a.Keyed() {
		parts := make([]string, 0, len(a.Positional))
		for _, v := range a.Positional {
			parts = append(parts, formatArg(v))
		}

		return "(" + strings.Join(parts, ", ") + ")"
	}

	keys := make([]string, 0, len(a.Named))
	for k := range a.Named {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+formatArg(a.Named[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// Normalize converts a call's positional and keyword arguments into Args.
//
// With params == nil the positional sequence is returned as-is and keyword
// arguments are rejected. Otherwise positional value i is keyed by params[i]
// and keyword entries are layered on top, so a keyword wins over a positional
// bound to the same name.
func Normalize(params []string, positional []any, named map[string]any) (Args, error) {
	if params == nil {
		if len(named) > 0 {
			return Args{}, ErrKeywordsWithoutSignature
		}

		return Args{Positional: slices.Clone(positional)}, nil
	}

	if len(positional) > len(params) {
		//nolint:err113 // validation error with dynamic context
		return Args{}, fmt.Errorf("%w: got %d, signature %v", ErrTooManyArguments, len(positional), params)
	}

	merged := make(map[string]any, len(positional)+len(named))

	for i, v := range positional {
		merged[params[i]] = v
	}

	for k, v := range named {
		if !slices.Contains(params, k) {
			//nolint:err113 // validation error with dynamic context
			return Args{}, fmt.Errorf("%w: %q not in signature %v", ErrUnknownParameter, k, params)
		}

		merged[k] = v
	}

	return Args{Named: merged}, nil
}

// ParamsOf derives an ordered parameter list from the exported fields of the
// struct type T. A `param:"name"` tag overrides the field name; `param:"-"`
// skips the field.
func ParamsOf[T any]() []string {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("impmock: ParamsOf needs a struct type, got %s", typ))
	}

	params := make([]string, 0, typ.NumField())

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name

		if tag, ok := field.Tag.Lookup("param"); ok {
			if tag == "-" {
				continue
			}

			name = tag
		}

		params = append(params, name)
	}

	return params
}

// argsMatch reports whether actual satisfies the matcher-set expected.
// Mapping forms need identical key sets; sequence forms need equal length.
// Values in expected are literals or Matchers, see MatchValue.
func argsMatch(expected, actual Args) bool {
	if expected.Keyed() != actual.Keyed() {
		return false
	}

	if expected.Len() != actual.Len() {
		return false
	}

	if expected.Keyed() {
		for k, want := range expected.Named {
			got, ok := actual.Named[k]
			if !ok {
				return false
			}

			if ok, _ := MatchValue(got, want); !ok {
				return false
			}
		}

		return true
	}

	for i, want := range expected.Positional {
		if ok, _ := MatchValue(actual.Positional[i], want); !ok {
			return false
		}
	}

	return true
}

// formatArg renders matchers by their String method when they have one and
// plain values in Go syntax.
func formatArg(v any) string {
	if _, ok := v.(Matcher); ok {
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
	}

	return fmt.Sprintf("%#v", v)
}

// splitCall separates a trailing Named argument from the positional ones.
func splitCall(args []any) ([]any, map[string]any) {
	if len(args) == 0 {
		return args, nil
	}

	if named, ok := args[len(args)-1].(Named); ok {
		return args[:len(args)-1], named
	}

	return args, nil
}
