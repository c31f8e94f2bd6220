package core

import "fmt"

// Tuple holds several return values for callables with more than one
// non-error result. Configure it with Returns(Values(a, b)).
type Tuple []any

// ResultAs converts a dispatched value to T. A nil value yields T's zero value.
// A value of another type is a configuration bug and panics.
func ResultAs[T any](value any) T {
	var zero T

	if value == nil {
		return zero
	}

	typed, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("impmock: configured value %#v is a %T, not a %T", value, value, zero))
	}

	return typed
}

// Unpack splits a dispatched value into n results. A nil value yields n nils.
func Unpack(value any, n int) []any {
	if value == nil {
		return make([]any, n)
	}

	tuple, ok := value.(Tuple)
	if !ok || len(tuple) != n {
		panic(fmt.Sprintf("impmock: expected Values(...) with %d results, got %#v", n, value))
	}

	return tuple
}

// Values bundles several return values, see Tuple.
func Values(values ...any) Tuple {
	return Tuple(values)
}
