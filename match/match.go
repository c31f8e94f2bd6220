// Package match provides argument matchers for impmock's On and CalledWith.
// Gomega matchers work in the same places:
//
//	fn.On(match.Like(`select .* id=5`)).Returns("cols")
//	fn.On(match.OfType[int]()).Returns(1)
//	fn.On(gomega.BeNumerically(">", 10)).Returns(2)
package match

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// Like returns a matcher for text that matches the regular expression pattern
// at its start. The whole text need not be consumed:
// Like("select .* id=5") matches "select * from t where id=5 limit 1".
//
// Text is a string, a []byte or a fmt.Stringer; other values never match.
// An invalid pattern never matches, and its FailureMessage says why.
func Like(pattern string) Matcher {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)

	return &likeMatcher{pattern: pattern, re: re, compileErr: err}
}

// OfType returns a matcher for values whose dynamic type is exactly T.
func OfType[T any]() Matcher {
	return OfTypeOf(reflect.TypeFor[T]())
}

// OfTypeOf returns a matcher for values whose dynamic type is exactly typ.
func OfTypeOf(typ reflect.Type) Matcher {
	return typeMatcher{expected: typ}
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	fn.On(match.Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	})).Returns(true)
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// Value returns a matcher for values deeply equal to expected. Bare literals
// passed to On behave the same; Value makes the intent explicit.
func Value(expected any) Matcher {
	return valueMatcher{expected: expected}
}

// Where returns a matcher backed by an untyped predicate. desc shows up in
// failure messages.
func Where(desc string, predicate func(any) bool) Matcher {
	return whereMatcher{desc: desc, predicate: predicate}
}

// unexported variables.
var (
	errNotText      = errors.New("not text")
	errTypeMismatch = errors.New("type mismatch")
)

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type likeMatcher struct {
	pattern    string
	re         *regexp.Regexp
	compileErr error
}

func (m *likeMatcher) FailureMessage(actual any) string {
	if m.compileErr != nil {
		return fmt.Sprintf("invalid pattern %q: %v", m.pattern, m.compileErr)
	}

	return fmt.Sprintf("value %#v is not like %q", actual, m.pattern)
}

func (m *likeMatcher) Match(actual any) (bool, error) {
	if m.compileErr != nil {
		return false, nil
	}

	switch text := actual.(type) {
	case string:
		return m.re.MatchString(text), nil
	case []byte:
		return m.re.Match(text), nil
	case fmt.Stringer:
		return m.re.MatchString(text.String()), nil
	default:
		return false, fmt.Errorf("%w: %T", errNotText, actual)
	}
}

// String renders the matcher in diagnostics.
func (m *likeMatcher) String() string {
	return fmt.Sprintf("Like(%q)", m.pattern)
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
}

// FailureMessage re-runs the predicate on actual, so concurrent matches never
// share a reason.
func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	val, ok := actual.(T)
	if !ok {
		return fmt.Sprintf("value %v is a %T, not a %T", actual, actual, *new(T))
	}

	if err := m.predicate(val); err != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, err)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	return m.predicate(val) == nil, nil
}

// String renders the matcher in diagnostics.
func (m *satisfyMatcher[T]) String() string {
	return "Satisfy()"
}

type typeMatcher struct {
	expected reflect.Type
}

func (m typeMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %#v is a %T, not a %s", actual, actual, m.expected)
}

func (m typeMatcher) Match(actual any) (bool, error) {
	return reflect.TypeOf(actual) == m.expected, nil
}

func (m typeMatcher) String() string {
	return fmt.Sprintf("OfType(%s)", m.expected)
}

type valueMatcher struct {
	expected any
}

func (m valueMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %#v, got %#v", m.expected, actual)
}

func (m valueMatcher) Match(actual any) (bool, error) {
	return reflect.DeepEqual(actual, m.expected), nil
}

func (m valueMatcher) String() string {
	return fmt.Sprintf("Value(%#v)", m.expected)
}

type whereMatcher struct {
	desc      string
	predicate func(any) bool
}

func (m whereMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %#v does not satisfy %s", actual, m.desc)
}

func (m whereMatcher) Match(actual any) (bool, error) {
	return m.predicate(actual), nil
}

func (m whereMatcher) String() string {
	return "Where(" + m.desc + ")"
}
