// Package impmock provides behavior-verification mocks for Go tests.
// A test creates a stand-in for a collaborator, programs its responses per
// call arguments, installs it in place of the real collaborator, and verifies
// afterwards how it was used:
//
//	db := impmock.NewMock(t, impmock.WithName("db"))
//	execSQL := db.Expects("ExecSQL", impmock.WithParams("query"))
//	execSQL.On(match.Like(`select .* id=5`)).Returns("cols")
//	execSQL.On(match.Like(`select .* id=6`)).Raises(errBad)
//	execSQL.AtLeast(1)
//
//	rows, err := db.Invoke("ExecSQL", "select * from t where id=5")
//	...
//	db.AssertVerified()
//
// This is the public API entry point. Implementation lives in internal/core.
package impmock

import (
	"github.com/toejough/impmock/internal/core"
)

// Args is the normalized form of one call's arguments.
type Args = core.Args

// Check is a verification policy evaluated against recorded calls.
type Check = core.Check

// CalledAtLeast passes when at least N calls were recorded.
type CalledAtLeast = core.CalledAtLeast

// CalledExactly passes when exactly N calls were recorded.
type CalledExactly = core.CalledExactly

// CalledWith passes when at least one recorded call matches Args.
type CalledWith = core.CalledWith

// Expectation is a configurable, invokable stand-in for one callable surface.
type Expectation = core.Expectation

// NewExpectation creates a standalone Expectation.
func NewExpectation(t TestReporter, opts ...Option) *Expectation {
	return core.NewExpectation(t, opts...)
}

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Mock is an Expectation that owns named member mocks.
type Mock = core.Mock

// NewMock creates a Mock.
func NewMock(t TestReporter, opts ...Option) *Mock {
	return core.NewMock(t, opts...)
}

// Named carries keyword arguments as the last argument of Call, On or CalledWith.
type Named = core.Named

// Option configures an Expectation or Mock at construction time.
type Option = core.Option

// Registry groups the expectations and mocks of one test so they verify together.
type Registry = core.Registry

// NewRegistry creates a Registry owned by the calling test.
func NewRegistry(t TestReporter, opts ...Option) *Registry {
	return core.NewRegistry(t, opts...)
}

// TestReporter is the minimal interface impmock needs from test frameworks.
type TestReporter = core.TestReporter

// Tuple holds several return values, see Values.
type Tuple = core.Tuple

// VerificationError reports a violated verification policy.
type VerificationError = core.VerificationError

// Errors re-exported from internal/core.
//
//nolint:gochecknoglobals // Re-exported sentinels
var (
	ErrConfiguration            = core.ErrConfiguration
	ErrKeywordsWithoutSignature = core.ErrKeywordsWithoutSignature
	ErrTooManyArguments         = core.ErrTooManyArguments
	ErrUnknownMember            = core.ErrUnknownMember
	ErrUnknownParameter         = core.ErrUnknownParameter
	ErrVerification             = core.ErrVerification
)

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// Normalize converts a call's positional and keyword arguments into Args.
func Normalize(params []string, positional []any, named map[string]any) (Args, error) {
	return core.Normalize(params, positional, named)
}

// ParamsOf derives an ordered parameter list from the fields of struct type T.
func ParamsOf[T any]() []string {
	return core.ParamsOf[T]()
}

// ResultAs converts a dispatched value to T; nil yields T's zero value.
func ResultAs[T any](value any) T {
	return core.ResultAs[T](value)
}

// Unpack splits a dispatched value into n results.
func Unpack(value any, n int) []any {
	return core.Unpack(value, n)
}

// Values bundles several return values.
func Values(values ...any) Tuple {
	return core.Values(values...)
}

// WithAutoVerify verifies when the test ends.
func WithAutoVerify() Option {
	return core.WithAutoVerify()
}

// WithLogging logs every dispatched call through the reporter's Logf.
func WithLogging() Option {
	return core.WithLogging()
}

// WithName sets the name used in diagnostics.
func WithName(name string) Option {
	return core.WithName(name)
}

// WithParams declares the ordered parameter names of the mocked callable.
func WithParams(names ...string) Option {
	return core.WithParams(names...)
}

// WithSignature declares the parameters from the fields of struct type T.
func WithSignature[T any]() Option {
	return core.WithSignature[T]()
}
