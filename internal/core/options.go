package core

import "slices"

// TestReporter is the minimal interface the engine needs from test frameworks.
// *testing.T satisfies it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Option configures an Expectation or Mock at construction time.
type Option func(*config)

// WithAutoVerify registers a cleanup that fails the test if verification fails
// when the test ends. Requires a reporter with Cleanup, like *testing.T.
func WithAutoVerify() Option {
	return func(c *config) {
		c.autoVerify = true
	}
}

// WithLogging logs every dispatched call through the reporter's Logf.
// Requires a reporter with Logf, like *testing.T.
func WithLogging() Option {
	return func(c *config) {
		c.logging = true
	}
}

// WithName sets the name used in diagnostics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithParams declares the ordered parameter names of the mocked callable.
// Keyword arguments are only accepted when a signature is declared.
func WithParams(names ...string) Option {
	return func(c *config) {
		c.params = slices.Clone(names)
		if c.params == nil {
			c.params = []string{}
		}
	}
}

// WithSignature declares the parameters from the fields of struct type T.
// See ParamsOf.
func WithSignature[T any]() Option {
	return func(c *config) {
		c.params = ParamsOf[T]()
	}
}

// unexported types.

type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

type config struct {
	name       string
	params     []string
	logging    bool
	autoVerify bool
}

type logger interface {
	Logf(format string, args ...any)
}

func newConfig(opts []Option) config {
	var cfg config

	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}
