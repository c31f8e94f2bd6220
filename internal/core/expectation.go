package core

import (
	"fmt"
	"slices"
	"sync"
)

// Expectation is a configurable, invokable stand-in for one callable surface.
// It records every call, dispatches calls to the first matching rule, and
// verifies accumulated checks on demand.
type Expectation struct {
	t   TestReporter
	cfg config

	mu     sync.Mutex // Protects everything below
	calls  []Args
	rules  []rule
	checks []Check
	resp   response
}

// NewExpectation creates a standalone Expectation.
// Configuration errors are reported through t.Fatalf; a nil t makes them panic.
func NewExpectation(t TestReporter, opts ...Option) *Expectation {
	exp := newExpectation(t, newConfig(opts))

	if exp.cfg.autoVerify {
		registerAutoVerify(t, exp.AssertVerified)
	}

	return exp
}

// AddCheck appends a custom verification policy.
func (e *Expectation) AddCheck(check Check) *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.checks = append(e.checks, check)

	return e
}

// AssertVerified fails the test with the verification error, if any.
func (e *Expectation) AssertVerified() {
	assertVerified(e.t, e.Verify())
}

// AtLeast expects at least n calls by verification time.
func (e *Expectation) AtLeast(n int) *Expectation {
	return e.AddCheck(CalledAtLeast{N: n})
}

// Call invokes the expectation as the mocked callable would be invoked.
// A trailing Named argument carries keyword arguments.
//
// The call is recorded, then matched against rules in declaration order; the
// first matching rule's expectation produces the result. Without a match the
// default response applies: a configured panic, a configured error, or the
// configured return value (nil when nothing was configured).
func (e *Expectation) Call(args ...any) (any, error) {
	if e.t != nil {
		e.t.Helper()
	}

	positional, named := splitCall(args)

	return e.dispatch(positional, named)
}

// CallCount returns the number of recorded calls.
func (e *Expectation) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.calls)
}

// CalledWith expects at least one recorded call to match args. Arguments are
// normalized like On's.
func (e *Expectation) CalledWith(args ...any) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}

	positional, named := splitCall(args)

	matchers, err := Normalize(e.cfg.params, positional, named)
	if err != nil {
		e.fail(err)

		return e
	}

	return e.AddCheck(CalledWith{Args: matchers})
}

// Calls returns a copy of the recorded calls, in call order.
func (e *Expectation) Calls() []Args {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.calls)
}

// Name returns the name used in diagnostics.
func (e *Expectation) Name() string {
	return e.cfg.name
}

// Never expects no calls.
func (e *Expectation) Never() *Expectation {
	return e.AddCheck(CalledExactly{N: 0})
}

// On adds a conditional rule for calls matching args and returns the rule's
// expectation, so its response can be configured:
//
//	fn.On(5).Returns(10)
//	fn.On(match.Like("id=6")).Raises(errBad)
//
// Literal values match by deep equality; Matchers match by their Match method.
// Rules are tried in declaration order and the first match wins.
func (e *Expectation) On(args ...any) *Expectation {
	if e.t != nil {
		e.t.Helper()
	}

	positional, named := splitCall(args)

	matchers, err := Normalize(e.cfg.params, positional, named)

	target := newExpectation(e.t, config{
		name:    fmt.Sprintf("%s.On%s", e.cfg.name, matchers),
		params:  e.cfg.params,
		logging: e.cfg.logging,
	})

	if err != nil {
		e.fail(err)

		return target
	}

	e.mu.Lock()
	e.rules = append(e.rules, rule{args: matchers, target: target})
	e.mu.Unlock()

	return target
}

// Once expects exactly one call.
func (e *Expectation) Once() *Expectation {
	return e.AddCheck(CalledExactly{N: 1})
}

// Panics makes default-path calls panic with value.
func (e *Expectation) Panics(value any) *Expectation {
	return e.respond(response{kind: responsePanic, value: value})
}

// Params returns the declared parameter names, or nil without a signature.
func (e *Expectation) Params() []string {
	return slices.Clone(e.cfg.params)
}

// Raises makes default-path calls return err, unchanged.
func (e *Expectation) Raises(err error) *Expectation {
	return e.respond(response{kind: responseRaise, err: err})
}

// Restore drops recorded calls, rules, checks and the configured response.
// The name and signature are kept.
func (e *Expectation) Restore() *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = nil
	e.rules = nil
	e.checks = nil
	e.resp = response{}

	return e
}

// Returns makes default-path calls return value.
func (e *Expectation) Returns(value any) *Expectation {
	return e.respond(response{kind: responseReturn, value: value})
}

// Times expects exactly n calls.
func (e *Expectation) Times(n int) *Expectation {
	return e.AddCheck(CalledExactly{N: n})
}

// Verify evaluates the rules' expectations, then the checks, in declaration
// order. It returns the first failure, or nil.
func (e *Expectation) Verify() error {
	e.mu.Lock()
	rules := slices.Clone(e.rules)
	checks := slices.Clone(e.checks)
	calls := slices.Clone(e.calls)
	e.mu.Unlock()

	for _, r := range rules {
		if err := r.target.Verify(); err != nil {
			return err
		}
	}

	for _, check := range checks {
		if err := check.Verify(e.cfg.name, calls); err != nil {
			return err
		}
	}

	return nil
}

// unexported constants.
const (
	responseReturn responseKind = iota
	responseRaise
	responsePanic
)

// unexported types.

type response struct {
	kind  responseKind
	value any
	err   error
}

type responseKind int

type rule struct {
	args   Args
	target *Expectation
}

func (e *Expectation) dispatch(positional []any, named map[string]any) (any, error) {
	normalized, err := Normalize(e.cfg.params, positional, named)
	if err != nil {
		e.fail(err)

		return nil, err
	}

	e.mu.Lock()
	e.calls = append(e.calls, normalized)
	rules := slices.Clone(e.rules)
	resp := e.resp
	e.mu.Unlock()

	for i, r := range rules {
		if argsMatch(r.args, normalized) {
			e.logf("%s%s: rule %d matched", e.cfg.name, normalized, i+1)

			return r.target.dispatch(positional, named)
		}
	}

	e.logf("%s%s: default response", e.cfg.name, normalized)

	switch resp.kind {
	case responsePanic:
		panic(resp.value)
	case responseRaise:
		return nil, resp.err
	default:
		return resp.value, nil
	}
}

// fail reports a configuration error at the caller's site.
func (e *Expectation) fail(err error) {
	if e.t == nil {
		panic(fmt.Errorf("%s: %w", e.cfg.name, err))
	}

	e.t.Helper()
	e.t.Fatalf("%s: %v", e.cfg.name, err)
}

func (e *Expectation) logf(format string, args ...any) {
	if !e.cfg.logging {
		return
	}

	if l, ok := e.t.(logger); ok {
		l.Logf(format, args...)
	}
}

func (e *Expectation) respond(resp response) *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resp = resp

	return e
}

func assertVerified(t TestReporter, err error) {
	if err == nil {
		return
	}

	if t == nil {
		panic(err)
	}

	t.Helper()
	t.Fatalf("%v", err)
}

func newExpectation(t TestReporter, cfg config) *Expectation {
	return &Expectation{t: t, cfg: cfg}
}

func registerAutoVerify(t TestReporter, verify func()) {
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(verify)
	}
}
