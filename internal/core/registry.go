package core

import (
	"slices"
	"sync"
)

// Registry groups the expectations and mocks of one test so they verify
// together. Test code creates it explicitly and owns it; nothing is tracked
// globally.
type Registry struct {
	t   TestReporter
	cfg config

	mu      sync.Mutex
	tracked []verifier
}

// NewRegistry creates a Registry. WithAutoVerify verifies everything it
// created when the test ends; WithLogging is passed on to everything it
// creates.
func NewRegistry(t TestReporter, opts ...Option) *Registry {
	reg := &Registry{t: t, cfg: newConfig(opts)}

	if reg.cfg.autoVerify {
		registerAutoVerify(t, reg.AssertVerified)
	}

	return reg
}

// AssertVerified fails the test with the first verification error, if any.
func (r *Registry) AssertVerified() {
	assertVerified(r.t, r.Verify())
}

// Expectation creates a standalone Expectation tracked by r.
func (r *Registry) Expectation(opts ...Option) *Expectation {
	exp := newExpectation(r.t, r.configFor(opts))
	r.track(exp)

	return exp
}

// Mock creates a Mock tracked by r.
func (r *Registry) Mock(opts ...Option) *Mock {
	mock := newMock(r.t, r.configFor(opts))
	r.track(mock)

	return mock
}

// Verify verifies everything r created, in creation order, and returns the
// first failure. Members and rule expectations are covered by their owner.
func (r *Registry) Verify() error {
	r.mu.Lock()
	tracked := slices.Clone(r.tracked)
	r.mu.Unlock()

	for _, v := range tracked {
		if err := v.Verify(); err != nil {
			return err
		}
	}

	return nil
}

type verifier interface {
	Verify() error
}

// configFor builds the config of a tracked entity. Auto-verification belongs
// to the registry, not to what it creates.
func (r *Registry) configFor(opts []Option) config {
	cfg := config{logging: r.cfg.logging}
	for _, o := range opts {
		o(&cfg)
	}

	cfg.autoVerify = false

	return cfg
}

func (r *Registry) track(v verifier) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracked = append(r.tracked, v)
}
