package core

import (
	"fmt"
	"slices"
	"sync"
)

// Mock is an Expectation that owns named member mocks, modeling an object.
// The Mock itself stays callable and configurable like any Expectation.
type Mock struct {
	*Expectation

	membersMu sync.Mutex
	order     []string
	members   map[string]*Mock
}

// NewMock creates a Mock.
// Configuration errors are reported through t.Fatalf; a nil t makes them panic.
func NewMock(t TestReporter, opts ...Option) *Mock {
	mock := newMock(t, newConfig(opts))

	if mock.cfg.autoVerify {
		registerAutoVerify(t, mock.AssertVerified)
	}

	return mock
}

// AddCheck appends a custom verification policy to the Mock's own checks.
//
// The configuration methods below shadow Expectation's so chains stay on the
// Mock: m.Once().Verify() verifies the members too.
func (m *Mock) AddCheck(check Check) *Mock {
	m.Expectation.AddCheck(check)

	return m
}

// AssertVerified fails the test with the verification error, if any.
func (m *Mock) AssertVerified() {
	assertVerified(m.t, m.Verify())
}

// AtLeast expects at least n calls to the Mock itself.
func (m *Mock) AtLeast(n int) *Mock {
	m.Expectation.AtLeast(n)

	return m
}

// CalledWith expects at least one call to the Mock itself matching args.
func (m *Mock) CalledWith(args ...any) *Mock {
	if m.t != nil {
		m.t.Helper()
	}

	m.Expectation.CalledWith(args...)

	return m
}

// Expects registers a member named name and returns it. Options configure the
// member (WithParams, WithSignature, WithName). Registering an existing name
// replaces that member, keeping its original registration position.
func (m *Mock) Expects(name string, opts ...Option) *Mock {
	member := m.newMember(name, opts)

	m.membersMu.Lock()
	defer m.membersMu.Unlock()

	if _, ok := m.members[name]; !ok {
		m.order = append(m.order, name)
	}

	m.members[name] = member

	return member
}

// Invoke calls the member named name with args. See Expectation.Call.
func (m *Mock) Invoke(name string, args ...any) (any, error) {
	if m.t != nil {
		m.t.Helper()
	}

	return m.Member(name).Call(args...)
}

// Lookup returns the member named name, if registered.
func (m *Mock) Lookup(name string) (*Mock, bool) {
	m.membersMu.Lock()
	defer m.membersMu.Unlock()

	member, ok := m.members[name]

	return member, ok
}

// LookupOrExpects returns the member named name, registering it with opts
// first when it is missing. Concurrent callers all get the same member.
func (m *Mock) LookupOrExpects(name string, opts ...Option) *Mock {
	m.membersMu.Lock()
	defer m.membersMu.Unlock()

	if member, ok := m.members[name]; ok {
		return member
	}

	member := m.newMember(name, opts)
	m.order = append(m.order, name)
	m.members[name] = member

	return member
}

// Member returns the member named name. An unknown name is a configuration
// error; the returned mock is then detached from m.
func (m *Mock) Member(name string) *Mock {
	if member, ok := m.Lookup(name); ok {
		return member
	}

	if m.t != nil {
		m.t.Helper()
	}

	//nolint:err113 // validation error with dynamic context
	m.fail(fmt.Errorf("%w: %q (registered: %v)", ErrUnknownMember, name, m.Members()))

	return newMock(m.t, config{name: name})
}

// Members returns the member names in registration order.
func (m *Mock) Members() []string {
	m.membersMu.Lock()
	defer m.membersMu.Unlock()

	return slices.Clone(m.order)
}

// Never expects no calls to the Mock itself.
func (m *Mock) Never() *Mock {
	m.Expectation.Never()

	return m
}

// Once expects exactly one call to the Mock itself.
func (m *Mock) Once() *Mock {
	m.Expectation.Once()

	return m
}

// Panics makes default-path calls to the Mock panic with value.
func (m *Mock) Panics(value any) *Mock {
	m.Expectation.Panics(value)

	return m
}

// Raises makes default-path calls to the Mock return err.
func (m *Mock) Raises(err error) *Mock {
	m.Expectation.Raises(err)

	return m
}

// Restore discards all members, then restores the Mock's own state.
func (m *Mock) Restore() *Mock {
	m.membersMu.Lock()
	m.order = nil
	m.members = make(map[string]*Mock)
	m.membersMu.Unlock()

	m.Expectation.Restore()

	return m
}

// Returns makes default-path calls to the Mock return value.
func (m *Mock) Returns(value any) *Mock {
	m.Expectation.Returns(value)

	return m
}

// Times expects exactly n calls to the Mock itself.
func (m *Mock) Times(n int) *Mock {
	m.Expectation.Times(n)

	return m
}

// Verify verifies every member in registration order, then the Mock's own
// rules and checks. It returns the first failure, or nil.
func (m *Mock) Verify() error {
	m.membersMu.Lock()
	members := make([]*Mock, 0, len(m.order))

	for _, name := range m.order {
		members = append(members, m.members[name])
	}
	m.membersMu.Unlock()

	for _, member := range members {
		if err := member.Verify(); err != nil {
			return err
		}
	}

	return m.Expectation.Verify()
}

func (m *Mock) newMember(name string, opts []Option) *Mock {
	qualified := name
	if m.cfg.name != "" {
		qualified = m.cfg.name + "." + name
	}

	cfg := config{name: qualified, logging: m.cfg.logging}
	for _, o := range opts {
		o(&cfg)
	}

	return newMock(m.t, cfg)
}

func newMock(t TestReporter, cfg config) *Mock {
	return &Mock{
		Expectation: newExpectation(t, cfg),
		members:     make(map[string]*Mock),
	}
}
