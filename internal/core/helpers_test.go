package core_test

import (
	"fmt"
	"sync"
)

// fakeReporter records failures instead of stopping the test, so tests can
// assert on configuration and verification errors.
type fakeReporter struct {
	mu       sync.Mutex
	fatals   []string
	logs     []string
	cleanups []func()
}

func (r *fakeReporter) Cleanup(cleanupFunc func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cleanups = append(r.cleanups, cleanupFunc)
}

func (r *fakeReporter) Fatalf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *fakeReporter) Helper() {}

func (r *fakeReporter) Logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func (r *fakeReporter) Fatals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.fatals...)
}

func (r *fakeReporter) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.logs...)
}

// runCleanups runs registered cleanups in reverse order, like testing.T.
func (r *fakeReporter) runCleanups() {
	r.mu.Lock()
	cleanups := r.cleanups
	r.cleanups = nil
	r.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
