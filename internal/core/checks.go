package core

import (
	"fmt"

	"github.com/akedrou/textdiff"
)

// Check is a verification policy evaluated against recorded calls.
type Check interface {
	// Policy describes the check for diagnostics.
	Policy() string
	// Verify returns a *VerificationError when calls violate the policy.
	Verify(name string, calls []Args) error
}

// CalledAtLeast passes when at least N calls were recorded.
type CalledAtLeast struct {
	N int
}

func (c CalledAtLeast) Policy() string {
	return fmt.Sprintf("called at least %d time(s)", c.N)
}

func (c CalledAtLeast) Verify(name string, calls []Args) error {
	if len(calls) >= c.N {
		return nil
	}

	return &VerificationError{
		Name:   name,
		Policy: c.Policy(),
		Count:  len(calls),
		Calls:  calls,
		Detail: fmt.Sprintf("%s was called %d time(s) but expected at least %d time(s)", name, len(calls), c.N),
	}
}

// CalledExactly passes when exactly N calls were recorded.
type CalledExactly struct {
	N int
}

func (c CalledExactly) Policy() string {
	return fmt.Sprintf("called exactly %d time(s)", c.N)
}

func (c CalledExactly) Verify(name string, calls []Args) error {
	if len(calls) == c.N {
		return nil
	}

	return &VerificationError{
		Name:   name,
		Policy: c.Policy(),
		Count:  len(calls),
		Calls:  calls,
		Detail: fmt.Sprintf("%s was called %d time(s) but expected exactly %d time(s)", name, len(calls), c.N),
	}
}

// CalledWith passes when at least one recorded call matches Args.
type CalledWith struct {
	Args Args
}

func (c CalledWith) Policy() string {
	return "called with " + c.Args.String()
}

func (c CalledWith) Verify(name string, calls []Args) error {
	for _, call := range calls {
		if argsMatch(c.Args, call) {
			return nil
		}
	}

	detail := fmt.Sprintf("%s was not called with %s", name, c.Args)

	if len(calls) > 0 {
		last := calls[len(calls)-1]

		diff := textdiff.Unified("expected", "last call", c.Args.String()+"\n", last.String()+"\n")
		if diff != "" {
			detail += "\n" + diff
		}
	}

	return &VerificationError{
		Name:   name,
		Policy: c.Policy(),
		Count:  len(calls),
		Calls:  calls,
		Detail: detail,
	}
}
