package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Configuration errors wrap ErrConfiguration; verification
// failures wrap ErrVerification.
var (
	ErrConfiguration            = errors.New("mock configuration error")
	ErrKeywordsWithoutSignature = fmt.Errorf("%w: cannot merge keyword arguments without a known signature", ErrConfiguration)
	ErrTooManyArguments         = fmt.Errorf("%w: more positional arguments than declared parameters", ErrConfiguration)
	ErrUnknownParameter         = fmt.Errorf("%w: unknown parameter", ErrConfiguration)
	ErrUnknownMember            = fmt.Errorf("%w: unknown member", ErrConfiguration)
	ErrVerification             = errors.New("verification failed")
)

// VerificationError reports a violated verification policy.
type VerificationError struct {
	// Name is the name of the expectation that failed verification.
	Name string
	// Policy describes the failed check, e.g. "called exactly 1 time(s)".
	Policy string
	// Count is the number of calls recorded when the check ran.
	Count int
	// Calls are the recorded calls when the check ran.
	Calls []Args
	// Detail is the human readable description of the failure.
	Detail string
}

func (e *VerificationError) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Detail)

	if len(e.Calls) > 0 {
		builder.WriteString("\nrecorded calls:")

		for i, call := range e.Calls {
			fmt.Fprintf(&builder, "\n  %d: %s", i+1, call)
		}
	}

	return builder.String()
}

// Unwrap makes errors.Is(err, ErrVerification) hold.
func (e *VerificationError) Unwrap() error {
	return ErrVerification
}
