// Package mailer sends notifications through a transport. Its tests build the
// transport double at runtime from impmock.Mock instead of generating one.
package mailer

import (
	"fmt"
	"slices"
)

// Transport delivers one message.
type Transport interface {
	Send(to, subject string, priority int) error
}

// Notify sends subject to each recipient in name order; urgent recipients
// get priority 1, the rest 5. It stops at the first failure.
func Notify(transport Transport, subject string, recipients map[string]bool) (int, error) {
	const (
		urgent = 1
		normal = 5
	)

	names := make([]string, 0, len(recipients))
	for name := range recipients {
		names = append(names, name)
	}

	slices.Sort(names)

	for i, to := range names {
		priority := normal
		if recipients[to] {
			priority = urgent
		}

		err := transport.Send(to, subject, priority)
		if err != nil {
			return i, fmt.Errorf("notify %s: %w", to, err)
		}
	}

	return len(names), nil
}
