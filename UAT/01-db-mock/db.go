// Package db is a small data-access layer whose DB collaborator is mocked in
// its tests.
package db

import (
	"errors"
	"fmt"
)

// DB executes SQL against some store.
type DB interface {
	ExecSQL(query string) (string, error)
	Close() error
}

// ErrNoColumns is returned when a query comes back empty.
var ErrNoColumns = errors.New("no columns")

// LoadUser fetches the columns of user id.
func LoadUser(db DB, id int) (string, error) {
	cols, err := db.ExecSQL(fmt.Sprintf("select * from users where id=%d", id))
	if err != nil {
		return "", fmt.Errorf("load user %d: %w", id, err)
	}

	if cols == "" {
		return "", fmt.Errorf("load user %d: %w", id, ErrNoColumns)
	}

	return cols, nil
}

// Shutdown closes db.
func Shutdown(db DB) error {
	return db.Close()
}
