package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a mutation names an id that does not exist.
	// The state is left untouched.
	ErrNotFound = errors.New("not found")
	// ErrNoUser is returned by profile operations before a user exists.
	ErrNoUser = errors.New("no user")
	// ErrInvalid wraps input validation failures.
	ErrInvalid = errors.New("invalid input")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
