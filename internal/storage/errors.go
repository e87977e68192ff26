package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a point lookup, update or delete matched no row.
	ErrNotFound = errors.New("no matching row")
	// ErrStorage matches every *Error via errors.Is.
	ErrStorage = errors.New("storage error")
)

// Error wraps an underlying store fault (connectivity, constraint violation,
// serialization) together with the gateway operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrStorage }

// Wrap turns err into a *Error tagged with op. ErrNotFound and errors that are
// already *Error pass through untouched; nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}
