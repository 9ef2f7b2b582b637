package shortener

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedURL = errors.New("malformed url")
	ErrUnreachable  = errors.New("url unreachable")
	ErrInvalidCode  = errors.New("invalid short code")
	ErrIDOutOfRange = errors.New("identifier out of range")
	ErrNotFound     = errors.New("url not found")
	ErrPersistence  = errors.New("persistence failure")
)

// UnreachableError reports why a probe got no response.
type UnreachableError struct {
	URL   string
	Cause error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUnreachable, e.URL, e.Cause)
}

func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

func (e *UnreachableError) Unwrap() error { return e.Cause }

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }
