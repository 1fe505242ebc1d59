package reactive

import (
	"errors"
	"fmt"
)

var (
	ErrCycleDetected   = errors.New("cycle detected in computations")
	ErrWriteNotAllowed = errors.New("signal writes are not allowed in this context")
)

// CycleDetectedError is returned by a memo whose computation read itself,
// directly or through other memos.
type CycleDetectedError struct {
	ID string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("memo %q: %s", e.ID, ErrCycleDetected)
}

func (e *CycleDetectedError) Unwrap() error {
	return ErrCycleDetected
}

// WriteNotAllowedError is returned by Set, Update and Mutate when the active
// consumer is a memo or a watch that did not opt in to signal writes.
type WriteNotAllowedError struct {
	ID       string
	Consumer NodeID
}

func (e *WriteNotAllowedError) Error() string {
	return fmt.Sprintf("signal %q written from consumer %d: %s", e.ID, e.Consumer, ErrWriteNotAllowed)
}

func (e *WriteNotAllowedError) Unwrap() error {
	return ErrWriteNotAllowed
}

// PanicError wraps a value recovered from a panicking computation or effect.
type PanicError struct {
	ID    string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.ID, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
