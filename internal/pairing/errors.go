package pairing

import (
	"errors"
	"fmt"
)

// ErrOutOfPairingCodes means the family's free space is exhausted: phase 5
// found no range containing, to the left of, or to the right of the draw.
var ErrOutOfPairingCodes = errors.New("out of pairing codes")

// ErrSameNamedFamilyExists means another live allocator instance in this
// process already holds the family name.
var ErrSameNamedFamilyExists = errors.New("an allocator for this family already exists")

// InvalidBoundsError means construction was given a bad (left, right) pair.
type InvalidBoundsError struct {
	Msg string
}

func (e *InvalidBoundsError) Error() string { return "invalid pairing code bounds: " + e.Msg }

func NewInvalidBoundsError(msg string) error {
	return &InvalidBoundsError{Msg: msg}
}

// PersistentStateCorruptedError means the range/taken-code tables violated
// an invariant the engine relies on. The engine resets and retries once
// internally; it only ever surfaces to a caller on the second occurrence.
type PersistentStateCorruptedError struct {
	Msg string
}

func (e *PersistentStateCorruptedError) Error() string {
	return "pairing-code persistent state corrupted: " + e.Msg
}

func newCorruption(format string, args ...interface{}) error {
	return &PersistentStateCorruptedError{Msg: fmt.Sprintf(format, args...)}
}

func isCorruption(err error) bool {
	var c *PersistentStateCorruptedError
	return errors.As(err, &c)
}

// UnrecoverableSystemError wraps a failure from the now_source capability.
type UnrecoverableSystemError struct {
	Err error
}

func (e *UnrecoverableSystemError) Error() string {
	return "unrecoverable system error: " + e.Err.Error()
}

func (e *UnrecoverableSystemError) Unwrap() error { return e.Err }

// StorageError wraps an underlying query failure whose kind is preserved
// rather than collapsed into a generic message.
type StorageError struct {
	Kind string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(kind string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Kind: kind, Err: err}
}
