package databases

import (
	"errors"
	"fmt"
)

// Store-level failures that callers are expected to check for.
var (
	// ErrNilVehicle is returned when a nil vehicle is passed to Save or Update.
	ErrNilVehicle = errors.New("vehicle cannot be nil")

	// ErrEmptyChassisNumber is returned when a blank chassis number is passed
	// to an operation that requires one.
	ErrEmptyChassisNumber = errors.New("chassis number cannot be empty")

	// ErrNotFound is returned by Update when no stored record matches the
	// vehicle's chassis number.
	ErrNotFound = errors.New("vehicle not found")
)

// StorageError wraps an I/O or parse failure in the backing file. The
// inventory layer treats these as fatal and propagates them unchanged.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
