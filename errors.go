package qvec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a negative capacity, a malformed slice
	// range or a resize below the current length.
	ErrInvalidArgument = errors.New("qvec: invalid argument")

	// ErrEmpty is returned when reading or removing from an empty vector.
	ErrEmpty = errors.New("qvec: vector is empty")

	// ErrAllocation is returned when the backing buffer cannot be grown, either
	// because its byte size overflows or because the allocator refused it.
	ErrAllocation = errors.New("qvec: allocation failed")
)

// ErrIndexOutOfRange indicates an index outside the live elements.
//
// errors.Is(err, ErrInvalidArgument) reports true for it.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("qvec: index %d out of range [0:%d]", e.Index, e.Len)
}

// Is makes the error match ErrInvalidArgument.
func (e *ErrIndexOutOfRange) Is(target error) bool {
	return target == ErrInvalidArgument
}

func indexError(index, n int) error {
	return &ErrIndexOutOfRange{Index: index, Len: n}
}

func allocError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAllocation, fmt.Sprintf(format, args...))
}
