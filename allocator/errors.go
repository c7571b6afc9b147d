package allocator

import "github.com/cockroachdb/errors"

var (
	// ErrAllocationDenied indicates that the most recently freed region is too
	// small for the request, or that no free region exists. Other free regions
	// are never searched.
	ErrAllocationDenied = errors.New("allocator: allocation denied")

	// ErrUnknownAddress indicates a release of an address that is not the start
	// of a live allocation (never allocated, already released, or out of range).
	ErrUnknownAddress = errors.New("allocator: unknown address")

	// ErrInvalidSize indicates a zero-size allocation request.
	ErrInvalidSize = errors.New("allocator: size must be > 0")
)
