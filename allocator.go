package qvec

import "context"

// Allocator is a memory budget that backing buffers are charged against.
//
// *resource.Controller implements it. A vector reserves the byte size of a new
// backing array before allocating it and releases the old one afterwards, so
// for the duration of a reallocation both are charged.
type Allocator interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// ContextAllocator is an Allocator that can wait for budget to free up.
// ResizeContext uses it when available.
type ContextAllocator interface {
	Allocator
	AcquireMemory(ctx context.Context, bytes int64) error
}
