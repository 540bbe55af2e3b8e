package qvec

import (
	"context"
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// SyncVector is a Vector guarded by a mutex.
//
// Every method holds the lock for its duration, so single calls are atomic.
// To make a sequence of calls atomic, use Do or Lock/Unlock and operate on
// the returned *Vector. The lock is not re-entrant: calling SyncVector
// methods while holding it deadlocks.
//
// Borrowed views (Ref, Data) are only available on the locked inner vector.
// Iterators and cursors walk a snapshot taken under the read lock.
type SyncVector[T any] struct {
	mu sync.RWMutex
	v  *Vector[T]
}

// NewSync creates a thread-safe vector with room for capacity elements.
func NewSync[T any](capacity int, opts ...Option) (*SyncVector[T], error) {
	v, err := New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncVector[T]{v: v}, nil
}

// Lock acquires the write lock and returns the underlying vector.
// The returned vector must not be used after Unlock.
func (s *SyncVector[T]) Lock() *Vector[T] {
	s.mu.Lock()
	return s.v
}

// Unlock releases the lock taken by Lock.
func (s *SyncVector[T]) Unlock() { s.mu.Unlock() }

// Do runs fn with the write lock held and returns its error.
func (s *SyncVector[T]) Do(fn func(v *Vector[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.v)
}

// Len returns the number of elements.
func (s *SyncVector[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Len()
}

// Cap returns the number of allocated slots.
func (s *SyncVector[T]) Cap() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Cap()
}

// Policy returns the growth policy.
func (s *SyncVector[T]) Policy() Policy { return s.v.Policy() }

// Reserved returns the bytes currently charged to the allocator.
func (s *SyncVector[T]) Reserved() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Reserved()
}

// AddFirst inserts x before the first element.
func (s *SyncVector[T]) AddFirst(x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.AddFirst(x)
}

// AddLast appends x.
func (s *SyncVector[T]) AddLast(x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.AddLast(x)
}

// AddAt inserts x at index i.
func (s *SyncVector[T]) AddAt(i int, x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.AddAt(i, x)
}

// Append adds xs to the tail as one atomic step.
func (s *SyncVector[T]) Append(xs ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Append(xs...)
}

// GetFirst returns a copy of the first element.
func (s *SyncVector[T]) GetFirst() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetFirst()
}

// GetLast returns a copy of the last element.
func (s *SyncVector[T]) GetLast() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetLast()
}

// GetAt returns a copy of the element at index i.
func (s *SyncVector[T]) GetAt(i int) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetAt(i)
}

// ToArray returns a copy of the live elements.
func (s *SyncVector[T]) ToArray() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.ToArray()
}

// SetFirst overwrites the first element.
func (s *SyncVector[T]) SetFirst(x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.SetFirst(x)
}

// SetLast overwrites the last element.
func (s *SyncVector[T]) SetLast(x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.SetLast(x)
}

// SetAt overwrites the element at index i.
func (s *SyncVector[T]) SetAt(i int, x T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.SetAt(i, x)
}

// SetData replaces the whole contents with a copy of xs.
func (s *SyncVector[T]) SetData(xs []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.SetData(xs)
}

// PopFirst removes and returns the first element.
func (s *SyncVector[T]) PopFirst() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.PopFirst()
}

// PopLast removes and returns the last element.
func (s *SyncVector[T]) PopLast() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.PopLast()
}

// PopAt removes and returns the element at index i.
func (s *SyncVector[T]) PopAt(i int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.PopAt(i)
}

// RemoveFirst removes the first element.
func (s *SyncVector[T]) RemoveFirst() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.RemoveFirst()
}

// RemoveLast removes the last element.
func (s *SyncVector[T]) RemoveLast() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.RemoveLast()
}

// RemoveAt removes the element at index i.
func (s *SyncVector[T]) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.RemoveAt(i)
}

// RemoveSet removes every element whose index is in set.
func (s *SyncVector[T]) RemoveSet(set *roaring.Bitmap) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.RemoveSet(set)
}

// Resize reallocates the backing array to exactly n slots.
func (s *SyncVector[T]) Resize(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Resize(n)
}

// ResizeContext is like Resize but may wait for allocator budget.
// The write lock is held while waiting.
func (s *SyncVector[T]) ResizeContext(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.ResizeContext(ctx, n)
}

// Reverse reverses the order of the elements in place.
func (s *SyncVector[T]) Reverse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Reverse()
}

// Slice returns a new, unsynchronized vector holding copies of [begin, end).
func (s *SyncVector[T]) Slice(begin, end int) (*Vector[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Slice(begin, end)
}

// Clear removes all elements and keeps the capacity.
func (s *SyncVector[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Clear()
}

// Free drops the backing array and returns its bytes to the allocator.
func (s *SyncVector[T]) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Free()
}

// All returns an iterator over a snapshot of the index/element pairs.
func (s *SyncVector[T]) All() iter.Seq2[int, T] { return s.snapshot().All() }

// Values returns an iterator over a snapshot of the elements.
func (s *SyncVector[T]) Values() iter.Seq[T] { return s.snapshot().Values() }

// Backward returns an iterator over a snapshot, last element first.
func (s *SyncVector[T]) Backward() iter.Seq2[int, T] { return s.snapshot().Backward() }

// Cursor returns an unset cursor over a snapshot of the elements.
// Writes through the cursor's Ref do not reach s.
func (s *SyncVector[T]) Cursor() *Cursor[T] { return s.snapshot().Cursor() }

// String renders the elements as "[e0 e1 ...]".
func (s *SyncVector[T]) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.String()
}

// snapshot copies the live elements into a detached vector that is not
// charged to the allocator.
func (s *SyncVector[T]) snapshot() *Vector[T] {
	s.mu.RLock()
	data := s.v.ToArray()
	s.mu.RUnlock()

	return &Vector[T]{
		data:     data,
		num:      len(data),
		initCap:  len(data),
		elemSize: s.v.elemSize,
		opts:     applyOptions(nil),
		logger:   NoopLogger(),
	}
}
