package qvec

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/qvec/internal/conv"
)

// Vector is a resizable, contiguous sequence of T.
//
// Elements are stored by value. Slots beyond Len are kept at the zero value,
// so removed elements are never retained. A Vector is not safe for concurrent
// use; see SyncVector.
type Vector[T any] struct {
	data     []T // len(data) is the capacity
	num      int
	initCap  int
	elemSize int64
	reserved int64
	opts     options
	logger   *Logger
}

// New creates a vector with room for capacity elements.
// A capacity of 0 defers allocation to the first insert.
func New[T any](capacity int, opts ...Option) (*Vector[T], error) {
	return newVector[T](capacity, applyOptions(opts))
}

func newVector[T any](capacity int, o options) (*Vector[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity)
	}

	var zero T
	elemSize, err := conv.UintptrToInt64(unsafe.Sizeof(zero))
	if err != nil {
		return nil, allocError("%v", err)
	}

	v := &Vector[T]{
		initCap:  capacity,
		elemSize: elemSize,
		opts:     o,
		logger:   o.logger.WithPolicy(o.policy),
	}

	if capacity > 0 {
		if err := v.realloc(context.Background(), capacity, false); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.num }

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int { return len(v.data) }

// Policy returns the growth policy.
func (v *Vector[T]) Policy() Policy { return v.opts.policy }

// Reserved returns the bytes currently charged to the allocator.
func (v *Vector[T]) Reserved() int64 { return v.reserved }

// AddFirst inserts x before the first element.
func (v *Vector[T]) AddFirst(x T) error { return v.AddAt(0, x) }

// AddLast appends x.
func (v *Vector[T]) AddLast(x T) error { return v.AddAt(v.num, x) }

// AddAt inserts x at index i, shifting the elements at and after i towards
// the tail. i may equal Len.
func (v *Vector[T]) AddAt(i int, x T) error {
	if i < 0 || i > v.num {
		err := indexError(i, v.num)
		v.opts.metricsCollector.RecordInsert(1, err)
		return err
	}
	if err := v.ensure(v.num + 1); err != nil {
		v.opts.metricsCollector.RecordInsert(1, err)
		return err
	}

	copy(v.data[i+1:v.num+1], v.data[i:v.num])
	v.data[i] = x
	v.num++

	v.opts.metricsCollector.RecordInsert(1, nil)
	return nil
}

// Append adds xs to the tail with at most one reallocation.
func (v *Vector[T]) Append(xs ...T) error {
	if len(xs) == 0 {
		return nil
	}
	if err := v.ensure(v.num + len(xs)); err != nil {
		v.opts.metricsCollector.RecordInsert(len(xs), err)
		return err
	}

	copy(v.data[v.num:], xs)
	v.num += len(xs)

	v.opts.metricsCollector.RecordInsert(len(xs), nil)
	return nil
}

// GetFirst returns a copy of the first element.
func (v *Vector[T]) GetFirst() (T, error) { return v.GetAt(0) }

// GetLast returns a copy of the last element.
func (v *Vector[T]) GetLast() (T, error) { return v.GetAt(v.num - 1) }

// GetAt returns a copy of the element at index i.
func (v *Vector[T]) GetAt(i int) (T, error) {
	if err := v.check(i); err != nil {
		var zero T
		return zero, err
	}
	return v.data[i], nil
}

// Ref returns a pointer to the element at index i inside the backing array.
// The pointer is only valid until the next mutation of v.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if err := v.check(i); err != nil {
		return nil, err
	}
	return &v.data[i], nil
}

// Data returns the live elements as a slice sharing the backing array.
// Writes through it are visible in v; appending to it never is. The slice is
// only valid until the next mutation of v.
func (v *Vector[T]) Data() []T {
	return v.data[:v.num:v.num]
}

// ToArray returns a copy of the live elements.
func (v *Vector[T]) ToArray() []T {
	out := make([]T, v.num)
	copy(out, v.data[:v.num])
	return out
}

// SetFirst overwrites the first element.
func (v *Vector[T]) SetFirst(x T) error { return v.SetAt(0, x) }

// SetLast overwrites the last element.
func (v *Vector[T]) SetLast(x T) error { return v.SetAt(v.num-1, x) }

// SetAt overwrites the element at index i.
func (v *Vector[T]) SetAt(i int, x T) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.data[i] = x
	return nil
}

// SetData replaces the whole contents with a copy of xs, growing if needed.
func (v *Vector[T]) SetData(xs []T) error {
	if err := v.ensure(len(xs)); err != nil {
		return err
	}

	copy(v.data, xs)
	if len(xs) < v.num {
		clear(v.data[len(xs):v.num])
	}
	v.num = len(xs)
	return nil
}

// PopFirst removes and returns the first element.
func (v *Vector[T]) PopFirst() (T, error) { return v.PopAt(0) }

// PopLast removes and returns the last element.
func (v *Vector[T]) PopLast() (T, error) { return v.PopAt(v.num - 1) }

// PopAt removes and returns the element at index i, shifting the following
// elements towards the head.
func (v *Vector[T]) PopAt(i int) (T, error) {
	if err := v.check(i); err != nil {
		v.opts.metricsCollector.RecordRemove(1, err)
		var zero T
		return zero, err
	}

	x := v.data[i]
	v.remove(i)

	v.opts.metricsCollector.RecordRemove(1, nil)
	return x, nil
}

// RemoveFirst removes the first element.
func (v *Vector[T]) RemoveFirst() error { return v.RemoveAt(0) }

// RemoveLast removes the last element.
func (v *Vector[T]) RemoveLast() error { return v.RemoveAt(v.num - 1) }

// RemoveAt removes the element at index i.
func (v *Vector[T]) RemoveAt(i int) error {
	if err := v.check(i); err != nil {
		v.opts.metricsCollector.RecordRemove(1, err)
		return err
	}

	v.remove(i)

	v.opts.metricsCollector.RecordRemove(1, nil)
	return nil
}

// RemoveSet removes every element whose index is in set, keeping the order of
// the others, and returns how many were removed. Indices >= Len are ignored.
func (v *Vector[T]) RemoveSet(set *roaring.Bitmap) int {
	if set == nil || set.IsEmpty() || v.num == 0 {
		return 0
	}

	it := set.Iterator()
	next := -1
	if it.HasNext() {
		next = int(it.Next())
	}

	w := 0
	for r := 0; r < v.num; r++ {
		if r == next {
			next = -1
			if it.HasNext() {
				next = int(it.Next())
			}
			continue
		}
		v.data[w] = v.data[r]
		w++
	}

	removed := v.num - w
	clear(v.data[w:v.num])
	v.num = w

	v.opts.metricsCollector.RecordRemove(removed, nil)
	return removed
}

// Resize reallocates the backing array to exactly n slots.
// n must not be smaller than Len.
func (v *Vector[T]) Resize(n int) error {
	return v.resize(context.Background(), n, false)
}

// ResizeContext is like Resize but, if the allocator is a ContextAllocator,
// waits for budget until ctx is done instead of failing immediately.
func (v *Vector[T]) ResizeContext(ctx context.Context, n int) error {
	return v.resize(ctx, n, true)
}

func (v *Vector[T]) resize(ctx context.Context, n int, wait bool) error {
	if n < v.num {
		return fmt.Errorf("%w: capacity %d below length %d", ErrInvalidArgument, n, v.num)
	}
	if n == len(v.data) {
		return nil
	}
	return v.realloc(ctx, n, wait)
}

// Reverse reverses the order of the elements in place.
func (v *Vector[T]) Reverse() {
	slices.Reverse(v.data[:v.num])
}

// Slice returns a new vector holding copies of the elements in [begin, end).
// The result has the same options as v, including the allocator.
func (v *Vector[T]) Slice(begin, end int) (*Vector[T], error) {
	if begin < 0 || begin > end || end > v.num {
		return nil, fmt.Errorf("%w: slice [%d:%d] of length %d", ErrInvalidArgument, begin, end, v.num)
	}

	out, err := newVector[T](end-begin, v.opts)
	if err != nil {
		return nil, err
	}
	out.num = copy(out.data, v.data[begin:end])
	return out, nil
}

// Clear removes all elements and keeps the capacity.
func (v *Vector[T]) Clear() {
	clear(v.data[:v.num])
	v.num = 0
}

// Free drops the backing array and returns its bytes to the allocator.
// The vector is left empty and may be reused.
func (v *Vector[T]) Free() {
	if v.reserved > 0 && v.opts.allocator != nil {
		v.opts.allocator.ReleaseMemory(v.reserved)
	}
	v.data = nil
	v.num = 0
	v.reserved = 0
}

// Lock is a no-op on a plain vector and returns v.
// It lets code written against Container group calls the same way for both
// variants.
func (v *Vector[T]) Lock() *Vector[T] { return v }

// Unlock is a no-op on a plain vector.
func (v *Vector[T]) Unlock() {}

// All returns an iterator over index/element pairs in index order.
// v must not be mutated while iterating.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.num; i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in index order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.num; i++ {
			if !yield(v.data[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from the last to
// the first element.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.num - 1; i >= 0; i-- {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// String renders the elements as "[e0 e1 ...]".
func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < v.num; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v.data[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

func (v *Vector[T]) check(i int) error {
	if v.num == 0 {
		return ErrEmpty
	}
	if i < 0 || i >= v.num {
		return indexError(i, v.num)
	}
	return nil
}

func (v *Vector[T]) remove(i int) {
	copy(v.data[i:v.num-1], v.data[i+1:v.num])
	v.num--
	var zero T
	v.data[v.num] = zero
}

// ensure grows the backing array per policy so that need elements fit.
func (v *Vector[T]) ensure(need int) error {
	if need < 0 {
		return allocError("length overflow")
	}
	if need <= len(v.data) {
		return nil
	}
	from := len(v.data)
	n := v.opts.policy.next(from, need, v.initCap)
	err := v.realloc(context.Background(), n, false)
	v.opts.metricsCollector.RecordGrow(from, n, err)
	return err
}

// realloc moves the live elements into a new backing array of n slots.
// On error v is unchanged.
func (v *Vector[T]) realloc(ctx context.Context, n int, wait bool) (err error) {
	from := len(v.data)
	defer func() {
		if err != nil {
			v.logger.LogAllocFailure(ctx, n, err)
		}
	}()

	bytes, err := conv.ByteSize(n, v.elemSize)
	if err != nil {
		return allocError("%v", err)
	}
	if err := v.reserve(ctx, bytes, wait); err != nil {
		return err
	}

	data, err := makeSlots[T](n)
	if err != nil {
		v.unreserve(bytes)
		return err
	}

	copy(data, v.data[:v.num])
	v.data = data
	v.unreserve(v.reserved)
	v.reserved = bytes

	v.logger.LogGrow(ctx, from, n, bytes)
	return nil
}

func (v *Vector[T]) reserve(ctx context.Context, bytes int64, wait bool) error {
	a := v.opts.allocator
	if a == nil || bytes == 0 {
		return nil
	}
	if wait {
		if ca, ok := a.(ContextAllocator); ok {
			if err := ca.AcquireMemory(ctx, bytes); err != nil {
				return fmt.Errorf("%w: %w", ErrAllocation, err)
			}
			return nil
		}
	}
	if !a.TryAcquireMemory(bytes) {
		return allocError("allocator refused %d bytes", bytes)
	}
	return nil
}

func (v *Vector[T]) unreserve(bytes int64) {
	if v.opts.allocator != nil && bytes > 0 {
		v.opts.allocator.ReleaseMemory(bytes)
	}
}

func makeSlots[T any](n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = allocError("%v", r)
		}
	}()
	return make([]T, n), nil
}
