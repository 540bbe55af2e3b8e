package qvec

import (
	"context"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Container is the operation set shared by Vector and SyncVector.
type Container[T any] interface {
	fmt.Stringer

	AddFirst(x T) error
	AddLast(x T) error
	AddAt(i int, x T) error
	Append(xs ...T) error

	GetFirst() (T, error)
	GetLast() (T, error)
	GetAt(i int) (T, error)

	SetFirst(x T) error
	SetLast(x T) error
	SetAt(i int, x T) error
	SetData(xs []T) error

	PopFirst() (T, error)
	PopLast() (T, error)
	PopAt(i int) (T, error)

	RemoveFirst() error
	RemoveLast() error
	RemoveAt(i int) error
	RemoveSet(set *roaring.Bitmap) int

	Len() int
	Cap() int
	Policy() Policy
	Reserved() int64
	ToArray() []T

	Resize(n int) error
	ResizeContext(ctx context.Context, n int) error
	Reverse()
	Slice(begin, end int) (*Vector[T], error)

	All() iter.Seq2[int, T]
	Values() iter.Seq[T]
	Backward() iter.Seq2[int, T]
	Cursor() *Cursor[T]

	Lock() *Vector[T]
	Unlock()

	Clear()
	Free()
}

// Compile time check to ensure both variants satisfy Container.
var (
	_ Container[int] = (*Vector[int])(nil)
	_ Container[int] = (*SyncVector[int])(nil)
)

// Create returns a SyncVector if ThreadSafe was requested through WithFlags
// or WithThreadSafe, and a plain Vector otherwise.
func Create[T any](capacity int, opts ...Option) (Container[T], error) {
	o := applyOptions(opts)

	v, err := newVector[T](capacity, o)
	if err != nil {
		return nil, err
	}
	if o.threadSafe {
		return &SyncVector[T]{v: v}, nil
	}
	return v, nil
}
