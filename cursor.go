package qvec

// Cursor walks a vector forward one element at a time.
//
// A new cursor is unset; the first call to Next moves it onto index 0. Once
// Next has returned false the cursor stays exhausted until Reset. Mutating the
// vector while a cursor is in use invalidates the cursor.
//
//	c := v.Cursor()
//	for c.Next() {
//	    fmt.Println(c.Index(), c.Value())
//	}
type Cursor[T any] struct {
	v     *Vector[T]
	index int
	done  bool
}

// Cursor returns an unset cursor over v.
func (v *Vector[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{v: v, index: -1}
}

// Next advances the cursor and reports whether it points at an element.
func (c *Cursor[T]) Next() bool {
	if c.done {
		return false
	}
	if c.index+1 >= c.v.num {
		c.done = true
		c.index = c.v.num
		return false
	}
	c.index++
	return true
}

// Index returns the current position, -1 before the first Next.
func (c *Cursor[T]) Index() int { return c.index }

// Value returns a copy of the current element.
// It panics if the cursor does not point at an element.
func (c *Cursor[T]) Value() T {
	return c.v.data[c.valid()]
}

// Ref returns a pointer to the current element in the backing array.
// It panics if the cursor does not point at an element.
//
// A cursor obtained from SyncVector walks a snapshot: writes through Ref
// change only that copy and are discarded. Use SyncVector.Do to modify
// elements in place.
func (c *Cursor[T]) Ref() *T {
	return &c.v.data[c.valid()]
}

// Reset returns the cursor to its unset state.
func (c *Cursor[T]) Reset() {
	c.index = -1
	c.done = false
}

func (c *Cursor[T]) valid() int {
	if c.done || c.index < 0 || c.index >= c.v.num {
		panic("qvec: cursor is not positioned on an element")
	}
	return c.index
}
