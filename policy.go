package qvec

import "fmt"

// Policy selects how the backing array grows when an insert runs out of room.
type Policy uint8

const (
	// GrowDouble doubles the capacity, or grows to the required size if that is larger.
	GrowDouble Policy = iota
	// GrowLinear adds the initial capacity as many times as needed.
	GrowLinear
	// GrowExact grows to exactly the required size.
	GrowExact
)

func (p Policy) String() string {
	switch p {
	case GrowDouble:
		return "double"
	case GrowLinear:
		return "linear"
	case GrowExact:
		return "exact"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// next returns the capacity to grow to so that need elements fit.
// It assumes need > cur and never returns less than need.
func (p Policy) next(cur, need, step int) int {
	switch p {
	case GrowLinear:
		if step < 1 {
			step = 1
		}
		missing := need - cur
		k := (missing + step - 1) / step
		return cur + k*step
	case GrowExact:
		return need
	default:
		n := cur * 2
		if n < cur { // overflow
			return need
		}
		if n < need {
			n = need
		}
		if n < 1 {
			n = 1
		}
		return n
	}
}

// Flags is the option bitmask accepted by WithFlags.
type Flags int

const (
	// ThreadSafe makes Create return a SyncVector.
	ThreadSafe Flags = 0x01
	// ResizeDouble selects GrowDouble.
	ResizeDouble Flags = 0x02
	// ResizeLinear selects GrowLinear.
	ResizeLinear Flags = 0x04
	// ResizeExact selects GrowExact.
	ResizeExact Flags = 0x08

	resizeMask = ResizeDouble | ResizeLinear | ResizeExact
)

// Policy returns the growth policy encoded in f. When several resize bits are
// set the lowest one wins; with none set it is GrowDouble. WithFlags only
// applies it when f carries at least one resize bit.
func (f Flags) Policy() Policy {
	switch {
	case f&ResizeDouble != 0:
		return GrowDouble
	case f&ResizeLinear != 0:
		return GrowLinear
	case f&ResizeExact != 0:
		return GrowExact
	default:
		return GrowDouble
	}
}
