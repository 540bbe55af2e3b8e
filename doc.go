// Package qvec provides a generic, resizable, contiguous vector.
//
// A Vector supports insertion and removal at both ends and at arbitrary
// indices, in-place updates, reversal, slicing into independent copies and
// cursor or range-over-func iteration.
//
// # Quick Start
//
//	v, _ := qvec.New[int](4)
//	_ = v.AddLast(1)
//	_ = v.AddFirst(0)
//	x, _ := v.GetAt(1) // 1
//	for i, x := range v.All() {
//	    fmt.Println(i, x)
//	}
//
// # Growth
//
// When an insert runs out of room the backing array grows per Policy:
// GrowDouble (default) doubles it, GrowLinear adds the initial capacity and
// GrowExact adds exactly what is needed. Policies can also be selected with
// the Flags bitmask:
//
//	v, _ := qvec.New[int](8, qvec.WithFlags(qvec.ResizeLinear))
//
// # Thread Safety
//
// Vector is not safe for concurrent use. SyncVector wraps it behind a mutex;
// every call is atomic and Do or Lock/Unlock group several calls:
//
//	s, _ := qvec.NewSync[int](0)
//	_ = s.Do(func(v *qvec.Vector[int]) error {
//	    x, err := v.PopFirst()
//	    if err != nil {
//	        return err
//	    }
//	    return v.AddLast(x)
//	})
//
// Create picks the variant from the ThreadSafe flag.
//
// # Memory Budget
//
// WithAllocator charges every backing array against an Allocator such as
// resource.Controller. A refused reservation fails the operation with
// ErrAllocation and leaves the vector unchanged.
//
// # Errors
//
// Failed operations never mutate the vector. Use errors.Is with
// ErrInvalidArgument, ErrEmpty and ErrAllocation, or errors.As with
// *ErrIndexOutOfRange.
package qvec
