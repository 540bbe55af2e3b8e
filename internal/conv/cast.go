package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// UintptrToInt64 converts uintptr to int64 safely.
func UintptrToInt64(v uintptr) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (too large)", v)
	}
	return int64(v), nil
}

// IntToInt64 converts a non-negative int to int64.
func IntToInt64(v int) (int64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (negative)", v)
	}
	return int64(v), nil
}

// ByteSize returns count*elemSize as int64, failing on negative counts or
// if the product does not fit.
func ByteSize(count int, elemSize int64) (int64, error) {
	if count < 0 {
		return 0, fmt.Errorf("integer overflow: negative count %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("integer overflow: negative element size %d", elemSize)
	}
	hi, lo := bits.Mul64(uint64(count), uint64(elemSize))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d elements of %d bytes", count, elemSize)
	}
	return int64(lo), nil
}
