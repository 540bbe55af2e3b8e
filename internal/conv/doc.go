// Package conv provides safe integer conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when turning element counts into byte sizes for memory accounting.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
