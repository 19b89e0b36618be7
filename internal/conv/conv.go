// Package conv provides checked integer conversions for program and table
// construction.
//
// State indices, table offsets and accept data are stored as uint32 so that
// transition tables stay dense. Narrowing happens once, when a program is
// assembled; an overflow there means the automaton is too large for the
// table encoding, which is a programming error, so the helpers panic.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow on MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToStateIndex converts n to a uint32 that is strictly below
// math.MaxUint32, which is reserved as the "no value" sentinel in dense
// tables.
// Panics if n is negative or collides with the sentinel.
func IntToStateIndex(n int) uint32 {
	v := IntToUint32(n)
	if v == math.MaxUint32 {
		panic("integer overflow: value collides with table sentinel")
	}
	return v
}
