package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// vectorWindow bounds how far a single vectorized IndexByte call may run
// past the first match of another needle.
const vectorWindow = 4096

// zeroBytes marks the high bit of every zero byte in v (Hacker's Delight).
// Only the lowest marked byte is exact; callers use TrailingZeros64.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// memchrGeneric searches 8 bytes at a time by XORing each word with the
// broadcast needle and detecting zero bytes.
func memchrGeneric(haystack []byte, needle byte) int {
	n := len(haystack)
	i := 0
	if n >= 8 {
		mask := uint64(needle) * lo8
		for ; i+8 <= n; i += 8 {
			w := binary.LittleEndian.Uint64(haystack[i:])
			if z := zeroBytes(w ^ mask); z != 0 {
				return i + bits.TrailingZeros64(z)/8
			}
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2Generic(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	i := 0
	if n >= 8 {
		m1 := uint64(needle1) * lo8
		m2 := uint64(needle2) * lo8
		for ; i+8 <= n; i += 8 {
			w := binary.LittleEndian.Uint64(haystack[i:])
			if z := zeroBytes(w^m1) | zeroBytes(w^m2); z != 0 {
				return i + bits.TrailingZeros64(z)/8
			}
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

func memchr3Generic(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	i := 0
	if n >= 8 {
		m1 := uint64(needle1) * lo8
		m2 := uint64(needle2) * lo8
		m3 := uint64(needle3) * lo8
		for ; i+8 <= n; i += 8 {
			w := binary.LittleEndian.Uint64(haystack[i:])
			if z := zeroBytes(w^m1) | zeroBytes(w^m2) | zeroBytes(w^m3); z != 0 {
				return i + bits.TrailingZeros64(z)/8
			}
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
			return i
		}
	}
	return -1
}

// memchrWindowed finds the first of up to three needles using one
// vectorized IndexByte per needle over fixed windows. Each later needle is
// only searched in front of the best hit so far.
func memchrWindowed(haystack []byte, needle1, needle2, needle3 byte) int {
	for base := 0; base < len(haystack); base += vectorWindow {
		w := haystack[base:min(base+vectorWindow, len(haystack))]
		best := -1
		for _, needle := range [3]byte{needle1, needle2, needle3} {
			limit := w
			if best >= 0 {
				limit = w[:best]
			}
			if i := bytes.IndexByte(limit, needle); i >= 0 {
				best = i
			}
		}
		if best >= 0 {
			return base + best
		}
	}
	return -1
}
