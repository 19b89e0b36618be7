//go:build amd64

package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// hasAVX2 reports whether the runtime's IndexByte takes its 32-byte vector
// path on this CPU. Every amd64 CPU has at least the 16-byte SSE2 path.
var hasAVX2 = cpu.X86.HasAVX2

// vectorThreshold is the input length below which SWAR beats the setup cost
// of the vector path.
const vectorThreshold = 32

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 and Memchr3 run one IndexByte per needle over a window, which
// only pays off with the AVX2 path; SSE2-only CPUs stay on SWAR.

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	if hasAVX2 && len(haystack) >= vectorThreshold {
		return memchrWindowed(haystack, needle1, needle2, needle2)
	}
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2 or
// needle3 in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	if hasAVX2 && len(haystack) >= vectorThreshold {
		return memchrWindowed(haystack, needle1, needle2, needle3)
	}
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
