// Package simd provides the byte-scanning primitives used by prefix
// acceleration: single-byte search, two- and three-byte search, byte-class
// search over a 256-entry table, byte-run measurement and substring search.
//
// On amd64 the package consults golang.org/x/sys/cpu at init and routes
// large inputs through the runtime's vectorized bytes.IndexByte when AVX2 is
// present. Everywhere else, and for short inputs, it uses SWAR (SIMD Within
// A Register) loops that inspect eight bytes per iteration.
//
// Substring search combines a rare-byte candidate scan with the Two-Way
// algorithm, so it stays linear in the haystack length even for adversarial
// needles such as "aaaab" over long runs of 'a'.
package simd
