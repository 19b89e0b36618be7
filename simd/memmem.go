package simd

import "bytes"

// maxPrefilterFailures is the number of candidate verifications a Finder
// may lose before it abandons the rare-byte scan for pure Two-Way.
const maxPrefilterFailures = 32

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// Callers that search for the same needle repeatedly should build a Finder
// once instead.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}
	return NewFinder(needle).Index(haystack)
}

// Finder is a precompiled substring searcher.
//
// Index first scans for the needle's rarest byte and verifies each
// candidate. If candidates keep failing, it switches to the Two-Way
// algorithm for the rest of the haystack, which bounds the total work to
// O(len(haystack) + len(needle)).
//
// A Finder is immutable and safe for concurrent use.
type Finder struct {
	needle  []byte
	rare    byte
	rareIdx int
	tw      twoWay
}

// NewFinder precomputes a searcher for needle. The needle is copied.
func NewFinder(needle []byte) *Finder {
	n := bytes.Clone(needle)
	f := &Finder{needle: n}
	if len(n) > 0 {
		f.rare, f.rareIdx = rarestByte(n)
		f.tw = newTwoWay(n)
	}
	return f
}

// Needle returns the needle this Finder searches for.
func (f *Finder) Needle() []byte {
	return f.needle
}

// Index returns the index of the first instance of the needle in haystack,
// or -1.
func (f *Finder) Index(haystack []byte) int {
	n := len(f.needle)
	switch {
	case n == 0:
		return 0
	case n > len(haystack):
		return -1
	case n == 1:
		return Memchr(haystack, f.needle[0])
	}

	failures := 0
	at := 0
	for at+n <= len(haystack) {
		// The rare byte sits at rareIdx inside a window starting at `at`.
		i := Memchr(haystack[at+f.rareIdx:len(haystack)-n+f.rareIdx+1], f.rare)
		if i < 0 {
			return -1
		}
		start := at + i
		if bytes.Equal(haystack[start:start+n], f.needle) {
			return start
		}
		at = start + 1
		failures++
		if failures > maxPrefilterFailures {
			if j := f.tw.index(haystack[at:]); j >= 0 {
				return at + j
			}
			return -1
		}
	}
	return -1
}

// twoWay holds the critical factorization of a needle for the Two-Way
// string matching algorithm (Crochemore and Perrin, 1991).
type twoWay struct {
	needle []byte
	// crit is the index of the last byte of the left half (may be -1).
	crit   int
	period int
	// memory is the number of bytes known to match after a period shift of
	// a periodic needle; 0 for non-periodic needles.
	memory  int
	present [256]bool
}

func newTwoWay(needle []byte) twoWay {
	tw := twoWay{needle: needle}
	for _, b := range needle {
		tw.present[b] = true
	}

	crit, period := maximalSuffix(needle, false)
	crit2, period2 := maximalSuffix(needle, true)
	if crit2 > crit {
		crit, period = crit2, period2
	}

	l := len(needle)
	if bytes.Equal(needle[:crit+1], needle[period:period+crit+1]) {
		tw.memory = l - period
	} else {
		period = max(crit, l-crit-1) + 1
	}
	tw.crit = crit
	tw.period = period
	return tw
}

// maximalSuffix computes the start (minus one) and period of the maximal
// suffix of needle under the byte order, or the reversed order.
func maximalSuffix(needle []byte, reversed bool) (int, int) {
	ip, jp := -1, 0
	k, p := 1, 1
	for jp+k < len(needle) {
		a, b := needle[ip+k], needle[jp+k]
		switch {
		case a == b:
			if k == p {
				jp += p
				k = 1
			} else {
				k++
			}
		case (a > b) != reversed:
			jp += k
			k = 1
			p = jp - ip
		default:
			ip = jp
			jp++
			k, p = 1, 1
		}
	}
	return ip, p
}

func (tw *twoWay) index(haystack []byte) int {
	needle := tw.needle
	l := len(needle)
	mem := 0
	pos := 0
	for pos+l <= len(haystack) {
		// Every window overlapping pos+l-1 needs that byte in the needle.
		if !tw.present[haystack[pos+l-1]] {
			pos += l
			mem = 0
			continue
		}

		k := max(tw.crit+1, mem)
		for k < l && needle[k] == haystack[pos+k] {
			k++
		}
		if k < l {
			pos += k - tw.crit
			mem = 0
			continue
		}

		k = tw.crit + 1
		for k > mem && needle[k-1] == haystack[pos+k-1] {
			k--
		}
		if k <= mem {
			return pos
		}
		pos += tw.period
		mem = tw.memory
	}
	return -1
}
