// Package engine runs a compiled program over an input to find its shortest
// match.
//
// Two engines share one contract:
//   - Backtracking simulates the program one candidate at a time and
//     returns the first candidate that reaches an accepting state. It keeps
//     no scratch and is exact for deterministic (table) programs.
//   - Threaded simulates every live thread in lockstep, Pike VM style, and
//     returns the match with the earliest start among those found first.
//
// Both consult a prefix.Searcher for candidate start positions unless the
// program is anchored.
package engine

// Engine finds shortest matches.
//
// An Engine may own mutable scratch and must not be used by more than one
// goroutine at a time; Clone returns an independent engine sharing the
// immutable program and prefix.
type Engine interface {
	// ShortestMatch returns the span of the shortest match in text, with
	// 0 <= start <= end <= len(text), or false if there is none.
	ShortestMatch(text []byte) (start, end int, ok bool)

	// Clone returns an engine with the same program and prefix and fresh
	// scratch.
	Clone() Engine
}

var (
	_ Engine = (*Backtracking)(nil)
	_ Engine = (*Threaded)(nil)
)

// lookback moves pos back by bytesAgo, saturating at 0. Determinized
// shortest-match programs may report a lookback longer than the match.
func lookback(pos, bytesAgo int) int {
	if bytesAgo >= pos {
		return 0
	}
	return pos - bytesAgo
}
