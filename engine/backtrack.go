package engine

import (
	"github.com/coregx/shortest/prefix"
	"github.com/coregx/shortest/program"
)

// Backtracking runs one simulation per prefix candidate and returns the
// first candidate that completes.
//
// The result starts at the earliest candidate that can complete, which is
// not necessarily the span with the smallest end across all starts. The
// worst case is quadratic: dense candidates that each run far before dying.
//
// Backtracking keeps no scratch and is safe for concurrent use.
type Backtracking struct {
	prog   *program.Program
	prefix *prefix.Prefix
}

// NewBacktracking creates a backtracking engine. A nil prefix means every
// offset is a candidate.
func NewBacktracking(prog *program.Program, pref *prefix.Prefix) *Backtracking {
	if pref == nil {
		pref = prefix.NewEmpty()
	}
	return &Backtracking{prog: prog, prefix: pref}
}

// ShortestMatch returns the first candidate, in prefix order, that reaches
// an accepting state, with the end of its shortest match.
func (b *Backtracking) ShortestMatch(text []byte) (int, int, bool) {
	if b.prog.NumStates() == 0 {
		return 0, 0, false
	}
	if s, ok := b.prog.Init.AnchoredState(); ok {
		end, ok := b.shortestMatchFrom(text, 0, s)
		return 0, end, ok
	}

	restart := b.prefix.Kind() != prefix.Ac
	start := b.prog.Init.State()
	searcher := b.prefix.NewSearcher(text)
	for {
		cand, ok := searcher.Search()
		if !ok {
			return 0, 0, false
		}
		state := cand.State
		if restart {
			state = start
		}
		if end, ok := b.shortestMatchFrom(text, cand.End, state); ok {
			// A lookback reaching past the candidate start is clamped so the
			// span stays well formed.
			return cand.Start, max(end, cand.Start), true
		}
	}
}

// shortestMatchFrom steps state through text[pos:] until it accepts or
// dies, and returns the lookback-adjusted end of the first acceptance.
func (b *Backtracking) shortestMatchFrom(text []byte, pos int, state program.StateID) (int, bool) {
	for ; pos < len(text); pos++ {
		next, live, bytesAgo, accepted := b.prog.Step(state, text[pos:])
		if accepted {
			return lookback(pos, bytesAgo), true
		}
		if !live {
			return 0, false
		}
		state = next
	}
	if bytesAgo, ok := b.prog.CheckEOI(state); ok {
		return lookback(len(text), bytesAgo), true
	}
	return 0, false
}

// Clone returns b; Backtracking has no mutable state.
func (b *Backtracking) Clone() Engine {
	return b
}

// Program returns the program b runs.
func (b *Backtracking) Program() *program.Program {
	return b.prog
}

// Prefix returns the candidate scanner b uses.
func (b *Backtracking) Prefix() *prefix.Prefix {
	return b.prefix
}
