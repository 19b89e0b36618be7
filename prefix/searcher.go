package prefix

import (
	"cmp"
	"slices"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/shortest/program"
	"github.com/coregx/shortest/simd"
)

// Result is one candidate region.
//
// The engine resumes the program in State at offset End; Start is the
// offset reported as the match start. For every kind except Ac, State is 0.
type Result struct {
	Start int
	End   int
	State program.StateID
}

// Searcher yields candidate regions of one input, lazily and in
// non-decreasing Start order.
type Searcher interface {
	// Search returns the next candidate, or false when there are none left.
	Search() (Result, bool)

	// SkipTo discards any lookahead and continues the search at pos. A
	// position past the end of the input exhausts simple searchers.
	SkipTo(pos int)
}

// NewSearcher returns a searcher over input. It borrows both p and input
// for its lifetime.
func (p *Prefix) NewSearcher(input []byte) Searcher {
	switch p.kind {
	case Byte:
		b := p.b
		return &simpleSearcher{input: input, skip: func(h []byte) (int, int, bool) {
			return zeroWidth(simd.Memchr(h, b))
		}}
	case ByteSet:
		class := p.class
		return &simpleSearcher{input: input, skip: func(h []byte) (int, int, bool) {
			return zeroWidth(class.Index(h))
		}}
	case Lit:
		finder := p.finder
		return &simpleSearcher{input: input, skip: func(h []byte) (int, int, bool) {
			return zeroWidth(finder.Index(h))
		}}
	case LoopWhile:
		set := p.set
		return &simpleSearcher{input: input, skip: func(h []byte) (int, int, bool) {
			return 0, simd.RunLength(h, set), true
		}}
	case Ac:
		return &acSearcher{ac: p.ac, states: p.states, maxLen: p.maxLen, input: input}
	default:
		return &simpleSearcher{input: input, skip: func([]byte) (int, int, bool) {
			return 0, 0, true
		}}
	}
}

func zeroWidth(i int) (int, int, bool) {
	return i, i, i >= 0
}

// simpleSearcher drives a skip function that reports the next candidate
// span relative to the remaining input. The cursor moves one past the span
// end, so Byte, ByteSet and Lit candidates may overlap and an empty
// LoopWhile run still makes progress.
type simpleSearcher struct {
	input []byte
	pos   int
	skip  func(haystack []byte) (start, end int, ok bool)
}

func (s *simpleSearcher) Search() (Result, bool) {
	if s.pos > len(s.input) {
		return Result{}, false
	}
	start, end, ok := s.skip(s.input[s.pos:])
	if !ok {
		return Result{}, false
	}
	r := Result{Start: s.pos + start, End: s.pos + end}
	s.pos += end + 1
	return r, true
}

func (s *simpleSearcher) SkipTo(pos int) {
	s.pos = pos
}

// acChunkSize is the number of candidate start offsets an acSearcher
// collects per scan.
const acChunkSize = 4 * 1024

// acSearcher reports every overlapping occurrence of the automaton's
// patterns. The input is scanned one chunk of start offsets at a time: the
// window covering a chunk is extended by maxLen-1 bytes so that every
// occurrence starting in the chunk is complete in it, and the occurrences
// are ordered by start before being handed out. SkipTo starts a new chunk
// at pos, which is the same as searching the input suffix again.
type acSearcher struct {
	ac     *ahocorasick.Automaton
	states []program.StateID
	maxLen int
	input  []byte

	// lo is the first start offset of the next chunk to scan.
	lo    int
	batch []ahocorasick.Match
	next  int
}

// fill scans chunks until one yields a candidate, and reports false once
// the input is exhausted.
func (s *acSearcher) fill() bool {
	for s.next >= len(s.batch) {
		if s.lo >= len(s.input) {
			return false
		}
		lo := s.lo
		hi := min(lo+acChunkSize, len(s.input))
		end := min(hi+s.maxLen-1, len(s.input))

		matches := s.ac.FindAllOverlapping(s.input[lo:end])
		batch := matches[:0]
		for _, m := range matches {
			if m.Start < hi-lo {
				m.Start += lo
				m.End += lo
				batch = append(batch, m)
			}
		}
		// Matches come out ordered by end; a shorter pattern ending at the
		// same offset starts later, so a stable sort by start keeps the
		// automaton's order among equal starts.
		slices.SortStableFunc(batch, func(a, b ahocorasick.Match) int {
			return cmp.Compare(a.Start, b.Start)
		})
		s.batch, s.next, s.lo = batch, 0, hi
	}
	return true
}

func (s *acSearcher) Search() (Result, bool) {
	if !s.fill() {
		return Result{}, false
	}
	m := s.batch[s.next]
	s.next++
	return Result{Start: m.Start, End: m.End, State: s.states[m.PatternID]}, true
}

func (s *acSearcher) SkipTo(pos int) {
	s.lo = pos
	s.batch, s.next = nil, 0
}
