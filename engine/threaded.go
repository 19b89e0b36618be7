package engine

import (
	"github.com/coregx/shortest/prefix"
	"github.com/coregx/shortest/program"
)

// Threaded simulates all threads of a program in lockstep, one input byte
// at a time, in the manner of a Pike VM.
//
// A fresh thread is started at every position once the first prefix
// candidate has been reached. When every thread has died, the prefix
// searcher is consulted again to jump to the next candidate. Among the
// acceptances seen at a position the one with the earliest start wins, and
// the search stops as soon as no surviving thread started before it.
//
// Thread safety: Threaded owns its generations and must not run two
// searches at once. Use Clone to get an engine for another goroutine.
type Threaded struct {
	prog   *program.Program
	prefix *prefix.Prefix
	gens   *generations
}

// NewThreaded creates a threaded engine. A nil prefix means every offset is
// a candidate.
func NewThreaded(prog *program.Program, pref *prefix.Prefix) *Threaded {
	if pref == nil {
		pref = prefix.NewEmpty()
	}
	return &Threaded{
		prog:   prog,
		prefix: pref,
		gens:   newGenerations(prog.NumStates()),
	}
}

// ShortestMatch returns the shortest match with the earliest start found by
// the simulation. If nothing matches, an empty match at the end of text is
// reported when the start state accepts at end of input.
func (t *Threaded) ShortestMatch(text []byte) (int, int, bool) {
	if t.prog.NumStates() == 0 {
		return 0, 0, false
	}
	if start, end, ok := t.shortestMatch(text); ok {
		return start, end, true
	}
	return t.prog.CheckEmptyMatchAtEnd(text)
}

func (t *Threaded) shortestMatch(text []byte) (int, int, bool) {
	g := t.gens
	g.clear()

	init := t.prog.Init.State()
	anchored := t.prog.IsAnchored()

	var searcher prefix.Searcher
	pos := 0
	if !anchored {
		searcher = t.prefix.NewSearcher(text)
		cand, ok := searcher.Search()
		if !ok {
			return 0, 0, false
		}
		// Start at the beginning of the candidate: threads may need to be
		// seeded while the prefix itself is being matched.
		pos = cand.Start
	}
	g.cur.add(init, pos)

	bestStart, bestEnd, found := 0, 0, false
	for pos < len(text) {
		for _, th := range g.cur.list {
			next, live, bytesAgo, accepted := t.prog.Step(th.state, text[pos:])
			if accepted {
				if s := lookback(th.start, bytesAgo); !found || s < bestStart {
					bestStart, bestEnd, found = s, pos, true
				}
			}
			if live {
				g.next.add(next, th.start)
			}
		}
		g.swap()

		// No surviving thread can produce an earlier start.
		if found && g.cur.startsAtOrAfter(bestStart) {
			return bestStart, bestEnd, true
		}

		pos++
		switch {
		case anchored:
			if len(g.cur.list) == 0 {
				return 0, 0, false
			}
		case len(g.cur.list) == 0:
			searcher.SkipTo(pos)
			cand, ok := searcher.Search()
			if !ok {
				return 0, 0, false
			}
			pos = cand.Start
			g.cur.add(init, pos)
		default:
			g.cur.add(init, pos)
		}
	}

	// Threads are ordered by start, so the first one accepting at end of
	// input is the earliest.
	for _, th := range g.cur.list {
		if found && th.start >= bestStart {
			break
		}
		if bytesAgo, ok := t.prog.CheckEOI(th.state); ok {
			return th.start, max(lookback(len(text), bytesAgo), th.start), true
		}
	}
	return bestStart, bestEnd, found
}

// Clone returns a threaded engine with fresh generations.
func (t *Threaded) Clone() Engine {
	return &Threaded{
		prog:   t.prog,
		prefix: t.prefix,
		gens:   newGenerations(t.prog.NumStates()),
	}
}

// Program returns the program t runs.
func (t *Threaded) Program() *program.Program {
	return t.prog
}

// Prefix returns the candidate scanner t uses.
func (t *Threaded) Prefix() *prefix.Prefix {
	return t.prefix
}
