package engine

import (
	"github.com/coregx/shortest/internal/conv"
	"github.com/coregx/shortest/internal/sparse"
	"github.com/coregx/shortest/program"
)

// thread is one simulation in flight: the state it is in and the offset it
// started from.
type thread struct {
	state program.StateID
	start int
}

// threads is one generation. It holds at most one thread per state; a
// thread reaching a state already taken is dropped, since the state alone
// determines what happens next and the earlier start is kept.
//
// Threads are appended in the order they are stepped, which keeps them
// sorted by start: survivors of older threads come first and the fresh
// thread of a position is added last.
type threads struct {
	list    []thread
	present *sparse.SparseSet
}

func newThreads(numStates int) threads {
	return threads{
		list:    make([]thread, 0, numStates),
		present: sparse.NewSparseSet(conv.IntToUint32(numStates)),
	}
}

func (t *threads) add(state program.StateID, start int) {
	if t.present.Insert(uint32(state)) {
		t.list = append(t.list, thread{state: state, start: start})
	}
}

// startsAtOrAfter reports whether no thread started before start.
func (t *threads) startsAtOrAfter(start int) bool {
	return len(t.list) == 0 || t.list[0].start >= start
}

func (t *threads) clear() {
	t.list = t.list[:0]
	t.present.Clear()
}

// generations is the scratch of the threaded engine: the threads stepping
// at the current position and the ones collected for the next.
type generations struct {
	cur  threads
	next threads
}

func newGenerations(numStates int) *generations {
	return &generations{
		cur:  newThreads(numStates),
		next: newThreads(numStates),
	}
}

// swap makes next current and empties the new next.
func (g *generations) swap() {
	g.cur, g.next = g.next, g.cur
	g.next.clear()
}

func (g *generations) clear() {
	g.cur.clear()
	g.next.clear()
}
