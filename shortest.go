// Package shortest finds the shortest match of a compiled automaton in a
// byte slice.
//
// The automaton comes from an external compiler as a program.Program,
// together with the literal prefixes every match must begin with. A Matcher
// wraps both behind one handle:
//
//	b := program.NewTableBuilder(3)
//	b.SetTransition(0, 'o', 1)
//	b.SetTransition(1, 'k', 2)
//	b.SetAccept(2, 0)
//	b.SetAcceptAtEOI(2, 0)
//	prog := b.Build(program.Constant(0))
//
//	m, err := shortest.New(prog, []prefix.Literal{{Bytes: []byte("ok"), State: 2}}, shortest.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	start, end, ok := m.ShortestMatch([]byte("is it ok?")) // 6, 8, true
//
// Matching itself never fails: it reports a span or no match. Errors only
// come from construction, when the configuration or the program tables are
// malformed.
//
// A Matcher is safe for concurrent use. Each search borrows an engine clone
// from a pool, so the threaded engine's scratch is never shared.
package shortest

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coregx/shortest/engine"
	"github.com/coregx/shortest/prefix"
	"github.com/coregx/shortest/program"
)

// ErrNilProgram is returned by New when no program is given.
var ErrNilProgram = errors.New("shortest: nil program")

// Stats holds execution counters of a Matcher.
type Stats struct {
	// Searches counts ShortestMatch calls.
	Searches uint64

	// Matches counts searches that found a match.
	Matches uint64

	// EnginesCreated counts engine clones created for the pool.
	EnginesCreated uint64
}

// Matcher runs shortest-match searches with the engine selected by its
// Config.
type Matcher struct {
	// stats must be first for 8-byte alignment of its atomics on 32-bit
	// platforms.
	stats Stats

	prog     *program.Program
	prefix   *prefix.Prefix
	strategy Strategy
	proto    engine.Engine
	pool     sync.Pool
}

// New builds a Matcher for prog. The literals are the prefixes every match
// starts with, tagged with the state to resume from after each; with none,
// every offset is a candidate. With Config.ValidateProgram set, the resume
// states are checked against the program as well.
func New(prog *program.Program, lits []prefix.Literal, config Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if prog == nil {
		return nil, ErrNilProgram
	}
	if config.ValidateProgram {
		if err := prog.Validate(); err != nil {
			return nil, fmt.Errorf("shortest: %w", err)
		}
		for _, lit := range lits {
			if len(lit.Bytes) == 0 {
				continue
			}
			if err := prog.ValidateState(lit.State); err != nil {
				return nil, fmt.Errorf("shortest: literal %q: %w", lit.Bytes, err)
			}
		}
	}
	return NewWithPrefix(prog, prefix.FromStrings(lits), config.Strategy), nil
}

// MustNew is like New but panics if the Matcher cannot be built.
func MustNew(prog *program.Program, lits []prefix.Literal, config Config) *Matcher {
	m, err := New(prog, lits, config)
	if err != nil {
		panic(err)
	}
	return m
}

// NewWithPrefix builds a Matcher from a prefix the caller constructed,
// e.g. with prefix.NewLoopWhile. A nil prefix makes every offset a
// candidate. The program is not validated.
func NewWithPrefix(prog *program.Program, pref *prefix.Prefix, strategy Strategy) *Matcher {
	if pref == nil {
		pref = prefix.NewEmpty()
	}
	m := &Matcher{
		prog:     prog,
		prefix:   pref,
		strategy: selectStrategy(prog, strategy),
	}
	switch m.strategy {
	case UseBacktracking:
		m.proto = engine.NewBacktracking(prog, pref)
	default:
		m.proto = engine.NewThreaded(prog, pref)
	}
	m.pool.New = func() any {
		atomic.AddUint64(&m.stats.EnginesCreated, 1)
		return m.proto.Clone()
	}
	return m
}

// ShortestMatch returns the span of the shortest match in text, or false if
// there is none.
func (m *Matcher) ShortestMatch(text []byte) (start, end int, ok bool) {
	e := m.pool.Get().(engine.Engine)
	start, end, ok = e.ShortestMatch(text)
	m.pool.Put(e)

	atomic.AddUint64(&m.stats.Searches, 1)
	if ok {
		atomic.AddUint64(&m.stats.Matches, 1)
	}
	return start, end, ok
}

// ShortestMatchString is like ShortestMatch but searches a string.
func (m *Matcher) ShortestMatchString(s string) (start, end int, ok bool) {
	return m.ShortestMatch([]byte(s))
}

// IsMatch reports whether text contains a match.
func (m *Matcher) IsMatch(text []byte) bool {
	_, _, ok := m.ShortestMatch(text)
	return ok
}

// Strategy returns the engine in use; UseAuto has been resolved.
func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

// Program returns the program being matched.
func (m *Matcher) Program() *program.Program {
	return m.prog
}

// Prefix returns the candidate scanner.
func (m *Matcher) Prefix() *prefix.Prefix {
	return m.prefix
}

// Engine returns a fresh engine for exclusive use by the caller, for hot
// loops that want to skip the pool.
func (m *Matcher) Engine() engine.Engine {
	return m.proto.Clone()
}

// Clone returns a Matcher with the same program, prefix and strategy, and
// its own pool and counters.
func (m *Matcher) Clone() *Matcher {
	return NewWithPrefix(m.prog, m.prefix, m.strategy)
}

// Stats returns a snapshot of the execution counters.
func (m *Matcher) Stats() Stats {
	return Stats{
		Searches:       atomic.LoadUint64(&m.stats.Searches),
		Matches:        atomic.LoadUint64(&m.stats.Matches),
		EnginesCreated: atomic.LoadUint64(&m.stats.EnginesCreated),
	}
}

// ResetStats resets the execution counters to zero.
func (m *Matcher) ResetStats() {
	atomic.StoreUint64(&m.stats.Searches, 0)
	atomic.StoreUint64(&m.stats.Matches, 0)
	atomic.StoreUint64(&m.stats.EnginesCreated, 0)
}

// String describes the matcher.
func (m *Matcher) String() string {
	return fmt.Sprintf("Matcher(%s, prefix=%s, states=%d)", m.strategy, m.prefix, m.prog.NumStates())
}
