// Package prefix turns the literal prefixes of a compiled program into a
// scanner that yields candidate match regions.
//
// The compiler hands over literals tagged with a resume-state: the program
// state reached after the literal has been consumed. FromStrings picks the
// cheapest scanner that can report every occurrence:
//   - no literals → Empty (every offset is a candidate)
//   - one single-byte literal → Byte (memchr)
//   - one longer literal → Lit (memmem)
//   - several literals, one of them a single byte → ByteSet (byte class scan)
//   - several literals, all longer → Ac (overlapping Aho-Corasick)
//
// LoopWhile is never chosen by FromStrings; the compiler builds it directly
// for programs that begin with a byte-class loop.
//
// Only Ac reports the literal's resume-state. Every other kind resumes at
// state 0 so the engine re-reads the literal from the candidate start.
//
// A Prefix is immutable and safe for concurrent use. A Searcher is bound to
// one input and is not.
package prefix

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/shortest/program"
	"github.com/coregx/shortest/simd"
)

// Kind identifies the scanning strategy of a Prefix.
type Kind uint8

const (
	// Empty yields every offset of the input, including its end.
	Empty Kind = iota

	// Byte yields every occurrence of a single byte.
	Byte

	// ByteSet yields every occurrence of any byte of a class.
	ByteSet

	// Lit yields every (possibly overlapping) occurrence of a literal.
	Lit

	// LoopWhile yields maximal runs of bytes from a class, including empty
	// runs.
	LoopWhile

	// Ac yields every overlapping occurrence of several literals along with
	// their resume-states.
	Ac
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Byte:
		return "Byte"
	case ByteSet:
		return "ByteSet"
	case Lit:
		return "Lit"
	case LoopWhile:
		return "LoopWhile"
	case Ac:
		return "Ac"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Literal is a literal prefix together with the program state to resume
// from once it has been matched.
type Literal struct {
	Bytes []byte
	State program.StateID
}

// Prefix is a candidate scanner description.
type Prefix struct {
	kind Kind

	// Byte
	b byte

	// ByteSet and LoopWhile
	set   *[256]bool
	class *simd.IndexAnyInTable

	// Lit
	finder *simd.Finder

	// Ac
	ac     *ahocorasick.Automaton
	states []program.StateID
	maxLen int
}

// FromStrings builds the cheapest prefix able to report every occurrence of
// the non-empty literals in lits. Empty literals are ignored.
//
// When a single-byte literal is present alongside others, the result is a
// ByteSet over all first bytes and the resume-states are dropped. This
// over-approximates the candidates but is always correct because the engine
// restarts the program at every candidate.
func FromStrings(lits []Literal) *Prefix {
	kept := make([]Literal, 0, len(lits))
	minLen, maxLen := 0, 0
	for _, lit := range lits {
		if len(lit.Bytes) == 0 {
			continue
		}
		if len(kept) == 0 || len(lit.Bytes) < minLen {
			minLen = len(lit.Bytes)
		}
		maxLen = max(maxLen, len(lit.Bytes))
		kept = append(kept, lit)
	}

	switch {
	case len(kept) == 0:
		return NewEmpty()
	case len(kept) == 1 && minLen == 1:
		return NewByte(kept[0].Bytes[0])
	case len(kept) == 1:
		return NewLit(kept[0].Bytes)
	case minLen == 1:
		return firstByteSet(kept)
	}

	builder := ahocorasick.NewBuilder()
	states := make([]program.StateID, len(kept))
	for i, lit := range kept {
		builder.AddPattern(lit.Bytes)
		states[i] = lit.State
	}
	auto, err := builder.Build()
	if err != nil {
		// Only reachable with no or empty patterns, both filtered above.
		return firstByteSet(kept)
	}
	return &Prefix{kind: Ac, ac: auto, states: states, maxLen: maxLen}
}

func firstByteSet(lits []Literal) *Prefix {
	var set [256]bool
	for _, lit := range lits {
		set[lit.Bytes[0]] = true
	}
	return NewByteSet(&set)
}

// NewEmpty returns a prefix that yields every offset.
func NewEmpty() *Prefix {
	return &Prefix{kind: Empty}
}

// NewByte returns a prefix that yields every occurrence of b.
func NewByte(b byte) *Prefix {
	return &Prefix{kind: Byte, b: b}
}

// NewByteSet returns a prefix that yields every occurrence of a byte in set.
// The set is copied.
func NewByteSet(set *[256]bool) *Prefix {
	s := *set
	return &Prefix{kind: ByteSet, set: &s, class: simd.NewIndexAnyInTable(&s)}
}

// NewLit returns a prefix that yields every occurrence of lit, overlapping
// ones included. The literal is copied.
func NewLit(lit []byte) *Prefix {
	return &Prefix{kind: Lit, finder: simd.NewFinder(lit)}
}

// NewLoopWhile returns a prefix that yields maximal runs of bytes in set.
// The set is copied.
func NewLoopWhile(set *[256]bool) *Prefix {
	s := *set
	return &Prefix{kind: LoopWhile, set: &s}
}

// Kind returns the scanning strategy.
func (p *Prefix) Kind() Kind {
	return p.kind
}

// HeapBytes returns the approximate heap memory owned by the prefix.
func (p *Prefix) HeapBytes() int {
	switch p.kind {
	case ByteSet:
		return 2 * 256
	case LoopWhile:
		return 256
	case Lit:
		return len(p.finder.Needle())
	case Ac:
		n := 4 * len(p.states)
		for i := 0; i < p.ac.PatternCount(); i++ {
			n += len(p.ac.Pattern(i))
		}
		return n
	default:
		return 0
	}
}

// String describes the prefix, e.g. Lit("abc") or Ac["ab"->1, "cd"->2].
func (p *Prefix) String() string {
	switch p.kind {
	case Byte:
		return fmt.Sprintf("Byte(%q)", p.b)
	case ByteSet, LoopWhile:
		return fmt.Sprintf("%s[%s]", p.kind, classString(p.set))
	case Lit:
		return fmt.Sprintf("Lit(%q)", p.finder.Needle())
	case Ac:
		var sb strings.Builder
		sb.WriteString("Ac[")
		for i, s := range p.states {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%q->%d", p.ac.Pattern(i), s)
		}
		sb.WriteString("]")
		return sb.String()
	default:
		return p.kind.String()
	}
}

// classString renders a byte class as a compact list of bytes and ranges.
func classString(set *[256]bool) string {
	var sb strings.Builder
	for lo := 0; lo < 256; lo++ {
		if !set[lo] {
			continue
		}
		hi := lo
		for hi+1 < 256 && set[hi+1] {
			hi++
		}
		if hi-lo >= 2 {
			fmt.Fprintf(&sb, "%s-%s", quoteByte(byte(lo)), quoteByte(byte(hi)))
		} else {
			for c := lo; c <= hi; c++ {
				sb.WriteString(quoteByte(byte(c)))
			}
		}
		lo = hi
	}
	return sb.String()
}

func quoteByte(b byte) string {
	q := fmt.Sprintf("%q", b)
	return q[1 : len(q)-1]
}
