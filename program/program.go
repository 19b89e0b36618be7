// Package program defines the compiled automaton consumed by the matching
// engines and its single-step transition function.
//
// A Program wraps one of two instruction forms behind the Instructions
// interface:
//   - VMInsts: a non-deterministic bytecode program where the state doubles
//     as the instruction pointer.
//   - TableInsts: a deterministic program stored as a flat
//     NumStates x 256 transition table plus a per-state accept value.
//
// Both forms keep "no transition" and "not accepting" as sentinel values
// inside their dense tables so a step stays a couple of array loads. The
// sentinels never leave this package: Step, CheckEOI and friends report
// them as (value, ok) pairs.
//
// Programs are produced by an external compiler and are immutable once
// built. The engines assume well-formed tables; Validate is available for
// callers that want to check compiler output at construction time.
package program

import (
	"fmt"
	"math"
	"strings"
)

// StateID identifies an automaton state. States are dense indices in
// [0, NumStates()).
type StateID uint32

// NoState marks a missing transition in branch and transition tables.
const NoState StateID = math.MaxUint32

// NoAccept marks a non-accepting entry in accept and end-of-input tables.
const NoAccept uint32 = math.MaxUint32

// InitStates describes where a match may start.
//
// An anchored program may only start at input position 0; a constant
// program may start at every position.
type InitStates struct {
	state    StateID
	anchored bool
}

// Anchored returns InitStates whose start state s is only valid at
// position 0.
func Anchored(s StateID) InitStates {
	return InitStates{state: s, anchored: true}
}

// Constant returns InitStates whose start state s is valid at every
// position.
func Constant(s StateID) InitStates {
	return InitStates{state: s}
}

// StateAt returns the start state for a match beginning at pos, or false
// if no match may begin there.
func (i InitStates) StateAt(pos int) (StateID, bool) {
	if i.anchored && pos != 0 {
		return 0, false
	}
	return i.state, true
}

// AnchoredState returns the start state if matches may only begin at
// position 0.
func (i InitStates) AnchoredState() (StateID, bool) {
	return i.state, i.anchored
}

// IsAnchored reports whether matches may only begin at position 0.
func (i InitStates) IsAnchored() bool {
	return i.anchored
}

// State returns the start state.
func (i InitStates) State() StateID {
	return i.state
}

// String returns "Anchored(s)" or "Constant(s)".
func (i InitStates) String() string {
	if i.anchored {
		return fmt.Sprintf("Anchored(%d)", i.state)
	}
	return fmt.Sprintf("Constant(%d)", i.state)
}

// Instructions is a step function over a finite set of states.
type Instructions interface {
	// Step executes state against input, which is never empty, and reads at
	// most its first byte.
	//
	// next/ok is the state to continue from; ok is false when the
	// simulation dies. data/accepted reports an acceptance and the data
	// attached to it, which the engines interpret as a lookback count.
	Step(state StateID, input []byte) (next StateID, ok bool, data int, accepted bool)

	// NumStates returns the number of states.
	NumStates() int
}

// Program is a compiled automaton: instructions, the start configuration
// and the end-of-input acceptance table.
type Program struct {
	// Init is the start configuration.
	Init InitStates

	// AcceptAtEOI[s] is the data to report if the input ends in state s,
	// or NoAccept. It has exactly NumStates() entries.
	AcceptAtEOI []uint32

	// Insts is the instruction form, either *VMInsts or *TableInsts.
	Insts Instructions
}

// New returns a Program over insts. The end-of-input table is copied.
func New(init InitStates, insts Instructions, acceptAtEOI []uint32) *Program {
	eoi := make([]uint32, len(acceptAtEOI))
	copy(eoi, acceptAtEOI)
	return &Program{
		Init:        init,
		AcceptAtEOI: eoi,
		Insts:       insts,
	}
}

// Step delegates to the instruction form.
func (p *Program) Step(state StateID, input []byte) (StateID, bool, int, bool) {
	return p.Insts.Step(state, input)
}

// NumStates returns the number of states; a program without instructions
// has none.
func (p *Program) NumStates() int {
	if p.Insts == nil {
		return 0
	}
	return p.Insts.NumStates()
}

// IsAnchored reports whether matches may only begin at position 0.
func (p *Program) IsAnchored() bool {
	return p.Init.IsAnchored()
}

// CheckEOI returns the data attached to accepting at end of input in
// state, if that is accepting.
func (p *Program) CheckEOI(state StateID) (int, bool) {
	if a := p.AcceptAtEOI[state]; a != NoAccept {
		return int(a), true
	}
	return 0, false
}

// CheckEmptyMatchAtEnd reports an empty match at len(input) if the program
// may start there and its start state accepts at end of input.
func (p *Program) CheckEmptyMatchAtEnd(input []byte) (start, end int, ok bool) {
	pos := len(input)
	if s, ok := p.Init.StateAt(pos); ok && int(s) < len(p.AcceptAtEOI) {
		if _, acc := p.CheckEOI(s); acc {
			return pos, pos, true
		}
	}
	return 0, 0, false
}

// String disassembles the program.
func (p *Program) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Program init=%s states=%d\n", p.Init, p.NumStates())
	if p.Insts != nil {
		if s, ok := p.Insts.(fmt.Stringer); ok {
			sb.WriteString(s.String())
		}
	}
	sb.WriteString("AcceptAtEOI: ")
	for s, a := range p.AcceptAtEOI {
		if a != NoAccept {
			fmt.Fprintf(&sb, "%d -> %d, ", s, a)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
