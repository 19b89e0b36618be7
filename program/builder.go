package program

import (
	"github.com/coregx/shortest/internal/conv"
)

// VMBuilder assembles a VMInsts program instruction by instruction.
// Instructions that consume a byte fall through to the next instruction, so
// callers add them in execution order and use AddBranch for jumps.
type VMBuilder struct {
	insts    []Inst
	byteSets []bool
	branches []StateID
	eoi      map[StateID]uint32
}

// NewVMBuilder creates an empty bytecode builder.
func NewVMBuilder() *VMBuilder {
	return &VMBuilder{eoi: make(map[StateID]uint32)}
}

func (b *VMBuilder) add(inst Inst) StateID {
	id := StateID(conv.IntToStateIndex(len(b.insts)))
	b.insts = append(b.insts, inst)
	return id
}

// AddByte adds an instruction consuming exactly c.
func (b *VMBuilder) AddByte(c byte) StateID {
	return b.add(Byte(c))
}

// AddByteSet adds an instruction consuming any byte in set.
func (b *VMBuilder) AddByteSet(set *[256]bool) StateID {
	off := len(b.byteSets)
	b.byteSets = append(b.byteSets, set[:]...)
	return b.add(ByteSet(off))
}

// AddAcc adds an accept instruction carrying data.
func (b *VMBuilder) AddAcc(data int) StateID {
	return b.add(Acc(data))
}

// AddBranch adds a jump table; bytes missing from targets kill the thread.
func (b *VMBuilder) AddBranch(targets map[byte]StateID) StateID {
	off := len(b.branches)
	for i := 0; i < 256; i++ {
		next, ok := targets[byte(i)]
		if !ok {
			next = NoState
		}
		b.branches = append(b.branches, next)
	}
	return b.add(Branch(off))
}

// SetAcceptAtEOI makes ending the input in state accept with data.
func (b *VMBuilder) SetAcceptAtEOI(state StateID, data int) {
	b.eoi[state] = conv.IntToStateIndex(data)
}

// Len returns the number of instructions added so far; it is the ID the
// next instruction will get.
func (b *VMBuilder) Len() int {
	return len(b.insts)
}

// Build returns the program. The builder may keep being used; later
// additions do not affect programs already built.
func (b *VMBuilder) Build(init InitStates) *Program {
	insts := &VMInsts{
		ByteSets:    append([]bool(nil), b.byteSets...),
		BranchTable: append([]StateID(nil), b.branches...),
		Insts:       append([]Inst(nil), b.insts...),
	}
	return &Program{
		Init:        init,
		AcceptAtEOI: eoiTable(len(b.insts), b.eoi),
		Insts:       insts,
	}
}

// TableBuilder assembles a TableInsts program over a fixed number of
// states. Every transition starts out missing and every state
// non-accepting.
type TableBuilder struct {
	table  []StateID
	accept []uint32
	eoi    map[StateID]uint32
}

// NewTableBuilder creates a builder for numStates states.
func NewTableBuilder(numStates int) *TableBuilder {
	b := &TableBuilder{
		table:  make([]StateID, numStates*256),
		accept: make([]uint32, numStates),
		eoi:    make(map[StateID]uint32),
	}
	for i := range b.table {
		b.table[i] = NoState
	}
	for i := range b.accept {
		b.accept[i] = NoAccept
	}
	return b
}

// SetTransition makes from move to to on c.
func (b *TableBuilder) SetTransition(from StateID, c byte, to StateID) {
	b.table[int(from)<<8|int(c)] = to
}

// SetRange makes from move to to on every byte in [lo, hi].
func (b *TableBuilder) SetRange(from StateID, lo, hi byte, to StateID) {
	for c := int(lo); c <= int(hi); c++ {
		b.table[int(from)<<8|c] = to
	}
}

// SetAccept makes state accepting with data.
func (b *TableBuilder) SetAccept(state StateID, data int) {
	b.accept[state] = conv.IntToStateIndex(data)
}

// SetAcceptAtEOI makes ending the input in state accept with data.
func (b *TableBuilder) SetAcceptAtEOI(state StateID, data int) {
	b.eoi[state] = conv.IntToStateIndex(data)
}

// Build returns the program.
func (b *TableBuilder) Build(init InitStates) *Program {
	insts := &TableInsts{
		Table:  append([]StateID(nil), b.table...),
		Accept: append([]uint32(nil), b.accept...),
	}
	return &Program{
		Init:        init,
		AcceptAtEOI: eoiTable(len(b.accept), b.eoi),
		Insts:       insts,
	}
}

func eoiTable(n int, set map[StateID]uint32) []uint32 {
	eoi := make([]uint32, n)
	for i := range eoi {
		eoi[i] = NoAccept
	}
	for s, data := range set {
		if int(s) < n {
			eoi[s] = data
		}
	}
	return eoi
}
