package program

import (
	"fmt"
	"strings"

	"github.com/coregx/shortest/internal/conv"
)

// InstKind identifies a bytecode instruction.
type InstKind uint8

const (
	// InstByte consumes the next byte iff it equals the operand.
	InstByte InstKind = iota

	// InstByteSet consumes the next byte iff it is in the 256-entry set
	// starting at the operand offset in VMInsts.ByteSets.
	InstByteSet

	// InstAcc accepts unconditionally with the operand as data, consumes
	// nothing and falls through to the next instruction.
	InstAcc

	// InstBranch jumps through the 256-entry table starting at the operand
	// offset in VMInsts.BranchTable; NoState entries kill the thread.
	InstBranch
)

// String returns a human-readable representation of the InstKind
func (k InstKind) String() string {
	switch k {
	case InstByte:
		return "Byte"
	case InstByteSet:
		return "ByteSet"
	case InstAcc:
		return "Acc"
	case InstBranch:
		return "Branch"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Inst is one bytecode instruction. Arg is the byte value, table offset or
// accept data, depending on Kind.
type Inst struct {
	Kind InstKind
	Arg  uint32
}

// Byte returns an InstByte instruction.
func Byte(b byte) Inst {
	return Inst{Kind: InstByte, Arg: uint32(b)}
}

// ByteSet returns an InstByteSet instruction for the set at offset.
func ByteSet(offset int) Inst {
	return Inst{Kind: InstByteSet, Arg: conv.IntToUint32(offset)}
}

// Acc returns an InstAcc instruction carrying data.
func Acc(data int) Inst {
	return Inst{Kind: InstAcc, Arg: conv.IntToStateIndex(data)}
}

// Branch returns an InstBranch instruction for the table at offset.
func Branch(offset int) Inst {
	return Inst{Kind: InstBranch, Arg: conv.IntToUint32(offset)}
}

func (i Inst) String() string {
	switch i.Kind {
	case InstByte:
		return fmt.Sprintf("Byte(%q)", byte(i.Arg))
	case InstByteSet:
		return fmt.Sprintf("ByteSet(@%d)", i.Arg)
	case InstAcc:
		return fmt.Sprintf("Acc(%d)", i.Arg)
	case InstBranch:
		return fmt.Sprintf("Branch(@%d)", i.Arg)
	default:
		return fmt.Sprintf("%s(%d)", i.Kind, i.Arg)
	}
}

// VMInsts is a bytecode program. Several Acc instructions may follow each
// other, e.g. to record priority, since Acc falls through.
type VMInsts struct {
	// ByteSets holds 256-entry membership blocks referenced by InstByteSet.
	ByteSets []bool

	// BranchTable holds 256-entry jump blocks referenced by InstBranch.
	BranchTable []StateID

	// Insts is the instruction list; the state is the instruction pointer.
	Insts []Inst
}

// Step executes instruction state against the first byte of input.
func (v *VMInsts) Step(state StateID, input []byte) (StateID, bool, int, bool) {
	inst := v.Insts[state]
	next := state + 1
	switch inst.Kind {
	case InstAcc:
		return next, v.inRange(next), int(inst.Arg), true
	case InstByte:
		if byte(inst.Arg) == input[0] && v.inRange(next) {
			return next, true, 0, false
		}
	case InstByteSet:
		if v.ByteSets[int(inst.Arg)+int(input[0])] && v.inRange(next) {
			return next, true, 0, false
		}
	case InstBranch:
		if next := v.BranchTable[int(inst.Arg)+int(input[0])]; next != NoState {
			return next, true, 0, false
		}
	}
	return NoState, false, 0, false
}

// inRange reports whether fall-through state s is an instruction.
func (v *VMInsts) inRange(s StateID) bool {
	return int(s) < len(v.Insts)
}

// NumStates returns the number of instructions.
func (v *VMInsts) NumStates() int {
	return len(v.Insts)
}

// String lists the instructions.
func (v *VMInsts) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VMInsts (%d instructions):\n", len(v.Insts))
	for idx, inst := range v.Insts {
		fmt.Fprintf(&sb, "\tInst %d: %s\n", idx, inst)
	}
	return sb.String()
}
