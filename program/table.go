package program

import (
	"fmt"
	"strings"
)

// TableInsts is a deterministic program stored as a lookup table.
//
// Step costs one transition lookup and one accept lookup; acceptance is a
// property of the state being left, so it is reported before the byte is
// consumed.
type TableInsts struct {
	// Table is NumStates*256 entries; Table[s*256+b] is the successor of s
	// on b, or NoState.
	Table []StateID

	// Accept[s] is the data reported while in state s, or NoAccept.
	Accept []uint32
}

// Step looks up the successor of state on input[0] and the acceptance of
// state.
func (t *TableInsts) Step(state StateID, input []byte) (StateID, bool, int, bool) {
	data, accepted := t.AcceptAt(state)
	next := t.Table[int(state)<<8|int(input[0])]
	return next, next != NoState, data, accepted
}

// NumStates returns the number of states.
func (t *TableInsts) NumStates() int {
	return len(t.Accept)
}

// AcceptAt returns the accept data of state, if it is accepting.
func (t *TableInsts) AcceptAt(state StateID) (int, bool) {
	if a := t.Accept[state]; a != NoAccept {
		return int(a), true
	}
	return 0, false
}

// String lists the live transitions of every state and the accepting
// states.
func (t *TableInsts) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TableInsts (%d states):\n", len(t.Accept))
	for s := range t.Accept {
		fmt.Fprintf(&sb, "State %d: {", s)
		first := true
		row := t.Table[s*256 : s*256+256]
		for b, next := range row {
			if next == NoState {
				continue
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, "%q: %d", byte(b), next)
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("Accept: ")
	for s, a := range t.Accept {
		if a != NoAccept {
			fmt.Fprintf(&sb, "%d -> %d, ", s, a)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
