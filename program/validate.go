package program

// Validate checks the table invariants the engines rely on: the
// end-of-input table has one entry per state, the start state exists, and
// every table offset and transition target is in range.
//
// The engines never call Validate; it is meant for construction time.
func (p *Program) Validate() error {
	n := p.NumStates()
	if len(p.AcceptAtEOI) != n {
		return programErrorf(NoState, "AcceptAtEOI has %d entries, want %d", len(p.AcceptAtEOI), n)
	}
	if n == 0 {
		return nil
	}
	if s := p.Init.State(); int(s) >= n {
		return programErrorf(NoState, "start state %d out of range [0, %d)", s, n)
	}

	switch insts := p.Insts.(type) {
	case *VMInsts:
		return insts.validate()
	case *TableInsts:
		return insts.validate()
	}
	return nil
}

// ValidateState checks that s is a state of p, e.g. a resume state
// supplied alongside the program.
func (p *Program) ValidateState(s StateID) error {
	if n := p.NumStates(); int(s) >= n {
		return programErrorf(NoState, "state %d out of range [0, %d)", s, n)
	}
	return nil
}

func (v *VMInsts) validate() error {
	n := len(v.Insts)
	for i, inst := range v.Insts {
		s := StateID(i)
		off := int(inst.Arg)
		switch inst.Kind {
		case InstByte:
			if inst.Arg > 0xFF {
				return programErrorf(s, "byte operand %d out of range", inst.Arg)
			}
		case InstAcc:
			if inst.Arg == NoAccept {
				return programErrorf(s, "accept data collides with sentinel")
			}
		case InstByteSet:
			if off+256 > len(v.ByteSets) {
				return programErrorf(s, "byte set @%d exceeds %d entries", off, len(v.ByteSets))
			}
		case InstBranch:
			if off+256 > len(v.BranchTable) {
				return programErrorf(s, "branch table @%d exceeds %d entries", off, len(v.BranchTable))
			}
			for b, next := range v.BranchTable[off : off+256] {
				if next != NoState && int(next) >= n {
					return programErrorf(s, "branch on %q to state %d out of range", byte(b), next)
				}
			}
		default:
			return programErrorf(s, "unknown instruction kind %s", inst.Kind)
		}
		// Byte and ByteSet fall through to s+1; the last instruction may
		// only accept or branch.
		if (inst.Kind == InstByte || inst.Kind == InstByteSet) && i+1 >= n {
			return programErrorf(s, "%s falls off the end of the program", inst.Kind)
		}
	}
	return nil
}

func (t *TableInsts) validate() error {
	n := len(t.Accept)
	if len(t.Table) != n*256 {
		return programErrorf(NoState, "transition table has %d entries, want %d", len(t.Table), n*256)
	}
	for i, next := range t.Table {
		if next != NoState && int(next) >= n {
			return programErrorf(StateID(i/256), "transition on %q to state %d out of range", byte(i%256), next)
		}
	}
	return nil
}
