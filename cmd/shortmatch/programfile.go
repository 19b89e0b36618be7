package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/coregx/shortest/prefix"
	"github.com/coregx/shortest/program"
)

// programFile is the JSON form of a compiled program and its prefixes.
//
// A program is either a bytecode listing ("vm") or a transition table
// ("states" plus "table"). Byte sets are written as strings holding their
// members.
//
//	{
//	  "start": 0,
//	  "states": 3,
//	  "table": [{"from": 0, "on": "o", "to": 1}, {"from": 1, "on": "k", "to": 2}],
//	  "accept": [{"state": 2, "data": 0}],
//	  "eoi": [{"state": 2, "data": 0}],
//	  "prefixes": [{"literal": "ok", "state": 2}]
//	}
type programFile struct {
	Anchored bool   `json:"anchored,omitempty"`
	Start    uint32 `json:"start"`

	VM []instJSON `json:"vm,omitempty"`

	States int              `json:"states,omitempty"`
	Table  []transitionJSON `json:"table,omitempty"`
	Accept []acceptJSON     `json:"accept,omitempty"`

	EOI       []acceptJSON  `json:"eoi,omitempty"`
	Prefixes  []literalJSON `json:"prefixes,omitempty"`
	LoopWhile string        `json:"loop_while,omitempty"`
}

type instJSON struct {
	Op      string            `json:"op"`
	On      string            `json:"on,omitempty"`
	Data    int               `json:"data,omitempty"`
	Targets map[string]uint32 `json:"targets,omitempty"`
}

type transitionJSON struct {
	From uint32 `json:"from"`
	On   string `json:"on,omitempty"`
	Any  bool   `json:"any,omitempty"`
	To   uint32 `json:"to"`
}

type acceptJSON struct {
	State uint32 `json:"state"`
	Data  int    `json:"data"`
}

type literalJSON struct {
	Literal string `json:"literal"`
	State   uint32 `json:"state"`
}

// loadedProgram is a decoded programFile.
type loadedProgram struct {
	prog   *program.Program
	prefix *prefix.Prefix
	lits   []prefix.Literal
}

func loadProgramFile(path string) (*loadedProgram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lp, err := readProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lp, nil
}

func readProgram(r io.Reader) (*loadedProgram, error) {
	var pf programFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}

	init := program.Constant(program.StateID(pf.Start))
	if pf.Anchored {
		init = program.Anchored(program.StateID(pf.Start))
	}

	var prog *program.Program
	var err error
	if len(pf.VM) > 0 {
		prog, err = pf.buildVM(init)
	} else {
		prog, err = pf.buildTable(init)
	}
	if err != nil {
		return nil, err
	}

	lp := &loadedProgram{prog: prog}
	for _, l := range pf.Prefixes {
		lp.lits = append(lp.lits, prefix.Literal{Bytes: []byte(l.Literal), State: program.StateID(l.State)})
	}
	if pf.LoopWhile != "" {
		if len(lp.lits) > 0 {
			return nil, fmt.Errorf("loop_while and prefixes are mutually exclusive")
		}
		lp.prefix = prefix.NewLoopWhile(byteSet(pf.LoopWhile))
	} else {
		lp.prefix = prefix.FromStrings(lp.lits)
	}
	return lp, nil
}

func (pf *programFile) buildVM(init program.InitStates) (*program.Program, error) {
	b := program.NewVMBuilder()
	for i, in := range pf.VM {
		switch in.Op {
		case "byte":
			if len(in.On) != 1 {
				return nil, fmt.Errorf("vm[%d]: byte needs exactly one byte in \"on\", got %q", i, in.On)
			}
			b.AddByte(in.On[0])
		case "byteset":
			b.AddByteSet(byteSet(in.On))
		case "acc":
			if err := checkData(in.Data); err != nil {
				return nil, fmt.Errorf("vm[%d]: %w", i, err)
			}
			b.AddAcc(in.Data)
		case "branch":
			targets := make(map[byte]program.StateID, len(in.Targets))
			for k, to := range in.Targets {
				if len(k) != 1 {
					return nil, fmt.Errorf("vm[%d]: branch key %q is not a single byte", i, k)
				}
				targets[k[0]] = program.StateID(to)
			}
			b.AddBranch(targets)
		default:
			return nil, fmt.Errorf("vm[%d]: unknown op %q", i, in.Op)
		}
	}
	for _, a := range pf.EOI {
		if err := checkAccept(a, len(pf.VM)); err != nil {
			return nil, err
		}
		b.SetAcceptAtEOI(program.StateID(a.State), a.Data)
	}
	return b.Build(init), nil
}

func (pf *programFile) buildTable(init program.InitStates) (*program.Program, error) {
	if pf.States <= 0 {
		return nil, fmt.Errorf("program has neither \"vm\" nor \"states\"")
	}
	b := program.NewTableBuilder(pf.States)
	for i, tr := range pf.Table {
		if int(tr.From) >= pf.States {
			return nil, fmt.Errorf("table[%d]: from state %d out of range", i, tr.From)
		}
		to := program.StateID(tr.To)
		if tr.Any {
			b.SetRange(program.StateID(tr.From), 0, 0xFF, to)
			continue
		}
		for j := 0; j < len(tr.On); j++ {
			b.SetTransition(program.StateID(tr.From), tr.On[j], to)
		}
	}
	for _, a := range pf.Accept {
		if err := checkAccept(a, pf.States); err != nil {
			return nil, err
		}
		b.SetAccept(program.StateID(a.State), a.Data)
	}
	for _, a := range pf.EOI {
		if err := checkAccept(a, pf.States); err != nil {
			return nil, err
		}
		b.SetAcceptAtEOI(program.StateID(a.State), a.Data)
	}
	return b.Build(init), nil
}

func checkAccept(a acceptJSON, numStates int) error {
	if int(a.State) >= numStates {
		return fmt.Errorf("accept state %d out of range", a.State)
	}
	if err := checkData(a.Data); err != nil {
		return fmt.Errorf("state %d: %w", a.State, err)
	}
	return nil
}

// checkData rejects accept data the dense tables cannot hold; MaxUint32
// is their "no accept" sentinel.
func checkData(data int) error {
	if data < 0 {
		return fmt.Errorf("negative accept data %d", data)
	}
	if uint64(data) >= math.MaxUint32 {
		return fmt.Errorf("accept data %d out of range", data)
	}
	return nil
}

func byteSet(members string) *[256]bool {
	var set [256]bool
	for i := 0; i < len(members); i++ {
		set[members[i]] = true
	}
	return &set
}
