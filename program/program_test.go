package program

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type step struct {
	Next     StateID
	OK       bool
	Data     int
	Accepted bool
}

func doStep(insts Instructions, s StateID, input string) step {
	next, ok, data, acc := insts.Step(s, []byte(input))
	if !ok {
		next = NoState
	}
	return step{Next: next, OK: ok, Data: data, Accepted: acc}
}

func vowels() *[256]bool {
	var set [256]bool
	for _, b := range []byte("aeiou") {
		set[b] = true
	}
	return &set
}

func TestInitStates(t *testing.T) {
	a := Anchored(3)
	if s, ok := a.StateAt(0); !ok || s != 3 {
		t.Errorf("Anchored.StateAt(0) = (%d, %v), want (3, true)", s, ok)
	}
	if _, ok := a.StateAt(1); ok {
		t.Error("Anchored.StateAt(1) should not start")
	}
	if s, ok := a.AnchoredState(); !ok || s != 3 {
		t.Errorf("AnchoredState() = (%d, %v), want (3, true)", s, ok)
	}

	c := Constant(0)
	for _, pos := range []int{0, 1, 100} {
		if s, ok := c.StateAt(pos); !ok || s != 0 {
			t.Errorf("Constant.StateAt(%d) = (%d, %v), want (0, true)", pos, s, ok)
		}
	}
	if _, ok := c.AnchoredState(); ok {
		t.Error("Constant should not be anchored")
	}
	if got := a.String() + " " + c.String(); got != "Anchored(3) Constant(0)" {
		t.Errorf("String() = %q", got)
	}
}

func TestVMInsts_Step(t *testing.T) {
	b := NewVMBuilder()
	b.AddByte('a')
	b.AddByteSet(vowels())
	b.AddBranch(map[byte]StateID{'x': 4, 'y': 1})
	b.AddAcc(7)
	b.AddAcc(0)
	prog := b.Build(Constant(0))

	tests := []struct {
		name  string
		state StateID
		input string
		want  step
	}{
		{"byte hit", 0, "ab", step{Next: 1, OK: true}},
		{"byte miss", 0, "b", step{Next: NoState}},
		{"set hit", 1, "e", step{Next: 2, OK: true}},
		{"set miss", 1, "z", step{Next: NoState}},
		{"branch x", 2, "x", step{Next: 4, OK: true}},
		{"branch y", 2, "y", step{Next: 1, OK: true}},
		{"branch miss", 2, "z", step{Next: NoState}},
		{"acc falls through", 3, "q", step{Next: 4, OK: true, Data: 7, Accepted: true}},
		{"acc at end dies", 4, "q", step{Next: NoState, Data: 0, Accepted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, doStep(prog, tt.state, tt.input)); diff != "" {
				t.Errorf("Step(%d, %q) mismatch (-want +got):\n%s", tt.state, tt.input, diff)
			}
		})
	}
	if prog.NumStates() != 5 {
		t.Errorf("NumStates() = %d, want 5", prog.NumStates())
	}
}

func TestVMInsts_StepLastInstruction(t *testing.T) {
	b := NewVMBuilder()
	b.AddAcc(0)
	b.AddByte('a')
	b.AddByteSet(vowels())
	prog := b.Build(Constant(0))

	tests := []struct {
		name  string
		state StateID
		input string
		want  step
	}{
		{"byte before last", 1, "a", step{Next: 2, OK: true}},
		{"set at end dies", 2, "e", step{Next: NoState}},
		{"set miss at end", 2, "z", step{Next: NoState}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, doStep(prog, tt.state, tt.input)); diff != "" {
				t.Errorf("Step(%d, %q) mismatch (-want +got):\n%s", tt.state, tt.input, diff)
			}
		})
	}
}

func TestTableInsts_Step(t *testing.T) {
	b := NewTableBuilder(3)
	b.SetTransition(0, 'a', 1)
	b.SetRange(1, 'a', 'z', 1)
	b.SetTransition(1, '!', 2)
	b.SetAccept(2, 1)
	prog := b.Build(Constant(0))

	tests := []struct {
		state StateID
		input string
		want  step
	}{
		{0, "a", step{Next: 1, OK: true}},
		{0, "b", step{Next: NoState}},
		{1, "q", step{Next: 1, OK: true}},
		{1, "!", step{Next: 2, OK: true}},
		{2, "x", step{Next: NoState, Data: 1, Accepted: true}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, doStep(prog, tt.state, tt.input)); diff != "" {
			t.Errorf("Step(%d, %q) mismatch (-want +got):\n%s", tt.state, tt.input, diff)
		}
	}

	insts := prog.Insts.(*TableInsts)
	if d, ok := insts.AcceptAt(2); !ok || d != 1 {
		t.Errorf("AcceptAt(2) = (%d, %v), want (1, true)", d, ok)
	}
	if _, ok := insts.AcceptAt(0); ok {
		t.Error("AcceptAt(0) should not accept")
	}
}

func TestProgram_CheckEOI(t *testing.T) {
	b := NewTableBuilder(2)
	b.SetTransition(0, 'a', 1)
	b.SetAcceptAtEOI(1, 2)
	prog := b.Build(Constant(0))

	if d, ok := prog.CheckEOI(1); !ok || d != 2 {
		t.Errorf("CheckEOI(1) = (%d, %v), want (2, true)", d, ok)
	}
	if _, ok := prog.CheckEOI(0); ok {
		t.Error("CheckEOI(0) should not accept")
	}
}

func TestProgram_CheckEmptyMatchAtEnd(t *testing.T) {
	eoiStart := func(init InitStates) *Program {
		b := NewTableBuilder(1)
		b.SetAcceptAtEOI(0, 0)
		return b.Build(init)
	}

	tests := []struct {
		name   string
		prog   *Program
		input  string
		wantOK bool
		want   int
	}{
		{"constant", eoiStart(Constant(0)), "abc", true, 3},
		{"constant empty input", eoiStart(Constant(0)), "", true, 0},
		{"anchored nonempty", eoiStart(Anchored(0)), "abc", false, 0},
		{"anchored empty input", eoiStart(Anchored(0)), "", true, 0},
		{"start not accepting", NewTableBuilder(1).Build(Constant(0)), "abc", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.prog.CheckEmptyMatchAtEnd([]byte(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (start != tt.want || end != tt.want) {
				t.Errorf("got (%d, %d), want (%d, %d)", start, end, tt.want, tt.want)
			}
		})
	}
}

func TestProgram_NumStatesEmpty(t *testing.T) {
	var p Program
	if p.NumStates() != 0 {
		t.Errorf("NumStates() = %d, want 0", p.NumStates())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() on empty program = %v, want nil", err)
	}
}

func TestNew_CopiesEOI(t *testing.T) {
	eoi := []uint32{NoAccept}
	p := New(Constant(0), &VMInsts{Insts: []Inst{Acc(0)}}, eoi)
	eoi[0] = 5
	if _, ok := p.CheckEOI(0); ok {
		t.Error("New should copy the end-of-input table")
	}
}

func TestProgram_String(t *testing.T) {
	b := NewVMBuilder()
	b.AddByte('a')
	b.AddAcc(0)
	b.SetAcceptAtEOI(1, 0)
	got := b.Build(Anchored(0)).String()

	for _, want := range []string{
		"Program init=Anchored(0) states=2",
		"Inst 0: Byte('a')",
		"Inst 1: Acc(0)",
		"AcceptAtEOI: 1 -> 0,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}

	tb := NewTableBuilder(2)
	tb.SetTransition(0, 'z', 1)
	tb.SetAccept(1, 3)
	got = tb.Build(Constant(0)).String()
	for _, want := range []string{"State 0: {'z': 1}", "State 1: {}", "Accept: 1 -> 3,"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	good := NewVMBuilder()
	good.AddByte('a')
	good.AddAcc(0)

	tests := []struct {
		name    string
		prog    *Program
		wantErr string
	}{
		{"valid vm", good.Build(Constant(0)), ""},
		{"valid table", NewTableBuilder(2).Build(Constant(1)), ""},
		{
			"short eoi table",
			&Program{Init: Constant(0), Insts: &VMInsts{Insts: []Inst{Acc(0)}}},
			"AcceptAtEOI has 0 entries, want 1",
		},
		{
			"start out of range",
			NewTableBuilder(2).Build(Constant(2)),
			"start state 2 out of range",
		},
		{
			"byte set out of range",
			New(Constant(0), &VMInsts{Insts: []Inst{ByteSet(0), Acc(0)}}, []uint32{NoAccept, NoAccept}),
			"byte set @0 exceeds 0 entries",
		},
		{
			"branch target out of range",
			func() *Program {
				b := NewVMBuilder()
				b.AddBranch(map[byte]StateID{'a': 9})
				return b.Build(Constant(0))
			}(),
			"branch on 'a' to state 9 out of range",
		},
		{
			"byte falls off the end",
			func() *Program {
				b := NewVMBuilder()
				b.AddByte('a')
				return b.Build(Constant(0))
			}(),
			"Byte falls off the end",
		},
		{
			"table target out of range",
			func() *Program {
				b := NewTableBuilder(1)
				b.SetTransition(0, 'q', 4)
				return b.Build(Constant(0))
			}(),
			"transition on 'q' to state 4 out of range",
		},
		{
			"table size",
			New(Constant(0), &TableInsts{Table: make([]StateID, 10), Accept: []uint32{NoAccept}}, []uint32{NoAccept}),
			"transition table has 10 entries, want 256",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prog.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidProgram) {
				t.Errorf("errors.Is(%v, ErrInvalidProgram) = false", err)
			}
			var pe *ProgramError
			if !errors.As(err, &pe) {
				t.Errorf("errors.As(%v, *ProgramError) = false", err)
			}
		})
	}
}

func TestProgram_ValidateState(t *testing.T) {
	prog := NewTableBuilder(3).Build(Constant(0))
	for _, s := range []StateID{0, 2} {
		if err := prog.ValidateState(s); err != nil {
			t.Errorf("ValidateState(%d) = %v, want nil", s, err)
		}
	}
	err := prog.ValidateState(3)
	if !errors.Is(err, ErrInvalidProgram) {
		t.Fatalf("ValidateState(3) = %v, want ErrInvalidProgram", err)
	}
	if want := "invalid program: state 3 out of range [0, 3)"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInstKind_String(t *testing.T) {
	tests := []struct {
		kind InstKind
		want string
	}{
		{InstByte, "Byte"},
		{InstByteSet, "ByteSet"},
		{InstAcc, "Acc"},
		{InstBranch, "Branch"},
		{InstKind(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("InstKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
