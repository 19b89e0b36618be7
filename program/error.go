package program

import (
	"errors"
	"fmt"
)

// ErrInvalidProgram is wrapped by every ProgramError, so callers can test
// with errors.Is(err, ErrInvalidProgram).
var ErrInvalidProgram = errors.New("invalid program")

// ProgramError reports a malformed program: a compiler contract violation
// such as an out-of-range transition or a short end-of-input table.
type ProgramError struct {
	// State is the offending state, or NoState if the error is not tied to
	// one.
	State   StateID
	Message string
}

// Error implements the error interface
func (e *ProgramError) Error() string {
	if e.State != NoState {
		return fmt.Sprintf("invalid program at state %d: %s", e.State, e.Message)
	}
	return fmt.Sprintf("invalid program: %s", e.Message)
}

// Unwrap returns ErrInvalidProgram.
func (e *ProgramError) Unwrap() error {
	return ErrInvalidProgram
}

func programErrorf(state StateID, format string, args ...any) error {
	return &ProgramError{State: state, Message: fmt.Sprintf(format, args...)}
}
