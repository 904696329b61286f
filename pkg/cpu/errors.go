package cpu

import (
	"errors"
	"fmt"

	"github.com/oisee/z80sim/pkg/inst"
)

var (
	// ErrInvalidRegisterAccess is returned by the narrow accessors for a
	// register that is not independently addressable as 8 bits.
	ErrInvalidRegisterAccess = errors.New("invalid register access")
	// ErrInvalidRegisterPair is returned by the pair accessors for an
	// unrecognized pair.
	ErrInvalidRegisterPair = errors.New("invalid register pair")
	// ErrUnsupportedInstruction is returned for a form with no execution
	// rule on the current variant, including the reserved block group.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrInvalidOperand is returned when an operand is outside the domain of
	// its instruction form.
	ErrInvalidOperand = errors.New("invalid operand")
)

// ExecError reports a failed Execute. No state was changed.
type ExecError struct {
	Instr inst.Instruction
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute %s: %v", e.Instr, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
