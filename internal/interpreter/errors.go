package interpreter

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

var (
	// ErrHalted is returned when the program counter moved past the end of the
	// instruction sequence. It is the normal termination of a program.
	ErrHalted = errors.New("program halted")

	// ErrStackOverflow is returned when a subroutine call exceeds the stack capacity.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrNotImplemented is returned for instructions that need a capability
	// that the machine was not given.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotAwaitingInput is returned when a key is injected while the machine
	// is not waiting for one.
	ErrNotAwaitingInput = errors.New("machine is not awaiting input")
)

// Fault is a runtime fault that stopped the machine. The machine keeps its
// state for inspection and returns the same fault for every following cycle.
type Fault struct {
	PC          uint16 // index of the faulting instruction
	Instruction chip8.Instruction
	Err         error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at %03X (%04X %s): %s", f.PC, f.Instruction.Word(), f.Instruction, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func notImplemented(ins chip8.Instruction, capability string) error {
	return fmt.Errorf("%w: %s requires %s", ErrNotImplemented, ins.Identity(), capability)
}
