// Package instruction contains fundamental types for decoded instructions.
package instruction

// Instruction represents a decoded CPU instruction.
type Instruction interface {
	// IsCall returns true if the instruction is a call.
	IsCall() bool
	// IsJump returns true if the instruction is an unconditional jump.
	IsJump() bool
	// IsReturn returns true if the instruction returns from a subroutine.
	IsReturn() bool
	// IsSkip returns true if the instruction conditionally skips the next instruction.
	IsSkip() bool
	// Name returns the instruction mnemonic.
	Name() string
	// String returns the instruction with its formatted operands.
	String() string
	// Target returns the static control flow target of the instruction if it has one.
	Target() (uint16, bool)
	// Word returns the encoded instruction word.
	Word() uint16
}
