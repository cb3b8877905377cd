package chip8

import (
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Compile-time check to ensure Instruction implements instruction.Instruction.
var _ instruction.Instruction = Instruction{}

// Shape is the operand layout of an instruction.
type Shape uint8

// Operand layouts, derived from fixed nibble positions of the word.
const (
	ShapeNone         Shape = iota // no operands
	ShapeAddress                   // nnn
	ShapeRegConst                  // x, kk
	ShapeRegReg                    // x, y
	ShapeRegRegNibble              // x, y, n
	ShapeReg                       // x
)

// Operands contains the decoded operands of an instruction.
// Only the fields used by the shape of the instruction are set.
type Operands struct {
	Address uint16 // 12-bit address
	X       uint8  // register index 0-15
	Y       uint8  // register index 0-15
	Const   uint8  // 8-bit constant
	Nibble  uint8  // 4-bit constant
}

// Instruction is an immutable decoded CHIP-8 instruction.
type Instruction struct {
	identity Identity
	operands Operands
	word     uint16
}

// Identity returns the identity of the instruction.
func (i Instruction) Identity() Identity {
	return i.identity
}

// Category returns the category of the instruction.
func (i Instruction) Category() Category {
	return i.identity.Category()
}

// Shape returns the operand layout of the instruction.
func (i Instruction) Shape() Shape {
	return i.identity.Shape()
}

// Operands returns the decoded operands.
func (i Instruction) Operands() Operands {
	return i.operands
}

// Word returns the original 16-bit instruction word.
func (i Instruction) Word() uint16 {
	return i.word
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.Mnemonic()
}

// IsCall returns true if the instruction calls a subroutine.
func (i Instruction) IsCall() bool {
	return i.identity == CallSubroutine
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.identity == Jump || i.identity == JumpIndexed
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.identity == ReturnFromSubroutine
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	return chip8.SkipInstructions.Contains(i.Mnemonic())
}

// Target returns the instruction index that a jump or call transfers control to.
// The target of an indexed jump depends on V0 and is not known statically.
func (i Instruction) Target() (uint16, bool) {
	switch i.identity {
	case Jump, CallSubroutine:
		return i.operands.Address, true
	default:
		return 0, false
	}
}
