package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// sysName is the mnemonic of the machine code routine call, which the
// retrogolib opcode table does not list as it is ignored by interpreters.
const sysName = "sys"

// mnemonics maps every identity to its CHIP-8 assembler instruction.
var mnemonics = [identityCount]*chip8.Instruction{
	ClearDisplay:            chip8.Cls,
	ReturnFromSubroutine:    chip8.Ret,
	Jump:                    chip8.Jp,
	CallSubroutine:          chip8.Call,
	SkipIfRegEqualsConst:    chip8.Se,
	SkipIfRegNotEqualsConst: chip8.Sne,
	SkipIfRegEqualsReg:      chip8.Se,
	SetRegConst:             chip8.Ld,
	AddConstNoFlag:          chip8.Add,
	SetRegReg:               chip8.Ld,
	Or:                      chip8.Or,
	And:                     chip8.And,
	Xor:                     chip8.Xor,
	AddReg:                  chip8.Add,
	SubReg:                  chip8.Sub,
	ShiftRight:              chip8.Shr,
	SubRegReversed:          chip8.Subn,
	ShiftLeft:               chip8.Shl,
	SkipIfRegNotEqualsReg:   chip8.Sne,
	SetIndexConst:           chip8.Ld,
	JumpIndexed:             chip8.Jp,
	RandomMasked:            chip8.Rnd,
	DrawSprite:              chip8.Drw,
	SkipIfKeyPressed:        chip8.Skp,
	SkipIfKeyNotPressed:     chip8.Sknp,
	GetDelayTimer:           chip8.Ld,
	AwaitKeyThenStore:       chip8.Ld,
	SetDelayTimer:           chip8.Ld,
	SetSoundTimer:           chip8.Ld,
	AddIndexReg:             chip8.Add,
	SetIndexToSpriteGlyph:   chip8.Ld,
	StoreBCD:                chip8.Ld,
	DumpRegistersToMemory:   chip8.Ld,
	LoadRegistersFromMemory: chip8.Ld,
}

// Mnemonic returns the assembler mnemonic of the instruction.
func (i Instruction) Mnemonic() string {
	ins := mnemonics[i.identity]
	if ins == nil {
		return sysName
	}
	return ins.Name
}

// String returns the instruction in assembler notation, for example "ld V3, $12".
func (i Instruction) String() string {
	name := i.Mnemonic()
	if params := i.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the instruction in assembler notation.
// nolint:cyclop
func (i Instruction) formatParams() string {
	op := i.operands

	switch i.identity {
	case ClearDisplay, ReturnFromSubroutine:
		return "" // No parameters
	case CallMachineRoutine, Jump, CallSubroutine:
		return fmt.Sprintf("$%03X", op.Address)
	case JumpIndexed:
		return fmt.Sprintf("V0, $%03X", op.Address)
	case SetIndexConst:
		return fmt.Sprintf("I, $%03X", op.Address)
	case SkipIfRegEqualsConst, SkipIfRegNotEqualsConst, SetRegConst, AddConstNoFlag, RandomMasked:
		return fmt.Sprintf("V%X, $%02X", op.X, op.Const)
	case SkipIfRegEqualsReg, SkipIfRegNotEqualsReg, SetRegReg, Or, And, Xor, AddReg, SubReg, SubRegReversed:
		return fmt.Sprintf("V%X, V%X", op.X, op.Y)
	case DrawSprite:
		return fmt.Sprintf("V%X, V%X, $%X", op.X, op.Y, op.Nibble)
	case ShiftRight, ShiftLeft, SkipIfKeyPressed, SkipIfKeyNotPressed:
		return fmt.Sprintf("V%X", op.X)
	case GetDelayTimer:
		return fmt.Sprintf("V%X, DT", op.X)
	case AwaitKeyThenStore:
		return fmt.Sprintf("V%X, K", op.X)
	case SetDelayTimer:
		return fmt.Sprintf("DT, V%X", op.X)
	case SetSoundTimer:
		return fmt.Sprintf("ST, V%X", op.X)
	case AddIndexReg:
		return fmt.Sprintf("I, V%X", op.X)
	case SetIndexToSpriteGlyph:
		return fmt.Sprintf("F, V%X", op.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", op.X)
	case DumpRegistersToMemory:
		return fmt.Sprintf("[I], V%X", op.X)
	case LoadRegistersFromMemory:
		return fmt.Sprintf("V%X, [I]", op.X)
	}
	return ""
}
