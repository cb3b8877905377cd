package chip8

import "fmt"

// DecodeError is returned when an instruction word matches no known pattern.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown instruction word %04X", e.Word)
}

// Decode decodes a 16-bit instruction word. The top nibble selects the
// instruction group, the lower nibbles refine the identity for groups that
// contain more than one instruction.
func Decode(word uint16) (Instruction, error) {
	id, ok := decodeIdentity(word)
	if !ok {
		return Instruction{}, &DecodeError{Word: word}
	}

	return Instruction{
		identity: id,
		operands: extractOperands(id.Shape(), word),
		word:     word,
	}, nil
}

// MustDecode decodes a word and panics if the word is not a valid instruction.
// It is meant for instruction literals in tests and built-in programs.
func MustDecode(word uint16) Instruction {
	ins, err := Decode(word)
	if err != nil {
		panic(err)
	}
	return ins
}

// nolint:cyclop,funlen
func decodeIdentity(word uint16) (Identity, bool) {
	w1 := (word & 0xF000) >> 12
	w2 := (word & 0x0F00) >> 8
	w4 := word & 0x000F
	low := word & 0x00FF

	switch w1 {
	case 0x0:
		switch {
		case word == 0x00E0:
			return ClearDisplay, true
		case word == 0x00EE:
			return ReturnFromSubroutine, true
		case w2 >= 0x2:
			return CallMachineRoutine, true
		}

	case 0x1:
		return Jump, true
	case 0x2:
		return CallSubroutine, true
	case 0x3:
		return SkipIfRegEqualsConst, true
	case 0x4:
		return SkipIfRegNotEqualsConst, true
	case 0x5:
		if w4 == 0x0 {
			return SkipIfRegEqualsReg, true
		}
	case 0x6:
		return SetRegConst, true
	case 0x7:
		return AddConstNoFlag, true

	case 0x8:
		switch w4 {
		case 0x0:
			return SetRegReg, true
		case 0x1:
			return Or, true
		case 0x2:
			return And, true
		case 0x3:
			return Xor, true
		case 0x4:
			return AddReg, true
		case 0x5:
			return SubReg, true
		case 0x6:
			return ShiftRight, true
		case 0x7:
			return SubRegReversed, true
		case 0xE:
			return ShiftLeft, true
		}

	case 0x9:
		if w4 == 0x0 {
			return SkipIfRegNotEqualsReg, true
		}
	case 0xA:
		return SetIndexConst, true
	case 0xB:
		return JumpIndexed, true
	case 0xC:
		return RandomMasked, true
	case 0xD:
		return DrawSprite, true

	case 0xE:
		switch low {
		case 0x9E:
			return SkipIfKeyPressed, true
		case 0xA1:
			return SkipIfKeyNotPressed, true
		}

	case 0xF:
		switch low {
		case 0x07:
			return GetDelayTimer, true
		case 0x0A:
			return AwaitKeyThenStore, true
		case 0x15:
			return SetDelayTimer, true
		case 0x18:
			return SetSoundTimer, true
		case 0x1E:
			return AddIndexReg, true
		case 0x29:
			return SetIndexToSpriteGlyph, true
		case 0x33:
			return StoreBCD, true
		case 0x55:
			return DumpRegistersToMemory, true
		case 0x65:
			return LoadRegistersFromMemory, true
		}
	}

	return 0, false
}

// extractOperands extracts the operand fields of the given layout from the word.
func extractOperands(shape Shape, word uint16) Operands {
	x := uint8((word & 0x0F00) >> 8)
	y := uint8((word & 0x00F0) >> 4)

	switch shape {
	case ShapeAddress:
		return Operands{Address: word & 0x0FFF}
	case ShapeRegConst:
		return Operands{X: x, Const: uint8(word & 0x00FF)}
	case ShapeRegReg:
		return Operands{X: x, Y: y}
	case ShapeRegRegNibble:
		return Operands{X: x, Y: y, Nibble: uint8(word & 0x000F)}
	case ShapeReg:
		return Operands{X: x}
	default:
		return Operands{}
	}
}
