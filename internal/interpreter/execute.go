package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// execute applies the semantics of the instruction. The program counter was
// already advanced, instructions that change the control flow overwrite it.
// nolint:cyclop,funlen,gocyclo
func (m *Machine) execute(ins chip8.Instruction) error {
	op := ins.Operands()

	switch ins.Identity() {
	case chip8.CallMachineRoutine:
		return notImplemented(ins, "a machine code host")

	case chip8.ClearDisplay:
		m.frame.clear()
		m.redrawn = true

	case chip8.ReturnFromSubroutine:
		address, err := m.stack.pop()
		if err != nil {
			return err
		}
		m.pc = address

	case chip8.Jump:
		m.pc = op.Address

	case chip8.CallSubroutine:
		if err := m.stack.push(m.pc); err != nil {
			return err
		}
		m.pc = op.Address

	case chip8.JumpIndexed:
		m.pc = uint16(m.v[0]) + op.Address

	case chip8.SkipIfRegEqualsConst:
		m.skipIf(m.v[op.X] == op.Const)
	case chip8.SkipIfRegNotEqualsConst:
		m.skipIf(m.v[op.X] != op.Const)
	case chip8.SkipIfRegEqualsReg:
		m.skipIf(m.v[op.X] == m.v[op.Y])
	case chip8.SkipIfRegNotEqualsReg:
		m.skipIf(m.v[op.X] != m.v[op.Y])

	case chip8.SetRegConst:
		m.v[op.X] = op.Const
	case chip8.AddConstNoFlag:
		m.v[op.X] += op.Const

	case chip8.SetRegReg:
		m.v[op.X] = m.v[op.Y]
	case chip8.Or:
		m.v[op.X] |= m.v[op.Y]
	case chip8.And:
		m.v[op.X] &= m.v[op.Y]
	case chip8.Xor:
		m.v[op.X] ^= m.v[op.Y]

	case chip8.AddReg:
		sum := uint16(m.v[op.X]) + uint16(m.v[op.Y])
		m.v[op.X] = uint8(sum)
		m.setFlag(sum > 0xFF)

	case chip8.SubReg:
		vx, vy := m.v[op.X], m.v[op.Y]
		m.v[op.X] = vx - vy
		m.setFlag(vx >= vy)

	case chip8.SubRegReversed:
		vx, vy := m.v[op.X], m.v[op.Y]
		m.v[op.X] = vy - vx
		m.setFlag(vy >= vx)

	case chip8.ShiftRight:
		vx := m.v[op.X]
		m.v[op.X] = vx >> 1
		m.setFlag(vx&0x01 != 0)

	case chip8.ShiftLeft:
		vx := m.v[op.X]
		m.v[op.X] = vx << 1
		m.setFlag(vx&0x80 != 0)

	case chip8.SetIndexConst:
		m.i = op.Address
	case chip8.AddIndexReg:
		m.i = (m.i + uint16(m.v[op.X])) & addressMask

	case chip8.SetIndexToSpriteGlyph:
		if !m.hasFont {
			return notImplemented(ins, "a font")
		}
		m.i = FontAddress + uint16(m.v[op.X]&0xF)*glyphSize

	case chip8.StoreBCD:
		value := m.v[op.X]
		m.writeMemory(0, value/100)
		m.writeMemory(1, (value/10)%10)
		m.writeMemory(2, value%10)

	case chip8.DumpRegistersToMemory:
		for reg := uint8(0); reg <= op.X; reg++ {
			m.writeMemory(uint16(reg), m.v[reg])
		}

	case chip8.LoadRegistersFromMemory:
		for reg := uint8(0); reg <= op.X; reg++ {
			m.v[reg] = m.readMemory(uint16(reg))
		}

	case chip8.RandomMasked:
		m.v[op.X] = m.rnd.Byte() & op.Const

	case chip8.DrawSprite:
		m.drawSprite(m.v[op.X], m.v[op.Y], op.Nibble)

	case chip8.SkipIfKeyPressed:
		if m.keypad == nil {
			return notImplemented(ins, "a keypad")
		}
		m.skipIf(m.keypad.Pressed(m.v[op.X] & 0xF))

	case chip8.SkipIfKeyNotPressed:
		if m.keypad == nil {
			return notImplemented(ins, "a keypad")
		}
		m.skipIf(!m.keypad.Pressed(m.v[op.X] & 0xF))

	case chip8.AwaitKeyThenStore:
		if m.keypad == nil {
			return notImplemented(ins, "a keypad")
		}
		m.state = StateAwaitingInput
		m.awaitReg = op.X

	case chip8.GetDelayTimer:
		m.v[op.X] = m.delay
	case chip8.SetDelayTimer:
		m.delay = m.v[op.X]
	case chip8.SetSoundTimer:
		m.sound = m.v[op.X]

	default:
		return fmt.Errorf("%w: unhandled instruction %s", ErrNotImplemented, ins.Identity())
	}

	return nil
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc++
	}
}

// setFlag sets VF to 1 or 0. It is always written after the result so that
// the flag wins when VF is also the destination register.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[flagRegister] = 1
	} else {
		m.v[flagRegister] = 0
	}
}

func (m *Machine) readMemory(offset uint16) uint8 {
	return m.memory[(m.i+offset)&addressMask]
}

func (m *Machine) writeMemory(offset uint16, value uint8) {
	m.memory[(m.i+offset)&addressMask] = value
}

// drawSprite XORs a sprite of the given height from memory at I onto the
// framebuffer. Every byte is one row, the most significant bit is the leftmost
// pixel. VF is set if any set pixel was cleared by the whole sprite.
func (m *Machine) drawSprite(x, y, height uint8) {
	collision := false
	for row := uint16(0); row < uint16(height); row++ {
		line := m.readMemory(row)
		for column := 0; column < 8; column++ {
			if line&(0x80>>column) == 0 {
				continue
			}
			if m.frame.flip(int(x)+column, int(y)+int(row)) {
				collision = true
			}
		}
	}
	m.setFlag(collision)
	m.redrawn = true
}
