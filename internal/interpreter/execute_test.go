package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrogolib/assert"
)

type keyState map[uint8]bool

func (k keyState) Pressed(key uint8) bool {
	return k[key]
}

func TestClearDisplay(t *testing.T) {
	m := newMachine(t, 0x00E0)
	m.frame.flip(3, 4)
	m.frame.flip(63, 31)

	result, err := m.Cycle()
	assert.NoError(t, err)
	assert.NotNil(t, result.Frame)
	assert.Equal(t, Frame{}, *result.Frame)
	assert.Equal(t, Frame{}, m.Frame())
}

func TestDrawSpriteCollision(t *testing.T) {
	m := newMachine(t,
		0x60FF, // V0 = $FF
		0xA300, // I = $300
		0xF055, // [I] = V0
		0xD121, // draw 1 row at (V1, V2)
		0xD121, // draw again
	)

	runCycles(t, m, 3)

	result, err := m.Cycle()
	assert.NoError(t, err)
	assert.NotNil(t, result.Frame)
	for x := range 8 {
		assert.Equal(t, uint8(1), result.Frame.Pixel(x, 0))
	}
	assert.Equal(t, uint8(0), result.Frame.Pixel(8, 0))
	assert.Equal(t, uint8(0), m.Registers()[0xF])

	result, err = m.Cycle()
	assert.NoError(t, err)
	assert.Equal(t, Frame{}, *result.Frame)
	assert.Equal(t, uint8(1), m.Registers()[0xF])
}

func TestDrawSpriteCollisionAccumulates(t *testing.T) {
	m := newMachine(t, 0xA300, 0xD122)
	m.LoadMemory(0x300, []uint8{0x80, 0x80})
	// first row collides, the second row does not
	m.frame.flip(0, 0)

	runCycles(t, m, 2)
	assert.Equal(t, uint8(1), m.Registers()[0xF])

	frame := m.Frame()
	assert.Equal(t, uint8(0), frame.Pixel(0, 0))
	assert.Equal(t, uint8(1), frame.Pixel(0, 1))
}

func TestDrawSpriteWraps(t *testing.T) {
	m := newMachine(t, 0xA300, 0xD122)
	m.LoadMemory(0x300, []uint8{0xFF, 0x81})
	m.v[1] = 62
	m.v[2] = 31

	runCycles(t, m, 2)
	assert.Equal(t, uint8(0), m.Registers()[0xF])

	frame := m.Frame()
	for _, x := range []int{62, 63, 0, 1, 2, 3, 4, 5} {
		assert.Equal(t, uint8(1), frame.Pixel(x, 31))
	}
	assert.Equal(t, uint8(0), frame.Pixel(6, 31))
	assert.Equal(t, uint8(1), frame.Pixel(62, 0))
	assert.Equal(t, uint8(1), frame.Pixel(5, 0))
	assert.Equal(t, uint8(0), frame.Pixel(63, 0))
}

func TestDrawSpriteZeroHeight(t *testing.T) {
	m := newMachine(t, 0xD120)
	m.v[0xF] = 1

	result, err := m.Cycle()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), m.Registers()[0xF])
	assert.Equal(t, Frame{}, *result.Frame)
}

func TestFrameOnlyReportedOnChange(t *testing.T) {
	m := newMachine(t, 0x6001, 0x00E0)

	result, err := m.Cycle()
	assert.NoError(t, err)
	assert.True(t, result.Frame == nil)

	result, err = m.Cycle()
	assert.NoError(t, err)
	assert.NotNil(t, result.Frame)
}

func TestKeypadSkips(t *testing.T) {
	keys := keyState{0x5: true}
	program := decodeProgram(t, 0xE09E, 0x00E0, 0xE1A1, 0x00E0, 0x00E0)
	m := New(program, Options{Keypad: keys, Random: random.New(1)})
	m.v[0] = 0x5
	m.v[1] = 0x6

	runCycles(t, m, 1)
	assert.Equal(t, uint16(2), m.PC())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(4), m.PC())
}

func TestAwaitKey(t *testing.T) {
	program := decodeProgram(t, 0xF20A, 0x6001)
	m := New(program, Options{Keypad: keyState{}, Random: random.New(1)})
	m.sound = 2

	assert.True(t, errors.Is(m.PressKey(1), ErrNotAwaitingInput))

	result, err := m.Cycle()
	assert.NoError(t, err)
	assert.True(t, result.Awaiting)
	assert.Equal(t, StateAwaitingInput, m.State())

	// waiting keeps the timers running
	result, err = m.Cycle()
	assert.NoError(t, err)
	assert.True(t, result.Awaiting)
	assert.False(t, result.SoundActive)
	assert.Equal(t, uint16(1), m.PC())

	assert.NoError(t, m.PressKey(0x1B))
	assert.Equal(t, StateRunning, m.State())
	assert.Equal(t, uint8(0xB), m.Registers()[2])

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers()[0])
	assert.True(t, errors.Is(m.PressKey(1), ErrNotAwaitingInput))
}

func TestSpriteGlyph(t *testing.T) {
	program := decodeProgram(t, 0xF029, 0xF129)
	m := New(program, Options{Font: true, Random: random.New(1)})
	m.v[0] = 0xA
	m.v[1] = 0x1F

	runCycles(t, m, 1)
	assert.Equal(t, uint16(FontAddress+0xA*glyphSize), m.Index())
	assert.Equal(t, []uint8{0xF0, 0x90, 0xF0, 0x90, 0x90}, m.Memory(m.Index(), glyphSize))

	runCycles(t, m, 1)
	assert.Equal(t, uint16(FontAddress+0xF*glyphSize), m.Index())
}

func TestFontNotInstalledByDefault(t *testing.T) {
	m := newMachine(t)
	assert.Equal(t, make([]uint8, len(font)), m.Memory(FontAddress, len(font)))
}
