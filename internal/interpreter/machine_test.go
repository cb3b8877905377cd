package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func decodeProgram(t *testing.T, words ...uint16) []chip8.Instruction {
	t.Helper()
	program := make([]chip8.Instruction, 0, len(words))
	for _, word := range words {
		ins, err := chip8.Decode(word)
		assert.NoError(t, err)
		program = append(program, ins)
	}
	return program
}

func newMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()
	return New(decodeProgram(t, words...), Options{
		Random: random.New(1),
		Logger: log.NewTestLogger(t),
	})
}

func runCycles(t *testing.T, m *Machine, n int) {
	t.Helper()
	for range n {
		_, err := m.Cycle()
		assert.NoError(t, err)
	}
}

func TestHaltOnEmptyProgram(t *testing.T) {
	m := newMachine(t)

	_, err := m.Cycle()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.Equal(t, StateHalted, m.State())

	// halted stays halted
	_, err = m.Cycle()
	assert.True(t, errors.Is(err, ErrHalted))
}

func TestHaltAfterLastInstruction(t *testing.T) {
	m := newMachine(t, 0x6001, 0x6102)
	runCycles(t, m, 2)

	_, err := m.Cycle()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.Equal(t, uint64(2), m.Cycles())
	assert.Equal(t, uint8(1), m.Registers()[0])
	assert.Equal(t, uint8(2), m.Registers()[1])
}

func TestFlagsAllOperands(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		result func(a, b uint8) uint8
		flag   func(a, b int) bool
	}{
		{"add", 0x8014, func(a, b uint8) uint8 { return a + b }, func(a, b int) bool { return a+b > 255 }},
		{"sub", 0x8015, func(a, b uint8) uint8 { return a - b }, func(a, b int) bool { return a >= b }},
		{"subn", 0x8017, func(a, b uint8) uint8 { return b - a }, func(a, b int) bool { return b >= a }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, tt.word)
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					m.pc = 0
					m.v[0] = uint8(a)
					m.v[1] = uint8(b)

					_, err := m.Cycle()
					assert.NoError(t, err)
					if m.v[0] != tt.result(uint8(a), uint8(b)) {
						t.Fatalf("%s %d %d: unexpected result %d", tt.name, a, b, m.v[0])
					}

					expected := uint8(0)
					if tt.flag(a, b) {
						expected = 1
					}
					if m.v[0xF] != expected {
						t.Fatalf("%s %d %d: unexpected flag %d", tt.name, a, b, m.v[0xF])
					}
				}
			}
		})
	}
}

func TestFlagWinsOverResult(t *testing.T) {
	m := newMachine(t, 0x8FF4)
	m.v[0xF] = 0xFF

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.Registers()[0xF])
}

func TestShifts(t *testing.T) {
	m := newMachine(t, 0x8016, 0x811E)
	m.v[0] = 0b00000011
	m.v[1] = 0b10000001

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.v[0])
	assert.Equal(t, uint8(1), m.v[0xF])

	runCycles(t, m, 1)
	assert.Equal(t, uint8(2), m.v[1])
	assert.Equal(t, uint8(1), m.v[0xF])
}

func TestShiftsClearFlag(t *testing.T) {
	m := newMachine(t, 0x8016, 0x811E)
	m.v[0] = 0b00000010
	m.v[1] = 0b01000000
	m.v[0xF] = 1

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.v[0])
	assert.Equal(t, uint8(0), m.v[0xF])

	m.v[0xF] = 1
	runCycles(t, m, 1)
	assert.Equal(t, uint8(0x80), m.v[1])
	assert.Equal(t, uint8(0), m.v[0xF])
}

func TestAddConstNoFlag(t *testing.T) {
	m := newMachine(t, 0x70FF)
	m.v[0] = 2
	m.v[0xF] = 7

	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.v[0])
	assert.Equal(t, uint8(7), m.v[0xF])
}

func TestBitwise(t *testing.T) {
	m := newMachine(t, 0x8011, 0x8232, 0x8453, 0x8670)
	m.v[0], m.v[1] = 0b1100, 0b1010
	m.v[2], m.v[3] = 0b1100, 0b1010
	m.v[4], m.v[5] = 0b1100, 0b1010
	m.v[6], m.v[7] = 0, 0x42
	m.v[0xF] = 9

	runCycles(t, m, 4)
	assert.Equal(t, uint8(0b1110), m.v[0])
	assert.Equal(t, uint8(0b1000), m.v[2])
	assert.Equal(t, uint8(0b0110), m.v[4])
	assert.Equal(t, uint8(0x42), m.v[6])
	assert.Equal(t, uint8(9), m.v[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		v0, v1 uint8
		pc     uint16
	}{
		{"SE byte taken", 0x3012, 0x12, 0, 2},
		{"SE byte not taken", 0x3012, 0x13, 0, 1},
		{"SNE byte taken", 0x4012, 0x13, 0, 2},
		{"SNE byte not taken", 0x4012, 0x12, 0, 1},
		{"SE reg taken", 0x5010, 5, 5, 2},
		{"SE reg not taken", 0x5010, 5, 6, 1},
		{"SNE reg taken", 0x9010, 5, 6, 2},
		{"SNE reg not taken", 0x9010, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, tt.word, 0x00E0, 0x00E0)
			m.v[0], m.v[1] = tt.v0, tt.v1
			runCycles(t, m, 1)
			assert.Equal(t, tt.pc, m.PC())
		})
	}
}

func TestJumps(t *testing.T) {
	m := newMachine(t, 0x1003, 0x00E0, 0x00E0, 0xB001)
	m.v[0] = 2

	runCycles(t, m, 1)
	assert.Equal(t, uint16(3), m.PC())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(3), m.PC())
}

func TestStackOverflow(t *testing.T) {
	m := newMachine(t, 0x2000)
	runCycles(t, m, StackSize)
	assert.Equal(t, StackSize, m.Stack().Depth)

	_, err := m.Cycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0), fault.PC)
	assert.Equal(t, chip8.CallSubroutine, fault.Instruction.Identity())

	// the state is preserved for inspection
	assert.Equal(t, StateFaulted, m.State())
	assert.Equal(t, StackSize, m.Stack().Depth)
	assert.Equal(t, uint16(0), m.PC())
	assert.Equal(t, fault, m.Fault())

	_, err = m.Cycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))
}

func TestStackUnderflow(t *testing.T) {
	m := newMachine(t, 0x00EE)

	_, err := m.Cycle()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, StateFaulted, m.State())
}

func TestNestedCalls(t *testing.T) {
	m := newMachine(t,
		0x2004, // 0: call A
		0x6101, // 1: V1 = 1
		0x1009, // 2: jump past the end
		0x00E0, // 3: not reached
		0x2007, // 4: A: call B
		0x6202, // 5: V2 = 2
		0x00EE, // 6: return
		0x6303, // 7: B: V3 = 3
		0x00EE, // 8: return
	)

	runCycles(t, m, 2)
	assert.Equal(t, []uint16{1, 5}, m.Stack().Entries())
	assert.Equal(t, uint16(7), m.PC())

	runCycles(t, m, 2)
	assert.Equal(t, uint16(5), m.PC())
	assert.Equal(t, []uint16{1}, m.Stack().Entries())

	runCycles(t, m, 2)
	assert.Equal(t, uint16(1), m.PC())
	assert.Equal(t, 0, m.Stack().Depth)

	runCycles(t, m, 2)
	_, err := m.Cycle()
	assert.True(t, errors.Is(err, ErrHalted))

	regs := m.Registers()
	assert.Equal(t, uint8(1), regs[1])
	assert.Equal(t, uint8(2), regs[2])
	assert.Equal(t, uint8(3), regs[3])
}

func TestReturnRestoresCallSite(t *testing.T) {
	words := make([]uint16, 0, 2*StackSize+1)
	// a chain of calls, each to the next instruction
	for i := 1; i <= StackSize; i++ {
		words = append(words, 0x2000|uint16(i))
	}
	for range StackSize {
		words = append(words, 0x00EE)
	}
	m := newMachine(t, words...)

	runCycles(t, m, StackSize)
	assert.Equal(t, StackSize, m.Stack().Depth)

	for i := StackSize; i > 0; i-- {
		m.pc = uint16(StackSize) // any return instruction
		runCycles(t, m, 1)
		assert.Equal(t, uint16(i), m.PC())
	}
}

func TestIndexAndMemory(t *testing.T) {
	m := newMachine(t, 0xAFFE, 0xF01E)
	m.v[0] = 3

	runCycles(t, m, 1)
	assert.Equal(t, uint16(0xFFE), m.Index())

	runCycles(t, m, 1)
	assert.Equal(t, uint16(0x001), m.Index())
}

func TestStoreBCD(t *testing.T) {
	m := newMachine(t, 0xA300, 0xF533)
	m.v[5] = 157

	runCycles(t, m, 2)
	assert.Equal(t, []uint8{1, 5, 7}, m.Memory(0x300, 3))
	assert.Equal(t, uint16(0x300), m.Index())
}

func TestDumpLoadRoundTrip(t *testing.T) {
	m := newMachine(t, 0xA400, 0xFF55)
	for i := range m.v {
		m.v[i] = uint8(i*17 + 3)
	}
	original := m.Registers()
	runCycles(t, m, 2)

	other := newMachine(t, 0xA400, 0xFF65)
	other.LoadMemory(0x400, m.Memory(0x400, RegisterCount))
	runCycles(t, other, 2)

	assert.Equal(t, original, other.Registers())
}

func TestDumpPartialRegisters(t *testing.T) {
	m := newMachine(t, 0xA200, 0xF255, 0xF165)
	m.v[0], m.v[1], m.v[2], m.v[3] = 1, 2, 3, 4

	runCycles(t, m, 2)
	assert.Equal(t, []uint8{1, 2, 3, 0}, m.Memory(0x200, 4))

	m.v[0], m.v[1], m.v[2] = 0, 0, 0
	runCycles(t, m, 1)
	assert.Equal(t, uint8(1), m.v[0])
	assert.Equal(t, uint8(2), m.v[1])
	assert.Equal(t, uint8(0), m.v[2])
}

func TestTimerDecay(t *testing.T) {
	m := newMachine(t, 0x6000, 0x6000, 0x6000, 0x6000, 0x6000)
	m.delay, m.sound = 3, 3

	expected := []struct {
		value uint8
		sound bool
	}{
		{2, true},
		{1, true},
		{0, false},
		{0, false},
		{0, false},
	}

	for _, e := range expected {
		result, err := m.Cycle()
		assert.NoError(t, err)
		delay, sound := m.Timers()
		assert.Equal(t, e.value, delay)
		assert.Equal(t, e.value, sound)
		assert.Equal(t, e.sound, result.SoundActive)
	}
}

func TestTimerInstructions(t *testing.T) {
	m := newMachine(t, 0x600A, 0xF015, 0xF018, 0xF107)

	runCycles(t, m, 3)
	delay, sound := m.Timers()
	assert.Equal(t, uint8(8), delay)
	assert.Equal(t, uint8(9), sound)

	runCycles(t, m, 1)
	assert.Equal(t, uint8(7), m.v[1])
}

func TestHostTimers(t *testing.T) {
	m := New(decodeProgram(t, 0x6000, 0x6000), Options{
		Random:     random.New(1),
		HostTimers: true,
	})
	m.delay, m.sound = 2, 1

	runCycles(t, m, 2)
	delay, sound := m.Timers()
	assert.Equal(t, uint8(2), delay)
	assert.Equal(t, uint8(1), sound)

	m.TickTimers()
	m.TickTimers()
	delay, sound = m.Timers()
	assert.Equal(t, uint8(0), delay)
	assert.Equal(t, uint8(0), sound)
}

func TestRandomMasked(t *testing.T) {
	program := decodeProgram(t, 0xC0FF, 0xC10F, 0xC200)
	a := New(program, Options{Random: random.New(99)})
	b := New(program, Options{Random: random.New(99)})

	runCycles(t, a, 3)
	runCycles(t, b, 3)
	assert.Equal(t, a.Registers(), b.Registers())

	reference := random.New(99)
	assert.Equal(t, uint8(reference.Next()), a.v[0])
	assert.Equal(t, uint8(reference.Next())&0x0F, a.v[1])
	assert.Equal(t, uint8(0), a.v[2])
}

func TestNotImplemented(t *testing.T) {
	tests := []struct {
		name string
		word uint16
	}{
		{"machine routine", 0x0FFF},
		{"skip if key pressed", 0xE09E},
		{"skip if key not pressed", 0xE0A1},
		{"await key", 0xF00A},
		{"sprite glyph", 0xF029},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, tt.word)
			_, err := m.Cycle()
			assert.True(t, errors.Is(err, ErrNotImplemented))
			assert.False(t, errors.Is(err, ErrStackOverflow))
			assert.Equal(t, StateFaulted, m.State())
			assert.Equal(t, uint64(0), m.Cycles())
		})
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	m := newMachine(t, 0x2002, 0x00E0, 0x6A42)
	runCycles(t, m, 2)

	first := m.Snapshot()
	second := m.Snapshot()
	assert.Equal(t, first, second)
	assert.Equal(t, uint16(3), first.PC)
	assert.Equal(t, 1, first.Stack.Depth)
	assert.Equal(t, uint8(0x42), first.Registers[0xA])
	assert.Equal(t, StateRunning, first.State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "awaiting input", StateAwaitingInput.String())
	assert.Equal(t, "faulted", StateFaulted.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestProgram(t *testing.T) {
	m := newMachine(t, 0x00E0, 0x6A42)
	runCycles(t, m, 1)

	program := m.Program()
	assert.Len(t, program, 2)
	assert.Equal(t, uint16(0x6A42), program[m.PC()].Word())
}
