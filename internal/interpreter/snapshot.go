package interpreter

import "github.com/retroenv/retrochip8/internal/arch/chip8"

// Snapshot is a read-only copy of the architectural state.
type Snapshot struct {
	PC        uint16
	State     State
	Registers [RegisterCount]uint8
	Index     uint16
	Stack     StackSnapshot
	Delay     uint8
	Sound     uint8
	Cycles    uint64
}

// Snapshot returns a copy of the machine state, it does not include memory
// and the framebuffer.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		PC:        m.pc,
		State:     m.state,
		Registers: m.v,
		Index:     m.i,
		Stack:     m.Stack(),
		Delay:     m.delay,
		Sound:     m.sound,
		Cycles:    m.cycles,
	}
}

// Registers returns a copy of the registers V0-VF.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.v
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// Stack returns a copy of the call stack.
func (m *Machine) Stack() StackSnapshot {
	return StackSnapshot{
		Data:  m.stack.data,
		Depth: m.stack.depth,
	}
}

// Timers returns the delay and sound timer values.
func (m *Machine) Timers() (delay, sound uint8) {
	return m.delay, m.sound
}

// PC returns the program counter, an index into the instruction sequence.
func (m *Machine) PC() uint16 {
	return m.pc
}

// State returns the execution state.
func (m *Machine) State() State {
	return m.state
}

// Fault returns the fault that stopped the machine, or nil.
func (m *Machine) Fault() *Fault {
	return m.fault
}

// Cycles returns the number of executed cycles.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Frame returns a copy of the framebuffer.
func (m *Machine) Frame() Frame {
	return m.frame
}

// Memory returns a copy of length bytes of memory starting at address.
// The range wraps at the end of memory.
func (m *Machine) Memory(address uint16, length int) []uint8 {
	data := make([]uint8, length)
	for i := range data {
		data[i] = m.memory[(int(address)+i)&addressMask]
	}
	return data
}

// Program returns the instruction sequence executed by the machine.
func (m *Machine) Program() []chip8.Instruction {
	return m.program
}

// LoadMemory copies data into memory starting at address, wrapping at the end
// of memory. It is used by hosts to provide sprite data before execution.
func (m *Machine) LoadMemory(address uint16, data []uint8) {
	for i, b := range data {
		m.memory[(int(address)+i)&addressMask] = b
	}
}
