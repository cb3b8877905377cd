// Package interpreter implements the CHIP-8 fetch-execute loop and the
// architectural machine state.
//
// The machine executes a sequence of decoded instructions, the program counter
// is an index into that sequence. A driving loop calls Cycle once per
// instruction and is responsible for pacing, rendering and audio output.
package interpreter

import (
	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrogolib/log"
)

const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	flagRegister = 0xF
	addressMask  = 0x0FFF
)

// State is the execution state of the machine.
type State uint8

// Machine states.
const (
	StateRunning State = iota
	StateAwaitingInput
	StateHalted
	StateFaulted
)

var stateNames = [...]string{
	StateRunning:       "running",
	StateAwaitingInput: "awaiting input",
	StateHalted:        "halted",
	StateFaulted:       "faulted",
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Keypad reports the state of the 16 keys of the hexadecimal keypad.
type Keypad interface {
	Pressed(key uint8) bool
}

// Options configures the capabilities of a machine.
type Options struct {
	Keypad     Keypad         // key state port, key instructions fault without it
	Font       bool           // install the hex font, glyph addressing faults without it
	HostTimers bool           // timers are decayed by TickTimers instead of every cycle
	Random     *random.Random // seeded from the time if nil
	Logger     *log.Logger    // optional
}

// Result is the outcome of a single cycle.
type Result struct {
	Frame       *Frame // snapshot of the framebuffer, only set if the frame changed
	SoundActive bool   // sound timer is non zero
	Awaiting    bool   // machine waits for a key, see PressKey
}

// Machine is the CHIP-8 machine state. It is not safe for concurrent use,
// it is owned by the loop that drives it.
type Machine struct {
	program []chip8.Instruction

	pc        uint16
	v         [RegisterCount]uint8
	i         uint16
	memory    [MemorySize]uint8
	stack     stack
	delay     uint8
	sound     uint8
	frame     Frame
	rnd       *random.Random
	state     State
	fault     *Fault
	awaitReg  uint8
	cycles    uint64
	redrawn   bool
	keypad    Keypad
	hasFont   bool
	hostTimer bool
	logger    *log.Logger
}

// New returns a machine that is ready to execute the given program.
// Registers, memory, stack and framebuffer start zeroed.
func New(program []chip8.Instruction, opts Options) *Machine {
	m := &Machine{
		program:   program,
		rnd:       opts.Random,
		keypad:    opts.Keypad,
		hasFont:   opts.Font,
		hostTimer: opts.HostTimers,
		logger:    opts.Logger,
	}
	if m.rnd == nil {
		m.rnd = random.NewFromTime()
	}
	if m.hasFont {
		copy(m.memory[FontAddress:], font[:])
	}
	return m
}

// Cycle executes the instruction at the program counter.
// It returns ErrHalted once the program counter moved past the end of the
// program, and a *Fault if the instruction could not be executed.
func (m *Machine) Cycle() (Result, error) {
	switch m.state {
	case StateHalted:
		return Result{}, ErrHalted
	case StateFaulted:
		return Result{}, m.fault
	case StateAwaitingInput:
		m.cycles++
		m.decayTimers()
		return Result{Awaiting: true, SoundActive: m.sound > 0}, nil
	}

	m.redrawn = false
	if int(m.pc) >= len(m.program) {
		m.state = StateHalted
		if m.logger != nil {
			m.logger.Debug("Program halted", log.Hex("pc", m.pc), log.Int("cycles", int(m.cycles)))
		}
		return Result{}, ErrHalted
	}

	ins := m.program[m.pc]
	m.pc++

	if err := m.execute(ins); err != nil {
		return Result{}, m.raise(ins, err)
	}

	m.cycles++
	m.decayTimers()

	result := Result{
		SoundActive: m.sound > 0,
		Awaiting:    m.state == StateAwaitingInput,
	}
	if m.redrawn {
		frame := m.frame
		result.Frame = &frame
	}
	return result, nil
}

// raise moves the machine into the faulted state. The program counter is
// reset to the faulting instruction.
func (m *Machine) raise(ins chip8.Instruction, err error) *Fault {
	m.pc--
	m.state = StateFaulted
	m.fault = &Fault{
		PC:          m.pc,
		Instruction: ins,
		Err:         err,
	}
	if m.logger != nil {
		m.logger.Debug("Machine faulted",
			log.Hex("pc", m.pc),
			log.Hex("word", ins.Word()),
			log.Err(err))
	}
	return m.fault
}

func (m *Machine) decayTimers() {
	if !m.hostTimer {
		m.TickTimers()
	}
}

// TickTimers decrements the delay and sound timers by one, saturating at zero.
// It is called by Cycle unless the machine was created with host driven timers,
// in which case the host calls it at 60 Hz.
func (m *Machine) TickTimers() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// PressKey resumes a machine that waits for a key press by storing the key in
// the register named by the waiting instruction.
func (m *Machine) PressKey(key uint8) error {
	if m.state != StateAwaitingInput {
		return ErrNotAwaitingInput
	}
	m.v[m.awaitReg] = key & 0xF
	m.state = StateRunning
	if m.logger != nil {
		m.logger.Debug("Key received", log.Hex("key", key&0xF), log.Uint8("register", m.awaitReg))
	}
	return nil
}
