// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input program file"`
	Batch   string `flag:"batch" usage:"batch run files matching pattern headless (e.g. *.ch8)"`
	Wav     string `flag:"wav" usage:"record the buzzer to a .wav file"`
	Listing string `flag:"disasm" usage:"write a disassembly listing of the program to a file"`
}

// Flags contains behavior options.
type Flags struct {
	Seed        uint64 `flag:"seed" usage:"seed of the random generator (default: current time)"`
	CycleRate   int    `flag:"hz" usage:"cycles per second, 0 runs unpaced" default:"500"`
	MaxCycles   uint64 `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until halt"`
	Breakpoints string `flag:"break" usage:"comma separated hex instruction indexes to stop at"`
	Keys        string `flag:"keys" usage:"hex digits to feed to instructions waiting for a key"`
	HostTimers  bool   `flag:"timers60" usage:"decrement timers at 60 Hz instead of every cycle"`
	Font        bool   `flag:"font" usage:"install the hex digit font"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output options.
type OutputFlags struct {
	NoTerminal    bool `flag:"noterm" usage:"do not render the display to the terminal"`
	NoDebugPanel  bool `flag:"nodebug" usage:"hide the debug panel next to the display"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit instruction words in listing comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit instruction indexes in listing comments"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Runner defines options to control a program execution.
type Runner struct {
	Breakpoints []uint16 // instruction indexes to stop at before executing them
	CycleRate   int      // cycles per second, 0 for unpaced
	MaxCycles   uint64   // 0 for no limit
	Keys        []uint8  // keys fed to the machine when it waits for input
	Seed        uint64
	RandomSeed  bool // seed the generator from the time, Seed is ignored

	Font           bool
	HostTimers     bool
	KeypadAttached bool // key instructions fault if not set
	Terminal       bool
	DebugPanel     bool
	HexComments    bool
	OffsetComments bool
}

// NewRunner returns a new options instance with default options.
func NewRunner(cycleRate int) Runner {
	return Runner{
		CycleRate:  cycleRate,
		RandomSeed: true,

		Terminal:       true,
		DebugPanel:     true,
		HexComments:    true,
		OffsetComments: true,
	}
}
