// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	return parseArgs(os.Args)
}

func parseArgs(arguments []string) (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(arguments[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	runOptions, err := createRunOptions(flags, opts)
	if err != nil {
		return opts, options.Runner{}, err
	}
	return opts, runOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// createRunOptions creates runner options based on program options
func createRunOptions(flags *flag.FlagSet, opts options.Program) (options.Runner, error) {
	if opts.CycleRate < 0 {
		return options.Runner{}, fmt.Errorf("invalid cycle rate %d", opts.CycleRate)
	}

	runOptions := options.NewRunner(opts.CycleRate)
	runOptions.MaxCycles = opts.MaxCycles
	runOptions.Font = opts.Font
	runOptions.HostTimers = opts.HostTimers
	runOptions.HexComments = !opts.NoHexComments
	runOptions.OffsetComments = !opts.NoOffsets
	runOptions.DebugPanel = !opts.NoDebugPanel

	// batch runs are always headless
	runOptions.Terminal = !opts.NoTerminal && opts.Batch == ""

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			runOptions.RandomSeed = false
			runOptions.Seed = opts.Seed
		}
	})

	var err error
	runOptions.Breakpoints, err = parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return options.Runner{}, err
	}

	if opts.Keys != "" {
		runOptions.KeypadAttached = true
		runOptions.Keys, err = parseKeys(opts.Keys)
		if err != nil {
			return options.Runner{}, err
		}
	}

	return runOptions, nil
}

func parseBreakpoints(s string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}

	var breakpoints []uint16
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimPrefix(strings.TrimSpace(item), "$")
		index, err := strconv.ParseUint(item, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid breakpoint '%s': %w", item, err)
		}
		breakpoints = append(breakpoints, uint16(index))
	}
	return breakpoints, nil
}

func parseKeys(s string) ([]uint8, error) {
	keys := make([]uint8, 0, len(s))
	for _, c := range s {
		key, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid key '%c': %w", c, err)
		}
		keys = append(keys, uint8(key))
	}
	return keys, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask headless, for example *.ch8")
	flags.StringVar(&opts.Wav, "wav", "", "name of the .wav file to record the buzzer to")
	flags.StringVar(&opts.Listing, "disasm", "", "name of the file to write a disassembly listing of the program to")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random generator, seeded from the current time if not given")
	flags.IntVar(&opts.CycleRate, "hz", config.DefaultCycleRate, "cycles per second, 0 runs unpaced")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after the given number of cycles, 0 runs until the program halts")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hex instruction indexes to stop at")
	flags.StringVar(&opts.Keys, "keys", "", "hex digits to feed to instructions waiting for a key, attaches a keypad")
	flags.BoolVar(&opts.HostTimers, "timers60", false, "decrement the timers at 60 Hz instead of every cycle")
	flags.BoolVar(&opts.Font, "font", false, "install the hex digit font")
	flags.BoolVar(&opts.NoTerminal, "noterm", false, "do not render the display to the terminal")
	flags.BoolVar(&opts.NoDebugPanel, "nodebug", false, "hide the debug panel next to the display")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output instruction words in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output instruction indexes in listing comments")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
