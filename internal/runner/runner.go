// Package runner drives a CHIP-8 program: it loads and decodes the program,
// steps the machine at the configured rate and feeds the display and audio
// outputs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StopReason describes why a run ended.
type StopReason uint8

// Stop reasons.
const (
	StopHalted StopReason = iota
	StopFaulted
	StopMaxCycles
	StopBreakpoint
	StopAwaitingInput
	StopCancelled
)

var stopReasonNames = [...]string{
	StopHalted:        "halted",
	StopFaulted:       "faulted",
	StopMaxCycles:     "cycle limit reached",
	StopBreakpoint:    "breakpoint",
	StopAwaitingInput: "awaiting input",
	StopCancelled:     "cancelled",
}

func (r StopReason) String() string {
	if int(r) >= len(stopReasonNames) {
		return "unknown"
	}
	return stopReasonNames[r]
}

// Summary describes the end state of a run.
type Summary struct {
	Reason   StopReason
	Cycles   uint64
	Snapshot interpreter.Snapshot
	Frame    interpreter.Frame
}

// soundRecorder receives the buzzer state of every cycle.
type soundRecorder interface {
	Record(active bool) error
	Close() error
}

// Runner orchestrates loading and executing programs.
type Runner struct {
	logger   *log.Logger
	loader   *loader.Loader
	renderer display.Renderer
}

// New creates a new runner that outputs frames to the given renderer.
// A nil renderer discards all frames.
func New(logger *log.Logger, renderer display.Renderer) *Runner {
	if renderer == nil {
		renderer = display.Headless{}
	}
	return &Runner{
		logger:   logger,
		loader:   loader.New(logger),
		renderer: renderer,
	}
}

// Execute loads the program file and runs it.
func (r *Runner) Execute(ctx context.Context, opts options.Program, runOpts options.Runner) (Summary, error) {
	program, err := r.loader.Load(opts.Input)
	if err != nil {
		return Summary{}, fmt.Errorf("loading program: %w", err)
	}
	return r.ExecuteProgram(ctx, program, opts, runOpts)
}

// ExecuteProgram runs an already decoded program until it halts, faults,
// reaches a stop condition or the context is cancelled.
// A fault is returned as error, the summary contains the state at the fault.
func (r *Runner) ExecuteProgram(ctx context.Context, program []chip8.Instruction,
	opts options.Program, runOpts options.Runner) (summary Summary, err error) {

	defer func() {
		if closeErr := r.renderer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing renderer: %w", closeErr)
		}
	}()

	if opts.Listing != "" {
		if err := r.writeListing(program, opts.Listing, runOpts); err != nil {
			return Summary{}, err
		}
	}

	var recorder soundRecorder
	if opts.Wav != "" {
		cycleRate := runOpts.CycleRate
		if cycleRate == 0 {
			cycleRate = config.DefaultCycleRate
		}
		rec, err := audio.NewRecorder(opts.Wav, cycleRate)
		if err != nil {
			return Summary{}, fmt.Errorf("creating audio recorder: %w", err)
		}
		recorder = rec
	}

	r.printInfo(opts, program, runOpts)

	machine, keypad := r.createMachine(program, runOpts)
	summary, err = r.run(ctx, machine, keypad, runOpts, recorder)

	if recorder != nil {
		if closeErr := recorder.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing audio recorder: %w", closeErr)
		}
	}
	return summary, err
}

func (r *Runner) createMachine(program []chip8.Instruction,
	runOpts options.Runner) (*interpreter.Machine, *scriptedKeypad) {

	machineOpts := interpreter.Options{
		Font:       runOpts.Font,
		HostTimers: runOpts.HostTimers,
		Logger:     r.logger,
	}
	if !runOpts.RandomSeed {
		machineOpts.Random = random.New(runOpts.Seed)
	}
	var keypad *scriptedKeypad
	if runOpts.KeypadAttached {
		keypad = newScriptedKeypad(runOpts.Keys)
		machineOpts.Keypad = keypad
	}
	return interpreter.New(program, machineOpts), keypad
}

// run is the driving loop of the machine.
// nolint:cyclop,funlen
func (r *Runner) run(ctx context.Context, machine *interpreter.Machine, keypad *scriptedKeypad,
	runOpts options.Runner, recorder soundRecorder) (Summary, error) {

	breakpoints := set.New[uint16]()
	for _, address := range runOpts.Breakpoints {
		breakpoints.Add(address)
	}

	var cycleTicks <-chan time.Time
	if runOpts.CycleRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(runOpts.CycleRate))
		defer ticker.Stop()
		cycleTicks = ticker.C
	}
	var timerTicks <-chan time.Time
	if runOpts.HostTimers {
		ticker := time.NewTicker(time.Second / config.TimerRate)
		defer ticker.Stop()
		timerTicks = ticker.C
	}

	finish := func(reason StopReason, err error) (Summary, error) {
		summary := Summary{
			Reason:   reason,
			Cycles:   machine.Cycles(),
			Snapshot: machine.Snapshot(),
			Frame:    machine.Frame(),
		}
		if runOpts.Terminal {
			if renderErr := r.renderer.Render(&summary.Frame, summary.Snapshot); renderErr != nil && err == nil {
				err = fmt.Errorf("rendering frame: %w", renderErr)
			}
		}
		return summary, err
	}

	for {
		if runOpts.MaxCycles > 0 && machine.Cycles() >= runOpts.MaxCycles {
			return finish(StopMaxCycles, nil)
		}
		if breakpoints.Contains(machine.PC()) {
			r.logger.Info("Breakpoint reached",
				log.Hex("pc", machine.PC()),
				log.String("instruction", instructionAt(machine, machine.PC())))
			return finish(StopBreakpoint, nil)
		}

		if err := r.waitForCycle(ctx, machine, cycleTicks, timerTicks); err != nil {
			return finish(StopCancelled, fmt.Errorf("running program: %w", err))
		}

		result, err := machine.Cycle()
		switch {
		case errors.Is(err, interpreter.ErrHalted):
			r.logger.Info("Program halted", log.Int("cycles", int(machine.Cycles())))
			return finish(StopHalted, nil)

		case err != nil:
			return finish(StopFaulted, fmt.Errorf("running program: %w", err))
		}

		if result.Awaiting {
			key, ok := keypad.next()
			if !ok {
				r.logger.Info("Program is waiting for a key",
					log.Hex("pc", machine.PC()),
					log.String("instruction", instructionAt(machine, machine.PC()-1)))
				return finish(StopAwaitingInput, nil)
			}
			if err := machine.PressKey(key); err != nil {
				return finish(StopFaulted, fmt.Errorf("pressing key: %w", err))
			}
		}

		if recorder != nil {
			if err := recorder.Record(result.SoundActive); err != nil {
				return finish(StopFaulted, fmt.Errorf("recording sound: %w", err))
			}
		}

		if runOpts.Terminal && (result.Frame != nil || runOpts.DebugPanel) {
			frame := result.Frame
			if frame == nil {
				current := machine.Frame()
				frame = &current
			}
			if err := r.renderer.Render(frame, machine.Snapshot()); err != nil {
				return finish(StopFaulted, fmt.Errorf("rendering frame: %w", err))
			}
		}
	}
}

// instructionAt returns the assembler text of the instruction at the given
// index, or an empty string if the index is past the end of the program.
func instructionAt(machine *interpreter.Machine, index uint16) string {
	program := machine.Program()
	if int(index) >= len(program) {
		return ""
	}
	return program[index].String()
}

// waitForCycle blocks until the next cycle is due. Host timer ticks that
// arrive while waiting are applied to the machine.
func (r *Runner) waitForCycle(ctx context.Context, machine *interpreter.Machine,
	cycleTicks, timerTicks <-chan time.Time) error {

	for {
		if cycleTicks == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timerTicks:
				machine.TickTimers()
			default:
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timerTicks:
			machine.TickTimers()
		case <-cycleTicks:
			return nil
		}
	}
}

func (r *Runner) writeListing(program []chip8.Instruction, path string, runOpts options.Runner) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating listing file %s: %w", path, err)
	}

	w := writer.New(program, file, writer.Options{
		HexComments:    runOpts.HexComments,
		OffsetComments: runOpts.OffsetComments,
	})
	if err := w.Write(); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing listing: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing listing file: %w", err)
	}
	return nil
}

// printInfo prints information about the program being run.
func (r *Runner) printInfo(opts options.Program, program []chip8.Instruction, runOpts options.Runner) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("instructions", len(program)),
		log.Int("hz", runOpts.CycleRate),
	)
	if !runOpts.RandomSeed {
		r.logger.Info("Using fixed random seed", log.String("seed", fmt.Sprint(runOpts.Seed)))
	}
}
