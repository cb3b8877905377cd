// Package display renders the CHIP-8 framebuffer and a debug panel to an ANSI
// terminal.
package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/interpreter"
)

const (
	pixelSet   = "█"
	pixelClear = " "

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"

	panelGap         = 2
	panelWidth       = 24
	stackPerLine     = 6
	registersPerLine = 2
)

// ErrTerminalTooSmall is returned if the terminal can not fit the output.
var ErrTerminalTooSmall = errors.New("terminal too small")

// Renderer outputs machine frames.
type Renderer interface {
	Render(frame *interpreter.Frame, snapshot interpreter.Snapshot) error
	Close() error
}

var (
	_ Renderer = (*Terminal)(nil)
	_ Renderer = Headless{}
)

// Options of the terminal renderer.
type Options struct {
	DebugPanel bool // show registers, index, stack and timers next to the frame
}

// Terminal renders frames using block characters and ANSI escape sequences.
type Terminal struct {
	writer  io.Writer
	options Options
	started bool
}

// NewTerminal returns a terminal renderer writing to the given writer.
func NewTerminal(writer io.Writer, options Options) *Terminal {
	return &Terminal{
		writer:  writer,
		options: options,
	}
}

// Size returns the number of columns and rows that the output needs.
func (t *Terminal) Size() (columns, rows int) {
	columns = interpreter.Width
	if t.options.DebugPanel {
		columns += panelGap + panelWidth
	}
	return columns, interpreter.Height
}

// Render draws the frame and, if enabled, the debug panel. The screen is
// cleared on the first call, every frame starts at the top left corner.
func (t *Terminal) Render(frame *interpreter.Frame, snapshot interpreter.Snapshot) error {
	buf := &strings.Builder{}
	if !t.started {
		buf.WriteString(clearScreen)
		buf.WriteString(hideCursor)
		t.started = true
	}
	buf.WriteString(cursorHome)

	var panel []string
	if t.options.DebugPanel {
		panel = debugPanel(snapshot)
	}

	for y := range interpreter.Height {
		for x := range interpreter.Width {
			if frame.Pixel(x, y) == 1 {
				buf.WriteString(pixelSet)
			} else {
				buf.WriteString(pixelClear)
			}
		}
		if y < len(panel) {
			buf.WriteString(strings.Repeat(" ", panelGap))
			buf.WriteString(panel[y])
		}
		buf.WriteString(clearLine)
		// a newline after the last row would scroll a terminal of exactly
		// Height rows
		if y < interpreter.Height-1 {
			buf.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(t.writer, buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close moves the cursor below the last frame and restores it if anything
// was rendered.
func (t *Terminal) Close() error {
	if !t.started {
		return nil
	}
	if _, err := io.WriteString(t.writer, "\n"+showCursor); err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	return nil
}

// debugPanel returns the lines of the debug panel, none is wider than
// panelWidth.
func debugPanel(snapshot interpreter.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("PC  $%03X  %s", snapshot.PC, snapshot.State),
		fmt.Sprintf("I   $%03X", snapshot.Index),
		fmt.Sprintf("DT  %02X    ST  %02X", snapshot.Delay, snapshot.Sound),
		"",
	}

	for reg := 0; reg < interpreter.RegisterCount; reg += registersPerLine {
		lines = append(lines, fmt.Sprintf("V%X  %02X    V%X  %02X",
			reg, snapshot.Registers[reg], reg+1, snapshot.Registers[reg+1]))
	}

	lines = append(lines, "", fmt.Sprintf("Stack %d/%d", snapshot.Stack.Depth, interpreter.StackSize))
	entries := snapshot.Stack.Entries()
	for i := 0; i < len(entries); i += stackPerLine {
		end := min(i+stackPerLine, len(entries))
		parts := make([]string, 0, stackPerLine)
		for _, address := range entries[i:end] {
			parts = append(parts, fmt.Sprintf("%03X", address))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// Headless discards all frames.
type Headless struct{}

// Render does nothing.
func (Headless) Render(*interpreter.Frame, interpreter.Snapshot) error { return nil }

// Close does nothing.
func (Headless) Close() error { return nil }
