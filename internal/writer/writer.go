// Package writer implements the disassembly listing output of a decoded program.
package writer

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Options of the writer.
type Options struct {
	HexComments    bool // output the instruction word as hex value in comments
	OffsetComments bool // output the instruction index in comments
}

// Writer writes a listing of a decoded program.
type Writer struct {
	program []chip8.Instruction
	options Options
	writer  io.Writer

	labels map[uint16]string
}

// New creates a new writer.
func New(program []chip8.Instruction, writer io.Writer, options Options) *Writer {
	return &Writer{
		program: program,
		options: options,
		writer:  writer,
		labels:  collectLabels(program),
	}
}

// Write writes the comment header, all instructions with their labels and
// the aliases of targets outside of the program.
func (w *Writer) Write() error {
	if err := w.writeCommentHeader(); err != nil {
		return err
	}

	for i, ins := range w.program {
		if err := w.writeLabel(i); err != nil {
			return err
		}
		if err := w.writeCodeLine(i, ins); err != nil {
			return err
		}
	}

	return w.outputAliasMap()
}

// Label returns the label name of a jump or call target.
func (w *Writer) Label(address uint16) (string, bool) {
	name, ok := w.labels[address]
	return name, ok
}

// collectLabels names all jump and call targets. A target that is called
// and jumped to is named as subroutine.
func collectLabels(program []chip8.Instruction) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	for _, ins := range program {
		target, ok := ins.Target()
		if !ok {
			continue
		}
		if ins.IsCall() {
			calls.Add(target)
		} else {
			jumps.Add(target)
		}
	}

	labels := map[uint16]string{}
	for _, ins := range program {
		target, ok := ins.Target()
		if !ok {
			continue
		}
		if _, named := labels[target]; named {
			continue
		}
		switch {
		case calls.Contains(target):
			labels[target] = fmt.Sprintf("sub_%03X", target)
		case jumps.Contains(target):
			labels[target] = fmt.Sprintf("jump_%03X", target)
		}
	}
	return labels
}

func (w *Writer) writeCommentHeader() error {
	data := make([]byte, 0, 2*len(w.program))
	for _, ins := range w.program {
		data = binary.BigEndian.AppendUint16(data, ins.Word())
	}
	checksum := crc32.Checksum(data, crc32.MakeTable(crc32.IEEE))

	if _, err := fmt.Fprintf(w.writer, "; Program CRC32 checksum: %08x\n", checksum); err != nil {
		return fmt.Errorf("writing program checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Instructions: %d\n\n", len(w.program)); err != nil {
		return fmt.Errorf("writing instruction count: %w", err)
	}
	return nil
}

func (w *Writer) writeLabel(index int) error {
	label, ok := w.Label(uint16(index))
	if !ok {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "%s:\n", label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w *Writer) writeCodeLine(index int, ins chip8.Instruction) error {
	code := ins.String()
	if target, ok := ins.Target(); ok {
		if label, ok := w.Label(target); ok {
			code = ins.Mnemonic() + " " + label
		}
	}

	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%03X", index))
	}
	if w.options.HexComments {
		comments = append(comments, fmt.Sprintf("%04X", ins.Word()))
	}

	var err error
	if len(comments) == 0 {
		_, err = fmt.Fprintf(w.writer, "  %s\n", code)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, strings.Join(comments, "  "))
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// outputAliasMap outputs the labels of targets that are past the end of
// the program, the listing would otherwise reference undefined labels.
func (w *Writer) outputAliasMap() error {
	aliases := map[string]uint16{}
	for address, label := range w.labels {
		if int(address) >= len(w.program) {
			aliases[label] = address
		}
	}
	if len(aliases) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	// sort the aliases by name before outputting to avoid random map order
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w.writer, "%s = $%03X\n", name, aliases[name]); err != nil {
			return fmt.Errorf("writing alias: %w", err)
		}
	}
	return nil
}
