// Package loader handles loading of textual CHIP-8 programs.
//
// A program contains one instruction per line, written as exactly four
// hexadecimal characters without surrounding whitespace or comments.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// MaxInstructions is the maximum program length, the size of the address
// space that jump and call targets can reach.
const MaxInstructions = 0x1000

const wordLength = 4

var (
	// ErrInvalidLength is returned for lines that do not have exactly four characters.
	ErrInvalidLength = errors.New("instruction must be 4 hex characters")
	// ErrInvalidHex is returned for lines that contain non hex characters.
	ErrInvalidHex = errors.New("invalid hex characters")
	// ErrProgramTooLarge is returned for programs exceeding MaxInstructions.
	ErrProgramTooLarge = errors.New("program too large")
)

// ParseError describes a line of the program that could not be loaded.
type ParseError struct {
	Line  int // 1-based line number
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: token %q: %s", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader handles loading program files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads and decodes the program file at the given path.
func (l *Loader) Load(path string) ([]chip8.Instruction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if l.logger != nil {
		l.logger.Debug("Program loaded",
			log.String("file", path),
			log.Int("instructions", len(program)))
	}
	return program, nil
}

// Parse reads a program from the reader and decodes every line into an
// instruction.
func Parse(reader io.Reader) ([]chip8.Instruction, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return ParseText(string(data))
}

// ParseText decodes a program given as text. A single trailing newline is
// permitted, line endings are not normalized.
func ParseText(text string) ([]chip8.Instruction, error) {
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) > MaxInstructions {
		return nil, fmt.Errorf("%w: %d instructions, maximum is %d",
			ErrProgramTooLarge, len(lines), MaxInstructions)
	}

	program := make([]chip8.Instruction, 0, len(lines))
	for i, line := range lines {
		ins, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{
				Line:  i + 1,
				Token: line,
				Err:   err,
			}
		}
		program = append(program, ins)
	}
	return program, nil
}

func parseLine(line string) (chip8.Instruction, error) {
	if len(line) != wordLength {
		return chip8.Instruction{}, ErrInvalidLength
	}

	word, err := strconv.ParseUint(line, 16, 16)
	if err != nil {
		return chip8.Instruction{}, ErrInvalidHex
	}

	ins, err := chip8.Decode(uint16(word))
	if err != nil {
		return chip8.Instruction{}, fmt.Errorf("decoding: %w", err)
	}
	return ins, nil
}
