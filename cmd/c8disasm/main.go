// Package main implements a CHIP-8 program disassembler that writes a
// listing of a textual program.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	verify bool
	quiet  bool

	noHexComments bool
	noOffsets     bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner(options)
	}

	if err := disasmFile(options); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.verify, "verify", false, "verify that the decoded instructions encode to the input words")
	flags.BoolVar(&options.noHexComments, "nohexcomments", false, "do not output instruction words as hex values in comments")
	flags.BoolVar(&options.noOffsets, "nooffsets", false, "do not output instruction indexes in comments")
	flags.StringVar(&options.output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: c8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[-----------------------------------------]")
		fmt.Println("[ c8disasm - CHIP-8 program disassembler  ]")
		fmt.Printf("[-----------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func disasmFile(options optionFlags) error {
	program, err := loader.New(nil).Load(options.input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	var outputFile io.WriteCloser
	if options.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.output, err)
		}
	}

	w := writer.New(program, outputFile, writer.Options{
		HexComments:    !options.noHexComments,
		OffsetComments: !options.noOffsets,
	})
	if err = w.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	if outputFile != os.Stdout {
		if err = outputFile.Close(); err != nil {
			return fmt.Errorf("closing file: %w", err)
		}
	}

	if options.verify {
		if err = verifyOutput(program, options); err != nil {
			return err
		}
		if !options.quiet {
			fmt.Println("Decoded program matched input file.")
		}
	}
	return nil
}

// verifyOutput checks that the instruction words of the decoded program
// match the words of the input file.
func verifyOutput(program []chip8.Instruction, options optionFlags) error {
	source, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading file for comparison: %w", err)
	}

	input := strings.Split(strings.TrimSuffix(string(source), "\n"), "\n")
	output := make([]string, 0, len(program))
	for _, ins := range program {
		output = append(output, fmt.Sprintf("%04X", ins.Word()))
	}
	return checkWordsEqual(input, output)
}

func checkWordsEqual(input, output []string) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	firstDiff := -1
	for i := range input {
		if strings.EqualFold(input[i], output[i]) {
			continue
		}
		diffs++
		if firstDiff == -1 {
			firstDiff = i
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d instruction mismatches, first at line %d", diffs, firstDiff+1)
}
