// Package fileprocessor handles file selection and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile runs the program file given in the options and logs a summary
// of the run.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, runOpts options.Runner) error {
	renderer := createRenderer(logger, &runOpts)

	r := runner.New(logger, renderer)
	summary, err := r.Execute(ctx, opts, runOpts)
	if err != nil {
		return fmt.Errorf("running %s: %w", opts.Input, err)
	}

	logSummary(logger, opts, summary)
	return nil
}

// createRenderer returns a terminal renderer for the standard output. If the
// terminal can not fit the output, the run continues headless.
func createRenderer(logger *log.Logger, runOpts *options.Runner) display.Renderer {
	if !runOpts.Terminal {
		return display.Headless{}
	}

	term := display.NewTerminal(os.Stdout, display.Options{
		DebugPanel: runOpts.DebugPanel,
	})
	if err := term.CheckSize(int(os.Stdout.Fd())); err != nil {
		logger.Warn("Terminal output disabled", log.Err(err))
		runOpts.Terminal = false
		return display.Headless{}
	}
	return term
}

func logSummary(logger *log.Logger, opts options.Program, summary runner.Summary) {
	if opts.Quiet {
		return
	}

	delay, sound := summary.Snapshot.Delay, summary.Snapshot.Sound
	logger.Info("Execution finished",
		log.String("file", opts.Input),
		log.Stringer("reason", summary.Reason),
		log.Int("cycles", int(summary.Cycles)),
		log.Hex("pc", summary.Snapshot.PC),
		log.Hex("index", summary.Snapshot.Index),
		log.Uint8("delay", delay),
		log.Uint8("sound", sound),
	)
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates an output filename with the given
// extension for a given input file
func GenerateOutputFilename(inputFile, extension string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + extension
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
