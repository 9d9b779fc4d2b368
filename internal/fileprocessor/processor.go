// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/nes6502/internal/pipeline"
	"github.com/retroenv/nes6502/internal/verification"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow. The trace log
// is closed before it gets verified against the reference log.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, emuOpts options.Emulator) error {
	traceFile, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	var writer io.Writer
	if traceFile != nil {
		writer = traceFile
	}

	p := pipeline.New(logger)
	_, err = p.Execute(ctx, opts, emuOpts, writer)

	if traceFile != nil {
		if closeErr := traceFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing trace file: %w", closeErr)
		}
	}
	if err != nil {
		return err
	}

	if opts.Verify != "" {
		if err := verification.VerifyTrace(logger, opts); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	return nil
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

// GenerateOutputFilename generates the trace log filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".log"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("nes6502", log.String("version", buildinfo.Version(version, commit, date)))
}

// traceFile buffers the trace lines written to the output file.
type traceFile struct {
	*bufio.Writer
	file *os.File
}

func (t *traceFile) Close() error {
	if err := t.Flush(); err != nil {
		_ = t.file.Close()
		return fmt.Errorf("flushing file: %w", err)
	}
	if err := t.file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// createWriter returns the trace writer for the output file, nil is returned
// if no output file is set.
func createWriter(opts options.Program) (*traceFile, error) {
	if opts.Output == "" {
		return nil, nil //nolint:nilnil // no trace requested
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return &traceFile{
		Writer: bufio.NewWriter(file),
		file:   file,
	}, nil
}
