// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/nes6502/internal/options"
)

const defaultOrigin = 0x8000

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Emulator{}, err
	}

	return opts, createEmulatorOptions(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nes6502 [options] <file to run>\n\n")
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
				msg: fmt.Sprintf("Potential argument %s found after file to run, please pass the file to run as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions parses the address options and normalizes string values.
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)

	opts.LoadAddress = defaultOrigin
	if opts.Origin != "" {
		origin, err := parseAddress(opts.Origin)
		if err != nil {
			return fmt.Errorf("parsing origin: %w", err)
		}
		opts.LoadAddress = origin
	}

	if opts.Entry != "" {
		entry, err := parseAddress(opts.Entry)
		if err != nil {
			return fmt.Errorf("parsing start address: %w", err)
		}
		opts.StartAddress = entry
		opts.HasStart = true
	}

	opts.BreakAddresses = nil
	if opts.Breakpoints == "" {
		return nil
	}
	for s := range strings.SplitSeq(opts.Breakpoints, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		address, err := parseAddress(s)
		if err != nil {
			return fmt.Errorf("parsing breakpoint: %w", err)
		}
		opts.BreakAddresses = append(opts.BreakAddresses, address)
	}
	return nil
}

// parseAddress parses a hexadecimal address with an optional $ or 0x prefix.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	if s == "" {
		return 0, errors.New("empty address")
	}

	value, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	return uint16(value), nil
}

// validateOptionCombinations checks for options that can not be used together.
func validateOptionCombinations(opts options.Program) error {
	if opts.Verify != "" && opts.Output == "" && opts.Batch == "" {
		return errors.New("verifying a trace requires an output file, set one with -o")
	}
	return nil
}

// createEmulatorOptions creates emulator options based on program options
func createEmulatorOptions(opts options.Program) options.Emulator {
	emuOptions := options.NewEmulator()
	emuOptions.DecimalMode = opts.Decimal
	emuOptions.OfficialOnly = opts.OfficialOnly
	return emuOptions
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the output trace log file, no trace is written if no name given")
	flags.StringVar(&opts.Verify, "verify", "", "reference trace log to compare the written trace against, for example nestest.log")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .log file naming, for example *.nes")
	flags.StringVar(&opts.MemViz, "memviz", "", "name of a graphviz file to write the final processor state to")
	flags.StringVar(&opts.System, "s", "", "system to emulate (nes, flat) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw binary file without any header")
	flags.StringVar(&opts.Origin, "origin", "8000", "load address of raw binary files in hex")
	flags.StringVar(&opts.Entry, "pc", "", "start address in hex, overrides the reset vector")
	flags.Uint64Var(&opts.MaxSteps, "steps", 0, "maximum number of instructions to execute, 0 for unlimited")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of hex addresses to stop execution at")
	flags.StringVar(&opts.Stats, "stats", "", "address to serve runtime statistics on, for example localhost:12600")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Decimal, "decimal", false, "enable decimal mode arithmetic, which the NES processor lacks")
	flags.BoolVar(&opts.OfficialOnly, "official", false, "treat unofficial opcodes as illegal")
}
