// Package verification verifies that a written trace log matches a reference log.
package verification

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// entry contains the fields of a trace line that are compared.
type entry struct {
	pc        uint16
	bytes     string
	a, x, y   byte
	p, sp     byte
	cycles    uint64
	hasCycles bool
}

// VerifyTrace verifies that the trace log written to the output file matches
// the reference log, for example the nestest log. Only the program counter,
// the instruction bytes, the registers and the cycle counter are compared,
// the disassembly and columns of other emulated chips are ignored.
func VerifyTrace(logger *log.Logger, options options.Program) error {
	if options.Output == "" {
		return errors.New("can not verify console output")
	}

	reference, err := readEntries(options.Verify)
	if err != nil {
		return fmt.Errorf("reading reference log: %w", err)
	}
	trace, err := readEntries(options.Output)
	if err != nil {
		return fmt.Errorf("reading trace log: %w", err)
	}

	if err := compareEntries(logger, reference, trace); err != nil {
		return fmt.Errorf("trace mismatch: %w", err)
	}
	return nil
}

func readEntries(fileName string) ([]entry, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file '%s': %w", fileName, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return parseEntries(file)
}

func parseEntries(reader io.Reader) ([]entry, error) {
	var entries []entry

	scanner := bufio.NewScanner(reader)
	var lineNumber int
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r ")
		if line == "" {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNumber, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}
	return entries, nil
}

// parseLine parses a line in the nestest log format:
// C000  4C F5 C5  JMP $C5F5    A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
func parseLine(line string) (entry, error) {
	const bytesStart, bytesEnd = 6, 15

	if len(line) < bytesEnd {
		return entry{}, fmt.Errorf("line too short: '%s'", line)
	}

	pc, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return entry{}, fmt.Errorf("parsing program counter: %w", err)
	}
	e := entry{
		pc:    uint16(pc),
		bytes: strings.TrimSpace(line[bytesStart:bytesEnd]),
	}

	registers := map[string]*byte{
		"A:":  &e.a,
		"X:":  &e.x,
		"Y:":  &e.y,
		"P:":  &e.p,
		"SP:": &e.sp,
	}
	found := 0

	for _, field := range strings.Fields(line[bytesEnd:]) {
		if value, ok := strings.CutPrefix(field, "CYC:"); ok {
			e.cycles, err = strconv.ParseUint(value, 10, 64)
			if err != nil {
				return entry{}, fmt.Errorf("parsing cycles: %w", err)
			}
			e.hasCycles = true
			continue
		}

		key, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		register, ok := registers[key+":"]
		if !ok || len(value) != 2 {
			continue
		}
		b, err := strconv.ParseUint(value, 16, 8)
		if err != nil {
			return entry{}, fmt.Errorf("parsing register %s: %w", key, err)
		}
		*register = byte(b)
		found++
	}

	if found < len(registers) {
		return entry{}, fmt.Errorf("missing register values in line '%s'", line)
	}
	return e, nil
}

func compareEntries(logger *log.Logger, reference, trace []entry) error {
	if len(trace) < len(reference) {
		return fmt.Errorf("trace ended after %d of %d reference lines", len(trace), len(reference))
	}

	var diffs uint64
	for i, expected := range reference {
		got := trace[i]
		if entriesEqual(expected, got) {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Trace line mismatch",
				log.Int("line", i+1),
				log.Hex("expected_pc", expected.pc),
				log.Hex("got_pc", got.pc),
				log.String("expected", expected.registers()),
				log.String("got", got.registers()))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d line mismatches", diffs)
}

// entriesEqual compares the entries, cycles are only compared when both
// logs contain them.
func entriesEqual(expected, got entry) bool {
	if expected.hasCycles && got.hasCycles && expected.cycles != got.cycles {
		return false
	}
	expected.cycles, got.cycles = 0, 0
	expected.hasCycles, got.hasCycles = false, false
	return expected == got
}

func (e entry) registers() string {
	return fmt.Sprintf("%04X %-8s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		e.pc, e.bytes, e.a, e.x, e.y, e.p, e.sp, e.cycles)
}
