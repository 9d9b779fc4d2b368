// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string
	Output string // trace log, no trace is written if empty
	Verify string // reference trace log
	Batch  string // file pattern
	MemViz string // graphviz file for the final processor state
}

// Flags contains behavior options.
type Flags struct {
	System      string
	Binary      bool
	Origin      string // load address of raw binaries in hex
	Entry       string // start address in hex
	MaxSteps    uint64
	Breakpoints string // comma separated hex addresses
	Stats       string // listen address of the statistics server
	Debug       bool
	Quiet       bool
}

// EmulatorFlags contains processor behavior options.
type EmulatorFlags struct {
	Decimal      bool
	OfficialOnly bool
}

// Run contains the run options parsed from the string flags.
type Run struct {
	LoadAddress    uint16
	StartAddress   uint16
	HasStart       bool
	BreakAddresses []uint16
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	EmulatorFlags
	Run
}

// Emulator defines options to control the processor emulation.
type Emulator struct {
	DecimalMode  bool // execute ADC and SBC in BCD when the decimal flag is set
	OfficialOnly bool // unofficial opcodes are reported as illegal
}

// NewEmulator returns a new options instance with the defaults of the NES
// processor, which has the decimal mode circuit disabled.
func NewEmulator() Emulator {
	return Emulator{}
}
