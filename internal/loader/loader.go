// Package loader handles program file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nes6502/internal/detector"
	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses a program file based on the system type and options.
// It supports the iNES format and raw binary files, raw binaries are
// returned as a cartridge with the whole file as PRG data.
func (l *Loader) Load(opts options.Program, system arch.System) (*cartridge.Cartridge, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	return l.LoadFromBytes(data, opts.Binary || system == detector.Flat)
}

// LoadFromBytes parses a program image held in memory.
func (l *Loader) LoadFromBytes(data []byte, binary bool) (*cartridge.Cartridge, error) {
	var reader io.Reader = bytes.NewReader(data)

	var (
		cart *cartridge.Cartridge
		err  error
	)
	if binary {
		cart, err = cartridge.LoadBuffer(reader)
	} else {
		cart, err = cartridge.LoadFile(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	// raw images are padded to a full PRG bank, only the file content is
	// placed into memory
	if binary && len(cart.PRG) > len(data) {
		cart.PRG = cart.PRG[:len(data)]
	}
	return cart, nil
}
