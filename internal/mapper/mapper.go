// Package mapper maps the cartridge PRG banks into the CPU address space.
package mapper

import (
	"errors"
	"fmt"

	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// Address range handled by the mapper.
const (
	Start = 0x6000
	End   = 0xffff
)

const (
	prgRAMStart    = 0x6000
	prgRAMSize     = 0x2000
	prgROMStart    = 0x8000
	bankWindowSize = 0x4000
	addressShifts  = 14
)

// Supported iNES mapper numbers.
const (
	NROM  = 0
	UxROM = 2
	CNROM = 3
)

// ErrUnsupportedMapper is returned for cartridges using an unsupported mapper.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

var (
	_ arch.Device       = &Mapper{}
	_ arch.DevicePeeker = &Mapper{}
)

// Mapper exposes the cartridge PRG ROM in two 16KB windows at $8000 and
// $C000 and 8KB of PRG RAM at $6000.
type Mapper struct {
	logger *log.Logger
	id     uint16

	banksMapped []mappedBank
	mapped      [2]mappedBank

	prgRAM [prgRAMSize]byte
}

type mappedBank struct {
	id   int
	data []byte
}

// New creates a new mapper for the cartridge. Cartridges with a single 16KB
// bank see it mirrored into both windows.
func New(logger *log.Logger, cart *cartridge.Cartridge) (*Mapper, error) {
	switch cart.Mapper {
	case NROM, UxROM, CNROM:
	default:
		return nil, fmt.Errorf("mapper %d: %w", cart.Mapper, ErrUnsupportedMapper)
	}

	prgSize := len(cart.PRG)
	if prgSize == 0 || prgSize%bankWindowSize != 0 {
		return nil, fmt.Errorf("invalid bank alignment for PRG size %d", prgSize)
	}

	m := &Mapper{
		logger:      logger,
		id:          cart.Mapper,
		banksMapped: make([]mappedBank, prgSize/bankWindowSize),
	}
	for i := range m.banksMapped {
		pointer := i * bankWindowSize
		m.banksMapped[i] = mappedBank{
			id:   i,
			data: cart.PRG[pointer : pointer+bankWindowSize],
		}
	}

	m.mapped[0] = m.banksMapped[0]
	m.mapped[1] = m.banksMapped[len(m.banksMapped)-1]
	return m, nil
}

// Banks returns the number of 16KB PRG banks.
func (m *Mapper) Banks() int {
	return len(m.banksMapped)
}

// MappedBank returns the id of the bank mapped at the address.
func (m *Mapper) MappedBank(address uint16) int {
	return m.mapped[bankWindow(address)].id
}

func (m *Mapper) ReadRegister(address uint16) byte {
	return m.PeekRegister(address)
}

func (m *Mapper) PeekRegister(address uint16) byte {
	if address < prgROMStart {
		return m.prgRAM[(address-prgRAMStart)%prgRAMSize]
	}

	bnk := m.mapped[bankWindow(address)]
	return bnk.data[int(address)%bankWindowSize]
}

// WriteRegister stores to PRG RAM or, for UxROM, selects the bank mapped
// into the first window. Writes to ROM are ignored otherwise.
func (m *Mapper) WriteRegister(address uint16, value byte) {
	if address < prgROMStart {
		m.prgRAM[(address-prgRAMStart)%prgRAMSize] = value
		return
	}
	if m.id != UxROM {
		return
	}

	bnk := m.banksMapped[int(value)%len(m.banksMapped)]
	m.mapped[0] = bnk
	m.logger.Debug("Switched PRG bank",
		log.Int("bank", bnk.id),
		log.Hex("address", address))
}

func bankWindow(address uint16) int {
	return int(address-prgROMStart) >> addressShifts
}
