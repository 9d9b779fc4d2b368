package bus

import "github.com/retroenv/nes6502/internal/arch"

var _ arch.Bus = &Flat{}

// Flat is a 64KB RAM covering the whole address space, used for generic
// 6502 programs that do not expect the NES memory map.
type Flat struct {
	data [0x10000]byte
}

// NewFlat returns a new zeroed flat memory.
func NewFlat() *Flat {
	return &Flat{}
}

func (f *Flat) Read(address uint16) byte {
	return f.data[address]
}

func (f *Flat) Write(address uint16, value byte) {
	f.data[address] = value
}

func (f *Flat) Peek(address uint16) byte {
	return f.data[address]
}

// Load copies the data to the address, wrapping around at the end of the address space.
func (f *Flat) Load(address uint16, data []byte) {
	for i, value := range data {
		f.data[address+uint16(i)] = value
	}
}
