package mocks

import "github.com/retroenv/nes6502/internal/arch"

var (
	_ arch.Device       = &Device{}
	_ arch.DevicePeeker = &Device{}
)

// Access is a register access recorded by Device.
type Access struct {
	Address uint16
	Value   byte
	Write   bool
}

// Device records all register accesses and returns the values stored in
// Registers for reads.
type Device struct {
	Registers map[uint16]byte
	Accesses  []Access
}

// NewDevice returns a new recording device.
func NewDevice() *Device {
	return &Device{
		Registers: map[uint16]byte{},
	}
}

func (d *Device) ReadRegister(address uint16) byte {
	value := d.Registers[address]
	d.Accesses = append(d.Accesses, Access{Address: address, Value: value})
	return value
}

func (d *Device) WriteRegister(address uint16, value byte) {
	d.Registers[address] = value
	d.Accesses = append(d.Accesses, Access{Address: address, Value: value, Write: true})
}

func (d *Device) PeekRegister(address uint16) byte {
	return d.Registers[address]
}
