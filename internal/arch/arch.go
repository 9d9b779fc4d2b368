// Package arch contains the interfaces shared between the CPU core and the
// hardware attached to it. It acts as a bridge between the processor and the
// system specific bus and device code.
package arch

// Memory is the byte addressable 16 bit address space the processor executes against.
// Implementations are total: every address can be read and written without failing.
type Memory interface {
	// Read returns the byte at the address, triggering any device side effects.
	Read(address uint16) byte
	// Write stores the byte at the address.
	Write(address uint16, value byte)
}

// Peeker reads memory without triggering device side effects or updating
// the open bus value. It is used by tracing and debugging code.
type Peeker interface {
	Peek(address uint16) byte
}

// Bus is a memory that supports side effect free reads.
type Bus interface {
	Memory
	Peeker
}

// Device is a memory mapped peripheral that owns an address window on the bus.
// The address passed is the full CPU address after the bus resolved mirroring.
type Device interface {
	ReadRegister(address uint16) byte
	WriteRegister(address uint16, value byte)
}

// DevicePeeker is implemented by devices whose registers can be read without side effects.
type DevicePeeker interface {
	PeekRegister(address uint16) byte
}
