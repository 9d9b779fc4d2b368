// Package mocks provides mock implementations of arch interfaces for testing.
package mocks

import "github.com/retroenv/nes6502/internal/arch"

var _ arch.Bus = &Memory{}

// Memory is a flat 64KB memory without mirroring or devices.
type Memory struct {
	Data [0x10000]byte

	Reads  int
	Writes int
}

// NewMemory returns a new memory that has the data placed at the origin.
func NewMemory(origin uint16, data ...byte) *Memory {
	m := &Memory{}
	m.Load(origin, data...)
	return m
}

// Load places data at the given address.
func (m *Memory) Load(address uint16, data ...byte) {
	for i, b := range data {
		m.Data[address+uint16(i)] = b
	}
}

// SetWord stores a little endian word, used to set up vectors and pointers.
func (m *Memory) SetWord(address, value uint16) {
	m.Data[address] = byte(value)
	m.Data[address+1] = byte(value >> 8)
}

func (m *Memory) Read(address uint16) byte {
	m.Reads++
	return m.Data[address]
}

func (m *Memory) Write(address uint16, value byte) {
	m.Writes++
	m.Data[address] = value
}

func (m *Memory) Peek(address uint16) byte {
	return m.Data[address]
}
