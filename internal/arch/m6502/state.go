package m6502

import (
	"fmt"

	"github.com/retroenv/nes6502/internal/arch"
)

// StackBase is the address of the page that holds the hardware stack.
const StackBase = 0x0100

// State is the register file of the processor.
type State struct {
	PC    uint16 // program counter
	A     byte   // accumulator
	X     byte   // index register X
	Y     byte   // index register Y
	SP    byte   // stack pointer, offset into the stack page
	Flags Flags
}

// Push writes a byte to the stack and decrements the stack pointer.
// The stack pointer wraps around inside the stack page.
func (s *State) Push(mem arch.Memory, value byte) {
	mem.Write(StackBase|uint16(s.SP), value)
	s.SP--
}

// Pull increments the stack pointer and returns the byte on top of the stack.
func (s *State) Pull(mem arch.Memory) byte {
	s.SP++
	return mem.Read(StackBase | uint16(s.SP))
}

// PushWord pushes the high byte first so that the word is stored little endian.
func (s *State) PushWord(mem arch.Memory, value uint16) {
	s.Push(mem, byte(value>>8))
	s.Push(mem, byte(value))
}

// PullWord pulls a word that was pushed with PushWord.
func (s *State) PullWord(mem arch.Memory) uint16 {
	low := uint16(s.Pull(mem))
	high := uint16(s.Pull(mem))
	return high<<8 | low
}

func (s State) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X %s",
		s.PC, s.A, s.X, s.Y, s.Flags.Byte(), s.SP, s.Flags)
}
