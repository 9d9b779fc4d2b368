package m6502

import (
	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// OperandKind describes where an instruction finds its operand.
type OperandKind uint8

// Operand kinds returned by the addressing mode resolvers.
const (
	ImpliedOperand OperandKind = iota
	AccumulatorOperand
	ImmediateOperand
	MemoryOperand
)

// Operand is the resolved operand of an instruction.
type Operand struct {
	Kind OperandKind
	// Address is the effective address of memory operands, the branch
	// target of relative operands and the jump target of indirect operands.
	Address uint16
	// Value is the operand byte of immediate operands.
	Value byte
	// Size is the instruction length in bytes including the opcode.
	Size int
	// PageCrossed is set when indexing or a branch target crossed a page boundary.
	PageCrossed bool
}

type resolverFunc func(mem arch.Memory, s *State) Operand

// resolvers maps every addressing mode to the function computing its operand.
// All resolvers read the instruction starting at the current program counter
// and do not modify the state.
var resolvers = map[cpu6502.AddressingMode]resolverFunc{
	cpu6502.ImpliedAddressing:     resolveImplied,
	cpu6502.ImmediateAddressing:   resolveImmediate,
	cpu6502.AccumulatorAddressing: resolveAccumulator,
	cpu6502.AbsoluteAddressing:    resolveAbsolute,
	cpu6502.AbsoluteXAddressing:   resolveAbsoluteX,
	cpu6502.AbsoluteYAddressing:   resolveAbsoluteY,
	cpu6502.ZeroPageAddressing:    resolveZeroPage,
	cpu6502.ZeroPageXAddressing:   resolveZeroPageX,
	cpu6502.ZeroPageYAddressing:   resolveZeroPageY,
	cpu6502.RelativeAddressing:    resolveRelative,
	cpu6502.IndirectAddressing:    resolveIndirect,
	cpu6502.IndirectXAddressing:   resolveIndirectX,
	cpu6502.IndirectYAddressing:   resolveIndirectY,
}

// InstructionSize returns the length in bytes of an instruction using the
// addressing mode, including the opcode byte.
func InstructionSize(addressing cpu6502.AddressingMode) int {
	switch addressing {
	case cpu6502.ImpliedAddressing, cpu6502.AccumulatorAddressing:
		return 1
	case cpu6502.AbsoluteAddressing, cpu6502.AbsoluteXAddressing, cpu6502.AbsoluteYAddressing,
		cpu6502.IndirectAddressing:
		return 3
	default:
		return 2
	}
}

// ResolveOperand computes the operand of the instruction at the program
// counter of the state using the addressing mode. Unknown modes resolve to
// an implied operand.
func ResolveOperand(mem arch.Memory, s State, addressing cpu6502.AddressingMode) Operand {
	resolve, ok := resolvers[addressing]
	if !ok {
		return resolveImplied(mem, &s)
	}
	return resolve(mem, &s)
}

func resolveImplied(arch.Memory, *State) Operand {
	return Operand{Kind: ImpliedOperand, Size: 1}
}

func resolveAccumulator(arch.Memory, *State) Operand {
	return Operand{Kind: AccumulatorOperand, Size: 1}
}

func resolveImmediate(mem arch.Memory, s *State) Operand {
	return Operand{
		Kind:    ImmediateOperand,
		Address: s.PC + 1,
		Value:   mem.Read(s.PC + 1),
		Size:    2,
	}
}

func resolveZeroPage(mem arch.Memory, s *State) Operand {
	return zeroPageOperand(mem.Read(s.PC + 1))
}

// zero page indexing wraps around inside the zero page.
func resolveZeroPageX(mem arch.Memory, s *State) Operand {
	return zeroPageOperand(mem.Read(s.PC+1) + s.X)
}

func resolveZeroPageY(mem arch.Memory, s *State) Operand {
	return zeroPageOperand(mem.Read(s.PC+1) + s.Y)
}

func zeroPageOperand(address byte) Operand {
	return Operand{
		Kind:    MemoryOperand,
		Address: uint16(address),
		Size:    2,
	}
}

func resolveAbsolute(mem arch.Memory, s *State) Operand {
	return Operand{
		Kind:    MemoryOperand,
		Address: readWord(mem, s.PC+1),
		Size:    3,
	}
}

func resolveAbsoluteX(mem arch.Memory, s *State) Operand {
	return indexedOperand(readWord(mem, s.PC+1), s.X, 3)
}

func resolveAbsoluteY(mem arch.Memory, s *State) Operand {
	return indexedOperand(readWord(mem, s.PC+1), s.Y, 3)
}

func indexedOperand(base uint16, index byte, size int) Operand {
	address := base + uint16(index)
	return Operand{
		Kind:        MemoryOperand,
		Address:     address,
		Size:        size,
		PageCrossed: !samePage(base, address),
	}
}

// resolveRelative computes the branch target relative to the address of the
// next instruction. PageCrossed reports whether taking the branch would cross
// a page, the cycle penalty only applies to taken branches.
func resolveRelative(mem arch.Memory, s *State) Operand {
	offset := int8(mem.Read(s.PC + 1))
	next := s.PC + 2
	target := next + uint16(offset)
	return Operand{
		Kind:        MemoryOperand,
		Address:     target,
		Size:        2,
		PageCrossed: !samePage(next, target),
	}
}

// resolveIndirect reproduces the hardware bug of JMP ($xxFF) fetching the
// high byte of the target from $xx00 instead of the next page.
func resolveIndirect(mem arch.Memory, s *State) Operand {
	pointer := readWord(mem, s.PC+1)
	return Operand{
		Kind:    MemoryOperand,
		Address: readWordPageWrapped(mem, pointer),
		Size:    3,
	}
}

func resolveIndirectX(mem arch.Memory, s *State) Operand {
	pointer := mem.Read(s.PC+1) + s.X
	return Operand{
		Kind:    MemoryOperand,
		Address: readZeroPageWord(mem, pointer),
		Size:    2,
	}
}

func resolveIndirectY(mem arch.Memory, s *State) Operand {
	base := readZeroPageWord(mem, mem.Read(s.PC+1))
	return indexedOperand(base, s.Y, 2)
}

func readWord(mem arch.Memory, address uint16) uint16 {
	low := uint16(mem.Read(address))
	high := uint16(mem.Read(address + 1))
	return high<<8 | low
}

// readZeroPageWord reads a pointer from the zero page, the high byte of a
// pointer at $FF is read from $00.
func readZeroPageWord(mem arch.Memory, address byte) uint16 {
	low := uint16(mem.Read(uint16(address)))
	high := uint16(mem.Read(uint16(address + 1)))
	return high<<8 | low
}

func readWordPageWrapped(mem arch.Memory, address uint16) uint16 {
	low := uint16(mem.Read(address))
	high := uint16(mem.Read(address&0xff00 | uint16(byte(address)+1)))
	return high<<8 | low
}

func samePage(a, b uint16) bool {
	return a&0xff00 == b&0xff00
}
