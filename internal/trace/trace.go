// Package trace writes an execution log of the processor in the format of
// the widely used nestest reference log.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/nes6502/internal/arch/m6502"
	cpu "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

const (
	bytesColumnWidth       = 9
	instructionColumnWidth = 33
)

// Writer formats one line per executed instruction. Memory is only accessed
// through Peek so that tracing does not trigger device side effects.
type Writer struct {
	writer io.Writer
	mem    arch.Peeker
}

// New creates a new trace writer.
func New(writer io.Writer, mem arch.Peeker) *Writer {
	return &Writer{
		writer: writer,
		mem:    mem,
	}
}

// Write logs the instruction at the program counter of the state, it has to
// be called before the instruction is executed.
func (w *Writer) Write(state m6502.State, cycles uint64) error {
	line := Line(w.mem, state, cycles)
	if _, err := fmt.Fprintln(w.writer, line); err != nil {
		return fmt.Errorf("writing trace line: %w", err)
	}
	return nil
}

// Line returns the trace line for the instruction at the program counter.
// Bytes that are not a known opcode are printed as a single data byte.
func Line(mem arch.Peeker, state m6502.State, cycles uint64) string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%04X  ", state.PC)

	b := mem.Peek(state.PC)
	info, ok := m6502.Lookup(b)
	if !ok {
		fmt.Fprintf(buf, "%-*s", bytesColumnWidth, fmt.Sprintf("%02X", b))
		fmt.Fprintf(buf, "%-*s", instructionColumnWidth, fmt.Sprintf(" .BYTE $%02X", b))
		writeRegisters(buf, state, cycles)
		return buf.String()
	}

	opcodeBytes := make([]string, info.Size)
	for i := range info.Size {
		opcodeBytes[i] = fmt.Sprintf("%02X", mem.Peek(state.PC+uint16(i)))
	}
	fmt.Fprintf(buf, "%-*s", bytesColumnWidth, strings.Join(opcodeBytes, " "))

	prefix := " "
	if info.Unofficial {
		prefix = "*"
	}
	instruction := prefix + strings.ToUpper(info.Name)
	if operand := formatOperand(peekMemory{peeker: mem}, state, info); operand != "" {
		instruction += " " + operand
	}
	fmt.Fprintf(buf, "%-*s", instructionColumnWidth, instruction)

	writeRegisters(buf, state, cycles)
	return buf.String()
}

func writeRegisters(buf *strings.Builder, state m6502.State, cycles uint64) {
	fmt.Fprintf(buf, "A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		state.A, state.X, state.Y, state.Flags.Byte(), state.SP, cycles)
}

type operandFormatterFunc func(mem peekMemory, state m6502.State, op m6502.Operand, name string) string

var operandFormatters = map[cpu.AddressingMode]operandFormatterFunc{
	cpu.ImpliedAddressing:     formatImplied,
	cpu.AccumulatorAddressing: formatAccumulator,
	cpu.ImmediateAddressing:   formatImmediate,
	cpu.AbsoluteAddressing:    formatAbsolute,
	cpu.AbsoluteXAddressing:   formatAbsoluteIndexed("X"),
	cpu.AbsoluteYAddressing:   formatAbsoluteIndexed("Y"),
	cpu.ZeroPageAddressing:    formatZeroPage,
	cpu.ZeroPageXAddressing:   formatZeroPageIndexed("X"),
	cpu.ZeroPageYAddressing:   formatZeroPageIndexed("Y"),
	cpu.RelativeAddressing:    formatRelative,
	cpu.IndirectAddressing:    formatIndirect,
	cpu.IndirectXAddressing:   formatIndirectX,
	cpu.IndirectYAddressing:   formatIndirectY,
}

func formatOperand(mem peekMemory, state m6502.State, info m6502.OpcodeInfo) string {
	fun, ok := operandFormatters[info.Addressing]
	if !ok {
		return ""
	}
	op := m6502.ResolveOperand(mem, state, info.Addressing)
	return fun(mem, state, op, info.Name)
}

func formatImplied(peekMemory, m6502.State, m6502.Operand, string) string {
	return ""
}

func formatAccumulator(peekMemory, m6502.State, m6502.Operand, string) string {
	return "A"
}

func formatImmediate(_ peekMemory, _ m6502.State, op m6502.Operand, _ string) string {
	return fmt.Sprintf("#$%02X", op.Value)
}

// formatAbsolute omits the memory content for jumps as the target is code.
func formatAbsolute(mem peekMemory, _ m6502.State, op m6502.Operand, name string) string {
	if name == "jmp" || name == "jsr" {
		return fmt.Sprintf("$%04X", op.Address)
	}
	return fmt.Sprintf("$%04X = %02X", op.Address, mem.Read(op.Address))
}

func formatAbsoluteIndexed(register string) operandFormatterFunc {
	return func(mem peekMemory, state m6502.State, op m6502.Operand, _ string) string {
		base := mem.readWord(state.PC + 1)
		return fmt.Sprintf("$%04X,%s @ %04X = %02X", base, register, op.Address, mem.Read(op.Address))
	}
}

func formatZeroPage(mem peekMemory, _ m6502.State, op m6502.Operand, _ string) string {
	return fmt.Sprintf("$%02X = %02X", op.Address, mem.Read(op.Address))
}

func formatZeroPageIndexed(register string) operandFormatterFunc {
	return func(mem peekMemory, state m6502.State, op m6502.Operand, _ string) string {
		base := mem.Read(state.PC + 1)
		return fmt.Sprintf("$%02X,%s @ %02X = %02X", base, register, op.Address, mem.Read(op.Address))
	}
}

func formatRelative(_ peekMemory, _ m6502.State, op m6502.Operand, _ string) string {
	return fmt.Sprintf("$%04X", op.Address)
}

func formatIndirect(mem peekMemory, state m6502.State, op m6502.Operand, _ string) string {
	pointer := mem.readWord(state.PC + 1)
	return fmt.Sprintf("($%04X) = %04X", pointer, op.Address)
}

func formatIndirectX(mem peekMemory, state m6502.State, op m6502.Operand, _ string) string {
	base := mem.Read(state.PC + 1)
	return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X",
		base, base+state.X, op.Address, mem.Read(op.Address))
}

func formatIndirectY(mem peekMemory, state m6502.State, op m6502.Operand, _ string) string {
	base := mem.Read(state.PC + 1)
	pointer := op.Address - uint16(state.Y)
	return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X",
		base, pointer, op.Address, mem.Read(op.Address))
}

// peekMemory adapts a peeker to the memory interface used by the operand
// resolver, writes are dropped.
type peekMemory struct {
	peeker arch.Peeker
}

func (p peekMemory) Read(address uint16) byte {
	return p.peeker.Peek(address)
}

func (p peekMemory) Write(uint16, byte) {}

func (p peekMemory) readWord(address uint16) uint16 {
	return uint16(p.Read(address+1))<<8 | uint16(p.Read(address))
}
