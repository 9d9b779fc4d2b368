// Package m6502 provides an instruction accurate emulation of the NMOS 6502
// processor as used in the NES.
package m6502

import (
	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/log"
)

// CPU executes instructions against a memory bus. It is not safe for
// concurrent use, callers serialize access.
type CPU struct {
	State

	logger *log.Logger
	mem    arch.Memory
	opts   options.Emulator

	cycles     uint64
	nmiPending bool
	irqLine    bool

	// set by the instruction handlers during a step
	extraCycles int
	branchTaken bool
}

// Result describes the instruction executed by a single step.
type Result struct {
	Address     uint16 // address of the opcode
	Opcode      byte
	Name        string
	Addressing  cpu6502.AddressingMode
	Operand     Operand
	Cycles      int  // elapsed cycles including penalties and interrupt servicing
	PageCrossed bool // an indexed read or taken branch crossed a page
	BranchTaken bool
	Interrupt   Interrupt // interrupt serviced after the instruction
}

// New returns a processor in its power on state. Reset has to be called
// before the first step unless the program counter is set explicitly.
func New(logger *log.Logger, mem arch.Memory, opts options.Emulator) *CPU {
	return &CPU{
		State: State{
			Flags: Flags{InterruptDisable: true},
		},
		logger: logger,
		mem:    mem,
		opts:   opts,
	}
}

// Cycles returns the number of cycles elapsed since power on.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Memory returns the bus the processor executes against.
func (c *CPU) Memory() arch.Memory {
	return c.mem
}

// Step executes a single instruction and services a pending interrupt after it.
// An opcode that can not be executed returns an IllegalOpcodeError and
// leaves the state unchanged.
func (c *CPU) Step() (Result, error) {
	address := c.PC
	b := c.mem.Read(address)
	op := opcodes[b]
	if !c.executable(op) {
		c.logger.Debug("Illegal opcode",
			log.Hex("opcode", b),
			log.Hex("address", address))
		return Result{Address: address, Opcode: b}, &IllegalOpcodeError{Opcode: b, Address: address}
	}

	resolve := resolvers[op.addressing]
	operand := resolve(c.mem, &c.State)
	c.PC += uint16(operand.Size)

	c.extraCycles = 0
	c.branchTaken = false
	irqMasked := c.Flags.InterruptDisable
	op.instruction.handler(c, operand)
	if !op.instruction.delaysIRQ {
		irqMasked = c.Flags.InterruptDisable
	}

	res := Result{
		Address:     address,
		Opcode:      b,
		Name:        op.instruction.name,
		Addressing:  op.addressing,
		Operand:     operand,
		Cycles:      int(op.cycles) + c.extraCycles,
		BranchTaken: c.branchTaken,
	}
	if op.pageCross && operand.PageCrossed {
		res.Cycles++
		res.PageCrossed = true
	}
	if c.branchTaken && operand.PageCrossed {
		res.PageCrossed = true
	}

	res.Interrupt = c.pollInterrupts(irqMasked)
	if res.Interrupt != NoInterrupt {
		res.Cycles += interruptCycles
	}

	c.cycles += uint64(res.Cycles)
	return res, nil
}

func (c *CPU) executable(op opcode) bool {
	if op.instruction == nil {
		return false
	}
	return !op.instruction.unofficial || !c.opts.OfficialOnly
}
