package m6502

import (
	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/log"
)

// Interrupt identifies an interrupt sequence executed by the processor.
type Interrupt uint8

// Interrupt sequences.
const (
	NoInterrupt Interrupt = iota
	InterruptNMI
	InterruptIRQ
	InterruptReset
)

func (i Interrupt) String() string {
	switch i {
	case InterruptNMI:
		return "NMI"
	case InterruptIRQ:
		return "IRQ"
	case InterruptReset:
		return "RESET"
	default:
		return "none"
	}
}

// interruptCycles is the cost of the interrupt and reset sequences.
const interruptCycles = 7

var (
	nmiVector   = uint16(cpu6502.NMIAddress)
	resetVector = uint16(cpu6502.ResetAddress)
	irqVector   = uint16(cpu6502.IrqAddress)
)

// RaiseNMI signals a non maskable interrupt. The interrupt is edge triggered
// and gets serviced once after the current instruction completes.
func (c *CPU) RaiseNMI() {
	c.nmiPending = true
}

// RaiseIRQ asserts the IRQ line. The line is level triggered and stays
// asserted until ClearIRQ is called, the interrupt gets serviced after every
// instruction that completes with the interrupt disable flag clear. CLI, SEI
// and PLP change the flag after the poll, so their effect on the IRQ line
// shows one instruction later.
func (c *CPU) RaiseIRQ() {
	c.irqLine = true
}

// ClearIRQ releases the IRQ line.
func (c *CPU) ClearIRQ() {
	c.irqLine = false
}

// Reset executes the reset sequence. Nothing is written to the stack, the
// stack pointer is decremented by 3 as the hardware suppresses the pushes.
func (c *CPU) Reset() {
	c.SP -= 3
	c.Flags.InterruptDisable = true
	c.PC = readWord(c.mem, resetVector)
	c.nmiPending = false
	c.cycles += interruptCycles

	c.logger.Debug("Reset",
		log.Hex("pc", c.PC),
		log.Hex("sp", c.SP))
}

// pollInterrupts services a pending interrupt, NMI takes precedence over IRQ.
// The IRQ line is ignored while irqMasked is set.
func (c *CPU) pollInterrupts(irqMasked bool) Interrupt {
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.interrupt(nmiVector, false)
		c.logger.Debug("NMI handler", log.Hex("address", c.PC))
		return InterruptNMI

	case c.irqLine && !irqMasked:
		c.interrupt(irqVector, false)
		c.logger.Debug("IRQ handler", log.Hex("address", c.PC))
		return InterruptIRQ

	default:
		return NoInterrupt
	}
}

// interrupt pushes the program counter and status and continues at the
// address stored in the vector.
func (c *CPU) interrupt(vector uint16, brk bool) {
	c.PushWord(c.mem, c.PC)
	c.Push(c.mem, c.Flags.StackByte(brk))
	c.Flags.InterruptDisable = true
	c.PC = readWord(c.mem, vector)
}
