package m6502

import "strings"

// Bit positions of the flags in the serialized status register.
const (
	flagCarry byte = 1 << iota
	flagZero
	flagInterrupt
	flagDecimal
	flagBreak
	flagUnused
	flagOverflow
	flagNegative
)

// Flags is the live processor status register. The break bit only exists in
// the byte pushed to the stack and is therefore not part of this type.
type Flags struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Overflow         bool
	Negative         bool
}

// FlagsFromByte converts a serialized status byte into flags.
// The break and unused bits are ignored.
func FlagsFromByte(b byte) Flags {
	return Flags{
		Carry:            b&flagCarry != 0,
		Zero:             b&flagZero != 0,
		InterruptDisable: b&flagInterrupt != 0,
		Decimal:          b&flagDecimal != 0,
		Overflow:         b&flagOverflow != 0,
		Negative:         b&flagNegative != 0,
	}
}

// Byte returns the serialized status register. The unused bit always reads
// as set and the break bit as clear.
func (f Flags) Byte() byte {
	b := flagUnused
	if f.Carry {
		b |= flagCarry
	}
	if f.Zero {
		b |= flagZero
	}
	if f.InterruptDisable {
		b |= flagInterrupt
	}
	if f.Decimal {
		b |= flagDecimal
	}
	if f.Overflow {
		b |= flagOverflow
	}
	if f.Negative {
		b |= flagNegative
	}
	return b
}

// StackByte returns the status byte as it gets pushed to the stack.
// The break bit is set for BRK and PHP and clear for hardware interrupts.
func (f Flags) StackByte(brk bool) byte {
	b := f.Byte()
	if brk {
		b |= flagBreak
	}
	return b
}

// String returns the flags in the NV-BDIZC notation, set flags are upper case.
func (f Flags) String() string {
	var sb strings.Builder
	sb.Grow(8)
	writeFlag(&sb, f.Negative, 'N')
	writeFlag(&sb, f.Overflow, 'V')
	sb.WriteString("-b")
	writeFlag(&sb, f.Decimal, 'D')
	writeFlag(&sb, f.InterruptDisable, 'I')
	writeFlag(&sb, f.Zero, 'Z')
	writeFlag(&sb, f.Carry, 'C')
	return sb.String()
}

func writeFlag(sb *strings.Builder, set bool, name byte) {
	if set {
		sb.WriteByte(name)
		return
	}
	sb.WriteByte(name + 'a' - 'A')
}

// setZN updates the zero and negative flags from a result value.
func (f *Flags) setZN(value byte) {
	f.Zero = isZero(value)
	f.Negative = isNegative(value)
}
