package m6502

// The functions in this file compute flag results from operands only and
// never touch the processor state.

func isZero(value byte) bool {
	return value == 0
}

func isNegative(value byte) bool {
	return value&0x80 != 0
}

// addWithCarry returns the binary sum of a, b and the carry, the carry out of
// bit 7 and the signed overflow.
func addWithCarry(a, b byte, carry bool) (result byte, carryOut, overflow bool) {
	sum := uint16(a) + uint16(b)
	if carry {
		sum++
	}
	result = byte(sum)
	carryOut = sum > 0xff
	overflow = (a^result)&(b^result)&0x80 != 0
	return result, carryOut, overflow
}

// subtractWithBorrow subtracts b from a with the carry acting as inverted borrow.
// The carry out is set when no borrow occurred.
func subtractWithBorrow(a, b byte, carry bool) (result byte, carryOut, overflow bool) {
	return addWithCarry(a, ^b, carry)
}

// compare returns the flags of a register compared to a value.
func compare(register, value byte) (carry, zero, negative bool) {
	result := register - value
	return register >= value, isZero(result), isNegative(result)
}

func shiftLeft(value byte) (result byte, carry bool) {
	return value << 1, value&0x80 != 0
}

func shiftRight(value byte) (result byte, carry bool) {
	return value >> 1, value&0x01 != 0
}

func rotateLeft(value byte, carryIn bool) (result byte, carry bool) {
	result = value << 1
	if carryIn {
		result |= 0x01
	}
	return result, value&0x80 != 0
}

func rotateRight(value byte, carryIn bool) (result byte, carry bool) {
	result = value >> 1
	if carryIn {
		result |= 0x80
	}
	return result, value&0x01 != 0
}

// decimalResult holds the outcome of a BCD operation. The NMOS chip derives
// the N, V and Z flags from intermediate values, so they are returned
// separately from the result byte.
type decimalResult struct {
	result   byte
	carry    bool
	zero     bool
	negative bool
	overflow bool
}

// addDecimal adds two packed BCD values the way the NMOS 6502 does.
func addDecimal(a, b byte, carry bool) decimalResult {
	binary, _, _ := addWithCarry(a, b, carry)

	c := 0
	if carry {
		c = 1
	}
	low := int(a&0x0f) + int(b&0x0f) + c
	if low >= 0x0a {
		low = ((low + 0x06) & 0x0f) + 0x10
	}
	sum := int(a&0xf0) + int(b&0xf0) + low

	res := decimalResult{
		zero:     isZero(binary),
		negative: sum&0x80 != 0,
		overflow: (int(a)^sum)&(int(b)^sum)&0x80 != 0,
	}
	if sum >= 0xa0 {
		sum += 0x60
	}
	res.result = byte(sum)
	res.carry = sum >= 0x100
	return res
}

// subtractDecimal subtracts two packed BCD values the way the NMOS 6502 does.
// All flags match the binary subtraction.
func subtractDecimal(a, b byte, carry bool) decimalResult {
	binary, carryOut, overflow := subtractWithBorrow(a, b, carry)

	c := 0
	if carry {
		c = 1
	}
	low := int(a&0x0f) - int(b&0x0f) + c - 1
	if low < 0 {
		low = ((low - 0x06) & 0x0f) - 0x10
	}
	diff := int(a&0xf0) - int(b&0xf0) + low
	if diff < 0 {
		diff -= 0x60
	}

	return decimalResult{
		result:   byte(diff),
		carry:    carryOut,
		zero:     isZero(binary),
		negative: isNegative(binary),
		overflow: overflow,
	}
}
