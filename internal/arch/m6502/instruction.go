package m6502

// instruction is a mnemonic and its behavior. The behavior is written once
// against the resolved operand and shared by all addressing modes.
type instruction struct {
	name       string
	unofficial bool
	delaysIRQ  bool // the interrupt disable flag changes after the interrupt poll
	handler    func(c *CPU, op Operand)
}

// Official instructions.
var (
	adc = &instruction{name: "adc", handler: (*CPU).adc}
	and = &instruction{name: "and", handler: (*CPU).and}
	asl = &instruction{name: "asl", handler: (*CPU).asl}
	bcc = &instruction{name: "bcc", handler: (*CPU).bcc}
	bcs = &instruction{name: "bcs", handler: (*CPU).bcs}
	beq = &instruction{name: "beq", handler: (*CPU).beq}
	bit = &instruction{name: "bit", handler: (*CPU).bit}
	bmi = &instruction{name: "bmi", handler: (*CPU).bmi}
	bne = &instruction{name: "bne", handler: (*CPU).bne}
	bpl = &instruction{name: "bpl", handler: (*CPU).bpl}
	brk = &instruction{name: "brk", handler: (*CPU).brk}
	bvc = &instruction{name: "bvc", handler: (*CPU).bvc}
	bvs = &instruction{name: "bvs", handler: (*CPU).bvs}
	clc = &instruction{name: "clc", handler: (*CPU).clc}
	cld = &instruction{name: "cld", handler: (*CPU).cld}
	cli = &instruction{name: "cli", delaysIRQ: true, handler: (*CPU).cli}
	clv = &instruction{name: "clv", handler: (*CPU).clv}
	cmp = &instruction{name: "cmp", handler: (*CPU).cmp}
	cpx = &instruction{name: "cpx", handler: (*CPU).cpx}
	cpy = &instruction{name: "cpy", handler: (*CPU).cpy}
	dec = &instruction{name: "dec", handler: (*CPU).dec}
	dex = &instruction{name: "dex", handler: (*CPU).dex}
	dey = &instruction{name: "dey", handler: (*CPU).dey}
	eor = &instruction{name: "eor", handler: (*CPU).eor}
	inc = &instruction{name: "inc", handler: (*CPU).inc}
	inx = &instruction{name: "inx", handler: (*CPU).inx}
	iny = &instruction{name: "iny", handler: (*CPU).iny}
	jmp = &instruction{name: "jmp", handler: (*CPU).jmp}
	jsr = &instruction{name: "jsr", handler: (*CPU).jsr}
	lda = &instruction{name: "lda", handler: (*CPU).lda}
	ldx = &instruction{name: "ldx", handler: (*CPU).ldx}
	ldy = &instruction{name: "ldy", handler: (*CPU).ldy}
	lsr = &instruction{name: "lsr", handler: (*CPU).lsr}
	nop = &instruction{name: "nop", handler: (*CPU).nop}
	ora = &instruction{name: "ora", handler: (*CPU).ora}
	pha = &instruction{name: "pha", handler: (*CPU).pha}
	php = &instruction{name: "php", handler: (*CPU).php}
	pla = &instruction{name: "pla", handler: (*CPU).pla}
	plp = &instruction{name: "plp", delaysIRQ: true, handler: (*CPU).plp}
	rol = &instruction{name: "rol", handler: (*CPU).rol}
	ror = &instruction{name: "ror", handler: (*CPU).ror}
	rti = &instruction{name: "rti", handler: (*CPU).rti}
	rts = &instruction{name: "rts", handler: (*CPU).rts}
	sbc = &instruction{name: "sbc", handler: (*CPU).sbc}
	sec = &instruction{name: "sec", handler: (*CPU).sec}
	sed = &instruction{name: "sed", handler: (*CPU).sed}
	sei = &instruction{name: "sei", delaysIRQ: true, handler: (*CPU).sei}
	sta = &instruction{name: "sta", handler: (*CPU).sta}
	stx = &instruction{name: "stx", handler: (*CPU).stx}
	sty = &instruction{name: "sty", handler: (*CPU).sty}
	tax = &instruction{name: "tax", handler: (*CPU).tax}
	tay = &instruction{name: "tay", handler: (*CPU).tay}
	tsx = &instruction{name: "tsx", handler: (*CPU).tsx}
	txa = &instruction{name: "txa", handler: (*CPU).txa}
	txs = &instruction{name: "txs", handler: (*CPU).txs}
	tya = &instruction{name: "tya", handler: (*CPU).tya}
)

// Unofficial instructions of the NMOS chip.
var (
	alr           = &instruction{name: "alr", unofficial: true, handler: (*CPU).alr}
	anc           = &instruction{name: "anc", unofficial: true, handler: (*CPU).anc}
	ane           = &instruction{name: "ane", unofficial: true, handler: (*CPU).ane}
	arr           = &instruction{name: "arr", unofficial: true, handler: (*CPU).arr}
	axs           = &instruction{name: "axs", unofficial: true, handler: (*CPU).axs}
	dcp           = &instruction{name: "dcp", unofficial: true, handler: (*CPU).dcp}
	isc           = &instruction{name: "isc", unofficial: true, handler: (*CPU).isc}
	las           = &instruction{name: "las", unofficial: true, handler: (*CPU).las}
	lax           = &instruction{name: "lax", unofficial: true, handler: (*CPU).lax}
	lxa           = &instruction{name: "lxa", unofficial: true, handler: (*CPU).lxa}
	nopUnofficial = &instruction{name: "nop", unofficial: true, handler: (*CPU).nop}
	rla           = &instruction{name: "rla", unofficial: true, handler: (*CPU).rla}
	rra           = &instruction{name: "rra", unofficial: true, handler: (*CPU).rra}
	sax           = &instruction{name: "sax", unofficial: true, handler: (*CPU).sax}
	sbcUnofficial = &instruction{name: "sbc", unofficial: true, handler: (*CPU).sbc}
	sha           = &instruction{name: "sha", unofficial: true, handler: (*CPU).sha}
	shx           = &instruction{name: "shx", unofficial: true, handler: (*CPU).shx}
	shy           = &instruction{name: "shy", unofficial: true, handler: (*CPU).shy}
	slo           = &instruction{name: "slo", unofficial: true, handler: (*CPU).slo}
	sre           = &instruction{name: "sre", unofficial: true, handler: (*CPU).sre}
	tas           = &instruction{name: "tas", unofficial: true, handler: (*CPU).tas}
)

// magic is the value of the unstable bus state that ANE and LXA combine
// with the accumulator.
const magic = 0xee

// load returns the operand value. Memory operands are read through the bus.
func (c *CPU) load(op Operand) byte {
	switch op.Kind {
	case AccumulatorOperand:
		return c.A
	case ImmediateOperand:
		return op.Value
	default:
		return c.mem.Read(op.Address)
	}
}

// store writes the result of a read-modify-write instruction back to its operand.
func (c *CPU) store(op Operand, value byte) {
	if op.Kind == AccumulatorOperand {
		c.A = value
		return
	}
	c.mem.Write(op.Address, value)
}

func (c *CPU) addToAccumulator(value byte) {
	if c.Flags.Decimal && c.opts.DecimalMode {
		res := addDecimal(c.A, value, c.Flags.Carry)
		c.setDecimalResult(res)
		return
	}
	result, carry, overflow := addWithCarry(c.A, value, c.Flags.Carry)
	c.A = result
	c.Flags.Carry = carry
	c.Flags.Overflow = overflow
	c.Flags.setZN(result)
}

func (c *CPU) subtractFromAccumulator(value byte) {
	if c.Flags.Decimal && c.opts.DecimalMode {
		res := subtractDecimal(c.A, value, c.Flags.Carry)
		c.setDecimalResult(res)
		return
	}
	result, carry, overflow := subtractWithBorrow(c.A, value, c.Flags.Carry)
	c.A = result
	c.Flags.Carry = carry
	c.Flags.Overflow = overflow
	c.Flags.setZN(result)
}

func (c *CPU) setDecimalResult(res decimalResult) {
	c.A = res.result
	c.Flags.Carry = res.carry
	c.Flags.Zero = res.zero
	c.Flags.Negative = res.negative
	c.Flags.Overflow = res.overflow
}

func (c *CPU) compareWith(register byte, op Operand) {
	c.Flags.Carry, c.Flags.Zero, c.Flags.Negative = compare(register, c.load(op))
}

// branch jumps to the resolved target if the condition is met. A taken
// branch costs one cycle, crossing a page costs another one.
func (c *CPU) branch(condition bool, op Operand) {
	if !condition {
		return
	}
	c.branchTaken = true
	c.extraCycles++
	if op.PageCrossed {
		c.extraCycles++
	}
	c.PC = op.Address
}

func (c *CPU) adc(op Operand) {
	c.addToAccumulator(c.load(op))
}

func (c *CPU) and(op Operand) {
	c.A &= c.load(op)
	c.Flags.setZN(c.A)
}

func (c *CPU) asl(op Operand) {
	result, carry := shiftLeft(c.load(op))
	c.store(op, result)
	c.Flags.Carry = carry
	c.Flags.setZN(result)
}

func (c *CPU) bcc(op Operand) { c.branch(!c.Flags.Carry, op) }
func (c *CPU) bcs(op Operand) { c.branch(c.Flags.Carry, op) }
func (c *CPU) beq(op Operand) { c.branch(c.Flags.Zero, op) }
func (c *CPU) bmi(op Operand) { c.branch(c.Flags.Negative, op) }
func (c *CPU) bne(op Operand) { c.branch(!c.Flags.Zero, op) }
func (c *CPU) bpl(op Operand) { c.branch(!c.Flags.Negative, op) }
func (c *CPU) bvc(op Operand) { c.branch(!c.Flags.Overflow, op) }
func (c *CPU) bvs(op Operand) { c.branch(c.Flags.Overflow, op) }

func (c *CPU) bit(op Operand) {
	value := c.load(op)
	c.Flags.Zero = isZero(c.A & value)
	c.Flags.Negative = isNegative(value)
	c.Flags.Overflow = value&0x40 != 0
}

// brk skips the padding byte following the opcode and enters the IRQ
// handler with the break bit set in the pushed status.
func (c *CPU) brk(Operand) {
	c.PC++
	c.interrupt(irqVector, true)
}

func (c *CPU) clc(Operand) { c.Flags.Carry = false }
func (c *CPU) cld(Operand) { c.Flags.Decimal = false }
func (c *CPU) cli(Operand) { c.Flags.InterruptDisable = false }
func (c *CPU) clv(Operand) { c.Flags.Overflow = false }

func (c *CPU) cmp(op Operand) { c.compareWith(c.A, op) }
func (c *CPU) cpx(op Operand) { c.compareWith(c.X, op) }
func (c *CPU) cpy(op Operand) { c.compareWith(c.Y, op) }

func (c *CPU) dec(op Operand) {
	value := c.load(op) - 1
	c.store(op, value)
	c.Flags.setZN(value)
}

func (c *CPU) dex(Operand) {
	c.X--
	c.Flags.setZN(c.X)
}

func (c *CPU) dey(Operand) {
	c.Y--
	c.Flags.setZN(c.Y)
}

func (c *CPU) eor(op Operand) {
	c.A ^= c.load(op)
	c.Flags.setZN(c.A)
}

func (c *CPU) inc(op Operand) {
	value := c.load(op) + 1
	c.store(op, value)
	c.Flags.setZN(value)
}

func (c *CPU) inx(Operand) {
	c.X++
	c.Flags.setZN(c.X)
}

func (c *CPU) iny(Operand) {
	c.Y++
	c.Flags.setZN(c.Y)
}

func (c *CPU) jmp(op Operand) {
	c.PC = op.Address
}

// jsr pushes the address of the last byte of the instruction.
func (c *CPU) jsr(op Operand) {
	c.PushWord(c.mem, c.PC-1)
	c.PC = op.Address
}

func (c *CPU) lda(op Operand) {
	c.A = c.load(op)
	c.Flags.setZN(c.A)
}

func (c *CPU) ldx(op Operand) {
	c.X = c.load(op)
	c.Flags.setZN(c.X)
}

func (c *CPU) ldy(op Operand) {
	c.Y = c.load(op)
	c.Flags.setZN(c.Y)
}

func (c *CPU) lsr(op Operand) {
	result, carry := shiftRight(c.load(op))
	c.store(op, result)
	c.Flags.Carry = carry
	c.Flags.setZN(result)
}

// nop performs the operand read of the multi byte variants.
func (c *CPU) nop(op Operand) {
	if op.Kind == MemoryOperand {
		c.mem.Read(op.Address)
	}
}

func (c *CPU) ora(op Operand) {
	c.A |= c.load(op)
	c.Flags.setZN(c.A)
}

func (c *CPU) pha(Operand) {
	c.Push(c.mem, c.A)
}

func (c *CPU) php(Operand) {
	c.Push(c.mem, c.Flags.StackByte(true))
}

func (c *CPU) pla(Operand) {
	c.A = c.Pull(c.mem)
	c.Flags.setZN(c.A)
}

func (c *CPU) plp(Operand) {
	c.Flags = FlagsFromByte(c.Pull(c.mem))
}

func (c *CPU) rol(op Operand) {
	result, carry := rotateLeft(c.load(op), c.Flags.Carry)
	c.store(op, result)
	c.Flags.Carry = carry
	c.Flags.setZN(result)
}

func (c *CPU) ror(op Operand) {
	result, carry := rotateRight(c.load(op), c.Flags.Carry)
	c.store(op, result)
	c.Flags.Carry = carry
	c.Flags.setZN(result)
}

// rti restores the status register, ignoring the break bit, and the program counter.
func (c *CPU) rti(Operand) {
	c.Flags = FlagsFromByte(c.Pull(c.mem))
	c.PC = c.PullWord(c.mem)
}

func (c *CPU) rts(Operand) {
	c.PC = c.PullWord(c.mem) + 1
}

func (c *CPU) sbc(op Operand) {
	c.subtractFromAccumulator(c.load(op))
}

func (c *CPU) sec(Operand) { c.Flags.Carry = true }
func (c *CPU) sed(Operand) { c.Flags.Decimal = true }
func (c *CPU) sei(Operand) { c.Flags.InterruptDisable = true }

func (c *CPU) sta(op Operand) { c.mem.Write(op.Address, c.A) }
func (c *CPU) stx(op Operand) { c.mem.Write(op.Address, c.X) }
func (c *CPU) sty(op Operand) { c.mem.Write(op.Address, c.Y) }

func (c *CPU) tax(Operand) {
	c.X = c.A
	c.Flags.setZN(c.X)
}

func (c *CPU) tay(Operand) {
	c.Y = c.A
	c.Flags.setZN(c.Y)
}

func (c *CPU) tsx(Operand) {
	c.X = c.SP
	c.Flags.setZN(c.X)
}

func (c *CPU) txa(Operand) {
	c.A = c.X
	c.Flags.setZN(c.A)
}

// txs is the only transfer that does not update flags.
func (c *CPU) txs(Operand) {
	c.SP = c.X
}

func (c *CPU) tya(Operand) {
	c.A = c.Y
	c.Flags.setZN(c.A)
}

// alr is AND followed by LSR A.
func (c *CPU) alr(op Operand) {
	value := c.A & c.load(op)
	c.A, c.Flags.Carry = shiftRight(value)
	c.Flags.setZN(c.A)
}

// anc is AND with the carry receiving bit 7 of the result.
func (c *CPU) anc(op Operand) {
	c.and(op)
	c.Flags.Carry = c.Flags.Negative
}

func (c *CPU) ane(op Operand) {
	c.A = (c.A | magic) & c.X & c.load(op)
	c.Flags.setZN(c.A)
}

// arr is AND followed by ROR A with carry and overflow taken from bits 6 and 5.
func (c *CPU) arr(op Operand) {
	value := c.A & c.load(op)
	c.A, _ = rotateRight(value, c.Flags.Carry)
	c.Flags.setZN(c.A)
	c.Flags.Carry = c.A&0x40 != 0
	c.Flags.Overflow = (c.A>>6^c.A>>5)&0x01 != 0
}

// axs stores (A AND X) minus the operand in X without borrow.
func (c *CPU) axs(op Operand) {
	value := c.load(op)
	masked := c.A & c.X
	c.X = masked - value
	c.Flags.Carry = masked >= value
	c.Flags.setZN(c.X)
}

// dcp is DEC followed by CMP.
func (c *CPU) dcp(op Operand) {
	value := c.load(op) - 1
	c.store(op, value)
	c.Flags.Carry, c.Flags.Zero, c.Flags.Negative = compare(c.A, value)
}

// isc is INC followed by SBC.
func (c *CPU) isc(op Operand) {
	value := c.load(op) + 1
	c.store(op, value)
	c.subtractFromAccumulator(value)
}

func (c *CPU) las(op Operand) {
	value := c.load(op) & c.SP
	c.A = value
	c.X = value
	c.SP = value
	c.Flags.setZN(value)
}

func (c *CPU) lax(op Operand) {
	c.A = c.load(op)
	c.X = c.A
	c.Flags.setZN(c.A)
}

func (c *CPU) lxa(op Operand) {
	c.A = (c.A | magic) & c.load(op)
	c.X = c.A
	c.Flags.setZN(c.A)
}

// rla is ROL followed by AND.
func (c *CPU) rla(op Operand) {
	result, carry := rotateLeft(c.load(op), c.Flags.Carry)
	c.store(op, result)
	c.Flags.Carry = carry
	c.A &= result
	c.Flags.setZN(c.A)
}

// rra is ROR followed by ADC using the carry shifted out.
func (c *CPU) rra(op Operand) {
	result, carry := rotateRight(c.load(op), c.Flags.Carry)
	c.store(op, result)
	c.Flags.Carry = carry
	c.addToAccumulator(result)
}

func (c *CPU) sax(op Operand) {
	c.mem.Write(op.Address, c.A&c.X)
}

func (c *CPU) sha(op Operand) {
	c.storeHighAnd(op, c.A&c.X, c.Y)
}

func (c *CPU) shx(op Operand) {
	c.storeHighAnd(op, c.X, c.Y)
}

func (c *CPU) shy(op Operand) {
	c.storeHighAnd(op, c.Y, c.X)
}

// tas sets the stack pointer to A AND X and stores it like SHA.
func (c *CPU) tas(op Operand) {
	c.SP = c.A & c.X
	c.storeHighAnd(op, c.SP, c.Y)
}

// storeHighAnd stores the value combined with the high byte of the base
// address plus one. When indexing crossed a page the combined value
// replaces the high byte of the target address.
func (c *CPU) storeHighAnd(op Operand, value, index byte) {
	base := op.Address - uint16(index)
	value &= byte(base>>8) + 1
	address := op.Address
	if op.PageCrossed {
		address = uint16(value)<<8 | address&0x00ff
	}
	c.mem.Write(address, value)
}

// slo is ASL followed by ORA.
func (c *CPU) slo(op Operand) {
	result, carry := shiftLeft(c.load(op))
	c.store(op, result)
	c.Flags.Carry = carry
	c.A |= result
	c.Flags.setZN(c.A)
}

// sre is LSR followed by EOR.
func (c *CPU) sre(op Operand) {
	result, carry := shiftRight(c.load(op))
	c.store(op, result)
	c.Flags.Carry = carry
	c.A ^= result
	c.Flags.setZN(c.A)
}
