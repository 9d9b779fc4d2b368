package m6502

import "github.com/retroenv/retrogolib/arch/cpu/cpu6502"

// opcode is the immutable descriptor of a single opcode byte.
type opcode struct {
	instruction *instruction
	addressing  cpu6502.AddressingMode
	cycles      byte // base cycles
	pageCross   bool // indexing across a page boundary costs an extra cycle
}

// Short names for the addressing modes keep the table readable.
var (
	implied     = cpu6502.ImpliedAddressing
	immediate   = cpu6502.ImmediateAddressing
	accumulator = cpu6502.AccumulatorAddressing
	absolute    = cpu6502.AbsoluteAddressing
	absoluteX   = cpu6502.AbsoluteXAddressing
	absoluteY   = cpu6502.AbsoluteYAddressing
	zeroPage    = cpu6502.ZeroPageAddressing
	zeroPageX   = cpu6502.ZeroPageXAddressing
	zeroPageY   = cpu6502.ZeroPageYAddressing
	relative    = cpu6502.RelativeAddressing
	indirect    = cpu6502.IndirectAddressing
	indirectX   = cpu6502.IndirectXAddressing
	indirectY   = cpu6502.IndirectYAddressing
)

// opcodes maps every opcode byte to its descriptor. The only bytes without
// an instruction are the ones that halt the processor.
// Indexed stores and read-modify-write instructions always take their fixed
// cycle count, only indexed reads pay for crossing a page.
var opcodes = [256]opcode{
	0x00: {instruction: brk, addressing: implied, cycles: 7},
	0x01: {instruction: ora, addressing: indirectX, cycles: 6},
	0x03: {instruction: slo, addressing: indirectX, cycles: 8},
	0x04: {instruction: nopUnofficial, addressing: zeroPage, cycles: 3},
	0x05: {instruction: ora, addressing: zeroPage, cycles: 3},
	0x06: {instruction: asl, addressing: zeroPage, cycles: 5},
	0x07: {instruction: slo, addressing: zeroPage, cycles: 5},
	0x08: {instruction: php, addressing: implied, cycles: 3},
	0x09: {instruction: ora, addressing: immediate, cycles: 2},
	0x0a: {instruction: asl, addressing: accumulator, cycles: 2},
	0x0b: {instruction: anc, addressing: immediate, cycles: 2},
	0x0c: {instruction: nopUnofficial, addressing: absolute, cycles: 4},
	0x0d: {instruction: ora, addressing: absolute, cycles: 4},
	0x0e: {instruction: asl, addressing: absolute, cycles: 6},
	0x0f: {instruction: slo, addressing: absolute, cycles: 6},

	0x10: {instruction: bpl, addressing: relative, cycles: 2},
	0x11: {instruction: ora, addressing: indirectY, cycles: 5, pageCross: true},
	0x13: {instruction: slo, addressing: indirectY, cycles: 8},
	0x14: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0x15: {instruction: ora, addressing: zeroPageX, cycles: 4},
	0x16: {instruction: asl, addressing: zeroPageX, cycles: 6},
	0x17: {instruction: slo, addressing: zeroPageX, cycles: 6},
	0x18: {instruction: clc, addressing: implied, cycles: 2},
	0x19: {instruction: ora, addressing: absoluteY, cycles: 4, pageCross: true},
	0x1a: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0x1b: {instruction: slo, addressing: absoluteY, cycles: 7},
	0x1c: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0x1d: {instruction: ora, addressing: absoluteX, cycles: 4, pageCross: true},
	0x1e: {instruction: asl, addressing: absoluteX, cycles: 7},
	0x1f: {instruction: slo, addressing: absoluteX, cycles: 7},

	0x20: {instruction: jsr, addressing: absolute, cycles: 6},
	0x21: {instruction: and, addressing: indirectX, cycles: 6},
	0x23: {instruction: rla, addressing: indirectX, cycles: 8},
	0x24: {instruction: bit, addressing: zeroPage, cycles: 3},
	0x25: {instruction: and, addressing: zeroPage, cycles: 3},
	0x26: {instruction: rol, addressing: zeroPage, cycles: 5},
	0x27: {instruction: rla, addressing: zeroPage, cycles: 5},
	0x28: {instruction: plp, addressing: implied, cycles: 4},
	0x29: {instruction: and, addressing: immediate, cycles: 2},
	0x2a: {instruction: rol, addressing: accumulator, cycles: 2},
	0x2b: {instruction: anc, addressing: immediate, cycles: 2},
	0x2c: {instruction: bit, addressing: absolute, cycles: 4},
	0x2d: {instruction: and, addressing: absolute, cycles: 4},
	0x2e: {instruction: rol, addressing: absolute, cycles: 6},
	0x2f: {instruction: rla, addressing: absolute, cycles: 6},

	0x30: {instruction: bmi, addressing: relative, cycles: 2},
	0x31: {instruction: and, addressing: indirectY, cycles: 5, pageCross: true},
	0x33: {instruction: rla, addressing: indirectY, cycles: 8},
	0x34: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0x35: {instruction: and, addressing: zeroPageX, cycles: 4},
	0x36: {instruction: rol, addressing: zeroPageX, cycles: 6},
	0x37: {instruction: rla, addressing: zeroPageX, cycles: 6},
	0x38: {instruction: sec, addressing: implied, cycles: 2},
	0x39: {instruction: and, addressing: absoluteY, cycles: 4, pageCross: true},
	0x3a: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0x3b: {instruction: rla, addressing: absoluteY, cycles: 7},
	0x3c: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0x3d: {instruction: and, addressing: absoluteX, cycles: 4, pageCross: true},
	0x3e: {instruction: rol, addressing: absoluteX, cycles: 7},
	0x3f: {instruction: rla, addressing: absoluteX, cycles: 7},

	0x40: {instruction: rti, addressing: implied, cycles: 6},
	0x41: {instruction: eor, addressing: indirectX, cycles: 6},
	0x43: {instruction: sre, addressing: indirectX, cycles: 8},
	0x44: {instruction: nopUnofficial, addressing: zeroPage, cycles: 3},
	0x45: {instruction: eor, addressing: zeroPage, cycles: 3},
	0x46: {instruction: lsr, addressing: zeroPage, cycles: 5},
	0x47: {instruction: sre, addressing: zeroPage, cycles: 5},
	0x48: {instruction: pha, addressing: implied, cycles: 3},
	0x49: {instruction: eor, addressing: immediate, cycles: 2},
	0x4a: {instruction: lsr, addressing: accumulator, cycles: 2},
	0x4b: {instruction: alr, addressing: immediate, cycles: 2},
	0x4c: {instruction: jmp, addressing: absolute, cycles: 3},
	0x4d: {instruction: eor, addressing: absolute, cycles: 4},
	0x4e: {instruction: lsr, addressing: absolute, cycles: 6},
	0x4f: {instruction: sre, addressing: absolute, cycles: 6},

	0x50: {instruction: bvc, addressing: relative, cycles: 2},
	0x51: {instruction: eor, addressing: indirectY, cycles: 5, pageCross: true},
	0x53: {instruction: sre, addressing: indirectY, cycles: 8},
	0x54: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0x55: {instruction: eor, addressing: zeroPageX, cycles: 4},
	0x56: {instruction: lsr, addressing: zeroPageX, cycles: 6},
	0x57: {instruction: sre, addressing: zeroPageX, cycles: 6},
	0x58: {instruction: cli, addressing: implied, cycles: 2},
	0x59: {instruction: eor, addressing: absoluteY, cycles: 4, pageCross: true},
	0x5a: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0x5b: {instruction: sre, addressing: absoluteY, cycles: 7},
	0x5c: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0x5d: {instruction: eor, addressing: absoluteX, cycles: 4, pageCross: true},
	0x5e: {instruction: lsr, addressing: absoluteX, cycles: 7},
	0x5f: {instruction: sre, addressing: absoluteX, cycles: 7},

	0x60: {instruction: rts, addressing: implied, cycles: 6},
	0x61: {instruction: adc, addressing: indirectX, cycles: 6},
	0x63: {instruction: rra, addressing: indirectX, cycles: 8},
	0x64: {instruction: nopUnofficial, addressing: zeroPage, cycles: 3},
	0x65: {instruction: adc, addressing: zeroPage, cycles: 3},
	0x66: {instruction: ror, addressing: zeroPage, cycles: 5},
	0x67: {instruction: rra, addressing: zeroPage, cycles: 5},
	0x68: {instruction: pla, addressing: implied, cycles: 4},
	0x69: {instruction: adc, addressing: immediate, cycles: 2},
	0x6a: {instruction: ror, addressing: accumulator, cycles: 2},
	0x6b: {instruction: arr, addressing: immediate, cycles: 2},
	0x6c: {instruction: jmp, addressing: indirect, cycles: 5},
	0x6d: {instruction: adc, addressing: absolute, cycles: 4},
	0x6e: {instruction: ror, addressing: absolute, cycles: 6},
	0x6f: {instruction: rra, addressing: absolute, cycles: 6},

	0x70: {instruction: bvs, addressing: relative, cycles: 2},
	0x71: {instruction: adc, addressing: indirectY, cycles: 5, pageCross: true},
	0x73: {instruction: rra, addressing: indirectY, cycles: 8},
	0x74: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0x75: {instruction: adc, addressing: zeroPageX, cycles: 4},
	0x76: {instruction: ror, addressing: zeroPageX, cycles: 6},
	0x77: {instruction: rra, addressing: zeroPageX, cycles: 6},
	0x78: {instruction: sei, addressing: implied, cycles: 2},
	0x79: {instruction: adc, addressing: absoluteY, cycles: 4, pageCross: true},
	0x7a: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0x7b: {instruction: rra, addressing: absoluteY, cycles: 7},
	0x7c: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0x7d: {instruction: adc, addressing: absoluteX, cycles: 4, pageCross: true},
	0x7e: {instruction: ror, addressing: absoluteX, cycles: 7},
	0x7f: {instruction: rra, addressing: absoluteX, cycles: 7},

	0x80: {instruction: nopUnofficial, addressing: immediate, cycles: 2},
	0x81: {instruction: sta, addressing: indirectX, cycles: 6},
	0x82: {instruction: nopUnofficial, addressing: immediate, cycles: 2},
	0x83: {instruction: sax, addressing: indirectX, cycles: 6},
	0x84: {instruction: sty, addressing: zeroPage, cycles: 3},
	0x85: {instruction: sta, addressing: zeroPage, cycles: 3},
	0x86: {instruction: stx, addressing: zeroPage, cycles: 3},
	0x87: {instruction: sax, addressing: zeroPage, cycles: 3},
	0x88: {instruction: dey, addressing: implied, cycles: 2},
	0x89: {instruction: nopUnofficial, addressing: immediate, cycles: 2},
	0x8a: {instruction: txa, addressing: implied, cycles: 2},
	0x8b: {instruction: ane, addressing: immediate, cycles: 2},
	0x8c: {instruction: sty, addressing: absolute, cycles: 4},
	0x8d: {instruction: sta, addressing: absolute, cycles: 4},
	0x8e: {instruction: stx, addressing: absolute, cycles: 4},
	0x8f: {instruction: sax, addressing: absolute, cycles: 4},

	0x90: {instruction: bcc, addressing: relative, cycles: 2},
	0x91: {instruction: sta, addressing: indirectY, cycles: 6},
	0x93: {instruction: sha, addressing: indirectY, cycles: 6},
	0x94: {instruction: sty, addressing: zeroPageX, cycles: 4},
	0x95: {instruction: sta, addressing: zeroPageX, cycles: 4},
	0x96: {instruction: stx, addressing: zeroPageY, cycles: 4},
	0x97: {instruction: sax, addressing: zeroPageY, cycles: 4},
	0x98: {instruction: tya, addressing: implied, cycles: 2},
	0x99: {instruction: sta, addressing: absoluteY, cycles: 5},
	0x9a: {instruction: txs, addressing: implied, cycles: 2},
	0x9b: {instruction: tas, addressing: absoluteY, cycles: 5},
	0x9c: {instruction: shy, addressing: absoluteX, cycles: 5},
	0x9d: {instruction: sta, addressing: absoluteX, cycles: 5},
	0x9e: {instruction: shx, addressing: absoluteY, cycles: 5},
	0x9f: {instruction: sha, addressing: absoluteY, cycles: 5},

	0xa0: {instruction: ldy, addressing: immediate, cycles: 2},
	0xa1: {instruction: lda, addressing: indirectX, cycles: 6},
	0xa2: {instruction: ldx, addressing: immediate, cycles: 2},
	0xa3: {instruction: lax, addressing: indirectX, cycles: 6},
	0xa4: {instruction: ldy, addressing: zeroPage, cycles: 3},
	0xa5: {instruction: lda, addressing: zeroPage, cycles: 3},
	0xa6: {instruction: ldx, addressing: zeroPage, cycles: 3},
	0xa7: {instruction: lax, addressing: zeroPage, cycles: 3},
	0xa8: {instruction: tay, addressing: implied, cycles: 2},
	0xa9: {instruction: lda, addressing: immediate, cycles: 2},
	0xaa: {instruction: tax, addressing: implied, cycles: 2},
	0xab: {instruction: lxa, addressing: immediate, cycles: 2},
	0xac: {instruction: ldy, addressing: absolute, cycles: 4},
	0xad: {instruction: lda, addressing: absolute, cycles: 4},
	0xae: {instruction: ldx, addressing: absolute, cycles: 4},
	0xaf: {instruction: lax, addressing: absolute, cycles: 4},

	0xb0: {instruction: bcs, addressing: relative, cycles: 2},
	0xb1: {instruction: lda, addressing: indirectY, cycles: 5, pageCross: true},
	0xb3: {instruction: lax, addressing: indirectY, cycles: 5, pageCross: true},
	0xb4: {instruction: ldy, addressing: zeroPageX, cycles: 4},
	0xb5: {instruction: lda, addressing: zeroPageX, cycles: 4},
	0xb6: {instruction: ldx, addressing: zeroPageY, cycles: 4},
	0xb7: {instruction: lax, addressing: zeroPageY, cycles: 4},
	0xb8: {instruction: clv, addressing: implied, cycles: 2},
	0xb9: {instruction: lda, addressing: absoluteY, cycles: 4, pageCross: true},
	0xba: {instruction: tsx, addressing: implied, cycles: 2},
	0xbb: {instruction: las, addressing: absoluteY, cycles: 4, pageCross: true},
	0xbc: {instruction: ldy, addressing: absoluteX, cycles: 4, pageCross: true},
	0xbd: {instruction: lda, addressing: absoluteX, cycles: 4, pageCross: true},
	0xbe: {instruction: ldx, addressing: absoluteY, cycles: 4, pageCross: true},
	0xbf: {instruction: lax, addressing: absoluteY, cycles: 4, pageCross: true},

	0xc0: {instruction: cpy, addressing: immediate, cycles: 2},
	0xc1: {instruction: cmp, addressing: indirectX, cycles: 6},
	0xc2: {instruction: nopUnofficial, addressing: immediate, cycles: 2},
	0xc3: {instruction: dcp, addressing: indirectX, cycles: 8},
	0xc4: {instruction: cpy, addressing: zeroPage, cycles: 3},
	0xc5: {instruction: cmp, addressing: zeroPage, cycles: 3},
	0xc6: {instruction: dec, addressing: zeroPage, cycles: 5},
	0xc7: {instruction: dcp, addressing: zeroPage, cycles: 5},
	0xc8: {instruction: iny, addressing: implied, cycles: 2},
	0xc9: {instruction: cmp, addressing: immediate, cycles: 2},
	0xca: {instruction: dex, addressing: implied, cycles: 2},
	0xcb: {instruction: axs, addressing: immediate, cycles: 2},
	0xcc: {instruction: cpy, addressing: absolute, cycles: 4},
	0xcd: {instruction: cmp, addressing: absolute, cycles: 4},
	0xce: {instruction: dec, addressing: absolute, cycles: 6},
	0xcf: {instruction: dcp, addressing: absolute, cycles: 6},

	0xd0: {instruction: bne, addressing: relative, cycles: 2},
	0xd1: {instruction: cmp, addressing: indirectY, cycles: 5, pageCross: true},
	0xd3: {instruction: dcp, addressing: indirectY, cycles: 8},
	0xd4: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0xd5: {instruction: cmp, addressing: zeroPageX, cycles: 4},
	0xd6: {instruction: dec, addressing: zeroPageX, cycles: 6},
	0xd7: {instruction: dcp, addressing: zeroPageX, cycles: 6},
	0xd8: {instruction: cld, addressing: implied, cycles: 2},
	0xd9: {instruction: cmp, addressing: absoluteY, cycles: 4, pageCross: true},
	0xda: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0xdb: {instruction: dcp, addressing: absoluteY, cycles: 7},
	0xdc: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0xdd: {instruction: cmp, addressing: absoluteX, cycles: 4, pageCross: true},
	0xde: {instruction: dec, addressing: absoluteX, cycles: 7},
	0xdf: {instruction: dcp, addressing: absoluteX, cycles: 7},

	0xe0: {instruction: cpx, addressing: immediate, cycles: 2},
	0xe1: {instruction: sbc, addressing: indirectX, cycles: 6},
	0xe2: {instruction: nopUnofficial, addressing: immediate, cycles: 2},
	0xe3: {instruction: isc, addressing: indirectX, cycles: 8},
	0xe4: {instruction: cpx, addressing: zeroPage, cycles: 3},
	0xe5: {instruction: sbc, addressing: zeroPage, cycles: 3},
	0xe6: {instruction: inc, addressing: zeroPage, cycles: 5},
	0xe7: {instruction: isc, addressing: zeroPage, cycles: 5},
	0xe8: {instruction: inx, addressing: implied, cycles: 2},
	0xe9: {instruction: sbc, addressing: immediate, cycles: 2},
	0xea: {instruction: nop, addressing: implied, cycles: 2},
	0xeb: {instruction: sbcUnofficial, addressing: immediate, cycles: 2},
	0xec: {instruction: cpx, addressing: absolute, cycles: 4},
	0xed: {instruction: sbc, addressing: absolute, cycles: 4},
	0xee: {instruction: inc, addressing: absolute, cycles: 6},
	0xef: {instruction: isc, addressing: absolute, cycles: 6},

	0xf0: {instruction: beq, addressing: relative, cycles: 2},
	0xf1: {instruction: sbc, addressing: indirectY, cycles: 5, pageCross: true},
	0xf3: {instruction: isc, addressing: indirectY, cycles: 8},
	0xf4: {instruction: nopUnofficial, addressing: zeroPageX, cycles: 4},
	0xf5: {instruction: sbc, addressing: zeroPageX, cycles: 4},
	0xf6: {instruction: inc, addressing: zeroPageX, cycles: 6},
	0xf7: {instruction: isc, addressing: zeroPageX, cycles: 6},
	0xf8: {instruction: sed, addressing: implied, cycles: 2},
	0xf9: {instruction: sbc, addressing: absoluteY, cycles: 4, pageCross: true},
	0xfa: {instruction: nopUnofficial, addressing: implied, cycles: 2},
	0xfb: {instruction: isc, addressing: absoluteY, cycles: 7},
	0xfc: {instruction: nopUnofficial, addressing: absoluteX, cycles: 4, pageCross: true},
	0xfd: {instruction: sbc, addressing: absoluteX, cycles: 4, pageCross: true},
	0xfe: {instruction: inc, addressing: absoluteX, cycles: 7},
	0xff: {instruction: isc, addressing: absoluteX, cycles: 7},
}

// OpcodeInfo describes an opcode for tools that decode instructions without executing them.
type OpcodeInfo struct {
	Name       string
	Addressing cpu6502.AddressingMode
	Size       int
	Cycles     int
	Unofficial bool
}

// Lookup returns the description of an opcode byte. It returns false for
// bytes that halt the processor.
func Lookup(b byte) (OpcodeInfo, bool) {
	op := opcodes[b]
	if op.instruction == nil {
		return OpcodeInfo{}, false
	}
	return OpcodeInfo{
		Name:       op.instruction.name,
		Addressing: op.addressing,
		Size:       InstructionSize(op.addressing),
		Cycles:     int(op.cycles),
		Unofficial: op.instruction.unofficial,
	}, true
}
