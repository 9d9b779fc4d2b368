package m6502

import (
	"errors"
	"testing"

	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestAdcImmediate(t *testing.T) {
	tests := []struct {
		name     string
		a        byte
		carry    bool
		operand  byte
		expected byte
		flags    Flags
	}{
		{
			name:     "no carry no overflow",
			a:        0x50,
			operand:  0x10,
			expected: 0x60,
		},
		{
			name:     "carry out and zero",
			a:        0xff,
			operand:  0x01,
			expected: 0x00,
			flags:    Flags{Carry: true, Zero: true},
		},
		{
			name:     "signed overflow",
			a:        0x50,
			operand:  0x50,
			expected: 0xa0,
			flags:    Flags{Overflow: true, Negative: true},
		},
		{
			name:     "carry in",
			a:        0x01,
			carry:    true,
			operand:  0x01,
			expected: 0x03,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, _ := newTestCPU(t, 0x69, tt.operand)
			cpu.A = tt.a
			cpu.Flags = Flags{Carry: tt.carry}

			res := step(t, cpu)

			assert.Equal(t, tt.expected, cpu.A)
			assert.Equal(t, tt.flags, cpu.Flags)
			assert.Equal(t, 2, res.Cycles)
			assert.Equal(t, uint16(testOrigin+2), cpu.PC)
		})
	}
}

func TestSbcImmediate(t *testing.T) {
	cpu, _ := newTestCPU(t, 0xe9, 0x01, 0xe9, 0x01)
	cpu.A = 0x00
	cpu.Flags.Carry = true

	step(t, cpu)
	assert.Equal(t, byte(0xff), cpu.A)
	assert.False(t, cpu.Flags.Carry)
	assert.True(t, cpu.Flags.Negative)

	step(t, cpu)
	assert.Equal(t, byte(0xfd), cpu.A)
	assert.True(t, cpu.Flags.Carry)
}

func TestDecimalMode(t *testing.T) {
	program := []byte{0xf8, 0x18, 0xa9, 0x19, 0x69, 0x01}

	t.Run("disabled", func(t *testing.T) {
		cpu, _ := newTestCPU(t, program...)
		for range 4 {
			step(t, cpu)
		}
		assert.True(t, cpu.Flags.Decimal)
		assert.Equal(t, byte(0x1a), cpu.A)
	})

	t.Run("enabled", func(t *testing.T) {
		opts := options.NewEmulator()
		opts.DecimalMode = true
		cpu, _ := newTestCPUWithOptions(t, opts, program...)
		for range 4 {
			step(t, cpu)
		}
		assert.Equal(t, byte(0x20), cpu.A)
	})
}

func TestIllegalOpcode(t *testing.T) {
	for _, b := range haltOpcodes {
		cpu, mem := newTestCPU(t, b)
		cpu.A = 0x12
		cpu.X = 0x34
		before := cpu.State
		cycles := cpu.Cycles()
		writes := mem.Writes

		res, err := cpu.Step()

		assert.True(t, errors.Is(err, ErrIllegalOpcode))
		var illegal *IllegalOpcodeError
		assert.True(t, errors.As(err, &illegal))
		assert.Equal(t, b, illegal.Opcode)
		assert.Equal(t, uint16(testOrigin), illegal.Address)
		assert.Equal(t, b, res.Opcode)
		assert.Equal(t, before, cpu.State)
		assert.Equal(t, cycles, cpu.Cycles())
		assert.Equal(t, writes, mem.Writes)
	}
}

func TestOfficialOnly(t *testing.T) {
	opts := options.NewEmulator()
	opts.OfficialOnly = true

	cpu, _ := newTestCPUWithOptions(t, opts, 0xa7, 0x10)
	_, err := cpu.Step()
	assert.ErrorContains(t, err, "illegal opcode $A7 at $8000")
	assert.Equal(t, uint16(testOrigin), cpu.PC)

	cpu, _ = newTestCPUWithOptions(t, opts, 0xea)
	step(t, cpu)
	assert.Equal(t, uint16(testOrigin+1), cpu.PC)
}

func TestLoadStore(t *testing.T) {
	cpu, mem := newTestCPU(t,
		0xa9, 0x80, // lda #$80
		0x85, 0x10, // sta $10
		0xa2, 0x00, // ldx #$00
		0xa4, 0x10, // ldy $10
		0x8e, 0x00, 0x03, // stx $0300
	)

	step(t, cpu)
	assert.Equal(t, byte(0x80), cpu.A)
	assert.True(t, cpu.Flags.Negative)

	res := step(t, cpu)
	assert.Equal(t, byte(0x80), mem.Data[0x10])
	assert.Equal(t, 3, res.Cycles)

	step(t, cpu)
	assert.True(t, cpu.Flags.Zero)
	assert.False(t, cpu.Flags.Negative)

	step(t, cpu)
	assert.Equal(t, byte(0x80), cpu.Y)

	mem.Data[0x0300] = 0xff
	step(t, cpu)
	assert.Equal(t, byte(0x00), mem.Data[0x0300])
}

func TestPageCrossCycles(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		x, y    byte
		cycles  int
		crossed bool
	}{
		{name: "lda absolute x same page", program: []byte{0xbd, 0x00, 0x12}, x: 0x10, cycles: 4},
		{name: "lda absolute x crossed", program: []byte{0xbd, 0xff, 0x12}, x: 0x01, cycles: 5, crossed: true},
		{name: "lda indirect y crossed", program: []byte{0xb1, 0x40}, y: 0xff, cycles: 6, crossed: true},
		{name: "sta absolute x crossed", program: []byte{0x9d, 0xff, 0x12}, x: 0x01, cycles: 5},
		{name: "inc absolute x crossed", program: []byte{0xfe, 0xff, 0x12}, x: 0x01, cycles: 7},
		{name: "nop absolute x crossed", program: []byte{0x1c, 0xff, 0x12}, x: 0x01, cycles: 5, crossed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := newTestCPU(t, tt.program...)
			mem.SetWord(0x0040, 0x2001)
			cpu.X = tt.x
			cpu.Y = tt.y

			res := step(t, cpu)
			assert.Equal(t, tt.cycles, res.Cycles)
			assert.Equal(t, tt.crossed, res.PageCrossed)
		})
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name   string
		origin uint16
		opcode byte
		offset byte
		flags  Flags
		pc     uint16
		cycles int
		taken  bool
	}{
		{name: "bne not taken", origin: 0x8000, opcode: 0xd0, offset: 0x10, flags: Flags{Zero: true}, pc: 0x8002, cycles: 2},
		{name: "bne taken", origin: 0x8000, opcode: 0xd0, offset: 0x10, pc: 0x8012, cycles: 3, taken: true},
		{name: "beq taken backward crossing", origin: 0x8000, opcode: 0xf0, offset: 0xfc, flags: Flags{Zero: true}, pc: 0x7ffe, cycles: 4, taken: true},
		{name: "bcc taken", origin: 0x8000, opcode: 0x90, offset: 0x02, pc: 0x8004, cycles: 3, taken: true},
		{name: "bcs taken forward crossing", origin: 0x80f0, opcode: 0xb0, offset: 0x20, flags: Flags{Carry: true}, pc: 0x8112, cycles: 4, taken: true},
		{name: "bpl not taken", origin: 0x8000, opcode: 0x10, offset: 0x02, flags: Flags{Negative: true}, pc: 0x8002, cycles: 2},
		{name: "bmi taken", origin: 0x8000, opcode: 0x30, offset: 0x02, flags: Flags{Negative: true}, pc: 0x8004, cycles: 3, taken: true},
		{name: "bvc taken", origin: 0x8000, opcode: 0x50, offset: 0x02, pc: 0x8004, cycles: 3, taken: true},
		{name: "bvs not taken", origin: 0x8000, opcode: 0x70, offset: 0x02, pc: 0x8002, cycles: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := newTestCPU(t)
			mem.Load(tt.origin, tt.opcode, tt.offset)
			cpu.PC = tt.origin
			cpu.Flags = tt.flags

			res := step(t, cpu)
			assert.Equal(t, tt.pc, cpu.PC)
			assert.Equal(t, tt.cycles, res.Cycles)
			assert.Equal(t, tt.taken, res.BranchTaken)
		})
	}
}

func TestJumpIndirectPageWrap(t *testing.T) {
	cpu, mem := newTestCPU(t, 0x6c, 0xff, 0x02)
	mem.Load(0x02ff, 0x00)
	mem.Load(0x0200, 0x90)
	mem.Load(0x0300, 0xa0)

	res := step(t, cpu)
	assert.Equal(t, uint16(0x9000), cpu.PC)
	assert.Equal(t, 5, res.Cycles)
}

func TestSubroutine(t *testing.T) {
	cpu, mem := newTestCPU(t, 0x20, 0x00, 0x90) // jsr $9000
	mem.Load(0x9000, 0x60)                      // rts

	res := step(t, cpu)
	assert.Equal(t, uint16(0x9000), cpu.PC)
	assert.Equal(t, 6, res.Cycles)
	assert.Equal(t, byte(0xfb), cpu.SP)
	assert.Equal(t, byte(0x80), mem.Data[0x01fd])
	assert.Equal(t, byte(0x02), mem.Data[0x01fc])

	res = step(t, cpu)
	assert.Equal(t, uint16(testOrigin+3), cpu.PC)
	assert.Equal(t, 6, res.Cycles)
	assert.Equal(t, byte(0xfd), cpu.SP)
}

func TestStackInstructions(t *testing.T) {
	cpu, mem := newTestCPU(t,
		0x08,       // php
		0xa9, 0x00, // lda #$00
		0x48, // pha
		0x28, // plp
		0x68, // pla
	)
	cpu.Flags = Flags{Carry: true, Negative: true}

	step(t, cpu)
	assert.Equal(t, byte(0xb1), mem.Data[0x01fd])

	step(t, cpu)
	step(t, cpu)
	assert.Equal(t, byte(0x00), mem.Data[0x01fc])

	step(t, cpu)
	assert.Equal(t, Flags{}, cpu.Flags)

	res := step(t, cpu)
	assert.Equal(t, 4, res.Cycles)
	assert.Equal(t, byte(0xb1), cpu.A)
	assert.True(t, cpu.Flags.Negative)
	assert.Equal(t, byte(0xfd), cpu.SP)
}

func TestReadModifyWrite(t *testing.T) {
	tests := []struct {
		name     string
		program  []byte
		value    byte
		carry    bool
		expected byte
		flags    Flags
	}{
		{name: "asl", program: []byte{0x06, 0x10}, value: 0x81, expected: 0x02, flags: Flags{Carry: true}},
		{name: "lsr", program: []byte{0x46, 0x10}, value: 0x01, expected: 0x00, flags: Flags{Carry: true, Zero: true}},
		{name: "rol", program: []byte{0x26, 0x10}, value: 0x40, carry: true, expected: 0x81, flags: Flags{Negative: true}},
		{name: "ror", program: []byte{0x66, 0x10}, value: 0x01, carry: true, expected: 0x80, flags: Flags{Carry: true, Negative: true}},
		{name: "inc wraps", program: []byte{0xe6, 0x10}, value: 0xff, expected: 0x00, flags: Flags{Zero: true}},
		{name: "dec", program: []byte{0xc6, 0x10}, value: 0x00, expected: 0xff, flags: Flags{Negative: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := newTestCPU(t, tt.program...)
			mem.Data[0x10] = tt.value
			cpu.Flags = Flags{Carry: tt.carry}

			res := step(t, cpu)
			assert.Equal(t, tt.expected, mem.Data[0x10])
			assert.Equal(t, tt.flags, cpu.Flags)
			assert.Equal(t, 5, res.Cycles)
		})
	}
}

func TestAccumulatorShift(t *testing.T) {
	cpu, mem := newTestCPU(t, 0x0a) // asl a
	cpu.A = 0xc0
	writes := mem.Writes

	res := step(t, cpu)
	assert.Equal(t, byte(0x80), cpu.A)
	assert.True(t, cpu.Flags.Carry)
	assert.True(t, cpu.Flags.Negative)
	assert.Equal(t, 2, res.Cycles)
	assert.Equal(t, writes, mem.Writes)
}

func TestCompareAndBit(t *testing.T) {
	cpu, mem := newTestCPU(t,
		0xc9, 0x10, // cmp #$10
		0xe0, 0x20, // cpx #$20
		0x24, 0x10, // bit $10
	)
	cpu.A = 0x10
	cpu.X = 0x10
	mem.Data[0x10] = 0xc0

	step(t, cpu)
	assert.True(t, cpu.Flags.Carry)
	assert.True(t, cpu.Flags.Zero)

	step(t, cpu)
	assert.False(t, cpu.Flags.Carry)
	assert.True(t, cpu.Flags.Negative)

	step(t, cpu)
	assert.True(t, cpu.Flags.Zero)
	assert.True(t, cpu.Flags.Negative)
	assert.True(t, cpu.Flags.Overflow)
}

func TestTransfers(t *testing.T) {
	cpu, _ := newTestCPU(t,
		0xa2, 0x00, // ldx #$00
		0x9a, // txs
		0xba, // tsx
		0xe8, // inx
		0x8a, // txa
		0xa8, // tay
	)
	cpu.Flags.Zero = false

	step(t, cpu)
	step(t, cpu)
	assert.Equal(t, byte(0x00), cpu.SP)
	step(t, cpu)
	assert.True(t, cpu.Flags.Zero)
	step(t, cpu)
	step(t, cpu)
	step(t, cpu)
	assert.Equal(t, byte(0x01), cpu.Y)
	assert.False(t, cpu.Flags.Zero)
}

func TestUnofficialInstructions(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		setup   func(cpu *CPU)
		check   func(t *testing.T, cpu *CPU)
	}{
		{
			name:    "lax",
			program: []byte{0xa7, 0x10},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x55), cpu.A)
				assert.Equal(t, byte(0x55), cpu.X)
			},
		},
		{
			name:    "sax",
			program: []byte{0x87, 0x20},
			setup: func(cpu *CPU) {
				cpu.A = 0xf0
				cpu.X = 0x3c
			},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x30), cpu.mem.Read(0x20))
			},
		},
		{
			name:    "dcp",
			program: []byte{0xc7, 0x10},
			setup:   func(cpu *CPU) { cpu.A = 0x54 },
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x54), cpu.mem.Read(0x10))
				assert.True(t, cpu.Flags.Zero)
				assert.True(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "isc",
			program: []byte{0xe7, 0x10},
			setup: func(cpu *CPU) {
				cpu.A = 0x60
				cpu.Flags.Carry = true
			},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x56), cpu.mem.Read(0x10))
				assert.Equal(t, byte(0x0a), cpu.A)
			},
		},
		{
			name:    "slo",
			program: []byte{0x07, 0x10},
			setup:   func(cpu *CPU) { cpu.A = 0x01 },
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0xaa), cpu.mem.Read(0x10))
				assert.Equal(t, byte(0xab), cpu.A)
				assert.False(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "sre",
			program: []byte{0x47, 0x10},
			setup:   func(cpu *CPU) { cpu.A = 0xff },
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x2a), cpu.mem.Read(0x10))
				assert.Equal(t, byte(0xd5), cpu.A)
				assert.True(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "anc",
			program: []byte{0x0b, 0x80},
			setup:   func(cpu *CPU) { cpu.A = 0xff },
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x80), cpu.A)
				assert.True(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "alr",
			program: []byte{0x4b, 0x03},
			setup:   func(cpu *CPU) { cpu.A = 0xff },
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x01), cpu.A)
				assert.True(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "axs",
			program: []byte{0xcb, 0x02},
			setup: func(cpu *CPU) {
				cpu.A = 0x0f
				cpu.X = 0x07
			},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x05), cpu.X)
				assert.True(t, cpu.Flags.Carry)
			},
		},
		{
			name:    "unofficial sbc",
			program: []byte{0xeb, 0x01},
			setup: func(cpu *CPU) {
				cpu.A = 0x10
				cpu.Flags.Carry = true
			},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x0f), cpu.A)
			},
		},
		{
			name:    "shx",
			program: []byte{0x9e, 0x00, 0x02},
			setup: func(cpu *CPU) {
				cpu.X = 0xff
				cpu.Y = 0x10
			},
			check: func(t *testing.T, cpu *CPU) {
				t.Helper()
				assert.Equal(t, byte(0x03), cpu.mem.Read(0x0210))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := newTestCPU(t, tt.program...)
			mem.Data[0x10] = 0x55
			if tt.setup != nil {
				tt.setup(cpu)
			}
			step(t, cpu)
			tt.check(t, cpu)
		})
	}
}

func TestTrapLeavesProgramCounter(t *testing.T) {
	cpu, _ := newTestCPU(t, 0x4c, 0x00, 0x80) // jmp $8000

	res := step(t, cpu)
	assert.Equal(t, res.Address, cpu.PC)
	assert.Equal(t, 3, res.Cycles)
}
