package m6502

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/assert"
)

var haltOpcodes = []byte{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xb2, 0xd2, 0xf2}

func TestOpcodeTableCoverage(t *testing.T) {
	var official, unofficial int

	for i, op := range opcodes {
		b := byte(i)
		if slices.Contains(haltOpcodes, b) {
			assert.Nil(t, op.instruction, fmt.Sprintf("opcode %02x", b))
			continue
		}

		assert.NotNil(t, op.instruction, fmt.Sprintf("opcode %02x", b))
		assert.True(t, op.cycles >= 2, fmt.Sprintf("opcode %02x", b))
		_, ok := resolvers[op.addressing]
		assert.True(t, ok, fmt.Sprintf("opcode %02x", b))

		if op.instruction.unofficial {
			unofficial++
		} else {
			official++
		}
	}

	assert.Equal(t, 151, official)
	assert.Equal(t, 93, unofficial)
}

// TestOpcodeTableMatchesInstructionSet cross checks the official opcodes
// against the published instruction set.
func TestOpcodeTableMatchesInstructionSet(t *testing.T) {
	for i, op := range opcodes {
		ref := cpu6502.Opcodes[i]
		if ref.Instruction == nil || ref.Instruction.Unofficial || slices.Contains(haltOpcodes, byte(i)) {
			continue
		}

		msg := fmt.Sprintf("opcode %02x", i)
		assert.NotNil(t, op.instruction, msg)
		assert.False(t, op.instruction.unofficial, msg)
		assert.True(t, strings.EqualFold(ref.Instruction.Name, op.instruction.name), msg)
		assert.Equal(t, ref.Addressing, op.addressing, msg)
	}
}

func TestPageCrossOnlyForIndexedReads(t *testing.T) {
	for i, op := range opcodes {
		if !op.pageCross {
			continue
		}
		msg := fmt.Sprintf("opcode %02x", i)
		indexed := op.addressing == cpu6502.AbsoluteXAddressing ||
			op.addressing == cpu6502.AbsoluteYAddressing ||
			op.addressing == cpu6502.IndirectYAddressing
		assert.True(t, indexed, msg)
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup(0x6c)
	assert.True(t, ok)
	assert.Equal(t, "jmp", info.Name)
	assert.Equal(t, cpu6502.IndirectAddressing, info.Addressing)
	assert.Equal(t, 3, info.Size)
	assert.Equal(t, 5, info.Cycles)
	assert.False(t, info.Unofficial)

	info, ok = Lookup(0xa7)
	assert.True(t, ok)
	assert.Equal(t, "lax", info.Name)
	assert.True(t, info.Unofficial)

	_, ok = Lookup(0x02)
	assert.False(t, ok)
}
