package m6502

import (
	"testing"

	"github.com/retroenv/nes6502/internal/arch/mocks"
	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const testOrigin = 0x8000

// newTestCPU returns a processor with the program placed at the test origin
// and the program counter pointing to it.
func newTestCPU(t *testing.T, program ...byte) (*CPU, *mocks.Memory) {
	t.Helper()
	return newTestCPUWithOptions(t, options.NewEmulator(), program...)
}

func newTestCPUWithOptions(t *testing.T, opts options.Emulator, program ...byte) (*CPU, *mocks.Memory) {
	t.Helper()
	logger := log.NewTestLogger(t)
	mem := mocks.NewMemory(testOrigin, program...)
	mem.SetWord(resetVector, testOrigin)

	cpu := New(logger, mem, opts)
	cpu.PC = testOrigin
	cpu.SP = 0xfd
	return cpu, mem
}

// step executes a single instruction and fails the test on an error.
func step(t *testing.T, cpu *CPU) Result {
	t.Helper()
	res, err := cpu.Step()
	assert.NoError(t, err)
	return res
}
