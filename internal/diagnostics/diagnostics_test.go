package diagnostics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type registers struct {
	PC uint16
	A  byte
}

type snapshot struct {
	Name      string
	Registers *registers
}

func TestWriteStateGraph(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "state.dot")
	value := &snapshot{
		Name:      "trap",
		Registers: &registers{PC: 0x3469, A: 0x42},
	}

	assert.NoError(t, WriteStateGraph(fileName, value))

	data, err := os.ReadFile(fileName)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "digraph"))
}

func TestWriteStateGraph_InvalidPath(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "missing", "state.dot")
	err := WriteStateGraph(fileName, &snapshot{})
	assert.ErrorContains(t, err, "creating file")
}
