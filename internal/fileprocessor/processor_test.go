package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/nes6502/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram increments X and then jumps to itself.
var testProgram = []byte{
	0xe8,             // inx
	0x4c, 0x01, 0x04, // jmp $0401
}

func writeProgram(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "program.bin")
	assert.NoError(t, os.WriteFile(path, testProgram, 0o600))
	return path
}

func flatOptions(input, output string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{System: "flat", Quiet: true},
		Run:        options.Run{LoadAddress: 0x0400, StartAddress: 0x0400, HasStart: true},
	}
}

//nolint:funlen // test functions can be long
func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := writeProgram(t, dir)

	t.Run("writes trace", func(t *testing.T) {
		logger := log.NewTestLogger(t)
		output := filepath.Join(dir, "trace.log")
		opts := flatOptions(input, output)

		assert.NoError(t, ProcessFile(context.Background(), logger, opts, options.NewEmulator()))

		data, err := os.ReadFile(output)
		assert.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Equal(t, 2, len(lines))
		assert.True(t, strings.HasPrefix(lines[0], "0400  E8        INX"))
		assert.True(t, strings.HasSuffix(lines[1], "A:00 X:01 Y:00 P:24 SP:FD CYC:9"))
	})

	t.Run("verifies trace against reference", func(t *testing.T) {
		logger := log.NewTestLogger(t)
		reference := filepath.Join(dir, "reference.log")
		opts := flatOptions(input, filepath.Join(dir, "first.log"))
		assert.NoError(t, ProcessFile(context.Background(), logger, opts, options.NewEmulator()))
		assert.NoError(t, os.Rename(opts.Output, reference))

		opts = flatOptions(input, filepath.Join(dir, "second.log"))
		opts.Verify = reference
		assert.NoError(t, ProcessFile(context.Background(), logger, opts, options.NewEmulator()))
	})

	t.Run("verification mismatch", func(t *testing.T) {
		reference := filepath.Join(dir, "mismatch.log")
		content := "0400  E8        INX                             A:00 X:00 Y:00 P:24 SP:FD CYC:7\n" +
			"0401  4C 01 04  JMP $0401                       A:00 X:02 Y:00 P:24 SP:FD CYC:9\n"
		assert.NoError(t, os.WriteFile(reference, []byte(content), 0o600))

		opts := flatOptions(input, filepath.Join(dir, "third.log"))
		opts.Verify = reference
		err := ProcessFile(context.Background(), log.NewNop(), opts, options.NewEmulator())
		assert.ErrorContains(t, err, "verification failed")
	})

	t.Run("run without trace", func(t *testing.T) {
		logger := log.NewTestLogger(t)
		opts := flatOptions(input, "")
		assert.NoError(t, ProcessFile(context.Background(), logger, opts, options.NewEmulator()))
	})

	t.Run("invalid output path", func(t *testing.T) {
		logger := log.NewTestLogger(t)
		opts := flatOptions(input, filepath.Join(dir, "missing", "trace.log"))
		err := ProcessFile(context.Background(), logger, opts, options.NewEmulator())
		assert.ErrorContains(t, err, "creating writer")
	})
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.nes", "b.nes", "c.bin"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.nes")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(files))

	opts = &options.Program{Parameters: options.Parameters{Input: "single.nes"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.nes"}, files)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/nestest.log", GenerateOutputFilename("roms/nestest.nes"))
	assert.Equal(t, "program.log", GenerateOutputFilename("program"))
}
