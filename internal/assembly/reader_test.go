package assembly

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanShishkin/ngenctl/internal/testutil"
	"github.com/IvanShishkin/ngenctl/pkg/models"
)

func TestRead_Architecture(t *testing.T) {
	tests := []struct {
		name     string
		magic    uint16
		machine  uint16
		flags    uint32
		expected models.Architecture
	}{
		{"PE32 without 32BITREQUIRED", 0x10b, 0x014c, 0, models.ArchAnyCPU},
		{"PE32 with 32BITREQUIRED", 0x10b, 0x014c, 0x2, models.ArchX86},
		{"PE32+", 0x20b, 0x8664, 0, models.ArchX64},
		{"PE32+ ignores 32BITREQUIRED", 0x20b, 0x8664, 0x2, models.ArchX64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testutil.DefaultAssembly()
			opts.Magic = tt.magic
			opts.Machine = tt.machine
			opts.Flags = tt.flags
			path := testutil.WriteAssembly(t, t.TempDir(), "app.exe", opts)

			asm, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, asm.Architecture)
		})
	}
}

func TestRead_Details(t *testing.T) {
	opts := testutil.DefaultAssembly()
	opts.Flags = 0x8 | 0x1
	opts.RuntimeVersion = "v2.0.50727"
	opts.VersionPadding = 6
	path := testutil.WriteAssembly(t, t.TempDir(), "Lib.dll", opts)

	asm, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, path, asm.Path)
	assert.Equal(t, "Lib.dll", asm.Name)
	assert.Equal(t, "v2.0.50727", asm.RuntimeVersion)
	assert.True(t, asm.StrongName)
	assert.Equal(t, models.ArchAnyCPU, asm.Architecture)
	assert.Equal(t, time.Unix(int64(opts.TimeDateStamp), 0).UTC(), asm.LinkerTime)
}

func TestRead_Deterministic(t *testing.T) {
	opts := testutil.DefaultAssembly()
	opts.Flags = 0x2 | 0x8
	path := testutil.WriteAssembly(t, t.TempDir(), "app.exe", opts)

	first, err := Read(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRead_NotManaged(t *testing.T) {
	le := binary.LittleEndian

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"Empty file", func(b []byte) []byte { return nil }},
		{"Single byte", func(b []byte) []byte { return b[:1] }},
		{"Missing MZ", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"Missing PE signature", func(b []byte) []byte { b[testutil.PEOffset+2] = 1; return b }},
		{"PE offset past EOF", func(b []byte) []byte { le.PutUint32(b[0x3c:], 0xffff); return b }},
		{"Unknown machine", func(b []byte) []byte { le.PutUint16(b[testutil.PEOffset+4:], 0xaa64); return b }},
		{"Unknown magic", func(b []byte) []byte { le.PutUint16(b[testutil.PEOffset+24:], 0x107); return b }},
		{"Truncated optional header", func(b []byte) []byte { return b[:testutil.PEOffset+60] }},
		{"Truncated before metadata", func(b []byte) []byte { return b[:0x220] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image := tt.mutate(testutil.AssemblyImage(testutil.DefaultAssembly()))
			path := testutil.WriteFile(t, t.TempDir(), "bad.dll", image)

			asm, err := Read(path)
			assert.Nil(t, asm)
			assert.ErrorIs(t, err, ErrNotManaged)
		})
	}
}

func TestRead_NotManagedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *testutil.AssemblyOptions)
	}{
		{"Wrong data directory count", func(o *testutil.AssemblyOptions) { o.DataDirs = 15 }},
		{"Native image without CLI header", func(o *testutil.AssemblyOptions) { o.CLIHeaderRVA = 0 }},
		{"Runtime header 2.0", func(o *testutil.AssemblyOptions) { o.RuntimeMinor = 0 }},
		{"Runtime header 3.5", func(o *testutil.AssemblyOptions) { o.RuntimeMajor = 3 }},
		{"CLI header before section", func(o *testutil.AssemblyOptions) { o.CLIHeaderRVA = 0x10 }},
		{"Empty version string", func(o *testutil.AssemblyOptions) { o.RuntimeVersion = ""; o.VersionPadding = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testutil.DefaultAssembly()
			tt.mutate(&opts)
			path := testutil.WriteAssembly(t, t.TempDir(), "bad.dll", opts)

			asm, err := Read(path)
			assert.Nil(t, asm)
			assert.ErrorIs(t, err, ErrNotManaged)
		})
	}
}

func TestRead_TextFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "readme.txt", []byte("hello world, this is not a binary"))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrNotManaged)
}

func TestRead_IOError(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.dll"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotManaged)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadFrom_ReaderError(t *testing.T) {
	boom := errors.New("device not ready")
	r := &failingReader{ReadSeeker: bytes.NewReader(testutil.AssemblyImage(testutil.DefaultAssembly())), failAt: 0x100, err: boom}

	_, err := ReadFrom("app.exe", r)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotManaged)
	assert.ErrorIs(t, err, boom)
}

func TestReadFrom_InMemory(t *testing.T) {
	opts := testutil.DefaultAssembly()
	opts.Magic = 0x20b
	opts.Machine = 0x8664

	asm, err := ReadFrom(`C:\app\Tool.exe`, bytes.NewReader(testutil.AssemblyImage(opts)))
	require.NoError(t, err)
	assert.Equal(t, models.ArchX64, asm.Architecture)
	assert.Equal(t, "v4.0.30319", asm.RuntimeVersion)
	assert.False(t, asm.StrongName)
}

// failingReader returns err for any read that starts at or beyond failAt
type failingReader struct {
	io.ReadSeeker
	failAt int64
	err    error
}

func (f *failingReader) Read(p []byte) (int, error) {
	pos, _ := f.ReadSeeker.Seek(0, io.SeekCurrent)
	if pos >= f.failAt {
		return 0, f.err
	}
	return f.ReadSeeker.Read(p)
}
