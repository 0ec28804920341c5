// Package testutil builds synthetic managed binaries for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Layout used by AssemblyImage. The CLI header sits 8 bytes into the first
// section, the metadata root 0x100 bytes in.
const (
	PEOffset         = 0x80
	SectionAlignment = 0x2000
	FileAlignment    = 0x200
	CLIHeaderRVA     = 0x2008
	MetadataRVA      = 0x2100
	ImageSize        = 0x400
)

// AssemblyOptions controls the generated header fields. The zero value is
// not useful; start from DefaultAssembly.
type AssemblyOptions struct {
	Machine        uint16
	Magic          uint16
	DataDirs       uint32
	CLIHeaderRVA   uint32
	RuntimeMajor   uint16
	RuntimeMinor   uint16
	Flags          uint32
	RuntimeVersion string
	VersionPadding int // extra NULs stored after the version string
	TimeDateStamp  uint32
}

// DefaultAssembly returns options for a valid AnyCPU v4.0.30319 assembly
func DefaultAssembly() AssemblyOptions {
	return AssemblyOptions{
		Machine:        0x014c,
		Magic:          0x10b,
		DataDirs:       16,
		CLIHeaderRVA:   CLIHeaderRVA,
		RuntimeMajor:   2,
		RuntimeMinor:   5,
		RuntimeVersion: "v4.0.30319",
		VersionPadding: 2,
		TimeDateStamp:  0x5f5e1000,
	}
}

// AssemblyImage renders the options into file bytes
func AssemblyImage(opts AssemblyOptions) []byte {
	b := make([]byte, ImageSize)
	le := binary.LittleEndian

	b[0], b[1] = 'M', 'Z'
	le.PutUint32(b[0x3c:], PEOffset)

	copy(b[PEOffset:], []byte{'P', 'E', 0, 0})
	le.PutUint16(b[PEOffset+4:], opts.Machine)
	le.PutUint16(b[PEOffset+6:], 1)
	le.PutUint32(b[PEOffset+8:], opts.TimeDateStamp)

	opt := PEOffset + 24
	le.PutUint16(b[opt:], opts.Magic)
	le.PutUint32(b[opt+32:], SectionAlignment)
	le.PutUint32(b[opt+36:], FileAlignment)

	dirs := opt + 92
	if opts.Magic == 0x20b {
		dirs = opt + 108
	}
	le.PutUint32(b[dirs:], opts.DataDirs)
	le.PutUint32(b[dirs+4+112:], opts.CLIHeaderRVA)

	cli := CLIHeaderRVA - SectionAlignment + FileAlignment
	le.PutUint32(b[cli:], 0x48)
	le.PutUint16(b[cli+4:], opts.RuntimeMajor)
	le.PutUint16(b[cli+6:], opts.RuntimeMinor)
	le.PutUint32(b[cli+8:], MetadataRVA)
	le.PutUint32(b[cli+12:], 0x100)
	le.PutUint32(b[cli+16:], opts.Flags)

	md := MetadataRVA - SectionAlignment + FileAlignment
	copy(b[md:], []byte{'B', 'S', 'J', 'B'})
	le.PutUint16(b[md+4:], 1)
	le.PutUint16(b[md+6:], 1)
	version := opts.RuntimeVersion + string(make([]byte, opts.VersionPadding))
	le.PutUint32(b[md+12:], uint32(len(version)))
	copy(b[md+16:], version)

	return b
}

// WriteAssembly writes an assembly image into dir and returns its path
func WriteAssembly(t testing.TB, dir, name string, opts AssemblyOptions) string {
	t.Helper()
	return WriteFile(t, dir, name, AssemblyImage(opts))
}

// WriteFile writes arbitrary content into dir, creating it if needed, and
// returns the file path
func WriteFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}
