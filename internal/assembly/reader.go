// Package assembly reads the PE and CLI headers of managed binaries.
//
// Only the header subset needed to classify a file is parsed: the DOS stub
// pointer, the COFF file header, the optional header alignment fields, the
// CLI header directory entry, the CLI header flags and the metadata root
// version string. Anything that does not look like a .NET 2.0+ assembly is
// reported as ErrNotManaged.
package assembly

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// ErrNotManaged is returned for files that are not managed assemblies.
// Malformed and truncated files end up here too.
var ErrNotManaged = errors.New("not a managed assembly")

// Header constants (ECMA-335 Partition II, 25)
const (
	peOffsetPointer = 0x3c

	machineI386  = 0x014c
	machineAMD64 = 0x8664

	magicPE32     = 0x10b
	magicPE32Plus = 0x20b

	dataDirectoryCount = 0x10

	runtimeMajor = 2
	runtimeMinor = 5

	flag32BitRequired = 0x2
	flagStrongNamed   = 0x8

	maxVersionLength = 255
)

var (
	dosSignature = []byte{0x4d, 0x5a}
	peSignature  = []byte{0x50, 0x45, 0x00, 0x00}
)

// Read opens the file at path and reads its assembly details
func Read(path string) (*models.Assembly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadFrom(path, f)
}

// ReadFrom reads assembly details from r. The path is only recorded on the result.
func ReadFrom(path string, r io.ReadSeeker) (*models.Assembly, error) {
	h := &headerReader{r: r}
	asm := &models.Assembly{
		Path: path,
		Name: filepath.Base(path),
	}

	// MZ
	sig := h.read(2)
	if h.err != nil {
		return nil, h.err
	}
	if !bytes.Equal(sig, dosSignature) {
		return nil, ErrNotManaged
	}

	h.seek(peOffsetPointer, io.SeekStart)
	peOffset := h.uint32()
	h.seek(int64(peOffset), io.SeekStart)

	// PE\0\0
	sig = h.read(4)
	if h.err != nil {
		return nil, h.err
	}
	if !bytes.Equal(sig, peSignature) {
		return nil, ErrNotManaged
	}

	machine := h.uint16()
	if h.err != nil {
		return nil, h.err
	}
	if machine != machineI386 && machine != machineAMD64 {
		return nil, ErrNotManaged
	}

	// 18 bytes left in the file header; NumberOfSections and TimeDateStamp
	// are the first six of them.
	h.uint16()
	stamp := h.uint32()
	h.seek(12, io.SeekCurrent)

	magic := h.uint16()
	if h.err != nil {
		return nil, h.err
	}
	var dirSkip int64
	switch magic {
	case magicPE32:
		// Refined to x86 below if the CLI flags require 32-bit
		asm.Architecture = models.ArchAnyCPU
		dirSkip = 52
	case magicPE32Plus:
		asm.Architecture = models.ArchX64
		dirSkip = 68
	default:
		return nil, ErrNotManaged
	}

	h.seek(30, io.SeekCurrent)
	sectionAlignment := h.uint32()
	fileAlignment := h.uint32()

	h.seek(dirSkip, io.SeekCurrent)
	if dirs := h.uint32(); h.err == nil && dirs != dataDirectoryCount {
		return nil, ErrNotManaged
	}

	// CLI header entry is the 15th data directory
	h.seek(112, io.SeekCurrent)
	cliRVA := h.uint32()
	if h.err != nil {
		return nil, h.err
	}
	if cliRVA == 0 {
		return nil, ErrNotManaged
	}

	// Skip the cb field of the CLI header
	h.seek(fileOffset(cliRVA, sectionAlignment, fileAlignment)+4, io.SeekStart)
	major := h.uint16()
	minor := h.uint16()
	if h.err != nil {
		return nil, h.err
	}
	if major != runtimeMajor || minor != runtimeMinor {
		return nil, ErrNotManaged
	}

	metadataRVA := h.uint32()
	h.seek(4, io.SeekCurrent)
	flags := h.uint32()
	if h.err != nil {
		return nil, h.err
	}
	if asm.Architecture == models.ArchAnyCPU && flags&flag32BitRequired != 0 {
		asm.Architecture = models.ArchX86
	}
	asm.StrongName = flags&flagStrongNamed != 0

	// Signature, major, minor and reserved precede the version length
	h.seek(fileOffset(metadataRVA, sectionAlignment, fileAlignment)+12, io.SeekStart)
	length := int32(h.uint32())
	if h.err != nil {
		return nil, h.err
	}
	if length <= 0 || length > maxVersionLength {
		return nil, ErrNotManaged
	}
	version := h.read(int(length))
	if h.err != nil {
		return nil, h.err
	}

	asm.RuntimeVersion = strings.TrimRight(string(version), "\x00")
	asm.LinkerTime = time.Unix(int64(stamp), 0).UTC()

	return asm, nil
}

// fileOffset converts an RVA to a file offset. The result may be negative
// for bogus headers; seek rejects it.
func fileOffset(rva, sectionAlignment, fileAlignment uint32) int64 {
	return int64(rva) - int64(sectionAlignment) + int64(fileAlignment)
}

// headerReader is a sticky-error little-endian reader. Once an error is
// recorded every later call is a no-op returning zero values.
type headerReader struct {
	r   io.ReadSeeker
	buf [4]byte
	err error
}

func (h *headerReader) seek(offset int64, whence int) {
	if h.err != nil {
		return
	}
	if whence == io.SeekStart && offset < 0 {
		h.err = ErrNotManaged
		return
	}
	if _, err := h.r.Seek(offset, whence); err != nil {
		h.err = fmt.Errorf("failed to seek: %w", err)
	}
}

func (h *headerReader) read(n int) []byte {
	if h.err != nil {
		return nil
	}
	var b []byte
	if n <= len(h.buf) {
		b = h.buf[:n]
	} else {
		b = make([]byte, n)
	}
	if _, err := io.ReadFull(h.r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			h.err = ErrNotManaged
		} else {
			h.err = fmt.Errorf("failed to read header: %w", err)
		}
		return nil
	}
	return b
}

func (h *headerReader) uint16() uint16 {
	b := h.read(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (h *headerReader) uint32() uint32 {
	b := h.read(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}
