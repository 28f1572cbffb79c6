// Patch file serialization: a compact on-disk representation of a Patch,
// distributable without a copy of the base image. Adapted from the
// teacher's replay file format (internal/infrastructure/storage): the same
// fixed-header-plus-record binary.Write/Read discipline, repurposed from a
// game replay's action log to a sorted-offset byte overlay.
package patchengine

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// magicHeader identifies a zora patch file. 4 bytes, matching the
	// teacher's own fixed-width magic convention.
	magicHeader = "ZPCH"
	fileVersion uint32 = 1
)

// fileHeader is written and read whole via binary.Write/Read, exactly as
// the teacher's ReplayFileHeader is: no slices or strings, only fixed-width
// fields.
type fileHeader struct {
	Magic      [4]byte
	Version    uint32
	Hash       uint64
	EntryCount uint32
}

// entryHeader precedes each (offset, byte) pair on disk.
type entryHeader struct {
	Offset int32
	Value  byte
}

// Save writes p to path in the zora patch file format.
func (p *Patch) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.writeTo(f)
}

func (p *Patch) writeTo(w io.Writer) error {
	offsets := p.Offsets()

	header := fileHeader{
		Version:    fileVersion,
		Hash:       p.Hash(),
		EntryCount: uint32(len(offsets)),
	}
	copy(header.Magic[:], magicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write patch header: %w", err)
	}

	for _, offset := range offsets {
		entry := entryHeader{Offset: int32(offset), Value: p.data[offset]}
		if err := binary.Write(w, binary.LittleEndian, &entry); err != nil {
			return fmt.Errorf("failed to write patch entry at offset %d: %w", offset, err)
		}
	}
	return nil
}

// Load reads a patch file previously written by Save. The recovered hash is
// verified against the entries actually read; a mismatch means the file was
// truncated or corrupted in transit.
func Load(path string) (*Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readFrom(f)
}

func readFrom(r io.Reader) (*Patch, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read patch header: %w", err)
	}
	if string(header.Magic[:]) != magicHeader {
		return nil, fmt.Errorf("not a zora patch file")
	}
	if header.Version != fileVersion {
		return nil, fmt.Errorf("unsupported patch file version: %d (expected %d)", header.Version, fileVersion)
	}

	p := New()
	for i := uint32(0); i < header.EntryCount; i++ {
		var entry entryHeader
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return nil, fmt.Errorf("failed to read patch entry %d: %w", i, err)
		}
		p.Set(int(entry.Offset), entry.Value)
	}

	if p.Hash() != header.Hash {
		return nil, fmt.Errorf("patch file corrupt: hash mismatch (header %x, computed %x)", header.Hash, p.Hash())
	}
	return p, nil
}
