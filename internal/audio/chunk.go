package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	riffHeaderSize = 12 // "RIFF", size, "WAVE"
	chunkHeaderLen = 8

	// Fixed fmt fields, cbSize, valid bits, channel mask, SubFormat.
	extensibleFmtSize = 40
	subFormatOffset   = 24
)

// subtypePCM is KSDATAFORMAT_SUBTYPE_PCM as stored on disk.
var subtypePCM = [16]byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// declaredDataSize returns the size field of the data chunk header that ends at the current
// position of r, leaving r at the first sample byte. The value excludes any RIFF pad byte.
func declaredDataSize(r io.ReadSeeker) (int, error) {
	if _, err := r.Seek(-chunkHeaderLen, io.SeekCurrent); err != nil {
		return 0, err
	}
	var hdr chunkHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return 0, err
	}
	if string(hdr.ID[:]) != "data" {
		return 0, fmt.Errorf("expected data chunk header, found %q", hdr.ID[:])
	}
	return int(hdr.Size), nil
}

// extensibleSubFormat scans r for the fmt chunk and returns its SubFormat GUID.
// The read position of r is restored before returning.
func extensibleSubFormat(r io.ReadSeeker) (guid [16]byte, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return guid, err
	}
	defer func() {
		if _, serr := r.Seek(pos, io.SeekStart); serr != nil && err == nil {
			err = serr
		}
	}()

	if _, err = r.Seek(riffHeaderSize, io.SeekStart); err != nil {
		return guid, err
	}
	for {
		var hdr chunkHeader
		if err = binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			return guid, fmt.Errorf("find fmt chunk: %w", err)
		}
		if string(hdr.ID[:]) != "fmt " {
			// Chunks are word aligned.
			if _, err = r.Seek(int64(hdr.Size)+int64(hdr.Size%2), io.SeekCurrent); err != nil {
				return guid, err
			}
			continue
		}
		if hdr.Size < extensibleFmtSize {
			return guid, fmt.Errorf("extensible fmt chunk is %d bytes, want at least %d", hdr.Size, extensibleFmtSize)
		}
		body := make([]byte, extensibleFmtSize)
		if _, err = io.ReadFull(r, body); err != nil {
			return guid, err
		}
		copy(guid[:], body[subFormatOffset:])
		return guid, nil
	}
}
