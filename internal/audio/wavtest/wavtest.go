// Package wavtest builds WAV containers in memory for tests.
package wavtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Format tags.
const (
	FormatPCM        = 0x0001
	FormatFloat      = 0x0003
	FormatExtensible = 0xFFFE
)

// SubFormat GUIDs of a WAVE_FORMAT_EXTENSIBLE header.
var (
	SubFormatPCM   = subFormat(FormatPCM)
	SubFormatFloat = subFormat(FormatFloat)
)

// Header describes the fmt chunk of a generated container.
type Header struct {
	Format      uint16 // Defaults to FormatPCM; ignored when Extensible is set
	Channels    int
	SampleWidth int // Bytes per sample
	SampleRate  int

	// Extensible writes a 40-byte WAVE_FORMAT_EXTENSIBLE fmt chunk carrying SubFormat,
	// which defaults to SubFormatPCM.
	Extensible bool
	SubFormat  [16]byte

	// NoPad omits the pad byte that follows an odd-sized data chunk.
	NoPad bool
}

// Bytes returns a WAV container wrapping data. Odd-sized data is followed by a pad byte
// unless h.NoPad is set.
func Bytes(h Header, data []byte) []byte {
	return build(h, data, uint32(len(data)), !h.NoPad && len(data)%2 == 1)
}

// Truncated returns a container whose data chunk declares declared bytes but carries only data.
func Truncated(h Header, data []byte, declared int) []byte {
	return build(h, data, uint32(declared), false)
}

func build(h Header, data []byte, dataSize uint32, pad bool) []byte {
	format := h.Format
	if format == 0 {
		format = FormatPCM
	}
	fmtSize := uint32(16)
	if h.Extensible {
		format = FormatExtensible
		fmtSize = 40
	}
	blockAlign := h.Channels * h.SampleWidth

	riffSize := 4 + 8 + fmtSize + 8 + dataSize
	if pad {
		riffSize++
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	le32(&buf, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	le32(&buf, fmtSize)
	le16(&buf, format)
	le16(&buf, uint16(h.Channels))
	le32(&buf, uint32(h.SampleRate))
	le32(&buf, uint32(h.SampleRate*blockAlign))
	le16(&buf, uint16(blockAlign))
	le16(&buf, uint16(8*h.SampleWidth))
	if h.Extensible {
		sub := h.SubFormat
		if sub == ([16]byte{}) {
			sub = SubFormatPCM
		}
		le16(&buf, 22) // cbSize
		le16(&buf, uint16(8*h.SampleWidth))
		le32(&buf, 0) // channel mask
		buf.Write(sub[:])
	}

	buf.WriteString("data")
	le32(&buf, dataSize)
	buf.Write(data)
	if pad {
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

// subFormat returns the KSDATAFORMAT_SUBTYPE GUID for a format tag.
func subFormat(tag uint16) [16]byte {
	g := [16]byte{6: 0x10, 8: 0x80, 11: 0xAA, 13: 0x38, 14: 0x9B, 15: 0x71}
	binary.LittleEndian.PutUint16(g[:], tag)
	return g
}

// PCM8 encodes unsigned 8-bit samples.
func PCM8(samples ...uint8) []byte {
	return append([]byte(nil), samples...)
}

// PCM16 encodes interleaved signed 16-bit little-endian samples.
func PCM16(samples ...int16) []byte {
	out := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

// PCM24 encodes interleaved signed 24-bit little-endian samples.
func PCM24(samples ...int32) []byte {
	out := make([]byte, 0, 3*len(samples))
	for _, s := range samples {
		u := uint32(s)
		out = append(out, byte(u), byte(u>>8), byte(u>>16))
	}
	return out
}

// PCM32 encodes interleaved signed 32-bit little-endian samples.
func PCM32(samples ...int32) []byte {
	out := make([]byte, 0, 4*len(samples))
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint32(out, uint32(s))
	}
	return out
}

// Silence16 returns frames*channels zero 16-bit samples.
func Silence16(frames, channels int) []byte {
	return make([]byte, 2*frames*channels)
}

// WriteFile writes b to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, b []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

func le16(buf *bytes.Buffer, v uint16) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func le32(buf *bytes.Buffer, v uint32) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}
