// Package audio decodes PCM WAV containers into normalized mono signals and computes power statistics.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-audio/wav"

	"github.com/mariorollojr/power-density-variables/internal/types"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

// WAV format tags accepted as integer PCM.
const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

// ChannelMode selects how a stereo signal is reduced to mono.
type ChannelMode string

const (
	// ChannelFirst keeps the first channel and discards the second.
	ChannelFirst ChannelMode = "first"
	// ChannelMix averages both channels.
	ChannelMix ChannelMode = "mix"
)

// ParseChannelMode maps a configuration value to a ChannelMode. Empty selects ChannelFirst.
func ParseChannelMode(s string) (ChannelMode, error) {
	switch ChannelMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ChannelFirst:
		return ChannelFirst, nil
	case ChannelMix:
		return ChannelMix, nil
	}
	return "", fmt.Errorf("unknown channel mode %q (want %q or %q)", s, ChannelFirst, ChannelMix)
}

// Signal is a normalized mono signal together with the header it was decoded from.
// Samples holds one value per frame, nominally in [-1, 1].
type Signal struct {
	Samples []float64
	types.Metadata
}

// sampleFormat describes how one interleaved sample of a given width is read.
type sampleFormat struct {
	width   int
	divisor float64
	read    func(b []byte) int64
}

// sampleFormats maps sample width in bytes to its integer interpretation.
// 8-bit WAV data is unsigned with a 128 offset; wider widths are signed little-endian.
var sampleFormats = map[int]sampleFormat{
	1: {width: 1, divisor: fullScale(1), read: func(b []byte) int64 {
		return int64(b[0]) - 128
	}},
	2: {width: 2, divisor: fullScale(2), read: func(b []byte) int64 {
		return int64(int16(binary.LittleEndian.Uint16(b)))
	}},
	3: {width: 3, divisor: fullScale(3), read: func(b []byte) int64 {
		return int64(int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8)
	}},
	4: {width: 4, divisor: fullScale(4), read: func(b []byte) int64 {
		return int64(int32(binary.LittleEndian.Uint32(b)))
	}},
}

// fullScale returns the largest positive value representable in width bytes.
func fullScale(width int) float64 {
	return float64(int64(1)<<(8*width-1) - 1)
}

// Decode reads a WAV container and returns its normalized mono signal.
// Stereo input is reduced according to mode.
func Decode(r io.ReadSeeker, mode ChannelMode) (*Signal, error) {
	d := wav.NewDecoder(r)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDecode, err)
	}

	meta, format, err := readMetadata(d)
	if err != nil {
		return nil, err
	}
	if d.WavAudioFormat == formatExtensible {
		guid, err := extensibleSubFormat(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read extensible format: %v", ErrDecode, err)
		}
		if guid != subtypePCM {
			return nil, fmt.Errorf("%w: not integer PCM (extensible subformat %x)", ErrDecode, guid)
		}
	}

	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: locate data chunk: %v", ErrDecode, err)
	}
	if d.PCMChunk == nil {
		return nil, fmt.Errorf("%w: missing data chunk", ErrDecode)
	}
	// d.PCMSize is rounded up to include the pad byte of an odd-sized chunk.
	size, err := declaredDataSize(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read data chunk header: %v", ErrDecode, err)
	}

	frameBytes := meta.Channels * meta.SampleWidth
	meta.Frames = size / frameBytes

	raw := make([]byte, meta.Frames*frameBytes)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: truncated data chunk (%d frames declared): %v", ErrDecode, meta.Frames, err)
	}

	return &Signal{
		Samples:  format.normalize(raw, meta.Channels, mode),
		Metadata: meta,
	}, nil
}

// DecodeBytes decodes an in-memory WAV container.
func DecodeBytes(b []byte, mode ChannelMode) (*Signal, error) {
	return Decode(bytes.NewReader(b), mode)
}

// DecodeFile opens and decodes the WAV file at path. The file is closed on return.
func DecodeFile(path string, mode ChannelMode) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer util.SafeCloseFunc(f, "audio file")()

	return Decode(f, mode)
}

// readMetadata validates the format chunk read by d.
func readMetadata(d *wav.Decoder) (types.Metadata, sampleFormat, error) {
	if d.NumChans == 0 {
		return types.Metadata{}, sampleFormat{}, fmt.Errorf("%w: missing or empty format chunk", ErrDecode)
	}
	if d.WavAudioFormat != formatPCM && d.WavAudioFormat != formatExtensible {
		return types.Metadata{}, sampleFormat{}, fmt.Errorf("%w: not integer PCM (format tag 0x%04x)", ErrDecode, d.WavAudioFormat)
	}
	if d.SampleRate == 0 {
		return types.Metadata{}, sampleFormat{}, fmt.Errorf("%w: zero sample rate", ErrDecode)
	}
	if d.NumChans > 2 {
		return types.Metadata{}, sampleFormat{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, d.NumChans)
	}

	format, ok := sampleFormats[int(d.BitDepth)/8]
	if !ok || d.BitDepth%8 != 0 {
		return types.Metadata{}, sampleFormat{}, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, d.BitDepth)
	}

	return types.Metadata{
		Channels:    int(d.NumChans),
		SampleWidth: format.width,
		SampleRate:  int(d.SampleRate),
	}, format, nil
}

// normalize converts interleaved raw frames to one normalized value per frame.
func (f sampleFormat) normalize(raw []byte, channels int, mode ChannelMode) []float64 {
	frameBytes := channels * f.width
	out := make([]float64, len(raw)/frameBytes)

	for i := range out {
		frame := raw[i*frameBytes : (i+1)*frameBytes]
		v := float64(f.read(frame))
		if channels == 2 && mode == ChannelMix {
			v = (v + float64(f.read(frame[f.width:]))) / 2
		}
		out[i] = v / f.divisor
	}

	return out
}
