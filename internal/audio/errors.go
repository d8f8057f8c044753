package audio

import "errors"

var (
	// ErrDecode is returned when a container is malformed, truncated, or not integer PCM.
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedFormat is returned for sample widths or channel layouts the decoder does not handle.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidInterval is returned when an interval yields a window shorter than one sample.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrEmptySignal is returned when a non-empty signal is required.
	ErrEmptySignal = errors.New("empty signal")
)
