package frq

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFrq    = errors.New("need either a binary buffer or an explicit frequency sequence")
	ErrMissingAmp    = errors.New("need either precomputed amplitude or raw waveform data")
	ErrBadPerSamples = errors.New("samples per frame must be positive")

	ErrTooSmall     = errors.New("file too small to be a frq file")
	ErrMissingMagic = errors.New("missing FREQ identifier")
	ErrTruncated    = errors.New("file too short for declared frame count")
)

// ConfigError reports a construction config that cannot describe a complete table.
type ConfigError struct {
	Reason error
}

func (e *ConfigError) Error() string {
	return "frq: invalid config: " + e.Reason.Error()
}

func (e *ConfigError) Unwrap() error { return e.Reason }

// FormatError reports a buffer that is not a well-formed frq file. Size is
// the length of the rejected buffer.
type FormatError struct {
	Reason error
	Size   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("frq: bad format: %v (%d bytes)", e.Reason, e.Size)
}

func (e *FormatError) Unwrap() error { return e.Reason }
