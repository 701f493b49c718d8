package frq

import (
	"encoding/binary"
	"math"
)

// On-disk layout, little-endian throughout. Bytes 4-7 and 24-51 are opaque
// and carried through a parse/marshal round trip unchanged.
const (
	HeaderSize = 52

	magic            = "FREQ"
	defaultVersion   = "0003"
	perSamplesOffset = 8
	averageOffset    = 12
	countOffset      = 20
	frameValueSize   = 8
)

func defaultHeader() [HeaderSize]byte {
	var h [HeaderSize]byte
	copy(h[0:4], magic)
	copy(h[4:8], defaultVersion)
	return h
}

// Parse decodes a frq file. buf is not retained.
func Parse(buf []byte) (*Table, error) {
	if len(buf) < HeaderSize {
		return nil, &FormatError{Reason: ErrTooSmall, Size: len(buf)}
	}
	if string(buf[0:4]) != magic {
		return nil, &FormatError{Reason: ErrMissingMagic, Size: len(buf)}
	}

	perSamples := uint64(binary.LittleEndian.Uint32(buf[perSamplesOffset:]))
	if perSamples == 0 || perSamples > math.MaxInt {
		return nil, &FormatError{Reason: ErrBadPerSamples, Size: len(buf)}
	}
	average := math.Float64frombits(binary.LittleEndian.Uint64(buf[averageOffset:]))
	count := uint64(binary.LittleEndian.Uint32(buf[countOffset:]))

	need := uint64(HeaderSize) + 2*frameValueSize*count
	if uint64(len(buf)) < need {
		return nil, &FormatError{Reason: ErrTruncated, Size: len(buf)}
	}

	n := int(count)
	t := &Table{
		perSamples: int(perSamples),
		frqAverage: average,
		frq:        readFloats(buf[HeaderSize:], n),
		amp:        readFloats(buf[HeaderSize+frameValueSize*n:], n),
	}
	copy(t.header[:], buf[:HeaderSize])
	return t, nil
}

// MarshalBinary encodes t in the frq file layout. The frame count is Len();
// the amplitude array is truncated or zero-padded to match it.
func (t *Table) MarshalBinary() ([]byte, error) {
	n := len(t.frq)
	out := make([]byte, HeaderSize+2*frameValueSize*n)
	copy(out, t.header[:])
	if string(out[0:4]) != magic {
		h := defaultHeader()
		copy(out, h[:])
	}

	binary.LittleEndian.PutUint32(out[perSamplesOffset:], uint32(t.perSamples))
	binary.LittleEndian.PutUint64(out[averageOffset:], math.Float64bits(t.frqAverage))
	binary.LittleEndian.PutUint32(out[countOffset:], uint32(n))

	writeFloats(out[HeaderSize:], t.frq, n)
	writeFloats(out[HeaderSize+frameValueSize*n:], t.amp, n)
	return out, nil
}

// UnmarshalBinary replaces t with the table decoded from buf.
func (t *Table) UnmarshalBinary(buf []byte) error {
	parsed, err := Parse(buf)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

func readFloats(b []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*frameValueSize:]))
	}
	return out
}

func writeFloats(dst []byte, src []float64, n int) {
	for i := 0; i < n && i < len(src); i++ {
		binary.LittleEndian.PutUint64(dst[i*frameValueSize:], math.Float64bits(src[i]))
	}
}
