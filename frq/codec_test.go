package frq

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

func mustTable(t *testing.T, cfg Config) *Table {
	t.Helper()
	tab, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tab
}

func TestRoundTripPreservesFields(t *testing.T) {
	src := mustTable(t, Config{
		PerSamples: 128,
		FrqAverage: 293.66,
		Frq:        []float64{0, 290.5, 293.1, 0, 296.2},
		Amp:        []float64{0.01, 0.4, 0.45, 0.02, 0.38},
	})
	buf, err := src.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != HeaderSize+16*5 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), HeaderSize+16*5)
	}

	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.PerSamples() != 128 || got.FrqAverage() != 293.66 {
		t.Fatalf("header mismatch: perSamples=%d average=%f", got.PerSamples(), got.FrqAverage())
	}
	for i := 0; i < src.Len(); i++ {
		if got.FreqAt(i) != src.FreqAt(i) || got.AmpAt(i) != src.AmpAt(i) {
			t.Fatalf("frame %d mismatch: got (%f,%f) want (%f,%f)", i, got.FreqAt(i), got.AmpAt(i), src.FreqAt(i), src.AmpAt(i))
		}
	}
}

func TestMarshalLayout(t *testing.T) {
	src := mustTable(t, Config{PerSamples: 256, FrqAverage: 440, Frq: []float64{100, 200}, Amp: []float64{0.5, 0.25}})
	buf, _ := src.MarshalBinary()

	if string(buf[0:8]) != "FREQ0003" {
		t.Fatalf("magic = %q", buf[0:8])
	}
	if v := binary.LittleEndian.Uint32(buf[8:]); v != 256 {
		t.Fatalf("perSamples = %d", v)
	}
	if v := math.Float64frombits(binary.LittleEndian.Uint64(buf[12:])); v != 440 {
		t.Fatalf("average = %f", v)
	}
	if v := binary.LittleEndian.Uint32(buf[20:]); v != 2 {
		t.Fatalf("count = %d", v)
	}
	if !bytes.Equal(buf[24:52], make([]byte, 28)) {
		t.Fatalf("filler not zero: %v", buf[24:52])
	}
	wantFloats := []float64{100, 200, 0.5, 0.25}
	for i, want := range wantFloats {
		got := math.Float64frombits(binary.LittleEndian.Uint64(buf[52+8*i:]))
		if got != want {
			t.Fatalf("value %d = %f, want %f", i, got, want)
		}
	}
}

func TestRoundTripPreservesOpaqueHeaderBytes(t *testing.T) {
	src := mustTable(t, Config{Frq: []float64{100}, Amp: []float64{1}})
	buf, _ := src.MarshalBinary()
	copy(buf[4:8], "0099")
	for i := 24; i < HeaderSize; i++ {
		buf[i] = byte(i)
	}

	parsed, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := parsed.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if !bytes.Equal(out, buf) {
		t.Fatalf("round trip changed bytes")
	}
}

func TestParseDoesNotRetainBuffer(t *testing.T) {
	src := mustTable(t, Config{Frq: []float64{100}, Amp: []float64{1}})
	buf, _ := src.MarshalBinary()
	parsed, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := range buf {
		buf[i] = 0
	}
	if parsed.FreqAt(0) != 100 {
		t.Fatalf("parsed table aliases input buffer")
	}
}

func TestParseRejectsShortBuffer(t *testing.T) {
	for _, n := range []int{0, 4, 51} {
		buf := make([]byte, n)
		copy(buf, "FREQ0003")
		_, err := Parse(buf)
		if !errors.Is(err, ErrTooSmall) {
			t.Fatalf("len %d: err = %v, want ErrTooSmall", n, err)
		}
		var fmtErr *FormatError
		if !errors.As(err, &fmtErr) {
			t.Fatalf("len %d: expected *FormatError, got %T", n, err)
		}
	}
}

func TestParseRejectsMissingMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "FRQE0003")
	_, err := Parse(buf)
	if !errors.Is(err, ErrMissingMagic) {
		t.Fatalf("err = %v, want ErrMissingMagic", err)
	}
	if want := "frq: bad format: missing FREQ identifier (52 bytes)"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestFormatErrorReportsSize(t *testing.T) {
	_, err := Parse(make([]byte, 7))
	var fmtErr *FormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if fmtErr.Size != 7 {
		t.Fatalf("Size = %d, want 7", fmtErr.Size)
	}
	if !strings.Contains(err.Error(), "(7 bytes)") {
		t.Fatalf("message %q does not mention the buffer size", err.Error())
	}
}

func TestParseRejectsTruncatedFrames(t *testing.T) {
	src := mustTable(t, Config{Frq: []float64{100, 200, 300}, Amp: []float64{1, 2, 3}})
	buf, _ := src.MarshalBinary()
	_, err := Parse(buf[:len(buf)-1])
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}

	huge := make([]byte, HeaderSize)
	copy(huge, buf[:HeaderSize])
	binary.LittleEndian.PutUint32(huge[20:], math.MaxUint32)
	if _, err := Parse(huge); !errors.Is(err, ErrTruncated) {
		t.Fatalf("huge count: err = %v, want ErrTruncated", err)
	}
}

func TestParseRejectsZeroPerSamples(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "FREQ0003")
	if _, err := Parse(buf); !errors.Is(err, ErrBadPerSamples) {
		t.Fatalf("err = %v, want ErrBadPerSamples", err)
	}
}

func TestParseReadsPerSamplesUnsigned(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "FREQ0003")
	binary.LittleEndian.PutUint32(buf[8:], 0x80000000)
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.PerSamples() != 0x80000000 {
		t.Fatalf("PerSamples() = %d, want %d", got.PerSamples(), 0x80000000)
	}
	out, err := got.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if !bytes.Equal(out, buf) {
		t.Fatalf("round trip changed the header")
	}
}

func TestParseEmptyTable(t *testing.T) {
	src := mustTable(t, Config{Frq: []float64{}, Amp: []float64{}})
	buf, _ := src.MarshalBinary()
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", got.Len())
	}
}

func TestMarshalPadsShortAmp(t *testing.T) {
	src := mustTable(t, Config{Frq: []float64{100, 200, 300}, Amp: []float64{0.5}})
	buf, _ := src.MarshalBinary()
	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.AmpAt(0) != 0.5 || got.AmpAt(1) != 0 || got.AmpAt(2) != 0 {
		t.Fatalf("amp = %v, want [0.5 0 0]", got.Amp())
	}
}

func TestUnmarshalBinary(t *testing.T) {
	src := mustTable(t, Config{PerSamples: 512, Frq: []float64{220}, Amp: []float64{0.3}})
	buf, _ := src.MarshalBinary()

	var got Table
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got.PerSamples() != 512 || got.FreqAt(0) != 220 {
		t.Fatalf("unexpected table: perSamples=%d frq=%v", got.PerSamples(), got.Frq())
	}
	if err := got.UnmarshalBinary([]byte("nope")); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("err = %v, want ErrTooSmall", err)
	}
}

func TestZeroTableMarshalsWithMagic(t *testing.T) {
	var tab Table
	buf, err := tab.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if string(buf[0:4]) != "FREQ" {
		t.Fatalf("magic = %q", buf[0:4])
	}
}
