// Package manifest loads JSON descriptions of frequency tables.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-frq/frq"
	"github.com/cwbudde/algo-frq/internal/wavio"
)

// Edit operations understood by ApplyEdits.
const (
	OpMultiply    = "multiply"
	OpSet         = "set"
	OpInterpolate = "interpolate"
	OpShiftCents  = "shift_cents"
)

// File is the JSON schema for a table manifest.
type File struct {
	PerSamples *int     `json:"per_samples"`
	FrqAverage *float64 `json:"frq_average"`
	// RecalcAverage runs CalcAverageFrq after edits are applied.
	RecalcAverage bool      `json:"recalc_average"`
	Frq           []float64 `json:"frq"`
	Amp           []float64 `json:"amp"`
	WavPath       string    `json:"wav_path"`
	SampleRate    *int      `json:"sample_rate"`
	Edits         []Edit    `json:"edits"`
}

// Edit is one scripted editing step.
type Edit struct {
	Op      string  `json:"op"`
	Indices []int   `json:"indices"`
	Value   float64 `json:"value"`
}

// LoadJSON reads a manifest. A relative wav_path is resolved against the
// manifest's directory.
func LoadJSON(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	f.WavPath = strings.TrimSpace(f.WavPath)
	if f.WavPath != "" && !filepath.IsAbs(f.WavPath) {
		base := filepath.Dir(path)
		f.WavPath = filepath.Clean(filepath.Join(base, f.WavPath))
	}
	return &f, nil
}

// Validate range-checks the manifest fields.
func (f *File) Validate() error {
	if f.PerSamples != nil && *f.PerSamples <= 0 {
		return fmt.Errorf("per_samples must be > 0")
	}
	if f.FrqAverage != nil && *f.FrqAverage < 0 {
		return fmt.Errorf("frq_average must be >= 0")
	}
	if f.SampleRate != nil && *f.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be > 0")
	}
	for i, v := range f.Frq {
		if v < 0 {
			return fmt.Errorf("frq[%d] must be >= 0", i)
		}
	}
	for i, v := range f.Amp {
		if v < 0 {
			return fmt.Errorf("amp[%d] must be >= 0", i)
		}
	}
	for i, e := range f.Edits {
		switch e.Op {
		case OpMultiply, OpSet, OpShiftCents:
		case OpInterpolate:
			if len(e.Indices) < 2 {
				return fmt.Errorf("edits[%d]: interpolate needs at least two indices", i)
			}
		default:
			return fmt.Errorf("edits[%d]: unknown op %q", i, e.Op)
		}
	}
	return nil
}

// Config converts the manifest into a frq.Config, loading wav_path when the
// manifest has no amplitude curve.
func (f *File) Config() (frq.Config, error) {
	cfg := frq.Config{
		Frq: f.Frq,
		Amp: f.Amp,
	}
	if f.PerSamples != nil {
		cfg.PerSamples = *f.PerSamples
	}
	if f.FrqAverage != nil {
		cfg.FrqAverage = *f.FrqAverage
	}
	if cfg.Amp == nil && f.WavPath != "" {
		rate := wavio.UTAURate
		if f.SampleRate != nil {
			rate = *f.SampleRate
		}
		data, err := wavio.ReadWAVAt(f.WavPath, rate)
		if err != nil {
			return frq.Config{}, fmt.Errorf("load waveform: %w", err)
		}
		cfg.Data = data
	}
	return cfg, nil
}

// Build constructs the table described by the manifest and applies its edits.
func (f *File) Build() (*frq.Table, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	t, err := frq.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := ApplyEdits(t, f.Edits); err != nil {
		return nil, err
	}
	if f.RecalcAverage {
		t.CalcAverageFrq()
	}
	return t, nil
}

// ApplyEdits runs edits against t in order.
func ApplyEdits(t *frq.Table, edits []Edit) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	for i, e := range edits {
		switch e.Op {
		case OpMultiply:
			t.MultiplyFreqInRange(e.Indices, e.Value)
		case OpSet:
			t.SetFreqInRange(e.Indices, e.Value)
		case OpInterpolate:
			t.LinearInterpolate(e.Indices)
		case OpShiftCents:
			t.ShiftFreqCents(e.Indices, e.Value)
		default:
			return fmt.Errorf("edits[%d]: unknown op %q", i, e.Op)
		}
	}
	return nil
}
