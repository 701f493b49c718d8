// Package frq reads, writes and edits UTAU frequency tables.
//
// A frq file stores one (frequency, amplitude) pair per frame of a voice
// sample, where a frame covers PerSamples consecutive waveform samples. A
// frequency of 0 marks an unvoiced frame and is skipped by every average.
//
// The cached average (FrqAverage) is only updated by CalcAverageFrq; editing
// operations never touch it.
package frq

// DefaultPerSamples is the frame size used when a config omits it.
const DefaultPerSamples = 256

// Table is an in-memory frequency table.
//
// A Table is not safe for concurrent mutation.
type Table struct {
	perSamples int
	frqAverage float64
	frq        []float64
	amp        []float64
	header     [HeaderSize]byte
}

// Config describes how to build a Table. Nil slices count as absent.
type Config struct {
	// Buf, when non-nil, is parsed as a frq file and every other field is ignored.
	Buf []byte

	// PerSamples defaults to DefaultPerSamples when zero.
	PerSamples int
	FrqAverage float64

	Frq []float64
	// Amp is adopted as-is when present; otherwise it is derived from Data.
	Amp []float64
	// Data is a raw waveform.
	Data []float64
}

// New resolves cfg into a Table.
func New(cfg Config) (*Table, error) {
	if cfg.Buf != nil {
		return Parse(cfg.Buf)
	}
	if cfg.Frq == nil {
		return nil, &ConfigError{Reason: ErrMissingFrq}
	}
	if cfg.Amp == nil && cfg.Data == nil {
		return nil, &ConfigError{Reason: ErrMissingAmp}
	}

	perSamples := cfg.PerSamples
	if perSamples == 0 {
		perSamples = DefaultPerSamples
	}
	if perSamples < 0 {
		return nil, &ConfigError{Reason: ErrBadPerSamples}
	}

	var amp []float64
	if cfg.Amp != nil {
		amp = append([]float64(nil), cfg.Amp...)
	} else {
		amp = AmplitudeFromWaveform(cfg.Data, perSamples)
	}

	t := &Table{
		perSamples: perSamples,
		frqAverage: cfg.FrqAverage,
		frq:        append([]float64(nil), cfg.Frq...),
		amp:        amp,
	}
	t.header = defaultHeader()
	return t, nil
}

// AmplitudeFromWaveform returns the mean absolute sample value of each
// perSamples-long window of data. A trailing partial window is averaged over
// the samples it has.
func AmplitudeFromWaveform(data []float64, perSamples int) []float64 {
	if perSamples <= 0 || len(data) == 0 {
		return []float64{}
	}
	n := (len(data) + perSamples - 1) / perSamples
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * perSamples
		end := start + perSamples
		if end > len(data) {
			end = len(data)
		}
		var sum float64
		for _, s := range data[start:end] {
			if s < 0 {
				s = -s
			}
			sum += s
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// PerSamples returns the number of waveform samples per frame.
func (t *Table) PerSamples() int { return t.perSamples }

// FrqAverage returns the cached average frequency.
func (t *Table) FrqAverage() float64 { return t.frqAverage }

// Len returns the frame count.
func (t *Table) Len() int { return len(t.frq) }

// Frq returns a copy of the frequency curve.
func (t *Table) Frq() []float64 { return append([]float64(nil), t.frq...) }

// Amp returns a copy of the amplitude curve.
func (t *Table) Amp() []float64 { return append([]float64(nil), t.amp...) }

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := *t
	c.frq = t.Frq()
	c.amp = t.Amp()
	return &c
}

// FrameOfSample maps a waveform sample position to its frame index.
func (t *Table) FrameOfSample(sample int) int {
	if sample < 0 || t.perSamples <= 0 {
		return -1
	}
	return sample / t.perSamples
}
