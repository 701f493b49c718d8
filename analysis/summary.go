package analysis

import (
	"sort"

	"github.com/cwbudde/algo-frq/frq"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the voiced part of a frequency table.
type Summary struct {
	Frames       int     `json:"frames"`
	PerSamples   int     `json:"per_samples"`
	VoicedFrames int     `json:"voiced_frames"`
	VoicedRatio  float64 `json:"voiced_ratio"`

	CachedAverage float64 `json:"cached_average"`
	MeanHz        float64 `json:"mean_hz"`
	StdDevHz      float64 `json:"stddev_hz"`
	MinHz         float64 `json:"min_hz"`
	MaxHz         float64 `json:"max_hz"`
	MedianHz      float64 `json:"median_hz"`

	MeanAmp float64 `json:"mean_amp"`
}

// Summarize computes voiced-frame statistics for t. Unvoiced frames (0 Hz)
// only count towards Frames.
func Summarize(t *frq.Table) Summary {
	s := Summary{
		Frames:        t.Len(),
		PerSamples:    t.PerSamples(),
		CachedAverage: t.FrqAverage(),
	}
	voiced := voicedValues(t.Frq())
	s.VoicedFrames = len(voiced)
	if s.Frames > 0 {
		s.VoicedRatio = float64(s.VoicedFrames) / float64(s.Frames)
	}
	if amp := t.Amp(); len(amp) > 0 {
		s.MeanAmp = stat.Mean(amp, nil)
	}
	if len(voiced) == 0 {
		return s
	}

	s.MeanHz = stat.Mean(voiced, nil)
	if len(voiced) > 1 {
		s.StdDevHz = stat.StdDev(voiced, nil)
	}
	s.MinHz = floats.Min(voiced)
	s.MaxHz = floats.Max(voiced)
	sort.Float64s(voiced)
	s.MedianHz = stat.Quantile(0.5, stat.Empirical, voiced, nil)
	return s
}

func voicedValues(frq []float64) []float64 {
	out := make([]float64, 0, len(frq))
	for _, f := range frq {
		if f != 0 {
			out = append(out, f)
		}
	}
	return out
}
