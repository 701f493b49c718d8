// Package analysis measures frequency tables and the distance between two
// versions of the same curve, e.g. before and after a manual correction.
package analysis

import (
	"math"

	"github.com/cwbudde/algo-frq/frq"
)

// Metrics contains distance and similarity measurements between two tables.
type Metrics struct {
	ReferenceFrames int `json:"reference_frames"`
	CandidateFrames int `json:"candidate_frames"`
	ComparedFrames  int `json:"compared_frames"`
	BothVoiced      int `json:"both_voiced"`

	PitchRMSECents  float64 `json:"pitch_rmse_cents"`
	MaxDeltaCents   float64 `json:"max_delta_cents"`
	VoicingMismatch float64 `json:"voicing_mismatch"`
	AmpRMSEDB       float64 `json:"amp_rmse_db"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Combination weights for Score.
const (
	WeightPitch   = 0.6
	WeightVoicing = 0.25
	WeightAmp     = 0.15
)

// Compare returns frame-by-frame distance metrics over the common length of
// reference and candidate, and a combined score in [0,1] (0 is identical).
func Compare(reference, candidate *frq.Table) Metrics {
	m := Metrics{
		ReferenceFrames: reference.Len(),
		CandidateFrames: candidate.Len(),
	}
	n := reference.Len()
	if candidate.Len() < n {
		n = candidate.Len()
	}
	m.ComparedFrames = n
	if n == 0 {
		m.Score = 1.0
		m.Similarity = 0.0
		return m
	}

	cents := make([]float64, 0, n)
	ampDiff := make([]float64, n)
	mismatch := 0
	for i := 0; i < n; i++ {
		a, b := reference.FreqAt(i), candidate.FreqAt(i)
		switch {
		case a != 0 && b != 0:
			d := 1200.0 * math.Log2(b/a)
			cents = append(cents, d)
			if math.Abs(d) > m.MaxDeltaCents {
				m.MaxDeltaCents = math.Abs(d)
			}
		case a != b:
			mismatch++
		}
		ampDiff[i] = linToDB(reference.AmpAt(i)) - linToDB(candidate.AmpAt(i))
	}
	m.BothVoiced = len(cents)
	m.PitchRMSECents = rms1(cents)
	m.VoicingMismatch = float64(mismatch) / float64(n)
	m.AmpRMSEDB = rms1(ampDiff)

	// Normalize sub-metrics and combine.
	pitchNorm := clamp01(m.PitchRMSECents / 100.0)
	ampNorm := clamp01(m.AmpRMSEDB / 30.0)
	m.Score = clamp01(WeightPitch*pitchNorm + WeightVoicing*m.VoicingMismatch + WeightAmp*ampNorm)
	m.Similarity = clamp01(math.Exp(-4.0 * m.Score))
	return m
}

func rms1(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
