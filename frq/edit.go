package frq

import (
	"sort"

	"github.com/cwbudde/algo-approx"
)

// Reads return 0 and writes are skipped for indices outside [0, Len()).
// None of the methods below fail.

func (t *Table) inRange(i int) bool {
	return i >= 0 && i < len(t.frq)
}

// FreqAt returns the frequency of frame i, or 0 when i is out of range.
func (t *Table) FreqAt(i int) float64 {
	if !t.inRange(i) {
		return 0
	}
	return t.frq[i]
}

// AmpAt returns the amplitude of frame i, or 0 when i is out of range.
func (t *Table) AmpAt(i int) float64 {
	if i < 0 || i >= len(t.amp) {
		return 0
	}
	return t.amp[i]
}

// CalcAverageFrq recomputes and stores the cached average, returning it.
func (t *Table) CalcAverageFrq() float64 {
	t.frqAverage = voicedMean(t.frq)
	return t.frqAverage
}

// AverageFreq returns the mean of voiced frames without touching the cache.
func (t *Table) AverageFreq() float64 {
	return voicedMean(t.frq)
}

// AverageFreqInRange returns the mean of voiced frames in [start, end),
// clamped to the table.
func (t *Table) AverageFreqInRange(start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(t.frq) {
		end = len(t.frq)
	}
	if start >= end {
		return 0
	}
	return voicedMean(t.frq[start:end])
}

func voicedMean(frq []float64) float64 {
	var sum float64
	count := 0
	for _, f := range frq {
		if f == 0 {
			continue
		}
		sum += f
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// MultiplyFreqInRange scales the frequency of each listed frame by factor.
func (t *Table) MultiplyFreqInRange(indices []int, factor float64) {
	for _, i := range indices {
		if t.inRange(i) {
			t.frq[i] *= factor
		}
	}
}

// SetFreqInRange sets the frequency of each listed frame to value.
func (t *Table) SetFreqInRange(indices []int, value float64) {
	for _, i := range indices {
		if t.inRange(i) {
			t.frq[i] = value
		}
	}
}

// ShiftFreqCents transposes each listed frame by cents (1200 per octave).
// The ratio comes from a float32 exp approximation, so the shift is not
// exact; use MultiplyFreqInRange when an exact factor matters.
func (t *Table) ShiftFreqCents(indices []int, cents float64) {
	t.MultiplyFreqInRange(indices, centsToRatio(cents))
}

// LinearInterpolate replaces every frame strictly between the lowest and
// highest in-range listed index with a straight line between their values.
// The two end frames are unchanged. Out-of-range indices are dropped; nothing
// happens unless two distinct valid indices remain.
func (t *Table) LinearInterpolate(indices []int) {
	valid := make([]int, 0, len(indices))
	for _, i := range indices {
		if t.inRange(i) {
			valid = append(valid, i)
		}
	}
	if len(valid) < 2 {
		return
	}
	sort.Ints(valid)
	first, last := valid[0], valid[len(valid)-1]
	if first == last {
		return
	}

	from, to := t.frq[first], t.frq[last]
	span := float64(last - first)
	for j := first + 1; j < last; j++ {
		t.frq[j] = from + (to-from)*float64(j-first)/span
	}
}

func centsToRatio(cents float64) float64 {
	const ln2 = 0.69314718055994530942
	return float64(approx.FastExp(float32(cents / 1200.0 * ln2)))
}
