// Package wavio loads voice samples for amplitude analysis.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// UTAURate is the sample rate UTAU resamplers assume for frq frame timing.
const UTAURate = 44100

var (
	errInvalidWAV = errors.New("not a RIFF/WAVE stream")
	errNoChannels = errors.New("wav buffer has no channels")
)

// Waveform is a decoded recording folded to one channel.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Decode reads a WAV stream and folds its channels into one.
func Decode(r io.ReadSeeker) (Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Waveform{}, errInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Waveform{}, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return Waveform{}, errNoChannels
	}
	return Waveform{
		Samples:    downmix(buf),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Waveform{}, err
	}
	defer f.Close()
	w, err := Decode(f)
	if err != nil {
		return Waveform{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return w, nil
}

// ReadWAVAt reads a waveform and resamples it to rate.
func ReadWAVAt(path string, rate int) ([]float64, error) {
	w, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := ResampleIfNeeded(w.Samples, w.SampleRate, rate)
	if err != nil {
		return nil, fmt.Errorf("resample %s: %w", path, err)
	}
	return out, nil
}

func ResampleIfNeeded(in []float64, fromRate int, toRate int) ([]float64, error) {
	if fromRate == toRate || toRate <= 0 {
		return in, nil
	}
	r, err := dspresample.NewForRates(
		float64(fromRate),
		float64(toRate),
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(in), nil
}

// downmix averages interleaved frames. A trailing partial frame is dropped.
func downmix(buf *audio.Float32Buffer) []float64 {
	channels := buf.Format.NumChannels
	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		frame := buf.Data[i*channels : (i+1)*channels]
		var sum float64
		for _, s := range frame {
			sum += float64(s)
		}
		out[i] = sum / float64(channels)
	}
	return out
}
