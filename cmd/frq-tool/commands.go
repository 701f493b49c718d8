package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-frq/analysis"
	"github.com/cwbudde/algo-frq/frq"
	"github.com/cwbudde/algo-frq/manifest"
	"go.uber.org/zap"
)

var errMissingFlag = errors.New("missing required flag")

func readTable(path string) (*frq.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := frq.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func writeTable(path string, t *frq.Table) error {
	b, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runInfo(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	in := fs.String("in", "", "Input frq file")
	jsonOut := fs.Bool("json", false, "Print summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("%w: -in", errMissingFlag)
	}

	t, err := readTable(*in)
	if err != nil {
		return err
	}
	log.Debug("loaded table", zap.String("path", *in), zap.Int("frames", t.Len()))
	s := analysis.Summarize(t)
	if *jsonOut {
		return writeJSON(stdout, s)
	}

	fmt.Fprintf(stdout, "File:            %s\n", *in)
	fmt.Fprintf(stdout, "Samples/frame:   %d\n", s.PerSamples)
	fmt.Fprintf(stdout, "Frames:          %d (%d voiced, %.1f%%)\n", s.Frames, s.VoicedFrames, 100*s.VoicedRatio)
	fmt.Fprintf(stdout, "Cached average:  %.3f Hz\n", s.CachedAverage)
	fmt.Fprintf(stdout, "Voiced mean:     %.3f Hz (sd %.3f)\n", s.MeanHz, s.StdDevHz)
	fmt.Fprintf(stdout, "Voiced range:    %.3f .. %.3f Hz (median %.3f)\n", s.MinHz, s.MaxHz, s.MedianHz)
	fmt.Fprintf(stdout, "Mean amplitude:  %.6f\n", s.MeanAmp)
	return nil
}

func runBuild(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "", "Table manifest JSON path")
	out := fs.String("out", "", "Output frq path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" || *out == "" {
		return fmt.Errorf("%w: -manifest and -out", errMissingFlag)
	}

	m, err := manifest.LoadJSON(*manifestPath)
	if err != nil {
		return err
	}
	t, err := m.Build()
	if err != nil {
		return err
	}
	if err := writeTable(*out, t); err != nil {
		return err
	}
	log.Info("wrote table",
		zap.String("path", *out),
		zap.Int("frames", t.Len()),
		zap.Int("edits", len(m.Edits)),
	)
	fmt.Fprintf(stdout, "Wrote %s (%d frames)\n", *out, t.Len())
	return nil
}

func runEdit(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	in := fs.String("in", "", "Input frq file")
	out := fs.String("out", "", "Output frq file (default: overwrite -in)")
	op := fs.String("op", "", "Operation: multiply|set|interpolate|shift_cents")
	indices := fs.String("indices", "", "Frame indices, e.g. 3,5,10-20")
	value := fs.Float64("value", 0, "Factor, frequency or cents, depending on -op")
	recalc := fs.Bool("recalc", false, "Recompute the cached average after editing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *op == "" || *indices == "" {
		return fmt.Errorf("%w: -in, -op and -indices", errMissingFlag)
	}
	if *out == "" {
		*out = *in
	}

	idx, err := parseIndices(*indices)
	if err != nil {
		return err
	}
	t, err := readTable(*in)
	if err != nil {
		return err
	}
	if err := manifest.ApplyEdits(t, []manifest.Edit{{Op: *op, Indices: idx, Value: *value}}); err != nil {
		return err
	}
	if *recalc {
		t.CalcAverageFrq()
	}
	if err := writeTable(*out, t); err != nil {
		return err
	}
	log.Info("edited table",
		zap.String("op", *op),
		zap.Int("indices", len(idx)),
		zap.Float64("frq_average", t.FrqAverage()),
		zap.String("path", *out),
	)
	fmt.Fprintf(stdout, "Applied %s to %d frames -> %s\n", *op, len(idx), *out)
	return nil
}

func runAverage(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("average", flag.ContinueOnError)
	in := fs.String("in", "", "Input frq file")
	write := fs.Bool("write", false, "Store the recomputed average back into -in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("%w: -in", errMissingFlag)
	}

	t, err := readTable(*in)
	if err != nil {
		return err
	}
	before := t.FrqAverage()
	after := t.CalcAverageFrq()
	log.Debug("recomputed average", zap.Float64("before", before), zap.Float64("after", after))
	fmt.Fprintf(stdout, "Cached: %.6f Hz\nVoiced: %.6f Hz\n", before, after)
	if !*write {
		return nil
	}
	return writeTable(*in, t)
}

func runCompare(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	aPath := fs.String("a", "", "Reference frq file")
	bPath := fs.String("b", "", "Candidate frq file")
	jsonOut := fs.Bool("json", false, "Print metrics as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *aPath == "" || *bPath == "" {
		return fmt.Errorf("%w: -a and -b", errMissingFlag)
	}

	a, err := readTable(*aPath)
	if err != nil {
		return err
	}
	b, err := readTable(*bPath)
	if err != nil {
		return err
	}
	if a.PerSamples() != b.PerSamples() {
		log.Warn("frame sizes differ", zap.Int("a", a.PerSamples()), zap.Int("b", b.PerSamples()))
	}
	m := analysis.Compare(a, b)
	if *jsonOut {
		return writeJSON(stdout, m)
	}

	fmt.Fprintf(stdout, "Frames:           %d vs %d (%d compared, %d both voiced)\n", m.ReferenceFrames, m.CandidateFrames, m.ComparedFrames, m.BothVoiced)
	fmt.Fprintf(stdout, "Pitch RMSE:       %.2f cents (max %.2f)\n", m.PitchRMSECents, m.MaxDeltaCents)
	fmt.Fprintf(stdout, "Voicing mismatch: %.2f%%\n", 100*m.VoicingMismatch)
	fmt.Fprintf(stdout, "Amplitude RMSE:   %.2f dB\n", m.AmpRMSEDB)
	fmt.Fprintf(stdout, "Score:            %.4f  (0 best, 1 worst)\n", m.Score)
	fmt.Fprintf(stdout, "Similarity:       %.2f%%\n", 100*m.Similarity)
	return nil
}
