package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cwbudde/algo-frq/bmp"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

func runIcon(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("icon", flag.ContinueOnError)
	in := fs.String("in", "", "Input PNG or JPEG")
	out := fs.String("out", "icon.bmp", "Output BMP path")
	size := fs.Int("size", bmp.IconSize, "Edge length in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("%w: -in", errMissingFlag)
	}
	if *size < 1 {
		return fmt.Errorf("-size must be >= 1")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()
	src, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", *in, err)
	}
	log.Debug("decoded picture", zap.String("format", format), zap.Stringer("bounds", src.Bounds()))

	if err := os.WriteFile(*out, iconBytes(src, *size), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", *out, *size, *size)
	return nil
}

// iconBytes scales src to a size x size square and encodes it as a 24-bit BMP.
func iconBytes(src image.Image, size int) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	px := make([]bmp.RGB, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dst.RGBAAt(x, y)
			px = append(px, bmp.RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return bmp.Encode(size, size, 3, px)
}
