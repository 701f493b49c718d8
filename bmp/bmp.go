// Package bmp writes uncompressed Windows bitmaps, the format UTAU expects
// for voicebank icons.
package bmp

import "encoding/binary"

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	headerSize     = fileHeaderSize + infoHeaderSize

	// IconSize is the edge length UTAU displays icons at.
	IconSize = 100
)

// RGB is one pixel.
type RGB struct {
	R, G, B uint8
}

// Encode lays out a bitmap of width x height pixels. pixels are given in
// top-down, left-to-right order; missing entries are written black.
// byteDepth is 3 (24-bit) or 4 (32-bit with a zero pad byte); any other value
// is treated as 3. Dimensions are trusted.
func Encode(width, height, byteDepth int, pixels []RGB) []byte {
	if byteDepth != 4 {
		byteDepth = 3
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width*byteDepth + 3) &^ 3
	bodySize := stride * height
	out := make([]byte, headerSize+bodySize)

	// BITMAPFILEHEADER
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], headerSize)

	// BITMAPINFOHEADER
	info := out[fileHeaderSize:]
	binary.LittleEndian.PutUint32(info[0:], infoHeaderSize)
	binary.LittleEndian.PutUint32(info[4:], uint32(width))
	binary.LittleEndian.PutUint32(info[8:], uint32(height))
	binary.LittleEndian.PutUint16(info[12:], 1)
	binary.LittleEndian.PutUint16(info[14:], uint16(byteDepth*8))
	binary.LittleEndian.PutUint32(info[20:], uint32(bodySize))

	body := out[headerSize:]
	for y := 0; y < height; y++ {
		// Rows are stored bottom-up.
		row := body[(height-1-y)*stride:]
		for x := 0; x < width; x++ {
			i := y*width + x
			if i >= len(pixels) {
				continue
			}
			p := pixels[i]
			o := x * byteDepth
			row[o], row[o+1], row[o+2] = p.B, p.G, p.R
		}
	}
	return out
}
