// Package imaging handles decoding uploaded photographs and preparing
// them for analysis and display.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// DefaultMaxDim is the largest dimension an uploaded photo keeps before
// being scaled down.
const DefaultMaxDim = 800

// Decode reads a jpg/jpeg/png image into memory.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// ToRGBA copies img into a zero-origin RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}

// Fit scales img down so its largest dimension is at most maxDim,
// preserving aspect ratio. Images already within the limit are only
// copied, never upscaled.
func Fit(img image.Image, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	largest := max(w, h)
	if largest <= maxDim {
		return ToRGBA(img)
	}

	ratio := float64(maxDim) / float64(largest)
	dst := image.NewRGBA(image.Rect(0,
		0,
		int(math.Round(float64(w)*ratio)),
		int(math.Round(float64(h)*ratio)),
	))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}

// Swatch returns a solid w×h fill of c for displaying a computed color.
func Swatch(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL encodes img as a base64 PNG data URL for inlining in HTML.
func DataURL(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}
