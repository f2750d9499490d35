package skin

import (
	"image"
	"image/color"
	"image/draw"
)

// Bounds is a rectangular sub-area of an image in pixel coordinates.
type Bounds struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Width returns Right - Left.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// CentralRegion crops the centered sub-region that keeps keepPercent of
// each spatial dimension, on the assumption that the subject's face is
// in the middle of the frame. The crop is an independent copy; the
// returned bounds let a caller draw the analyzed area on the original.
// keepPercent of 100 keeps the whole image, 0 collapses to a point.
func CentralRegion(img image.Image, keepPercent int) (*image.RGBA, Bounds) {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()

	marginX := w * (100 - keepPercent) / 200
	marginY := h * (100 - keepPercent) / 200

	bounds := Bounds{
		Top:    marginY,
		Bottom: h - marginY,
		Left:   marginX,
		Right:  w - marginX,
	}

	crop := image.NewRGBA(image.Rect(0, 0, bounds.Width(), bounds.Height()))
	draw.Draw(crop, crop.Bounds(), img, src.Min.Add(image.Pt(bounds.Left, bounds.Top)), draw.Src)
	return crop, bounds
}

// DrawBounds draws a rectangle outline at the given bounds on a copy of
// img. Purely cosmetic; the analysis never reads the result.
func DrawBounds(img image.Image, b Bounds, c color.Color, thickness int) *image.RGBA {
	src := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)

	set := func(x, y int) {
		if x >= 0 && x < src.Dx() && y >= 0 && y < src.Dy() {
			out.Set(x, y, c)
		}
	}
	for t := 0; t < thickness; t++ {
		for x := b.Left - t; x < b.Right+t; x++ {
			set(x, b.Top-t)
			set(x, b.Bottom-1+t)
		}
		for y := b.Top - t; y < b.Bottom+t; y++ {
			set(b.Left-t, y)
			set(b.Right-1+t, y)
		}
	}
	return out
}
