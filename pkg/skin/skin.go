// Package skin estimates the average skin color of a photograph by
// masking pixels inside a fixed HSV skin-tone range and averaging them.
package skin

import (
	"image"
	"image/color"
	"iter"

	"github.com/lucasb-eyer/go-colorful"
)

// Tone is an averaged skin color in R,G,B order.
type Tone struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the tone as a lowercase "#rrggbb" code.
func (t Tone) Hex() string {
	return colorful.Color{R: float64(t.R) / 255, G: float64(t.G) / 255, B: float64(t.B) / 255}.Hex()
}

// RGBA returns the tone as an opaque color.RGBA.
func (t Tone) RGBA() color.RGBA {
	return color.RGBA{R: t.R, G: t.G, B: t.B, A: 255}
}

// hsvRange is an inclusive box in HSV space (H 0-180, S and V 0-255).
type hsvRange struct {
	hMin, hMax float64
	sMin, sMax float64
	vMin, vMax float64
}

func (r hsvRange) contains(h, s, v float64) bool {
	return h >= r.hMin && h <= r.hMax &&
		s >= r.sMin && s <= r.sMax &&
		v >= r.vMin && v <= r.vMax
}

// skinRange covers light-to-medium skin tones. Hues above 20 are not
// matched; the range deliberately has no wrap-around handling.
var skinRange = hsvRange{hMin: 0, hMax: 20, sMin: 20, sMax: 255, vMin: 70, vMax: 255}

// pixels is an iterator over all the pixels in an image, yielding the
// point in source coordinates along with the pixel color.
func pixels(m image.Image) iter.Seq2[image.Point, color.RGBA] {
	return func(yield func(image.Point, color.RGBA) bool) {
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				px := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
				if !yield(image.Pt(x, y), px) {
					return
				}
			}
		}
	}
}

// Estimate returns the arithmetic mean color of the skin-toned pixels
// in region. ok is false when no pixel falls inside the skin range; the
// tone is undefined in that case and must not be used.
func Estimate(region image.Image) (tone Tone, ok bool) {
	var sumR, sumG, sumB, count uint64
	for _, px := range pixels(region) {
		if !skinRange.contains(rgbToHSV(px.R, px.G, px.B)) {
			continue
		}
		sumR += uint64(px.R)
		sumG += uint64(px.G)
		sumB += uint64(px.B)
		count++
	}
	if count == 0 {
		return Tone{}, false
	}
	return Tone{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
	}, true
}

// EstimateDetailed is Estimate plus the mask and a visualization of the
// masked region: the visualization keeps skin-toned pixels unchanged
// and renders every other pixel black. The mask and visualization share
// the region's dimensions and are nil when ok is false.
func EstimateDetailed(region image.Image) (tone Tone, mask *image.Gray, vis *image.RGBA, ok bool) {
	b := region.Bounds()
	mask = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	vis = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	var sumR, sumG, sumB, count uint64
	for pt, px := range pixels(region) {
		x, y := pt.X-b.Min.X, pt.Y-b.Min.Y
		if !skinRange.contains(rgbToHSV(px.R, px.G, px.B)) {
			vis.SetRGBA(x, y, color.RGBA{A: 255})
			continue
		}
		mask.SetGray(x, y, color.Gray{Y: 255})
		vis.SetRGBA(x, y, px)
		sumR += uint64(px.R)
		sumG += uint64(px.G)
		sumB += uint64(px.B)
		count++
	}
	if count == 0 {
		return Tone{}, nil, nil, false
	}
	tone = Tone{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
	}
	return tone, mask, vis, true
}
