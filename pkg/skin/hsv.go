package skin

import "math"

// rgbToHSV converts RGB (0-255) to HSV with H in 0-180, S and V in 0-255.
// The half-degree hue scale is the one the skin-tone thresholds are
// defined on, so the conversion keeps it rather than using degrees.
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	v = maxC * 255.0

	if maxC > 0 {
		s = (delta / maxC) * 255.0
	}

	switch {
	case delta == 0:
		h = 0
	case maxC == rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case maxC == gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	return h / 2, s, v
}
