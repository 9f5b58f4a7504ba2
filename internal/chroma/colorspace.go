package chroma

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV represents a color in HSV (Hue, Saturation, Value) color space.
//
// HSV separates what the keyer cares about (which color family a pixel
// belongs to) from how bright or washed out it is:
//   - Hue is the angle on the color wheel (0=red, 120=green, 240=blue)
//   - Saturation is color intensity (0=gray, 100=vivid)
//   - Value is brightness (0=black, 100=full)
type HSV struct {
	H float64 // Hue: 0-360 degrees (360 excluded)
	S float64 // Saturation: 0-100 percent
	V float64 // Value: 0-100 percent
}

// RGBToHSV converts 8-bit RGB components to HSV.
//
// The conversion uses the standard max/min/delta formula (hue is derived
// from whichever channel is maximal). Achromatic input (r == g == b)
// yields H == 0 and S == 0 by convention; callers must treat that hue as
// meaningless rather than "red".
//
// The function is total: every input maps to a valid HSV value.
func RGBToHSV(r, g, b uint8) HSV {
	h, s, v := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}.Hsv()

	return HSV{H: h, S: s * 100, V: v * 100}
}

// HueDistance returns the circular distance in degrees between two hues.
//
// Hues live on a 360 degree wheel, so the distance between 10 and 350 is
// 20, not 340. The result is always in [0, 180].
func HueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	if d > 180 {
		d = 360 - d
	}
	return d
}
