package chroma

import (
	"image"
	"math"
)

// Classification thresholds. These are policy, fixed at compile time, not
// knobs derived per image: the generation side renders onto a backdrop
// chosen to sit comfortably inside them.
const (
	// hueRange is the half-width in degrees of the core background band.
	// A pixel this close to the key hue (and saturated enough) is
	// certainly backdrop.
	hueRange = 40.0

	// edgeHueRange is the outer half-width of the graduated edge band.
	// Between hueRange and edgeHueRange a pixel is a blend of backdrop
	// and subject and gets partial alpha. Must exceed hueRange.
	edgeHueRange = 60.0

	// minSaturation is the least saturation (of 100) for a pixel to
	// count as colored backdrop at all; below it gray, black and white
	// never match the key no matter their hue. The edge band accepts
	// half this, catching washed-out blends.
	minSaturation = 30.0

	// edgeFalloff is the exponent shaping alpha across the edge band.
	// Values above 1 hold the near-key side of the band almost fully
	// transparent and concentrate the visible gradient against the
	// subject, which avoids a halo ramp around it.
	edgeFalloff = 1.5
)

// ClassifyStats reports how a classification pass labeled the pixels.
type ClassifyStats struct {
	Background int // core background pixels, alpha forced to 0
	Edge       int // edge-band pixels, alpha reduced and spill clamped
	Subject    int // pixels left untouched
}

// Classify sweeps every pixel once and writes the background mask into
// the alpha channel in place.
//
// Each pixel is classified independently of its neighbors:
//
//   - Core background: hue within hueRange of the key and saturation at
//     least minSaturation. Alpha becomes 0; RGB is left as is, which
//     keeps the pass cheap and the color available to later stages.
//   - Edge: hue within edgeHueRange and saturation at least half of
//     minSaturation. Alpha falls off as t^edgeFalloff across the band
//     and is applied as min(current, computed) so a pixel never becomes
//     more opaque than the source made it. The key's dominant channel is
//     clamped to the other channels to remove color spill.
//   - Subject: everything else, untouched.
//
// Order independence of these per-pixel results is what permits row
// sharding if a caller ever needs it; this implementation is a plain
// single sweep.
func Classify(img *image.NRGBA, key Key) ClassifyStats {
	var st ClassifyStats
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			hsv := RGBToHSV(px[0], px[1], px[2])
			hd := HueDistance(hsv.H, key.Hue)

			switch {
			case hd <= hueRange && hsv.S >= minSaturation:
				px[3] = 0
				st.Background++

			case hd <= edgeHueRange && hsv.S >= minSaturation/2:
				t := (hd - hueRange) / (edgeHueRange - hueRange)
				if t < 0 {
					// Key-hued but weakly saturated pixels land here;
					// they are blend, not subject, and get full
					// transparency rather than a negative ramp.
					t = 0
				}
				a := uint8(math.Round(math.Pow(t, edgeFalloff) * 255))
				if a < px[3] {
					px[3] = a
				}
				key.clampSpill(px)
				st.Edge++

			default:
				st.Subject++
			}
		}
	}
	return st
}
