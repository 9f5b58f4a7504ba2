package chroma

import (
	"image"
	"math"
)

// erodeFactor scales the alpha of pixels bordering full transparency.
// One erosion pass at 0.3 knocks a key-colored fringe down to near
// invisibility without eating measurably into the subject.
const erodeFactor = 0.3

// Erode darkens the one-pixel fringe left along mask boundaries after
// classification. A pixel erodes when at least one of its four
// orthogonal neighbors was fully transparent before the pass began; its
// alpha is scaled by erodeFactor and its spill is clamped against the
// key. Pixels on the image border simply have fewer neighbors to
// consult, so the frame erodes like everywhere else.
//
// Neighbor tests read a snapshot of the pre-pass alphas, never the
// values being written, so the fringe thins by exactly one pixel per
// call instead of cascading inward in scan order. Returns the number of
// pixels whose alpha was actually lowered; callers can loop until it
// reaches zero to erode a wider band.
func Erode(img *image.NRGBA, key Key) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	snap := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			snap[y*w+x] = row[x*4+3]
		}
	}

	eroded := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			a := snap[y*w+x]
			if a == 0 {
				continue
			}
			if !(x > 0 && snap[y*w+x-1] == 0 ||
				x < w-1 && snap[y*w+x+1] == 0 ||
				y > 0 && snap[(y-1)*w+x] == 0 ||
				y < h-1 && snap[(y+1)*w+x] == 0) {
				continue
			}
			px := row[x*4 : x*4+4 : x*4+4]
			na := uint8(math.Round(float64(a) * erodeFactor))
			if na < a {
				px[3] = na
				eroded++
			}
			key.clampSpill(px)
		}
	}
	return eroded
}
