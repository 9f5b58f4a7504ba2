package chroma

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrNothingLeft reports that keying removed every pixel, leaving no
// subject to crop to. It usually means the input was a bare backdrop
// render with no subject on it.
var ErrNothingLeft = errors.New("no visible pixels remain after keying")

// Trim crops the image to the bounding box of its visible pixels, where
// visible means alpha above zero. Edge-band pixels therefore survive the
// crop even at alpha 1. The returned image is a fresh zero-origin copy;
// the input is not modified. Returns ErrNothingLeft when every pixel is
// fully transparent.
func Trim(img *image.NRGBA) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return nil, ErrNothingLeft
	}
	return imaging.Crop(img, image.Rect(minX, minY, maxX+1, maxY+1)), nil
}
