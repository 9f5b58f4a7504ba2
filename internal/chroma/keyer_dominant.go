package chroma

import (
	"image"

	"github.com/cenkalti/dominantcolor"
)

// DominantKeyer detects the key as the most dominant color of the whole
// image.
//
// Generated art on a solid backdrop is mostly backdrop, so the dominant
// color is the key even when the subject covers one or more corners.
// The tradeoff: a subject that fills most of the frame can out-vote the
// backdrop, which is exactly when ModeCorners or ModeFixed should be
// used instead.
type DominantKeyer struct{}

// Detect runs dominant-color analysis over every pixel of img.
func (DominantKeyer) Detect(img *image.NRGBA) (Key, error) {
	if _, _, err := pixelDimensions(img); err != nil {
		return Key{}, err
	}
	c := dominantcolor.Find(img)
	return KeyFromRGB(c.R, c.G, c.B), nil
}
