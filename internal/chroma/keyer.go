package chroma

import (
	"fmt"
	"image"
	"strings"
)

// Keyer determines the background key color for an image.
//
// Implementations are interchangeable strategies: the rest of the
// pipeline only sees the Key they produce and never knows whether it was
// operator-supplied or detected from the image.
type Keyer interface {
	// Detect produces the key descriptor for img. Detection errors (an
	// empty image, a border too varied to trust) are returned rather
	// than guessed around.
	Detect(img *image.NRGBA) (Key, error)
}

// Keying strategy names accepted by NewKeyer.
const (
	// ModeFixed uses an operator-supplied hex color.
	ModeFixed = "fixed"

	// ModeCorners averages the four corner pixels. This is the default:
	// generated images place the backdrop at every corner unless the
	// subject fills the frame.
	ModeCorners = "corners"

	// ModeDominant takes the most dominant color of the whole image.
	// Useful when the subject touches one or more corners.
	ModeDominant = "dominant"

	// ModeBorder clusters the one-pixel border ring and keys on the
	// largest cluster, refusing images whose border disagrees with
	// itself. The most robust and the most expensive mode.
	ModeBorder = "border"
)

// ValidModes returns the keying strategy names accepted by NewKeyer.
func ValidModes() []string {
	return []string{ModeFixed, ModeCorners, ModeDominant, ModeBorder}
}

// NewKeyer builds the keying strategy for a mode name.
//
// keyColor is consulted only by ModeFixed, where it is required; passing
// a key color with any other mode is rejected as conflicting
// configuration. An empty mode selects ModeCorners. Unknown mode names
// are an error.
func NewKeyer(mode, keyColor string) (Keyer, error) {
	if mode == "" {
		mode = ModeCorners
	}
	if mode != ModeFixed && keyColor != "" {
		return nil, fmt.Errorf("key color %q conflicts with key mode %q (a fixed color implies mode %q)", keyColor, mode, ModeFixed)
	}

	switch mode {
	case ModeFixed:
		return NewFixedKeyer(keyColor)
	case ModeCorners:
		return CornerKeyer{}, nil
	case ModeDominant:
		return DominantKeyer{}, nil
	case ModeBorder:
		return BorderKeyer{}, nil
	default:
		return nil, fmt.Errorf("unknown key mode %q (valid modes: %s)", mode, strings.Join(ValidModes(), ", "))
	}
}

// FixedKeyer keys on an operator-supplied color.
type FixedKeyer struct {
	key Key
}

// NewFixedKeyer parses a hex color (six digits, optional "#") into a
// keyer. The parse happens here, before any pixel work, so malformed
// configuration fails fast.
func NewFixedKeyer(hexColor string) (*FixedKeyer, error) {
	r, g, b, err := ParseHexColor(hexColor)
	if err != nil {
		return nil, err
	}
	return &FixedKeyer{key: KeyFromRGB(r, g, b)}, nil
}

// Detect returns the configured key; the image content is irrelevant.
func (f *FixedKeyer) Detect(*image.NRGBA) (Key, error) {
	return f.key, nil
}

// CornerKeyer detects the key by sampling the four corner pixels.
//
// Each channel is averaged independently across the corners, rounded to
// the nearest integer. On a 1-pixel-wide or 1-pixel-tall image some
// corners coincide; the duplicate samples simply reinforce the average.
type CornerKeyer struct{}

// Detect samples (0,0), (W-1,0), (0,H-1) and (W-1,H-1).
func (CornerKeyer) Detect(img *image.NRGBA) (Key, error) {
	w, h, err := pixelDimensions(img)
	if err != nil {
		return Key{}, err
	}

	corners := [4][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}
	var sumR, sumG, sumB int
	for _, c := range corners {
		i := c[1]*img.Stride + c[0]*4
		sumR += int(img.Pix[i])
		sumG += int(img.Pix[i+1])
		sumB += int(img.Pix[i+2])
	}

	// +2 rounds the /4 average to nearest.
	return KeyFromRGB(uint8((sumR+2)/4), uint8((sumG+2)/4), uint8((sumB+2)/4)), nil
}

// pixelDimensions validates that img has at least one pixel and returns
// its width and height.
func pixelDimensions(img *image.NRGBA) (w, h int, err error) {
	if img == nil {
		return 0, 0, ErrEmptyImage
	}
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	if w < 1 || h < 1 {
		return 0, 0, ErrEmptyImage
	}
	return w, h, nil
}
