package chroma

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage reports an input with no pixels, either a nil image or
// one with a zero-area bounds.
var ErrEmptyImage = errors.New("image has no pixels")

// Options selects how Extract finds the background key.
type Options struct {
	// Mode names the detection strategy, one of ValidModes. Empty
	// selects corner sampling.
	Mode string

	// KeyColor is the hex background color for ModeFixed, for example
	// "#00FF00". Must be empty in every other mode.
	KeyColor string
}

// Result carries the extracted cutout and what the pipeline learned
// along the way.
type Result struct {
	// Image is the trimmed cutout with a straight-alpha mask.
	Image *image.NRGBA

	// Key is the background color the pipeline keyed against.
	Key Key

	Background int // pixels made fully transparent
	Edge       int // pixels given partial alpha
	Eroded     int // fringe pixels darkened by erosion
}

// Extract runs the whole keying pipeline over img: detect the
// background key, classify every pixel against it, erode the fringe
// once, and trim to the visible bounding box.
//
// The input image is never modified; work happens on a copy. Returns
// ErrEmptyImage for a nil or zero-area input and ErrNothingLeft when
// keying leaves no subject behind.
func Extract(img *image.NRGBA, opts Options) (*Result, error) {
	if img == nil || img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return nil, ErrEmptyImage
	}

	keyer, err := NewKeyer(opts.Mode, opts.KeyColor)
	if err != nil {
		return nil, err
	}

	// Clone up front: it shields the caller's pixels from the in-place
	// passes and re-bases sub-images so bounds start at the origin.
	work := imaging.Clone(img)

	key, err := keyer.Detect(work)
	if err != nil {
		return nil, fmt.Errorf("detecting background: %w", err)
	}

	st := Classify(work, key)
	eroded := Erode(work, key)

	out, err := Trim(work)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:      out,
		Key:        key,
		Background: st.Background,
		Edge:       st.Edge,
		Eroded:     eroded,
	}, nil
}
