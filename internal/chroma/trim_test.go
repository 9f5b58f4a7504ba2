package chroma

import (
	"errors"
	"image"
	"testing"
)

func TestTrim_BoundingBox(t *testing.T) {
	img := newSolidNRGBA(5, 5, 255, 0, 0)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			setPix(img, x, y, 255, 0, 0, 0)
		}
	}
	setPix(img, 1, 2, 255, 0, 0, 255)
	setPix(img, 3, 3, 0, 0, 255, 128)

	out, err := Trim(img)
	if err != nil {
		t.Fatalf("Trim failed: %v", err)
	}

	want := image.Rect(0, 0, 3, 2)
	if out.Bounds() != want {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), want)
	}
	if px := pixAt(out, 0, 0); px != [4]uint8{255, 0, 0, 255} {
		t.Errorf("top-left: got %v, want the red pixel", px)
	}
	if px := pixAt(out, 2, 1); px != [4]uint8{0, 0, 255, 128} {
		t.Errorf("bottom-right: got %v, want the blue pixel", px)
	}
}

func TestTrim_AllTransparent(t *testing.T) {
	img := newSolidNRGBA(4, 4, 0, 255, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			setPix(img, x, y, 0, 255, 0, 0)
		}
	}

	_, err := Trim(img)
	if !errors.Is(err, ErrNothingLeft) {
		t.Errorf("got %v, want ErrNothingLeft", err)
	}
}

func TestTrim_AlphaOneSurvives(t *testing.T) {
	// Any nonzero alpha counts as visible, even 1.
	img := newSolidNRGBA(3, 3, 0, 255, 0)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			setPix(img, x, y, 0, 255, 0, 0)
		}
	}
	setPix(img, 2, 0, 10, 20, 30, 1)

	out, err := Trim(img)
	if err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("bounds: got %v, want 1x1", out.Bounds())
	}
	if px := pixAt(out, 0, 0); px != [4]uint8{10, 20, 30, 1} {
		t.Errorf("pixel: got %v, want (10,20,30,1)", px)
	}
}

func TestTrim_FullyOpaqueKeepsSize(t *testing.T) {
	img := newSolidNRGBA(4, 3, 255, 0, 0)

	out, err := Trim(img)
	if err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds: got %v, want 4x3", out.Bounds())
	}
}

func TestTrim_InputUntouched(t *testing.T) {
	img := newSolidNRGBA(4, 4, 255, 0, 0)
	setPix(img, 0, 0, 255, 0, 0, 0)

	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	if _, err := Trim(img); err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatalf("input modified at byte %d", i)
		}
	}
}
