package chroma

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// hsvPix converts an HSV triple (degrees, 0-1, 0-1) to pixel bytes
func hsvPix(h, s, v float64) (r, g, b uint8) {
	return colorful.Hsv(h, s, v).RGB255()
}

func TestClassify_UniformBackground(t *testing.T) {
	img := newSolidNRGBA(4, 4, 0, 255, 0)
	st := Classify(img, KeyFromRGB(0, 255, 0))

	if st.Background != 16 || st.Edge != 0 || st.Subject != 0 {
		t.Fatalf("stats: got %+v, want 16 background", st)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			px := pixAt(img, x, y)
			if px[3] != 0 {
				t.Errorf("pixel (%d,%d): alpha %d, want 0", x, y, px[3])
			}
			if px[0] != 0 || px[1] != 255 || px[2] != 0 {
				t.Errorf("pixel (%d,%d): RGB changed to (%d,%d,%d)", x, y, px[0], px[1], px[2])
			}
		}
	}
}

func TestClassify_BorderAndCenter(t *testing.T) {
	img := newSolidNRGBA(3, 3, 0, 255, 0)
	setPix(img, 1, 1, 255, 0, 0, 255)

	st := Classify(img, KeyFromRGB(0, 255, 0))

	if st.Background != 8 {
		t.Errorf("background: got %d, want 8", st.Background)
	}
	if st.Subject != 1 {
		t.Errorf("subject: got %d, want 1", st.Subject)
	}
	if got := pixAt(img, 1, 1); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("center pixel: got %v, want untouched red", got)
	}
}

func TestClassify_EdgeBandAlphaMonotonic(t *testing.T) {
	// One pixel per hue step away from the key; transparency must fade
	// monotonically from fully keyed to fully opaque.
	key := KeyFromRGB(0, 255, 0)
	steps := []float64{0, 10, 20, 30, 39, 42, 46, 50, 54, 58, 61, 70, 90}

	img := newSolidNRGBA(len(steps), 1, 0, 0, 0)
	for i, d := range steps {
		r, g, b := hsvPix(120+d, 1, 1)
		setPix(img, i, 0, r, g, b, 255)
	}

	Classify(img, key)

	prev := uint8(0)
	for i, d := range steps {
		a := pixAt(img, i, 0)[3]
		if a < prev {
			t.Errorf("alpha fell from %d to %d at hue distance %f", prev, a, d)
		}
		prev = a

		switch {
		case d < 39.5:
			if a != 0 {
				t.Errorf("hue distance %f: alpha %d, want 0 (core background)", d, a)
			}
		case d > 60.5:
			if a != 255 {
				t.Errorf("hue distance %f: alpha %d, want 255 (subject)", d, a)
			}
		default:
			if a == 0 || a == 255 {
				t.Errorf("hue distance %f: alpha %d, want partial", d, a)
			}
		}
	}
}

func TestClassify_EdgeBandOuterLimit(t *testing.T) {
	// Cyan sits exactly at the outer edge of the band: still classified
	// as edge, but at full computed alpha.
	img := newSolidNRGBA(1, 1, 0, 255, 255)
	st := Classify(img, KeyFromRGB(0, 255, 0))

	if st.Edge != 1 {
		t.Fatalf("stats: got %+v, want 1 edge", st)
	}
	if a := pixAt(img, 0, 0)[3]; a != 255 {
		t.Errorf("alpha: got %d, want 255", a)
	}
}

func TestClassify_SaturationGate(t *testing.T) {
	key := KeyFromRGB(0, 255, 0)

	tests := []struct {
		name      string
		r, g, b   uint8
		wantAlpha uint8
		wantEdge  bool
	}{
		// Key hue at 20% saturation: too weak for core, caught by the
		// edge band and keyed out completely.
		{"washed-out key hue", 204, 255, 204, 0, true},
		// White, black and gray have no hue to match.
		{"white", 255, 255, 255, 255, false},
		{"black", 0, 0, 0, 255, false},
		{"gray", 128, 128, 128, 255, false},
		// 10% saturation is below even the edge gate.
		{"barely tinted", 230, 255, 230, 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newSolidNRGBA(1, 1, tt.r, tt.g, tt.b)
			st := Classify(img, key)

			if a := pixAt(img, 0, 0)[3]; a != tt.wantAlpha {
				t.Errorf("alpha: got %d, want %d", a, tt.wantAlpha)
			}
			if gotEdge := st.Edge == 1; gotEdge != tt.wantEdge {
				t.Errorf("edge classification: got %v, want %v (stats %+v)", gotEdge, tt.wantEdge, st)
			}
		})
	}
}

func TestClassify_SpillClampOnEdge(t *testing.T) {
	// A pixel in the edge band keeps its alpha gradient but loses the
	// green excess.
	r, g, b := hsvPix(170, 1, 1)
	if g <= b {
		t.Fatalf("test pixel (%d,%d,%d) must start green-dominant", r, g, b)
	}

	img := newSolidNRGBA(1, 1, r, g, b)
	Classify(img, KeyFromRGB(0, 255, 0))

	px := pixAt(img, 0, 0)
	limit := px[0]
	if px[2] > limit {
		limit = px[2]
	}
	if px[1] > limit {
		t.Errorf("green %d still above the other channels (%d, %d)", px[1], px[0], px[2])
	}
	if px[3] == 0 || px[3] == 255 {
		t.Errorf("alpha: got %d, want partial", px[3])
	}
}

func TestClassify_AlphaNeverRaised(t *testing.T) {
	// Source transparency is a floor: classification may only lower it.
	key := KeyFromRGB(0, 255, 0)

	r, g, b := hsvPix(170, 1, 1)
	img := newSolidNRGBA(2, 1, 0, 0, 0)
	setPix(img, 0, 0, r, g, b, 20)   // edge band, computed alpha would be higher
	setPix(img, 1, 0, 0, 255, 0, 20) // core background

	Classify(img, key)

	if a := pixAt(img, 0, 0)[3]; a != 20 {
		t.Errorf("edge pixel alpha: got %d, want 20 kept", a)
	}
	if a := pixAt(img, 1, 0)[3]; a != 0 {
		t.Errorf("background pixel alpha: got %d, want 0", a)
	}
}

func TestClassify_StatsCoverEveryPixel(t *testing.T) {
	img := newSolidNRGBA(8, 8, 0, 255, 0)
	setPix(img, 1, 1, 255, 0, 0, 255)
	setPix(img, 2, 2, 0, 255, 255, 255)
	setPix(img, 3, 3, 128, 128, 128, 255)

	st := Classify(img, KeyFromRGB(0, 255, 0))
	if total := st.Background + st.Edge + st.Subject; total != 64 {
		t.Errorf("stats cover %d pixels, want 64 (%+v)", total, st)
	}
}
