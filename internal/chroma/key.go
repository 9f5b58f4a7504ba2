package chroma

import (
	"fmt"
	"strconv"
	"strings"
)

// Channel identifies one of the three color channels of a pixel.
//
// The numeric values match the channel's byte offset within an RGBA
// pixel, so a Channel can be used directly to index a 4-byte pixel slice.
type Channel uint8

// Color channel indices in pixel byte order.
const (
	ChannelR Channel = 0
	ChannelG Channel = 1
	ChannelB Channel = 2
)

// String returns the conventional single-letter name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	}
	return "?"
}

// Key describes the background color to remove.
//
// Beyond the raw RGB bytes it carries the derived values every pipeline
// stage needs: the HSV signature used for classification and the
// dominant/other channel split used for spill suppression. Keys are
// produced by a Keyer strategy (see NewKeyer) and are immutable once
// built.
type Key struct {
	R, G, B uint8 // the key color itself

	Hue float64 // key hue in degrees, [0, 360)
	Sat float64 // key saturation, [0, 100]

	// Dominant is the channel with the greatest byte value; ties resolve
	// to the first match in R, G, B order. For a green screen this is G.
	Dominant Channel

	// Others holds the two remaining channels in R, G, B order.
	Others [2]Channel
}

// KeyFromRGB derives the full key descriptor for a background color.
//
// Every keying strategy funnels through this constructor so that the
// HSV signature and channel split are computed exactly one way.
func KeyFromRGB(r, g, b uint8) Key {
	hsv := RGBToHSV(r, g, b)
	dom, others := splitChannels(r, g, b)
	return Key{
		R:        r,
		G:        g,
		B:        b,
		Hue:      hsv.H,
		Sat:      hsv.S,
		Dominant: dom,
		Others:   others,
	}
}

// Hex returns the key color as a "#RRGGBB" string for display.
func (k Key) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", k.R, k.G, k.B)
}

// clampSpill limits the key's dominant channel in px to the stronger of
// the other two channels. Key-color light bleeding onto the subject shows
// up as an excess in exactly that channel; clamping removes the cast
// without shifting hue-dissimilar colors. px must be a 4-byte RGBA pixel.
// The dominant channel is never increased.
func (k Key) clampSpill(px []uint8) {
	limit := max(px[k.Others[0]], px[k.Others[1]])
	if px[k.Dominant] > limit {
		px[k.Dominant] = limit
	}
}

// splitChannels finds the dominant channel of a color and the remaining
// two, resolving ties toward the earlier channel in R, G, B order.
func splitChannels(r, g, b uint8) (Channel, [2]Channel) {
	dom := ChannelR
	best := r
	if g > best {
		dom, best = ChannelG, g
	}
	if b > best {
		dom = ChannelB
	}

	var others [2]Channel
	i := 0
	for _, ch := range [3]Channel{ChannelR, ChannelG, ChannelB} {
		if ch != dom {
			others[i] = ch
			i++
		}
	}
	return dom, others
}

// ParseHexColor parses an operator-supplied key color.
//
// The accepted form is exactly six hex digits with an optional leading
// "#" (e.g. "00FF00" or "#00ff00"). Anything else is rejected here so a
// malformed color never reaches the pipeline.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("key color %q: want 6 hex digits, got %d", s, len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("key color %q: not a hex number", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
