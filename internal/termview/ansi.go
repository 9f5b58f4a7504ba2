package termview

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Checkerboard backing for transparent regions, in the style of image
// editors: two gray shades, squares of checkerSize pixels.
const (
	checkerSize  = 4
	checkerDark  = 85
	checkerLight = 136
)

// ansiReserveRows keeps a couple of text rows free below the image for
// the shell prompt.
const ansiReserveRows = 2

// renderANSI draws img as Unicode half blocks, two pixel rows per text
// row: the upper half block's foreground is the top pixel, its
// background the bottom pixel. Transparency is composited over a gray
// checkerboard first, which is what makes a cutout visibly a cutout in
// a plain terminal.
func renderANSI(w io.Writer, img image.Image, cols, rows int) error {
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	usable := rows - ansiReserveRows
	if usable < 1 {
		usable = 1
	}

	fitted := imaging.Fit(img, cols, usable*2, imaging.Lanczos)

	// Premultiplied pixels make the over-checkerboard composite a pair
	// of adds per channel.
	pm := clone.AsRGBA(fitted)
	b := pm.Bounds()
	width, height := b.Dx(), b.Dy()

	out := bufio.NewWriter(w)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb := compositePixel(pm, x, y)

			// An odd final row has no bottom pixel; bare checkerboard
			// stands in.
			cc := checkerColor(x, y+1)
			br, bg, bb := cc, cc, cc
			if y+1 < height {
				br, bg, bb = compositePixel(pm, x, y+1)
			}

			fmt.Fprintf(out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				tr, tg, tb, br, bg, bb)
		}
		fmt.Fprint(out, "\x1b[0m\n")
	}
	return out.Flush()
}

// compositePixel returns the pixel at (x, y) blended over the
// checkerboard.
func compositePixel(pm *image.RGBA, x, y int) (r, g, b uint8) {
	i := pm.PixOffset(pm.Bounds().Min.X+x, pm.Bounds().Min.Y+y)
	px := pm.Pix[i : i+4 : i+4]

	c := checkerColor(x, y)
	inv := 255 - int(px[3])
	r = uint8(int(px[0]) + int(c)*inv/255)
	g = uint8(int(px[1]) + int(c)*inv/255)
	b = uint8(int(px[2]) + int(c)*inv/255)
	return r, g, b
}

// checkerColor returns the checkerboard shade under pixel (x, y).
func checkerColor(x, y int) uint8 {
	if (x/checkerSize+y/checkerSize)%2 == 0 {
		return checkerDark
	}
	return checkerLight
}
