package termview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// kittyChunkSize is the payload limit per kitty graphics escape; the
// protocol caps chunks at 4096 bytes of base64 data.
const kittyChunkSize = 4096

// Rough pixel size of one terminal cell, used to budget natively
// rendered images when only the cell grid size is known.
const (
	cellPxWidth  = 8
	cellPxHeight = 16
)

// renderITerm2 transmits img with the iTerm2 OSC 1337 inline image
// sequence. iTerm2 scales oversized images to the window on its own,
// so the image is sent at full resolution.
func renderITerm2(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode preview PNG: %w", err)
	}

	_, err := fmt.Fprintf(w, "\x1b]1337;File=inline=1;size=%d:%s\a\n",
		buf.Len(), base64.StdEncoding.EncodeToString(buf.Bytes()))
	return err
}

// renderKitty transmits img with the kitty graphics protocol: base64
// PNG data in 4096-byte APC chunks, m=1 while more follow.
//
// Kitty draws at native pixel size and crops at the window edge, so
// the image is first fitted to the cell grid using a conservative
// estimate of the cell pixel size.
func renderKitty(w io.Writer, img image.Image, cols, rows int) error {
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	fitted := imaging.Fit(img, cols*cellPxWidth, (rows-1)*cellPxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, fitted); err != nil {
		return fmt.Errorf("failed to encode preview PNG: %w", err)
	}

	data := base64.StdEncoding.EncodeToString(buf.Bytes())
	first := true
	for len(data) > 0 {
		n := len(data)
		if n > kittyChunkSize {
			n = kittyChunkSize
		}
		chunk := data[:n]
		data = data[n:]

		more := 0
		if len(data) > 0 {
			more = 1
		}

		var err error
		if first {
			// f=100 PNG data, a=T transmit and display.
			_, err = fmt.Fprintf(w, "\x1b_Gf=100,a=T,m=%d;%s\x1b\\", more, chunk)
			first = false
		} else {
			_, err = fmt.Fprintf(w, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
