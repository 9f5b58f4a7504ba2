package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DecodeNRGBA decodes an image from r and normalizes it for the keying
// pipeline.
//
// Whatever the source format delivers (paletted GIF, YCbCr JPEG, 16-bit
// PNG, WebP), the result is always a fresh 8-bit straight-alpha
// *image.NRGBA whose bounds start at (0,0). That is the only pixel
// layout the rest of the program handles.
//
// Returns:
//   - *image.NRGBA: The normalized image.
//   - string: The detected format name ("png", "jpeg", "gif", "webp").
//   - error: Non-nil if the data cannot be decoded or has no pixels.
func DecodeNRGBA(r io.Reader) (*image.NRGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return nil, "", fmt.Errorf("decoded %s image has no pixels", format)
	}
	return imaging.Clone(img), format, nil
}

// LoadNRGBA reads and decodes the image file at path.
//
// The result follows the DecodeNRGBA contract: zero-origin NRGBA, known
// format name, or an error.
func LoadNRGBA(path string) (*image.NRGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return DecodeNRGBA(f)
}
