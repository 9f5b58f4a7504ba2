// Package chroma turns an image rendered on a solid-color backdrop into
// a cutout with a transparent background.
//
// The pipeline behind Extract runs four stages in order: detect the
// background key color, classify every pixel against it, erode the
// residual fringe, and trim to the visible bounding box. Each stage is
// also exported on its own so callers can run a partial pipeline or
// inspect intermediate masks.
//
// # Pixel Model
//
// All stages operate on *image.NRGBA: 8-bit RGBA with straight
// (non-premultiplied) alpha, rows laid out top to bottom. Stages that
// mutate pixels require zero-origin bounds; Extract re-bases sub-images
// itself, but callers invoking Classify or Erode directly must pass
// images whose bounds start at (0,0).
//
// # Color Model
//
// Classification happens in HSV. Hue is degrees on the color wheel
// (0-360, circular), saturation and value are 0-100. Hue comparisons go
// through HueDistance, which measures the short way around the wheel,
// so a key near 0 matches pixels near 360.
//
// # Key Detection
//
// Four strategies implement the Keyer interface: a fixed caller-given
// color, corner averaging, dominant-color analysis, and border
// clustering with a uniformity check. NewKeyer builds one from its
// string name; corner averaging is the default.
//
// # Error Handling
//
// Pixel-less inputs fail with ErrEmptyImage. An image whose every pixel
// keys out fails with ErrNothingLeft. Detection failures describe the
// strategy that produced them; NewKeyer rejects unknown mode names and
// contradictory option combinations.
package chroma
