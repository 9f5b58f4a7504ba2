// Package imaging is the file and format boundary of the program.
//
// Everything that crosses between image files (or API payloads) and the
// in-memory pixel representation goes through here. The rest of the
// program never touches image.Decode directly.
//
// # Normalization
//
// Input images arrive in whatever format and color model the source
// used: paletted GIFs, YCbCr JPEGs, 16-bit PNGs, WebP from image APIs.
// DecodeNRGBA converts them all to one canonical form, an 8-bit
// straight-alpha *image.NRGBA with bounds anchored at (0,0), because
// that is the only layout the keying pipeline operates on.
//
// # Output
//
// Output is always PNG. It is the one widely supported format that
// losslessly carries the partial-alpha edges the pipeline produces;
// encoding a cutout to JPEG would flatten them away.
package imaging
