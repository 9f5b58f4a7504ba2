// Package termview previews images directly in the terminal.
//
// Three display protocols are supported, best first:
//
//   - iTerm2 inline images (OSC 1337), also spoken by WezTerm
//   - kitty graphics protocol (APC _G)
//   - Unicode half blocks with 24-bit color, for everything else
//
// Detect chooses among them from the environment variables terminal
// emulators set about themselves; there is no capability negotiation
// on the wire. When stdout is not a terminal the chosen protocol is
// ProtocolNone and Show writes nothing at all, so piping program
// output never embeds image escapes. Setting NO_COLOR suppresses
// previews the same way.
//
// # Transparency
//
// The half-block renderer composites the image over a gray
// checkerboard before drawing, the way image editors mark transparent
// regions. The native protocols transmit PNG data with its alpha
// channel intact and leave the blending to the terminal.
package termview
