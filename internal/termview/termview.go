package termview

import (
	"image"
	"io"
	"os"

	"golang.org/x/term"
)

// Protocol identifies a terminal image display mechanism.
type Protocol int

const (
	// ProtocolNone means the output is not a terminal; nothing is drawn.
	ProtocolNone Protocol = iota

	// ProtocolANSI renders with Unicode half blocks and 24-bit color
	// escapes. Works in any true-color terminal.
	ProtocolANSI

	// ProtocolKitty uses the kitty graphics protocol (APC _G).
	ProtocolKitty

	// ProtocolITerm2 uses the iTerm2 inline images protocol (OSC 1337).
	ProtocolITerm2
)

// String returns the protocol name used in debug output.
func (p Protocol) String() string {
	switch p {
	case ProtocolNone:
		return "none"
	case ProtocolANSI:
		return "ansi"
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm2:
		return "iterm2"
	}
	return "unknown"
}

// Detect picks the display protocol for f.
//
// A non-terminal destination gets ProtocolNone: image escapes piped
// into a file or another program are worse than silence. For real
// terminals the protocol is chosen from the environment the terminal
// emulator sets, falling back to half-block rendering, which every
// true-color terminal can show.
func Detect(f *os.File) Protocol {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ProtocolNone
	}
	return protocolFromEnv()
}

// protocolFromEnv classifies the terminal emulator by its environment.
func protocolFromEnv() Protocol {
	if os.Getenv("NO_COLOR") != "" {
		return ProtocolNone
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm":
		return ProtocolITerm2
	}
	if os.Getenv("LC_TERMINAL") == "iTerm2" {
		return ProtocolITerm2
	}
	if os.Getenv("TERM") == "xterm-kitty" || os.Getenv("KITTY_WINDOW_ID") != "" {
		return ProtocolKitty
	}
	return ProtocolANSI
}

// Show displays img on f using whatever protocol f supports.
//
// When f is not a terminal nothing is written and the call succeeds;
// previews are a convenience and must never break a pipeline that is
// otherwise working.
func Show(f *os.File, img image.Image) error {
	p := Detect(f)
	if p == ProtocolNone {
		return nil
	}

	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		cols, rows = 0, 0
	}
	return Render(f, img, p, cols, rows)
}

// Render draws img on w with an explicit protocol and terminal size.
// cols and rows at zero select conservative defaults. Show is the
// usual entry point; Render exists so callers and tests can bypass
// detection.
func Render(w io.Writer, img image.Image, p Protocol, cols, rows int) error {
	switch p {
	case ProtocolITerm2:
		return renderITerm2(w, img)
	case ProtocolKitty:
		return renderKitty(w, img, cols, rows)
	case ProtocolANSI:
		return renderANSI(w, img, cols, rows)
	}
	return nil
}
