// Package cli wires the matte commands: generate, cut and show.
package cli

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenlit/matte/internal/chroma"
	"github.com/greenlit/matte/internal/termview"
)

// EnvLogLevel enables debug logging when set to "debug".
const EnvLogLevel = "MATTE_LOG_LEVEL"

// defaultBackdrop is the chroma-key color requested from the image
// model when the operator does not pick one. Pure green sits far from
// skin tones and from most subject palettes.
const defaultBackdrop = "#00FF00"

var debugEnabled = os.Getenv(EnvLogLevel) == "debug"

var rootCmd = &cobra.Command{
	Use:   "matte",
	Short: "Generate AI images and cut them out of their backgrounds",
	Long: `matte turns prompt-generated images into transparent-background cutouts.

It asks an OpenAI-compatible image API to render the subject on a solid
chroma-key backdrop, then keys that backdrop out: classify pixels by hue,
fade the edge band, suppress color spill, erode the fringe and trim. The
result is a tight PNG cutout with a straight-alpha channel.

The API key comes from MATTE_API_KEY or OPENAI_API_KEY; MATTE_API_BASE
points the client at compatible providers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line. version becomes the --version output.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

// debugf logs only when MATTE_LOG_LEVEL=debug.
func debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf(format, args...)
	}
}

// parseSize validates a WIDTHxHEIGHT string like "1024x1024".
func parseSize(s string) error {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return fmt.Errorf("size %q: want WIDTHxHEIGHT, e.g. 1024x1024", s)
	}
	for _, part := range []string{w, h} {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return fmt.Errorf("size %q: want WIDTHxHEIGHT with positive numbers", s)
		}
	}
	return nil
}

// backdropPrompt appends the solid-backdrop instruction to the
// operator's prompt. Keying only works when the model actually renders
// a flat background, so the instruction is explicit about uniformity.
func backdropPrompt(prompt, backdropHex string) string {
	prompt = strings.TrimRight(strings.TrimSpace(prompt), ".")
	return fmt.Sprintf("%s. The subject is isolated on a solid %s chroma key background:"+
		" one perfectly uniform flat color filling every part of the frame behind the subject,"+
		" with no gradient, no texture, no vignette and no shadows cast on the background.",
		prompt, backdropHex)
}

// preview renders img inline on stdout when the terminal supports it.
// Preview failures never fail the command; the file is already saved.
func preview(img image.Image) {
	if err := termview.Show(os.Stdout, img); err != nil {
		debugf("terminal preview failed: %v", err)
	}
}

// keyingError wraps engine failures, attaching a remedy to the one
// every operator eventually hits.
func keyingError(err error) error {
	if errors.Is(err, chroma.ErrNothingLeft) {
		return fmt.Errorf("keying background: %w; the whole image matched the key, so the subject"+
			" probably shares its hue. Try --key with the real backdrop color or --key-mode %s", err, chroma.ModeBorder)
	}
	return fmt.Errorf("keying background: %w", err)
}
