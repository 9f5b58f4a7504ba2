// Package naming derives collision-free output filenames from
// generation prompts.
package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const (
	// maxStemLength bounds the prompt-derived part of a filename. Long
	// prompts make miserable filenames; the stem is a label, not a
	// record of the prompt.
	maxStemLength = 48

	// fallbackStem is used when a prompt slugs to nothing, for example
	// punctuation or emoji only.
	fallbackStem = "image"

	// maxProbes caps the collision counter in Unique.
	maxProbes = 1000
)

// Stem converts a free-form prompt into a filename stem: lowercased,
// transliterated to ASCII, hyphen separated, truncated at a word
// boundary. A prompt with no usable characters yields "image".
func Stem(prompt string) string {
	s := slug.Make(prompt)
	if len(s) > maxStemLength {
		s = s[:maxStemLength]
		if i := strings.LastIndex(s, "-"); i > 0 {
			s = s[:i]
		}
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackStem
	}
	return s
}

// Unique returns a path under dir for a new file named after stem that
// does not collide with anything already there. The first candidate is
// stem+ext, then stem-2+ext, stem-3+ext and so on. ext includes the
// dot. The file is not created; the caller is expected to write it
// promptly.
func Unique(dir, stem, ext string) (string, error) {
	for i := 1; i <= maxProbes; i++ {
		name := stem + ext
		if i > 1 {
			name = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, name)

		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to probe %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%d files named %s* already in %s", maxProbes, stem, dir)
}
