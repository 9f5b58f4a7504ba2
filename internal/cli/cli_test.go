package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/greenlit/matte/internal/chroma"
)

func TestParseSize_Valid(t *testing.T) {
	for _, s := range []string{"1024x1024", "1536x1024", "1024x1536", "512x768", "1x1"} {
		t.Run(s, func(t *testing.T) {
			if err := parseSize(s); err != nil {
				t.Fatalf("parseSize(%q) = %v, want nil", s, err)
			}
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, s := range []string{"", "1024", "1024x", "x1024", "0x1024", "1024x0", "-1x100", "axb", "1024X1024", "10.5x20", "1024x1024x3"} {
		t.Run(s, func(t *testing.T) {
			if err := parseSize(s); err == nil {
				t.Fatalf("parseSize(%q) = nil, want error", s)
			}
		})
	}
}

func TestBackdropPrompt_AppendsInstruction(t *testing.T) {
	got := backdropPrompt("a red fox", "#00FF00")

	if !strings.HasPrefix(got, "a red fox. ") {
		t.Errorf("prompt does not lead with the subject: %q", got)
	}
	if !strings.Contains(got, "#00FF00") {
		t.Errorf("prompt does not name the backdrop color: %q", got)
	}
	if !strings.Contains(got, "chroma key") {
		t.Errorf("prompt does not ask for a chroma key backdrop: %q", got)
	}
}

func TestBackdropPrompt_NormalizesPunctuation(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"trailing period", "a red fox."},
		{"trailing periods", "a red fox..."},
		{"surrounding space", "  a red fox  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := backdropPrompt(tt.prompt, "#00FF00")
			if !strings.HasPrefix(got, "a red fox. ") {
				t.Errorf("backdropPrompt(%q) = %q, want single period after subject", tt.prompt, got)
			}
			if strings.Contains(got, "..") {
				t.Errorf("backdropPrompt(%q) = %q, contains doubled periods", tt.prompt, got)
			}
		})
	}
}

func TestBackdropPrompt_CustomColor(t *testing.T) {
	got := backdropPrompt("neon green slime", "#FF00FF")
	if !strings.Contains(got, "#FF00FF") {
		t.Errorf("prompt does not carry the custom backdrop: %q", got)
	}
	if strings.Contains(got, defaultBackdrop) {
		t.Errorf("prompt still mentions the default backdrop: %q", got)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"generate", "cut", "show"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error: %v", name, err)
			}
			if cmd.Name() != name {
				t.Fatalf("Find(%q) resolved to %q", name, cmd.Name())
			}
		})
	}
}

func TestGenerateCommand_FlagDefaults(t *testing.T) {
	f := generateCmd.Flags()

	tests := []struct {
		flag string
		want string
	}{
		{"out", "."},
		{"timeout", "2m0s"},
		{"size", ""},
		{"key", ""},
		{"key-mode", ""},
		{"keep-original", "false"},
		{"raw-prompt", "false"},
		{"no-preview", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			fl := f.Lookup(tt.flag)
			if fl == nil {
				t.Fatalf("flag --%s not registered", tt.flag)
			}
			if fl.DefValue != tt.want {
				t.Errorf("flag --%s default = %q, want %q", tt.flag, fl.DefValue, tt.want)
			}
		})
	}
}

func TestCutCommand_Flags(t *testing.T) {
	f := cutCmd.Flags()
	for _, name := range []string{"key", "key-mode", "out", "name", "no-preview"} {
		if f.Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
}

func TestKeyingError(t *testing.T) {
	t.Run("nothing left carries a remedy", func(t *testing.T) {
		err := keyingError(chroma.ErrNothingLeft)
		if !errors.Is(err, chroma.ErrNothingLeft) {
			t.Fatalf("wrapped error lost the sentinel: %v", err)
		}
		if !strings.Contains(err.Error(), "--key") {
			t.Errorf("no remedy in message: %v", err)
		}
	})

	t.Run("other errors wrapped plainly", func(t *testing.T) {
		cause := errors.New("boom")
		err := keyingError(cause)
		if !errors.Is(err, cause) {
			t.Fatalf("wrapped error lost the cause: %v", err)
		}
		if strings.Contains(err.Error(), "--key") {
			t.Errorf("unexpected remedy in message: %v", err)
		}
	})
}
