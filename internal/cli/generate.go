package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenlit/matte/internal/chroma"
	"github.com/greenlit/matte/internal/imaging"
	"github.com/greenlit/matte/internal/naming"
	"github.com/greenlit/matte/internal/provider"
)

var genOpts struct {
	model        string
	size         string
	key          string
	keyMode      string
	outDir       string
	name         string
	timeout      time.Duration
	keepOriginal bool
	rawPrompt    bool
	noPreview    bool
}

var generateCmd = &cobra.Command{
	Use:   "generate PROMPT...",
	Short: "Render a prompt on a chroma-key backdrop and cut the subject out",
	Long: `Generate asks the image model to render the prompt on a solid backdrop,
keys the backdrop out and saves a trimmed transparent PNG.

The backdrop instruction is appended to the prompt automatically (pure
green unless --key picks another color); --raw-prompt sends the prompt
untouched. Detection still runs on the rendered pixels, so the cutout
tolerates models that take the requested color only approximately.

The output name is derived from the prompt and never overwrites an
existing file. --keep-original also saves the render before keying.`,
	Example: `  matte generate a red fox wearing sunglasses
  matte generate --size 1536x1024 --keep-original studio photo of a brass trumpet
  matte generate --key "#FF00FF" neon green slime monster`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genOpts.model, "model", "", "image model (default "+provider.DefaultModel+")")
	f.StringVar(&genOpts.size, "size", "", "render size as WIDTHxHEIGHT (default chosen by the model)")
	f.StringVar(&genOpts.key, "key", "", "backdrop hex color to request and key on, e.g. #00FF00")
	f.StringVar(&genOpts.keyMode, "key-mode", "", "key detection mode: "+strings.Join(chroma.ValidModes(), ", "))
	f.StringVarP(&genOpts.outDir, "out", "o", ".", "output directory")
	f.StringVar(&genOpts.name, "name", "", "output file stem (default derived from the prompt)")
	f.DurationVar(&genOpts.timeout, "timeout", 2*time.Minute, "time limit for the generation request")
	f.BoolVar(&genOpts.keepOriginal, "keep-original", false, "also save the render before keying")
	f.BoolVar(&genOpts.rawPrompt, "raw-prompt", false, "send the prompt without the backdrop instruction")
	f.BoolVar(&genOpts.noPreview, "no-preview", false, "skip the terminal preview")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("prompt is empty")
	}
	if genOpts.size != "" {
		if err := parseSize(genOpts.size); err != nil {
			return err
		}
	}

	// An explicit key color implies fixed-key mode so that --key alone
	// does what it says. An explicit conflicting mode still errors.
	mode := genOpts.keyMode
	if genOpts.key != "" && mode == "" {
		mode = chroma.ModeFixed
	}
	if _, err := chroma.NewKeyer(mode, genOpts.key); err != nil {
		return err
	}

	client, err := provider.New(provider.Config{Model: genOpts.model})
	if err != nil {
		return err
	}

	backdrop := genOpts.key
	if backdrop == "" {
		backdrop = defaultBackdrop
	}
	fullPrompt := prompt
	if !genOpts.rawPrompt {
		fullPrompt = backdropPrompt(prompt, backdrop)
	}
	debugf("prompt: %s", fullPrompt)

	fmt.Printf("Generating with %s...\n", client.Model())
	ctx, cancel := context.WithTimeout(cmd.Context(), genOpts.timeout)
	defer cancel()
	raw, err := client.Generate(ctx, provider.GenerateRequest{Prompt: fullPrompt, Size: genOpts.size})
	if err != nil {
		return fmt.Errorf("generating image: %w", err)
	}

	img, format, err := imaging.DecodeNRGBA(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding render: %w", err)
	}
	debugf("render: %dx%d %s, %d bytes", img.Bounds().Dx(), img.Bounds().Dy(), format, len(raw))

	stem := genOpts.name
	if stem == "" {
		stem = naming.Stem(prompt)
	}

	// Save the original before keying so a failed key still leaves the
	// render on disk.
	if genOpts.keepOriginal {
		origPath, err := naming.Unique(genOpts.outDir, stem+"-original", ".png")
		if err != nil {
			return err
		}
		if err := imaging.SavePNG(origPath, img); err != nil {
			return fmt.Errorf("saving original: %w", err)
		}
		fmt.Printf("Kept original at %s\n", origPath)
	}

	res, err := chroma.Extract(img, chroma.Options{Mode: mode, KeyColor: genOpts.key})
	if err != nil {
		return keyingError(err)
	}
	debugf("keyed %s: %d background, %d edge, %d eroded", res.Key.Hex(), res.Background, res.Edge, res.Eroded)

	outPath, err := naming.Unique(genOpts.outDir, stem, ".png")
	if err != nil {
		return err
	}
	if err := imaging.SavePNG(outPath, res.Image); err != nil {
		return fmt.Errorf("saving cutout: %w", err)
	}

	b := res.Image.Bounds()
	color.Green("Saved %s (%dx%d, keyed %s)", outPath, b.Dx(), b.Dy(), res.Key.Hex())
	if !genOpts.noPreview {
		preview(res.Image)
	}
	return nil
}
