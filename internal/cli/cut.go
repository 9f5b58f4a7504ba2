package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenlit/matte/internal/chroma"
	"github.com/greenlit/matte/internal/imaging"
	"github.com/greenlit/matte/internal/naming"
)

var cutOpts struct {
	key       string
	keyMode   string
	outDir    string
	name      string
	noPreview bool
}

var cutCmd = &cobra.Command{
	Use:   "cut FILE",
	Short: "Key the background out of an existing image",
	Long: `Cut runs the keying pipeline over an image already on disk: detect the
backdrop color, fade and erode the edge, trim, and save a transparent
PNG.

The cutout lands next to the input as <name>-cutout.png unless --out or
--name says otherwise, and never overwrites an existing file.`,
	Example: `  matte cut render.png
  matte cut --key-mode border busy-frame.jpg
  matte cut --key "#0000FF" --name subject bluescreen.png`,
	Args: cobra.ExactArgs(1),
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	f := cutCmd.Flags()
	f.StringVar(&cutOpts.key, "key", "", "backdrop hex color to key on, e.g. #00FF00")
	f.StringVar(&cutOpts.keyMode, "key-mode", "", "key detection mode: "+strings.Join(chroma.ValidModes(), ", "))
	f.StringVarP(&cutOpts.outDir, "out", "o", "", "output directory (default next to the input)")
	f.StringVar(&cutOpts.name, "name", "", "output file stem (default <input>-cutout)")
	f.BoolVar(&cutOpts.noPreview, "no-preview", false, "skip the terminal preview")
}

func runCut(cmd *cobra.Command, args []string) error {
	input := args[0]

	mode := cutOpts.keyMode
	if cutOpts.key != "" && mode == "" {
		mode = chroma.ModeFixed
	}

	img, format, err := imaging.LoadNRGBA(input)
	if err != nil {
		return err
	}
	debugf("input: %dx%d %s", img.Bounds().Dx(), img.Bounds().Dy(), format)

	res, err := chroma.Extract(img, chroma.Options{Mode: mode, KeyColor: cutOpts.key})
	if err != nil {
		return keyingError(err)
	}
	debugf("keyed %s: %d background, %d edge, %d eroded", res.Key.Hex(), res.Background, res.Edge, res.Eroded)

	outDir := cutOpts.outDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	stem := cutOpts.name
	if stem == "" {
		stem = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "-cutout"
	}
	outPath, err := naming.Unique(outDir, stem, ".png")
	if err != nil {
		return err
	}
	if err := imaging.SavePNG(outPath, res.Image); err != nil {
		return fmt.Errorf("saving cutout: %w", err)
	}

	b := res.Image.Bounds()
	color.Green("Saved %s (%dx%d, keyed %s)", outPath, b.Dx(), b.Dy(), res.Key.Hex())
	if !cutOpts.noPreview {
		preview(res.Image)
	}
	return nil
}
