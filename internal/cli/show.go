package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenlit/matte/internal/imaging"
	"github.com/greenlit/matte/internal/termview"
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Preview an image inline in the terminal",
	Long: `Show renders an image inside the terminal, picking the richest protocol
the terminal supports: iTerm2 inline images, the kitty graphics
protocol, or half-block truecolor cells as the fallback. Transparent
regions composite over a checkerboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	img, format, err := imaging.LoadNRGBA(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d %s\n", args[0], img.Bounds().Dx(), img.Bounds().Dy(), format)
	return termview.Show(os.Stdout, img)
}
