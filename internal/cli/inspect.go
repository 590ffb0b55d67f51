package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-match/internal/imaging"
)

func newInspectCmd(root *Root) *cobra.Command {
	var paletteSize int

	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Report an image's average and dominant colors",
		Long: `Measure an image and print its average color and dominant color. The
dominant color of a reference's background is the usual candidate for
the mask color setting. With --palette, a k-means clustering of the
pixels prints the top colors by coverage as further candidates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := imaging.NewCodec()
			img, err := codec.DecodeCached(args[0])
			if err != nil {
				return err
			}

			avg := imaging.Average(img, nil)
			dom := imaging.DominantColor(img)

			bounds := img.Bounds()
			fmt.Printf("image:     %s (%dx%d)\n", args[0], bounds.Dx(), bounds.Dy())
			fmt.Printf("average:   %s  (%.2f, %.2f, %.2f)\n", avg.Hex(), avg.R, avg.G, avg.B)
			fmt.Printf("dominant:  %s  (%d, %d, %d)\n", dom.Hex(), dom.R, dom.G, dom.B)

			if paletteSize > 0 {
				palette, err := imaging.Palette(img, paletteSize)
				if err != nil {
					return err
				}
				fmt.Println("palette:")
				for i, c := range palette {
					fmt.Printf("  %2d. %s  (%d, %d, %d)\n", i+1, c.Hex(), c.R, c.G, c.B)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&paletteSize, "palette", 0, "also print a k-means palette of this many colors")

	return cmd
}
