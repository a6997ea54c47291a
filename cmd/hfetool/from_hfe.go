package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdt99/hfetool/hfe"
)

var fromHfeStrict bool

var fromHfeCmd = &cobra.Command{
	Use:   "from-hfe SRC.hfe DEST.img",
	Short: "Convert an HFE flux image to a TI-99 sector image",
	Long:  "Convert an HFE flux image to a TI-99 sector image by decoding and parsing every track.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		src, dest := args[0], args[1]
		if outputOverride != "" {
			dest = outputOverride
		}

		hfeImage, err := os.ReadFile(src)
		if err != nil {
			fail(fmt.Errorf("failed to read %s: %w", src, err))
		}

		sectorImage, geo, err := hfe.HFEToSector(hfeImage, hfe.ParseOptions{Strict: fromHfeStrict})
		if err != nil {
			fail(err)
		}

		if err := os.WriteFile(dest, sectorImage, 0644); err != nil {
			fail(fmt.Errorf("failed to write %s: %w", dest, err))
		}
		fmt.Printf("Wrote %s (%d tracks, %d side(s), %s)\n", dest, geo.Tracks, geo.Sides, geo.Density)
	},
}

func init() {
	fromHfeCmd.Flags().BoolVar(&fromHfeStrict, "strict", false, "reject sectors whose stored CRC doesn't match their data")
	rootCmd.AddCommand(fromHfeCmd)
}
