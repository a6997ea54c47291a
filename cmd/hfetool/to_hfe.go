package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdt99/hfetool/config"
	"github.com/xdt99/hfetool/format"
	"github.com/xdt99/hfetool/hfe"
)

var (
	toHfeGeometry string
	toHfeTracks   int
	toHfeSides    int
	toHfeDensity  string
)

var toHfeCmd = &cobra.Command{
	Use:   "to-hfe SRC.img DEST.hfe",
	Short: "Convert a TI-99 sector image to an HFE flux image",
	Long:  "Convert a TI-99 sector image to an HFE flux image, encoding each sector at the requested density.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		src, dest := args[0], args[1]
		if outputOverride != "" {
			dest = outputOverride
		}

		sectorImage, err := os.ReadFile(src)
		if err != nil {
			fail(fmt.Errorf("failed to read %s: %w", src, err))
		}

		geo, err := resolveGeometry(sectorImage)
		if err != nil {
			fail(err)
		}

		hfeImage, err := hfe.SectorToHFE(sectorImage, geo)
		if err != nil {
			fail(err)
		}

		if err := os.WriteFile(dest, hfeImage, 0644); err != nil {
			fail(fmt.Errorf("failed to write %s: %w", dest, err))
		}
		fmt.Printf("Wrote %s (%d tracks, %d side(s), %s)\n", dest, geo.Tracks, geo.Sides, geo.Density)
	},
}

// resolveGeometry picks the target geometry from, in priority order: the
// explicit --tracks/--sides/--density triple, a named --geometry preset,
// or inference from the sector image's trailing metadata region.
func resolveGeometry(sectorImage []byte) (hfe.Geometry, error) {
	if toHfeTracks != 0 || toHfeSides != 0 || toHfeDensity != "" {
		d, err := format.ParseDensity(toHfeDensity)
		if err != nil {
			return hfe.Geometry{}, err
		}
		return hfe.Geometry{Tracks: toHfeTracks, Sides: toHfeSides, Density: d}, nil
	}
	if toHfeGeometry != "" {
		p, err := config.Get(toHfeGeometry)
		if err != nil {
			return hfe.Geometry{}, err
		}
		return p.Geometry()
	}
	return hfe.InferGeometry(sectorImage)
}

func init() {
	toHfeCmd.Flags().StringVar(&toHfeGeometry, "geometry", "", "named geometry preset from the config file")
	toHfeCmd.Flags().IntVar(&toHfeTracks, "tracks", 0, "track count (40 or 80)")
	toHfeCmd.Flags().IntVar(&toHfeSides, "sides", 0, "side count (1 or 2)")
	toHfeCmd.Flags().StringVar(&toHfeDensity, "density", "", "recording density (SD or DD)")
	rootCmd.AddCommand(toHfeCmd)
}
