package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdt99/hfetool/hfe"
)

var infoCmd = &cobra.Command{
	Use:   "info SRC.hfe",
	Short: "Print an HFE image's header metadata",
	Long:  "Print an HFE image's track count, side count, encoding, and interface mode without decoding any track.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hfeImage, err := os.ReadFile(args[0])
		if err != nil {
			fail(fmt.Errorf("failed to read %s: %w", args[0], err))
		}

		info, err := hfe.HFEInfo(hfeImage)
		if err != nil {
			fail(err)
		}

		fmt.Printf("tracks: %d\nsides: %d\nencoding: %s\ninterface_mode: %d\n",
			info.Tracks, info.Sides, info.Encoding, info.InterfaceMode)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
