package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdt99/hfetool/hfe"
)

var dumpCmd = &cobra.Command{
	Use:   "dump SRC.hfe",
	Short: "Dump the raw decoded byte stream of an HFE image",
	Long:  "Decode every track of an HFE image without parsing it into sectors, for inspecting tracks the parser rejects.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hfeImage, err := os.ReadFile(args[0])
		if err != nil {
			fail(fmt.Errorf("failed to read %s: %w", args[0], err))
		}

		raw, err := hfe.HFERawDump(hfeImage)
		if err != nil {
			fail(err)
		}

		if outputOverride != "" {
			if err := os.WriteFile(outputOverride, raw, 0644); err != nil {
				fail(fmt.Errorf("failed to write %s: %w", outputOverride, err))
			}
			return
		}
		if _, err := os.Stdout.Write(raw); err != nil {
			fail(fmt.Errorf("failed to write to stdout: %w", err))
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
