package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdt99/hfetool/config"
	"github.com/xdt99/hfetool/hfe"
)

// outputOverride holds the -o flag shared by every subcommand.
var outputOverride string

var rootCmd = &cobra.Command{
	Use:   "hfetool",
	Short: "A CLI program which converts between TI-99 sector images and HFE flux images",
	Long:  "The hfetool program converts TI-99/4A floppy disk sector images to and from HFE flux-level images.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Initialize(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputOverride, "output", "o", "", "override the destination file name")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// fail reports err and exits: 1 for an unsuitable image (*hfe.HfeError), 2 for
// everything else (I/O failures, bad flags resolved at runtime).
func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	var hfeErr *hfe.HfeError
	if errors.As(err, &hfeErr) {
		os.Exit(1)
	}
	os.Exit(2)
}
