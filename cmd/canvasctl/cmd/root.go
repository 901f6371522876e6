package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "canvasctl",
	Short: "canvasctl drives and inspects mediacanvas canvases headlessly",
	Long: `canvasctl provides a headless interface to the mediacanvas interaction
engine, for scripted testing and snapshot inspection without a live window:

Examples:
  canvasctl run scenario.json              # run a scripted interaction, print the resulting snapshot
  canvasctl inspect snapshot.json          # print a summary of a saved canvas snapshot`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
