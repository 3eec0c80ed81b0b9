package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gosketch",
	Short: "Freehand annotation of 3D models",
	Long: `gosketch annotates 3D models with freehand strokes, either on a
screen-space overlay or anchored to the model surface. The replay command
runs recorded annotation scripts headless and renders the result.`,
	Version: version.GetFullVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Text(os.Stderr, verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
