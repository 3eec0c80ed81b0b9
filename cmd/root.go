package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosketch/internal/app"
	"github.com/philipparndt/gosketch/internal/config"
	"github.com/philipparndt/gosketch/internal/logging"
	"github.com/philipparndt/gosketch/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gosketch-raylib <file>",
	Short: "Interactive freehand annotation of STL models",
	Long: `gosketch-raylib opens an STL model in an orbit viewer. Strokes can be drawn
on a screen overlay or directly on the model surface, and erased again.
The model is reloaded when the file changes.`,
	Version: version.GetFullVersion(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Text(os.Stderr, verbose)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return app.Run(args[0], cfg)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
