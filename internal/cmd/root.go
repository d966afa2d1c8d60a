// Package cmd provides the CLI commands for fil.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thirteen37/fil/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "fil",
	Short: "Read, write and convert structured data files",
	Long: `fil works with data files through their extensions: JSON, JSON Lines,
TOML, YAML, INI, MessagePack and plain text, optionally compressed with
gzip, bzip2, xz or zstandard.

The format of every file is picked from its name alone, so converting
between formats is just naming the destination:

  fil convert config.json config.yaml
  fil convert events.jsonl.gz events.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger.Initialize(level)
	},
}

var verbose bool

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(formatsCmd)
}
