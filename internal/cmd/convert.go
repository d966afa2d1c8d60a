package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thirteen37/fil"
	"github.com/thirteen37/fil/internal/logger"
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <destination>",
	Short: "Convert a file from one format to another",
	Long: `Convert a file from one format to another. Both formats are inferred
from the file extensions, including compression suffixes.

Arguments:
  source       File to read (e.g., config.json)
  destination  File to write (e.g., config.yaml)

Example:
  fil convert config.json config.yaml
  fil convert events.jsonl events.json.gz
  fil convert --ordered --indent "  " config.toml config.json`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var (
	convertIndent   string
	convertOrdered  bool
	convertNoAtomic bool
)

func init() {
	convertCmd.Flags().StringVar(&convertIndent, "indent", "", "Indentation for the destination format")
	convertCmd.Flags().BoolVar(&convertOrdered, "ordered", false, "Preserve key order from the source document")
	convertCmd.Flags().BoolVar(&convertNoAtomic, "no-atomic", false, "Write the destination in place instead of atomically")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]
	log := logger.Named("convert")

	var readOpts []fil.Option
	if convertOrdered {
		readOpts = append(readOpts, fil.Ordered())
	}

	v, err := fil.Read(source, readOpts...)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", source, err)
	}

	// A line-oriented source streams straight into a line-oriented
	// destination; a whole-document destination needs the records collected
	// first.
	if lines, ok := v.(*fil.Lines); ok {
		defer lines.Close()
		if fil.IsLineOriented(destination) {
			log.Debug("streaming records", "source", source, "destination", destination)
			v = lines
		} else {
			collected := []any{}
			for lines.Next() {
				collected = append(collected, lines.Value())
			}
			if err := lines.Err(); err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}
			log.Debug("collected records", "source", source, "count", len(collected))
			v = collected
		}
	}

	var writeOpts []fil.Option
	if convertIndent != "" {
		writeOpts = append(writeOpts, fil.Indent(convertIndent))
	}
	if convertNoAtomic {
		writeOpts = append(writeOpts, fil.NoAtomic())
	}

	if err := fil.Write(destination, v, writeOpts...); err != nil {
		return fmt.Errorf("failed to write %s: %w", destination, err)
	}

	log.Debug("converted", "source", source, "destination", destination)
	return nil
}
