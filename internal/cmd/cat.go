package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thirteen37/fil"
)

var catCmd = &cobra.Command{
	Use:   "cat <file>...",
	Short: "Print files as JSON on stdout",
	Long: `Print one or more files as JSON on stdout, whatever their format.

Line-oriented files print one JSON value per line; everything else prints
as a single indented document.

Example:
  fil cat config.toml
  fil cat --ordered config.yaml
  fil cat events.jsonl.gz | jq .id`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCat,
}

var (
	catCompact bool
	catOrdered bool
)

func init() {
	catCmd.Flags().BoolVar(&catCompact, "compact", false, "Print documents on a single line")
	catCmd.Flags().BoolVar(&catOrdered, "ordered", false, "Preserve key order from the source document")
}

func runCat(cmd *cobra.Command, args []string) error {
	w := bufio.NewWriter(os.Stdout)

	for _, path := range args {
		if err := catFile(w, path); err != nil {
			w.Flush()
			return err
		}
	}
	return w.Flush()
}

func catFile(w io.Writer, path string) error {
	var readOpts []fil.Option
	if catOrdered {
		readOpts = append(readOpts, fil.Ordered())
	}

	v, err := fil.Read(path, readOpts...)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Line-oriented files print record by record, always one per line
	if lines, ok := v.(*fil.Lines); ok {
		defer lines.Close()
		for lines.Next() {
			if err := printJSON(w, lines.Value(), true); err != nil {
				return err
			}
		}
		if err := lines.Err(); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return nil
	}

	return printJSON(w, v, catCompact)
}

func printJSON(w io.Writer, v any, compact bool) error {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}
