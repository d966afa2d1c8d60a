package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thirteen37/fil"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and compression extensions",
	Run:   runFormats,
}

func runFormats(cmd *cobra.Command, args []string) {
	fmt.Printf("Formats:     %s\n", strings.Join(fil.Extensions(), " "))
	fmt.Printf("Compression: %s\n", strings.Join(fil.CompressionExtensions(), " "))
}
