// fil reads, writes and converts structured data files through their
// extensions.
package main

import (
	"github.com/thirteen37/fil/internal/cmd"
)

func main() {
	cmd.Execute()
}
