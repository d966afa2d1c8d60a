// Package compress provides transparent compression codecs, selected by a
// trailing file extension such as the .gz in data.json.gz.
package compress

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Codec wraps a byte stream with one compression algorithm.
type Codec interface {
	// Name returns the codec identifier (e.g., "gzip").
	Name() string

	// Extensions returns the file extensions served by this codec,
	// lowercase and including the leading dot.
	Extensions() []string

	// NewReader returns a decompressing reader over r. Closing it does not
	// close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a compressing writer into w. Closing it flushes
	// the compressed stream but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// codecs lists every built-in codec. The table is assembled once at init and
// never mutated afterwards.
var codecs = []Codec{
	Gzip{},
	Bzip2{},
	XZ{},
	Zstd{},
}

var byExtension = buildIndex()

func buildIndex() map[string]Codec {
	index := make(map[string]Codec)
	for _, c := range codecs {
		for _, ext := range c.Extensions() {
			if prev, ok := index[ext]; ok {
				panic(fmt.Sprintf("compress: extension %q claimed by both %s and %s", ext, prev.Name(), c.Name()))
			}
			index[ext] = c
		}
	}
	return index
}

// Lookup returns the codec for a file extension. The extension must include
// the leading dot; lookup is case-insensitive.
func Lookup(ext string) (Codec, bool) {
	c, ok := byExtension[strings.ToLower(ext)]
	return c, ok
}

// Extensions returns every recognized compression extension, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
