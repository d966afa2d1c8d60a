package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip implements the gzip codec.
type Gzip struct{}

// Name returns the codec identifier.
func (Gzip) Name() string { return "gzip" }

// Extensions returns the extensions served by this codec.
func (Gzip) Extensions() []string { return []string{".gz", ".gzip"} }

// NewReader returns a gzip decompressing reader.
func (Gzip) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// NewWriter returns a gzip compressing writer.
func (Gzip) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

// Ensure Gzip implements Codec.
var _ Codec = Gzip{}
