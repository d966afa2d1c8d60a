package compress

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bzip2 implements the bzip2 codec. The standard library only reads bzip2
// streams, so both directions go through dsnet/compress.
type Bzip2 struct{}

// Name returns the codec identifier.
func (Bzip2) Name() string { return "bzip2" }

// Extensions returns the extensions served by this codec.
func (Bzip2) Extensions() []string { return []string{".bz2", ".bz"} }

// NewReader returns a bzip2 decompressing reader.
func (Bzip2) NewReader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

// NewWriter returns a bzip2 compressing writer.
func (Bzip2) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
}

// Ensure Bzip2 implements Codec.
var _ Codec = Bzip2{}
