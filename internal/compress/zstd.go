package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd implements the zstandard codec.
type Zstd struct{}

// Name returns the codec identifier.
func (Zstd) Name() string { return "zstd" }

// Extensions returns the extensions served by this codec.
func (Zstd) Extensions() []string { return []string{".zst", ".zstd"} }

// NewReader returns a zstandard decompressing reader.
func (Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

// NewWriter returns a zstandard compressing writer.
func (Zstd) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// Ensure Zstd implements Codec.
var _ Codec = Zstd{}
