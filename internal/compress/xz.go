package compress

import (
	"io"

	"github.com/ulikunitz/xz"
)

// XZ implements the xz codec.
type XZ struct{}

// Name returns the codec identifier.
func (XZ) Name() string { return "xz" }

// Extensions returns the extensions served by this codec.
func (XZ) Extensions() []string { return []string{".xz"} }

// NewReader returns an xz decompressing reader.
func (XZ) NewReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

// NewWriter returns an xz compressing writer.
func (XZ) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// Ensure XZ implements Codec.
var _ Codec = XZ{}
