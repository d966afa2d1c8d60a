// Package text provides the plain text format handler for fil.
package text

import (
	"fmt"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for plain text files. The decoded value
// is the raw file content as a string, trailing newline included, and only
// strings (or raw bytes) encode back.
type Handler struct{}

// New creates a new plain text handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "text" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".txt"} }

// LineOriented reports false; the whole file is one string.
func (h *Handler) LineOriented() bool { return false }

// Decode returns the raw bytes as a string.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	return string(data), nil
}

// Encode writes a string or []byte unmodified. Anything else is rejected
// with format.ErrUnsupportedShape rather than silently stringified.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	switch s := v.(type) {
	case string:
		return []byte(s), nil
	case []byte:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: .txt files only accept strings, got %T", format.ErrUnsupportedShape, v)
	}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
