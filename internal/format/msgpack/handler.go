// Package msgpack provides the MessagePack format handler for fil.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for MessagePack files.
type Handler struct{}

// New creates a new MessagePack handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "msgpack" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".msgpack"} }

// LineOriented reports false; a MessagePack file holds a single value.
func (h *Handler) LineOriented() bool { return false }

// Decode parses MessagePack bytes and returns a generic value. Loose
// interface decoding keeps the value domain small: integers come back as
// int64 and floats as float64 regardless of their wire width.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode writes the value to MessagePack bytes. Map keys are sorted so the
// output is deterministic; the binary format has no usable key order, so
// OrderedMap input is flattened first.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(format.ToPlain(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
