// Package jsonl provides the JSON Lines format handler for fil.
//
// A JSON Lines file holds one JSON value per line. The handler codes a
// single record at a time; line splitting and joining happen in the caller,
// which lets files stream without being held in memory.
package jsonl

import (
	"encoding/json"

	"github.com/thirteen37/fil/internal/format"
	jsonformat "github.com/thirteen37/fil/internal/format/json"
)

// Handler implements format.Handler for JSON Lines files.
type Handler struct{}

// New creates a new JSON Lines handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "jsonl" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".jsonl", ".jsonlines", ".jl"} }

// LineOriented reports true; each line is an independent record.
func (h *Handler) LineOriented() bool { return true }

// Decode parses one record.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	return jsonformat.DecodeValue(data, opts)
}

// Encode writes one record as compact JSON without a trailing newline;
// the caller joins records. Indentation never applies, since a record must
// stay on its line.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	return json.Marshal(v)
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
