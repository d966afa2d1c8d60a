// Package json provides the JSON format handler for fil.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for whole-document JSON files.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "json" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".json"} }

// LineOriented reports false; a JSON file holds a single document.
func (h *Handler) LineOriented() bool { return false }

// Decode parses JSON bytes and returns a generic value.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	return DecodeValue(data, opts)
}

// Encode writes the value to indented JSON bytes with a trailing newline.
// The indent defaults to two spaces.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}

	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, err
	}
	// Add trailing newline
	return append(data, '\n'), nil
}

// DecodeValue parses a single JSON value. The JSON Lines handler shares it,
// applying it once per line.
func DecodeValue(data []byte, opts format.DecodeOptions) (any, error) {
	if opts.Ordered {
		return decodeOrdered(data)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeOrdered walks the token stream so that objects land in
// *orderedmap.OrderedMap with their document key order intact.
func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, float64, bool or nil
	}

	switch delim {
	case '{':
		om := orderedmap.New()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			om.Set(key, val)
		}
		// Consume the closing '}'
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return om, nil
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		// Consume the closing ']'
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim.String())
	}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
