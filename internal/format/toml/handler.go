// Package toml provides the TOML format handler for fil.
package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/orderedmap"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for TOML files.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "toml" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".toml"} }

// LineOriented reports false; a TOML file holds a single document.
func (h *Handler) LineOriented() bool { return false }

// Decode parses TOML bytes into a mapping. With opts.Ordered the result is an
// *orderedmap.OrderedMap whose key order follows the document, recovered from
// the decoder's metadata; otherwise it is a plain map[string]any.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if !opts.Ordered {
		return raw, nil
	}
	return convertToOrderedMapWithMeta(raw, meta, nil), nil
}

// convertToOrderedMapWithMeta recursively converts map[string]any to
// *orderedmap.OrderedMap using TOML metadata to preserve key order.
func convertToOrderedMapWithMeta(v any, meta toml.MetaData, prefix []string) any {
	switch val := v.(type) {
	case map[string]any:
		result := orderedmap.New()

		// Get keys in document order from metadata
		keys := getKeysInOrder(meta, prefix, val)

		for _, k := range keys {
			childPrefix := append(slices.Clone(prefix), k)
			result.Set(k, convertToOrderedMapWithMeta(val[k], meta, childPrefix))
		}
		return result
	case []map[string]any:
		// Array of tables
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertToOrderedMapWithMeta(item, meta, prefix)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertToOrderedMapWithMeta(item, meta, prefix)
		}
		return result
	default:
		return val
	}
}

// getKeysInOrder returns map keys in document order using TOML metadata.
func getKeysInOrder(meta toml.MetaData, prefix []string, m map[string]any) []string {
	needed := make(map[string]bool)
	for k := range m {
		needed[k] = true
	}

	var ordered []string
	for _, key := range meta.Keys() {
		// Match keys that extend the prefix by exactly one segment
		if len(key) == len(prefix)+1 && matchesPrefix(key, prefix) {
			k := key[len(prefix)]
			if needed[k] && !slices.Contains(ordered, k) {
				ordered = append(ordered, k)
			}
		}
	}

	// Add any keys not found in metadata (shouldn't happen, but be safe)
	for k := range needed {
		if !slices.Contains(ordered, k) {
			ordered = append(ordered, k)
		}
	}

	return ordered
}

// matchesPrefix checks if key starts with prefix.
func matchesPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}

// Encode writes a mapping (or struct) to TOML bytes. TOML has no notion of a
// non-mapping document root, so any other top-level shape is rejected with
// format.ErrUnsupportedShape.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	plain := format.ToPlain(v)
	if !isDocumentRoot(plain) {
		return nil, fmt.Errorf("%w: .toml files only accept a map or struct at the top level, got %T", format.ErrUnsupportedShape, v)
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if opts.Indent != "" {
		encoder.Indent = opts.Indent
	}
	if err := encoder.Encode(plain); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isDocumentRoot reports whether v can sit at the root of a TOML document.
func isDocumentRoot(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
