// Package format provides handlers for the file formats that fil reads and writes.
package format

import "errors"

// ErrUnsupportedShape is returned when a value's top-level shape cannot be
// represented in the target format, such as a slice given to TOML.
var ErrUnsupportedShape = errors.New("unsupported value shape")

// DecodeOptions configures decoding behavior.
type DecodeOptions struct {
	Ordered bool // Decode objects into *orderedmap.OrderedMap, preserving key order
}

// EncodeOptions configures encoding behavior.
type EncodeOptions struct {
	Indent string // Indentation string (e.g., "  " or "\t") for formats that support it
}

// Handler defines the interface for file format handlers.
//
// Whole-document handlers decode and encode a complete file in one call.
// Line-oriented handlers (LineOriented reports true) decode and encode a
// single record at a time; the caller drives line splitting and joining.
type Handler interface {
	// Name returns the canonical format name (e.g., "json").
	Name() string

	// Extensions returns the file extensions this handler serves,
	// lowercase and including the leading dot.
	Extensions() []string

	// LineOriented reports whether the format stores one record per line.
	LineOriented() bool

	// Decode parses raw bytes and returns a generic value.
	Decode(data []byte, opts DecodeOptions) (any, error)

	// Encode serializes a generic value to bytes.
	Encode(v any, opts EncodeOptions) ([]byte, error)
}
