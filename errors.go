package fil

import (
	"errors"
	"fmt"

	"github.com/thirteen37/fil/internal/format"
)

// ErrUnknownFormat is returned when a path's extension matches no registered
// format. Match it with errors.Is.
var ErrUnknownFormat = errors.New("unknown file format")

// ErrUnsupportedShape is returned when a value's top-level shape cannot be
// represented in the destination format, such as a slice given to TOML or a
// map given to plain text. Match it with errors.Is.
var ErrUnsupportedShape = format.ErrUnsupportedShape

// A DecodeError reports malformed content in a file being read. For
// line-oriented formats Line carries the 1-based number of the offending
// line; for whole-document formats it is 0.
type DecodeError struct {
	Path   string // file being read
	Format string // format or codec name, e.g. "json" or "gzip"
	Line   int    // 1-based line number, 0 for whole documents
	Err    error  // underlying decoder error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("fil: %s:%d: decode %s: %v", e.Path, e.Line, e.Format, e.Err)
	}
	return fmt.Sprintf("fil: %s: decode %s: %v", e.Path, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// An EncodeError reports a value the destination format could not encode.
type EncodeError struct {
	Path   string // file being written
	Format string // format name, e.g. "toml"
	Err    error  // underlying encoder error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("fil: %s: encode %s: %v", e.Path, e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
