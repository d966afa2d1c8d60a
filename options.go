package fil

import (
	"fmt"
	"io/fs"

	"github.com/thirteen37/fil/internal/format"
)

// An Option configures Read, ReadLines or Write. Options that do not apply
// to the operation or the format at hand are ignored.
type Option func(*options) error

type options struct {
	ordered  bool
	indent   string
	perm     fs.FileMode
	noAtomic bool
}

func newOptions(opts []Option) (options, error) {
	o := options{perm: 0o644}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	return o, nil
}

// Ordered decodes objects and tables into *orderedmap.OrderedMap, preserving
// document key order. Formats without a meaningful key order (MessagePack,
// plain text) ignore it.
func Ordered() Option {
	return func(o *options) error {
		o.ordered = true
		return nil
	}
}

// Indent sets the indentation string for destination formats that support
// it. JSON Lines records must stay on their line, so combining Indent with a
// line-oriented destination is an error.
func Indent(indent string) Option {
	return func(o *options) error {
		o.indent = indent
		return nil
	}
}

// Perm sets the destination file's permission bits. The default is 0644.
func Perm(perm fs.FileMode) Option {
	return func(o *options) error {
		if perm&^fs.ModePerm != 0 {
			return fmt.Errorf("fil: invalid file mode %v", perm)
		}
		o.perm = perm
		return nil
	}
}

// NoAtomic writes directly to the destination instead of replacing it
// atomically. A failed write may then leave a truncated file behind; in
// exchange, records of a line-oriented stream become visible to readers as
// they are flushed rather than all at once.
func NoAtomic() Option {
	return func(o *options) error {
		o.noAtomic = true
		return nil
	}
}

func (o options) decodeOptions() format.DecodeOptions {
	return format.DecodeOptions{Ordered: o.ordered}
}

func (o options) encodeOptions() format.EncodeOptions {
	return format.EncodeOptions{Indent: o.indent}
}
