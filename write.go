package fil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"reflect"

	"github.com/moby/sys/atomicwriter"

	"github.com/thirteen37/fil/internal/atomicfile"
	"github.com/thirteen37/fil/internal/compress"
	"github.com/thirteen37/fil/internal/format"
)

// Write encodes v according to path's extension and writes it to path.
//
// By default the destination is replaced atomically: content goes to a
// temporary file in the same directory, which is renamed over path only
// after a complete, synced write. On any failure the previous file, if one
// existed, is left byte-for-byte intact. NoAtomic opts out.
//
// Line-oriented destinations take a sequence of records: a slice or array,
// an iter.Seq[any] or iter.Seq2[any, error], or a *Lines returned by
// ReadLines. Records are encoded and written one line at a time as the
// sequence produces them, so unbounded sequences stream in constant memory.
// Any other value, strings and maps included, is rejected with
// ErrUnsupportedShape.
//
// A trailing compression extension such as .gz or .zst compresses the
// output transparently. An extension matching no format returns
// ErrUnknownFormat before anything touches the filesystem.
func Write(path string, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	h, codec, err := resolve(path)
	if err != nil {
		return err
	}

	if h.LineOriented() {
		return writeLines(path, v, h, codec, o)
	}

	data, err := h.Encode(v, o.encodeOptions())
	if err != nil {
		if errors.Is(err, format.ErrUnsupportedShape) {
			return fmt.Errorf("fil: %s: %w", path, err)
		}
		return &EncodeError{Path: path, Format: h.Name(), Err: err}
	}
	return writeDocument(path, data, codec, o)
}

// writeDocument lands fully encoded bytes on disk, compressing when a codec
// applies.
func writeDocument(path string, data []byte, codec compress.Codec, o options) error {
	if codec == nil {
		if o.noAtomic {
			return os.WriteFile(path, data, o.perm)
		}
		return atomicwriter.WriteFile(path, data, o.perm)
	}

	sink, commit, err := openSink(path, o)
	if err != nil {
		return err
	}
	cw, err := codec.NewWriter(sink)
	if err != nil {
		sink.Close()
		return fmt.Errorf("fil: %s: %s: %w", path, codec.Name(), err)
	}
	if _, err := cw.Write(data); err != nil {
		cw.Close()
		sink.Close()
		return fmt.Errorf("fil: %s: %w", path, err)
	}
	if err := cw.Close(); err != nil {
		sink.Close()
		return fmt.Errorf("fil: %s: %w", path, err)
	}
	return commit()
}

// writeLines drives a record sequence into a line-oriented file. Each record
// becomes one line; the destination only appears once every record has been
// encoded and written, unless NoAtomic asked for in-place writing.
func writeLines(path string, v any, h format.Handler, codec compress.Codec, o options) error {
	if o.indent != "" {
		return fmt.Errorf("fil: %s: indent is not allowed for %s output", path, h.Name())
	}
	seq, err := records(v)
	if err != nil {
		return fmt.Errorf("fil: %s: %w", path, err)
	}

	sink, commit, err := openSink(path, o)
	if err != nil {
		return err
	}
	var w io.Writer = sink
	var cw io.WriteCloser
	if codec != nil {
		cw, err = codec.NewWriter(sink)
		if err != nil {
			sink.Close()
			return fmt.Errorf("fil: %s: %s: %w", path, codec.Name(), err)
		}
		w = cw
	}
	bw := bufio.NewWriter(w)

	abort := func() {
		if cw != nil {
			cw.Close()
		}
		sink.Close()
	}

	for record, recErr := range seq {
		if recErr != nil {
			abort()
			return fmt.Errorf("fil: %s: reading records: %w", path, recErr)
		}
		line, encErr := h.Encode(record, format.EncodeOptions{})
		if encErr != nil {
			abort()
			return &EncodeError{Path: path, Format: h.Name(), Err: encErr}
		}
		if _, err := bw.Write(line); err != nil {
			abort()
			return fmt.Errorf("fil: %s: %w", path, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			abort()
			return fmt.Errorf("fil: %s: %w", path, err)
		}
	}

	if err := bw.Flush(); err != nil {
		abort()
		return fmt.Errorf("fil: %s: %w", path, err)
	}
	if cw != nil {
		if err := cw.Close(); err != nil {
			sink.Close()
			return fmt.Errorf("fil: %s: %w", path, err)
		}
	}
	return commit()
}

// openSink opens the destination write path: an atomic temp file by
// default, the destination itself under NoAtomic. commit publishes the
// content; closing the sink without commit abandons it.
func openSink(path string, o options) (sink io.WriteCloser, commit func() error, err error) {
	if o.noAtomic {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, o.perm)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
	f, err := atomicfile.Create(path, o.perm)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Commit, nil
}

// records normalizes the accepted sequence shapes for line-oriented output
// into a single error-aware iterator.
func records(v any) (iter.Seq2[any, error], error) {
	switch src := v.(type) {
	case *Lines:
		return src.All(), nil
	case iter.Seq2[any, error]:
		return src, nil
	case func(func(any, error) bool):
		return iter.Seq2[any, error](src), nil
	case iter.Seq[any]:
		return plainSeq(src), nil
	case func(func(any) bool):
		return plainSeq(src), nil
	case string, []byte:
		// Strings are iterable in spirit but writing one byte per line is
		// never what the caller wants.
		return nil, errNotSequence(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any, error) bool) {
			for i := 0; i < rv.Len(); i++ {
				if !yield(rv.Index(i).Interface(), nil) {
					return
				}
			}
		}, nil
	default:
		return nil, errNotSequence(v)
	}
}

func plainSeq(src iter.Seq[any]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for record := range src {
			if !yield(record, nil) {
				return
			}
		}
	}
}

func errNotSequence(v any) error {
	return fmt.Errorf("%w: line-oriented files only accept a sequence of records, got %T", format.ErrUnsupportedShape, v)
}
