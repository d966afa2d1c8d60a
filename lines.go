package fil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/thirteen37/fil/internal/compress"
	"github.com/thirteen37/fil/internal/format"
)

// Lines reads a line-oriented file one record at a time, in the manner of
// database/sql.Rows:
//
//	lines, err := fil.ReadLines("events.jsonl")
//	if err != nil {
//		return err
//	}
//	defer lines.Close()
//	for lines.Next() {
//		use(lines.Value())
//	}
//	if err := lines.Err(); err != nil {
//		return err
//	}
//
// Records decode only as the iteration advances, so files larger than memory
// stream fine and malformed content surfaces when its line is reached, not
// before. A Lines is forward-only and single-pass; reading the file again
// means opening it again. It is not safe for concurrent use.
type Lines struct {
	path    string
	handler format.Handler
	opts    format.DecodeOptions

	file   *os.File
	decomp io.ReadCloser // decompression layer, when the path has one
	reader *bufio.Reader

	line  int // 1-based number of the last line read
	value any
	err   error
	done  bool
}

func openLines(path string, h format.Handler, codec compress.Codec, o options) (*Lines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	l := &Lines{path: path, handler: h, opts: o.decodeOptions(), file: f}
	var r io.Reader = f
	if codec != nil {
		cr, err := codec.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &DecodeError{Path: path, Format: codec.Name(), Err: err}
		}
		l.decomp = cr
		r = cr
	}
	l.reader = bufio.NewReader(r)
	return l, nil
}

// Next advances to the next record, skipping lines that are empty or all
// whitespace. It returns false when the file is exhausted or an error
// occurs; Err tells the two apart. Once the underlying file is drained it is
// closed, so a fully consumed Lines needs no explicit Close.
func (l *Lines) Next() bool {
	if l.done {
		return false
	}

	for {
		text, err := l.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			l.err = fmt.Errorf("fil: %s: %w", l.path, err)
			l.finish()
			return false
		}
		atEOF := errors.Is(err, io.EOF)
		if text != "" {
			l.line++
		}
		if atEOF {
			l.finish()
		}

		if strings.TrimSpace(text) == "" {
			if atEOF {
				return false
			}
			continue
		}

		v, decErr := l.handler.Decode([]byte(text), l.opts)
		if decErr != nil {
			l.err = &DecodeError{Path: l.path, Format: l.handler.Name(), Line: l.line, Err: decErr}
			l.finish()
			return false
		}
		l.value = v
		return true
	}
}

// Value returns the record decoded by the last successful Next.
func (l *Lines) Value() any { return l.value }

// Err returns the first error encountered while iterating, if any. It never
// returns io.EOF; a clean end of file is not an error.
func (l *Lines) Err() error { return l.err }

// Line returns the 1-based file line of the record returned by the last
// successful Next. Blank lines count, so the number matches what an editor
// shows.
func (l *Lines) Line() int { return l.line }

// Close releases the underlying file. It is safe to call at any point and
// more than once; after Close, Next reports no further records.
func (l *Lines) Close() error {
	if l.done {
		return nil
	}
	l.done = true
	return l.closeHandles()
}

// All returns an iterator over the remaining records. Iteration stops at the
// first error, which is yielded as the second value. Close remains the
// caller's responsibility:
//
//	for record, err := range lines.All() {
//		if err != nil {
//			return err
//		}
//		use(record)
//	}
func (l *Lines) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for l.Next() {
			if !yield(l.value, nil) {
				return
			}
		}
		if err := l.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// finish marks the iteration complete and releases the file. A close error
// surfaces through Err only when nothing else already failed.
func (l *Lines) finish() {
	if l.done {
		return
	}
	l.done = true
	if err := l.closeHandles(); err != nil && l.err == nil {
		l.err = fmt.Errorf("fil: %s: %w", l.path, err)
	}
}

func (l *Lines) closeHandles() error {
	var firstErr error
	if l.decomp != nil {
		if err := l.decomp.Close(); err != nil {
			firstErr = err
		}
		l.decomp = nil
	}
	if l.file != nil {
		if err := l.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.file = nil
	}
	return firstErr
}
