package fil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thirteen37/fil/internal/compress"
	"github.com/thirteen37/fil/internal/format"
	"github.com/thirteen37/fil/internal/format/ini"
	"github.com/thirteen37/fil/internal/format/json"
	"github.com/thirteen37/fil/internal/format/jsonl"
	"github.com/thirteen37/fil/internal/format/msgpack"
	"github.com/thirteen37/fil/internal/format/text"
	"github.com/thirteen37/fil/internal/format/toml"
	"github.com/thirteen37/fil/internal/format/yaml"
)

// handlers lists every built-in format handler. The table is assembled once
// at init and never mutated afterwards; there is no registration on the fly.
var handlers = []format.Handler{
	json.New(),
	jsonl.New(),
	toml.New(),
	yaml.New(),
	ini.New(),
	msgpack.New(),
	text.New(),
}

var byExtension = buildIndex()

func buildIndex() map[string]format.Handler {
	index := make(map[string]format.Handler)
	for _, h := range handlers {
		for _, ext := range h.Extensions() {
			if prev, ok := index[ext]; ok {
				panic(fmt.Sprintf("fil: extension %q claimed by both %s and %s", ext, prev.Name(), h.Name()))
			}
			index[ext] = h
		}
	}
	return index
}

// Extensions returns the file extensions of every supported format, sorted,
// each with its leading dot.
func Extensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// CompressionExtensions returns the recognized compression extensions,
// sorted, each with its leading dot.
func CompressionExtensions() []string {
	return compress.Extensions()
}

// IsLineOriented reports whether path's extension names a line-oriented
// format such as JSON Lines. Unknown extensions report false.
func IsLineOriented(path string) bool {
	h, _, err := resolve(path)
	return err == nil && h.LineOriented()
}

// resolve maps a path to its format handler and optional compression codec.
// A trailing compression extension (data.json.gz) is peeled off first; the
// format comes from the extension before it. Extension matching is
// case-insensitive.
func resolve(path string) (format.Handler, compress.Codec, error) {
	name := path
	ext := filepath.Ext(name)

	var codec compress.Codec
	if c, ok := compress.Lookup(ext); ok {
		codec = c
		name = strings.TrimSuffix(name, ext)
		ext = filepath.Ext(name)
	}

	h, ok := byExtension[strings.ToLower(ext)]
	if !ok {
		return nil, nil, fmt.Errorf("fil: %w %q for %s", ErrUnknownFormat, ext, path)
	}
	return h, codec, nil
}

// Read reads the file at path, decoding it according to its extension.
//
// Whole-document formats return the fully decoded value: maps and slices for
// the structured formats, a string for plain text. Line-oriented formats
// return a *Lines whose records decode lazily as it is iterated; see
// ReadLines for the typed variant.
//
// A trailing compression extension such as .gz or .zst is stripped before
// picking the format and the stream is decompressed transparently. An
// extension matching no format returns ErrUnknownFormat before the file is
// opened; a missing file satisfies errors.Is(err, fs.ErrNotExist); malformed
// content returns a *DecodeError.
func Read(path string, opts ...Option) (any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	h, codec, err := resolve(path)
	if err != nil {
		return nil, err
	}

	if h.LineOriented() {
		lines, err := openLines(path, h, codec, o)
		if err != nil {
			return nil, err
		}
		return lines, nil
	}

	data, err := readAll(path, codec)
	if err != nil {
		return nil, err
	}
	v, err := h.Decode(data, o.decodeOptions())
	if err != nil {
		return nil, &DecodeError{Path: path, Format: h.Name(), Err: err}
	}
	return v, nil
}

// ReadLines opens a line-oriented file for lazy record-by-record reading.
// It fails up front when path names a whole-document format; Read handles
// those.
func ReadLines(path string, opts ...Option) (*Lines, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	h, codec, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if !h.LineOriented() {
		return nil, fmt.Errorf("fil: %s: %s is not a line-oriented format", path, h.Name())
	}
	return openLines(path, h, codec, o)
}

// readAll slurps a whole-document file, decompressing when a codec applies.
func readAll(path string, codec compress.Codec) ([]byte, error) {
	if codec == nil {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr, err := codec.NewReader(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: codec.Name(), Err: err}
	}
	data, err := io.ReadAll(cr)
	if err != nil {
		cr.Close()
		return nil, &DecodeError{Path: path, Format: codec.Name(), Err: err}
	}
	if err := cr.Close(); err != nil {
		return nil, &DecodeError{Path: path, Format: codec.Name(), Err: err}
	}
	return data, nil
}
