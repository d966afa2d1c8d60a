// Package atomicfile writes a file through a temporary file and a rename, so
// the destination is replaced all-or-nothing.
package atomicfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a destination being written through a temporary file in the same
// directory. Commit publishes the content with an atomic rename; Close
// without Commit discards it, leaving any previous destination untouched.
type File struct {
	tmp    *os.File
	path   string
	perm   fs.FileMode
	closed bool
}

// Create opens a temporary file next to path. The temporary file lives in
// the same directory so the final rename never crosses a filesystem.
func Create(path string, perm fs.FileMode) (*File, error) {
	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+base)
	if err != nil {
		return nil, err
	}
	return &File{tmp: tmp, path: path, perm: perm}, nil
}

// Write appends to the temporary file.
func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit syncs the temporary file to disk, fixes its permissions and renames
// it over the destination. On any failure the temporary file is removed and
// the destination keeps its previous content.
func (f *File) Commit() error {
	if f.closed {
		return errors.New("atomicfile: already closed")
	}
	f.closed = true

	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return err
	}
	// CreateTemp opens with mode 0600 regardless of umask
	if err := f.tmp.Chmod(f.perm); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return nil
}

// Close discards the temporary file unless Commit already ran. It is safe to
// call more than once and after Commit, so it can sit in a defer.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.tmp.Close()
	if rmErr := os.Remove(f.tmp.Name()); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
