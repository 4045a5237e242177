// Package fsio abstracts the file reads the hunk materializer needs,
// so tests can substitute an in-memory filesystem instead of touching
// disk.
package fsio

import (
	"io"
	"os"
)

// FileSystem is the read surface pkg/hunks needs from a working tree.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
}

// Real implements FileSystem using the actual OS filesystem.
type Real struct{}

// Open opens name via os.Open.
func (Real) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
