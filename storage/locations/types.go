package locations

import (
	"errors"
	"io"
)

// File is a destination being written. Its content is only complete once
// Close returns without error.
type File interface {
	io.Writer
	Close() error
	// URI is the full path to the file, for example s3://bucket/out/2013-04.kml.
	URI() string
}

type StorageLocation interface {
	// Create a file at the given path, replacing any existing file. The path is
	// relative to whatever path prefix the location was initialized with.
	Create(path string) (File, error)
	// Open a file for streaming reads.
	Open(path string) (io.ReadCloser, error)
	// URI returns the full path of an existing file.
	URI(path string) (string, error)
}

var ErrNotFound = errors.New("path not found")

// writeBufferSize is the size of the buffer between the KML encoder and the
// underlying file.
const writeBufferSize = 64 << 10
