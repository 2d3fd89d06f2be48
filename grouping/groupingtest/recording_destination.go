// Package groupingtest provides destinations for testing the grouping writer.
package groupingtest

import (
	"bytes"
	"errors"
	"os"

	"locsplit.dev/locsplit/storage/locations"
)

// RecordingDestination keeps every created document in memory.
type RecordingDestination struct {
	Files []*RecordingFile
	// FailCreate makes Create fail for this path.
	FailCreate string
	// FailWriteAfter makes every file fail writes once it holds this many
	// bytes. Zero disables the failure.
	FailWriteAfter int
}

var ErrInjected = errors.New("injected failure")

func (d *RecordingDestination) Create(path string) (locations.File, error) {
	if path == d.FailCreate {
		return nil, ErrInjected
	}
	f := &RecordingFile{Path: path, failAfter: d.FailWriteAfter}
	d.Files = append(d.Files, f)
	return f, nil
}

// Paths lists created paths in creation order.
func (d *RecordingDestination) Paths() []string {
	paths := make([]string, len(d.Files))
	for i, f := range d.Files {
		paths[i] = f.Path
	}
	return paths
}

// File returns the document created at path or nil.
func (d *RecordingDestination) File(path string) *RecordingFile {
	for _, f := range d.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

type RecordingFile struct {
	Path      string
	Closed    bool
	buf       bytes.Buffer
	failAfter int
}

func (f *RecordingFile) Write(p []byte) (int, error) {
	if f.Closed {
		return 0, os.ErrClosed
	}
	if f.failAfter > 0 && f.buf.Len() >= f.failAfter {
		return 0, ErrInjected
	}
	return f.buf.Write(p)
}

func (f *RecordingFile) Close() error {
	if f.Closed {
		return os.ErrClosed
	}
	f.Closed = true
	return nil
}

func (f *RecordingFile) URI() string {
	return "memory:///" + f.Path
}

func (f *RecordingFile) String() string {
	return f.buf.String()
}

var _ locations.File = (*RecordingFile)(nil)
