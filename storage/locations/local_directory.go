package locations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type LocalDirectory struct {
	path string
}

func NewLocalDirectory(path string) *LocalDirectory {
	return &LocalDirectory{path: path}
}

func (d *LocalDirectory) Create(path string) (File, error) {
	fullPath := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o777); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", filepath.Dir(fullPath), err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", fullPath, err)
	}
	return &localFile{
		f: f,
		w: bufio.NewWriterSize(f, writeBufferSize),
	}, nil
}

func (d *LocalDirectory) Open(path string) (io.ReadCloser, error) {
	fullPath := d.resolve(path)
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening %s: %w", fullPath, ErrNotFound)
		}
		return nil, fmt.Errorf("opening file %s: %w", fullPath, err)
	}
	return f, nil
}

func (d *LocalDirectory) URI(path string) (string, error) {
	fullPath := d.resolve(path)
	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return fullPath, nil
}

// resolve joins relative paths onto the directory. Absolute paths are used
// as they are.
func (d *LocalDirectory) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.path, path)
}

var _ StorageLocation = (*LocalDirectory)(nil)

type localFile struct {
	f      *os.File
	w      *bufio.Writer
	closed bool
}

func (l *localFile) Write(p []byte) (int, error) {
	if l.closed {
		return 0, fmt.Errorf("writing %s: %w", l.f.Name(), os.ErrClosed)
	}
	return l.w.Write(p)
}

func (l *localFile) Close() error {
	if l.closed {
		return fmt.Errorf("closing %s: %w", l.f.Name(), os.ErrClosed)
	}
	l.closed = true
	flushErr := l.w.Flush()
	return errors.Join(flushErr, l.f.Close())
}

func (l *localFile) URI() string {
	return l.f.Name()
}
