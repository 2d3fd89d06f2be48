package locations

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"locsplit.dev/locsplit/storage/objstore"
)

type S3Location struct {
	s3     objstore.S3Service
	bucket string
	prefix string
	// stagingDir holds files being written until they are uploaded on Close.
	// Empty means the OS temp dir.
	stagingDir string
}

func NewS3Location(s3 objstore.S3Service, path string) (*S3Location, error) {
	// Remove s3:// prefix if present
	path = strings.TrimPrefix(path, "s3://")

	// Split into bucket and prefix
	parts := strings.SplitN(path, "/", 2)
	bucket := parts[0]
	if bucket == "" {
		return nil, fmt.Errorf("S3 path must include bucket: %s", path)
	}

	prefix := ""
	if len(parts) > 1 {
		prefix = parts[1]
	}

	// Ensure the prefix ends with a slash. No one wants pathnames like
	// "prefix2013-04.kml".
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Location{
		s3:     s3,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// WithStagingDir sets the local directory used to stage uploads.
func (l *S3Location) WithStagingDir(dir string) *S3Location {
	l.stagingDir = dir
	return l
}

// Create stages the file on local disk and uploads it with a single PutObject
// when the file is closed, keeping memory use independent of file size.
func (l *S3Location) Create(path string) (File, error) {
	key := resolveKey(l.prefix, path)
	staged, err := os.CreateTemp(l.stagingDir, "locsplit-*")
	if err != nil {
		return nil, fmt.Errorf("staging %s: %w", s3URI(l.bucket, key), err)
	}
	return &s3File{
		loc:    l,
		key:    key,
		staged: staged,
		w:      bufio.NewWriterSize(staged, writeBufferSize),
	}, nil
}

func (l *S3Location) Open(path string) (io.ReadCloser, error) {
	key := resolveKey(l.prefix, path)
	output, err := l.s3.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: &l.bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("failed reading key %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return output.Body, nil
}

func (l *S3Location) URI(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path cannot be empty")
	}

	key := resolveKey(l.prefix, path)
	_, err := l.s3.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: &l.bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	return s3URI(l.bucket, key), nil
}

var _ StorageLocation = (*S3Location)(nil)

type s3File struct {
	loc    *S3Location
	key    string
	staged *os.File
	w      *bufio.Writer
	closed bool
}

func (f *s3File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fmt.Errorf("writing %s: %w", f.URI(), os.ErrClosed)
	}
	return f.w.Write(p)
}

// Close uploads the staged file and removes it from local disk.
func (f *s3File) Close() error {
	if f.closed {
		return fmt.Errorf("closing %s: %w", f.URI(), os.ErrClosed)
	}
	f.closed = true
	defer os.Remove(f.staged.Name())
	defer f.staged.Close()

	if err := f.w.Flush(); err != nil {
		return fmt.Errorf("flushing staged %s: %w", f.URI(), err)
	}
	if _, err := f.staged.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding staged %s: %w", f.URI(), err)
	}

	_, err := f.loc.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: &f.loc.bucket,
		Key:    &f.key,
		Body:   f.staged,
	})
	if err != nil {
		return fmt.Errorf("failed to write object %s: %w", f.URI(), err)
	}
	return nil
}

func (f *s3File) URI() string {
	return s3URI(f.loc.bucket, f.key)
}

// resolveKey returns an absolute bucket key. The prefix is added to relative
// paths while URIs have the protocol and bucket name removed.
//
// example:
//
//	resolveKey("prefix/", "s3://bucket/path") => "path"
//	resolveKey("prefix/", "path") => "prefix/path"
func resolveKey(prefix string, path string) string {
	// If the path starts with s3:// strip off the protocol and bucket
	if strings.HasPrefix(path, "s3://") {
		path = strings.TrimPrefix(path, "s3://")
		parts := strings.SplitN(path, "/", 2)
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	}

	// Always remove any leading slash
	path = strings.TrimPrefix(path, "/")

	// For relative paths, add the prefix
	return prefix + path
}

func s3URI(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}
