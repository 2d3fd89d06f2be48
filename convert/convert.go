// Package convert runs a location-history export through the grouping writer.
package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/ksuid"
	"locsplit.dev/locsplit/grouping"
	"locsplit.dev/locsplit/storage/locations"
	"locsplit.dev/locsplit/storage/objstore"
	"locsplit.dev/locsplit/takeout"
)

type Option func(*runner)

// WithS3Service sets the client used for s3:// inputs and outputs instead of
// one built from the default AWS configuration.
func WithS3Service(svc objstore.S3Service) Option {
	return func(r *runner) {
		r.s3 = objstore.NewMeteredS3Service(svc)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		r.log = logger
	}
}

type runner struct {
	s3  *objstore.MeteredS3Service
	log *slog.Logger
}

// Run converts cfg.Input into one KML document per group under cfg.OutputDir.
// Documents closed before a failure remain valid; the one open at the time is
// left truncated.
func Run(cfg Config, opts ...Option) (*grouping.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r := &runner{log: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	id := ksuid.New().String()
	r.log = r.log.With("instanceID", "convert-"+id[len(id)-4:])

	keyFunc, err := grouping.ParseKeyFunc(cfg.GroupBy)
	if err != nil {
		return nil, err
	}

	in, err := r.openInput(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	dest, err := r.openOutput(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	r.log.Info("converting", "input", cfg.Input, "output", cfg.OutputDir, "groupBy", cfg.GroupBy)
	src := takeout.NewSource(in)
	result, err := grouping.NewWriter(dest, grouping.Options{
		Key:         keyFunc,
		AcceptYears: cfg.AcceptYears,
		SampleCap:   cfg.SampleCap,
		Logger:      r.log,
	}).Run(src)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", cfg.Input, err)
	}

	r.log.Info("converted", "read", src.Count(), "written", result.Total(), "segments", len(result.Segments))
	if r.s3 != nil && r.s3.Usage.Requests() > 0 {
		r.log.Info("s3 usage", "requests", r.s3.Usage.Requests(), "cost", r.s3.Usage.TotalCost())
	}
	return result, nil
}

func (r *runner) s3Service() (objstore.S3Service, error) {
	if r.s3 == nil {
		client, err := locations.NewS3Client()
		if err != nil {
			return nil, err
		}
		r.s3 = objstore.NewMeteredS3Service(client)
	}
	return r.s3, nil
}

func (r *runner) openInput(path string) (io.ReadCloser, error) {
	var in io.ReadCloser
	if locations.IsS3URI(path) {
		svc, err := r.s3Service()
		if err != nil {
			return nil, err
		}
		if in, err = locations.OpenS3File(svc, path); err != nil {
			return nil, err
		}
	} else {
		var err error
		if in, err = locations.NewLocalDirectory("").Open(path); err != nil {
			return nil, err
		}
	}

	if !strings.HasSuffix(path, ".gz") {
		return in, nil
	}
	zr, err := gzip.NewReader(in)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("reading gzip header of %s: %w", path, err)
	}
	return &gzipReadCloser{Reader: zr, file: in}, nil
}

func (r *runner) openOutput(path string) (locations.StorageLocation, error) {
	if !locations.IsS3URI(path) {
		return locations.NewLocalDirectory(path), nil
	}
	svc, err := r.s3Service()
	if err != nil {
		return nil, err
	}
	return locations.NewWithS3Service(path, svc)
}

type gzipReadCloser struct {
	*gzip.Reader
	file io.Closer
}

func (g *gzipReadCloser) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}
