// Package grouping splits a stream of points into one KML document per group
// key.
package grouping

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"locsplit.dev/locsplit/kml"
	"locsplit.dev/locsplit/storage/locations"
	"locsplit.dev/locsplit/takeout"
	"locsplit.dev/locsplit/util/ds"
)

// Source is a pull-based sequence of points. Next returns
// takeout.ErrEndOfInput after the last point.
type Source interface {
	Next() (takeout.Point, error)
}

// Destination creates the document for each segment.
type Destination interface {
	Create(path string) (locations.File, error)
}

type Options struct {
	// Key derives the group key of each point. Defaults to YearMonth.
	Key KeyFunc
	// AcceptYears limits output to points from these years. Empty accepts all.
	AcceptYears []string
	// SampleCap is the number of written points retained in Result.Sample.
	SampleCap int
	Logger    *slog.Logger
}

var errWriterClosed = errors.New("grouping writer is closed")

// Writer keeps at most one segment open and requires that points sharing a key
// arrive contiguously. Each key is opened at most once per Writer.
//
// A failed Writer leaves the segment that was open at the time of the failure
// unfinished at its destination.
type Writer struct {
	dest      Destination
	key       KeyFunc
	accept    *ds.Set[string]
	sampleCap int
	log       *slog.Logger

	opened  *ds.SortedSet[string]
	current *segment // nil when no segment is open
	buf     []byte
	result  Result
	err     error
}

type segment struct {
	key   string
	file  locations.File
	count int
}

func NewWriter(dest Destination, opts Options) *Writer {
	if opts.Key == nil {
		opts.Key = YearMonth
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var accept *ds.Set[string]
	if len(opts.AcceptYears) > 0 {
		accept = ds.SetOf(opts.AcceptYears...)
	}

	return &Writer{
		dest:      dest,
		key:       opts.Key,
		accept:    accept,
		sampleCap: opts.SampleCap,
		log:       opts.Logger,
		opened:    ds.NewSortedSet[string](),
		buf:       make([]byte, 0, 512),
	}
}

// Run writes every point from src and closes the writer.
func (w *Writer) Run(src Source) (*Result, error) {
	for {
		p, err := src.Next()
		if errors.Is(err, takeout.ErrEndOfInput) {
			break
		}
		if err != nil {
			w.err = fmt.Errorf("reading locations: %w", err)
			return nil, w.err
		}
		if err := w.Write(p); err != nil {
			return nil, err
		}
	}
	return w.Close()
}

// Write routes p into the segment for its key, closing the open segment first
// when the key changes.
func (w *Writer) Write(p takeout.Point) error {
	if w.err != nil {
		return w.err
	}

	if w.accept.Size() > 0 && !w.accept.Has(p.Year()) {
		w.result.Filtered++
		recordsFiltered.Inc()
		return nil
	}

	key := w.key(p)
	if w.current != nil && w.current.key != key {
		if err := w.closeSegment(); err != nil {
			return w.fail(err)
		}
	}
	if w.current == nil {
		if err := w.openSegment(key, p); err != nil {
			return w.fail(err)
		}
	}

	w.buf = kml.AppendPlacemark(w.buf[:0], p)
	if _, err := w.current.file.Write(w.buf); err != nil {
		return w.fail(fmt.Errorf("writing %s: %w", w.current.file.URI(), err))
	}
	w.current.count++
	recordsWritten.Inc()

	if len(w.result.Sample) < w.sampleCap {
		w.result.Sample = append(w.result.Sample, p)
	}
	return nil
}

// Close finishes the open segment and returns the result of the run. The
// writer accepts no points afterwards.
func (w *Writer) Close() (*Result, error) {
	if w.err != nil {
		return nil, w.err
	}

	if w.current != nil {
		if err := w.closeSegment(); err != nil {
			return nil, w.fail(err)
		}
	}
	if len(w.result.Segments) == 0 {
		w.log.Info("no locations found", "filtered", w.result.Filtered)
	}

	w.err = errWriterClosed
	result := w.result
	return &result, nil
}

// Keys returns the keys opened so far in ascending order.
func (w *Writer) Keys() []string {
	return slices.Collect(w.opened.All())
}

func (w *Writer) openSegment(key string, first takeout.Point) error {
	if !w.opened.Add(key) {
		return &ReopenError{Key: key, Timestamp: first.Timestamp}
	}

	file, err := w.dest.Create(kml.FileName(key))
	if err != nil {
		return fmt.Errorf("creating segment %s: %w", key, err)
	}
	if _, err := file.Write([]byte(kml.Preamble)); err != nil {
		return fmt.Errorf("writing %s: %w", file.URI(), err)
	}

	w.current = &segment{key: key, file: file}
	segmentsOpened.Inc()
	w.log.Debug("opened segment", "key", key, "uri", file.URI())
	return nil
}

func (w *Writer) closeSegment() error {
	seg := w.current
	if _, err := seg.file.Write([]byte(kml.Epilogue)); err != nil {
		return fmt.Errorf("writing %s: %w", seg.file.URI(), err)
	}
	if err := seg.file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", seg.file.URI(), err)
	}

	w.current = nil
	w.result.Segments = append(w.result.Segments, SegmentSummary{
		Key:   seg.key,
		URI:   seg.file.URI(),
		Count: seg.count,
	})
	segmentsClosed.Inc()
	w.log.Info("wrote segment", "key", seg.key, "count", seg.count, "uri", seg.file.URI())
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}
