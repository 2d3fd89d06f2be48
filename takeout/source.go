package takeout

import (
	"errors"
	"fmt"
	"io"
	"iter"

	jsoniter "github.com/json-iterator/go"
)

// readBufferSize bounds how much of the export is held in memory at once.
const readBufferSize = 64 << 10

const (
	fieldLocations   = "locations"
	fieldLatitudeE7  = "latitudeE7"
	fieldLongitudeE7 = "longitudeE7"
	fieldTimestamp   = "timestamp"
)

type sourceState int

const (
	stateStart sourceState = iota
	stateInArray
	stateDone
)

// Source pulls points one at a time out of an export shaped like
// {"locations": [{"latitudeE7": 1, "longitudeE7": 2, "timestamp": "..."}]}.
// Other top-level and per-record keys are skipped.
type Source struct {
	iter  *jsoniter.Iterator
	state sourceState
	index int
	// err is returned from every Next call once set.
	err error
}

func NewSource(r io.Reader) *Source {
	return &Source{
		iter: jsoniter.Parse(jsoniter.ConfigDefault, r, readBufferSize),
	}
}

// Next returns the next point, ErrEndOfInput after the last one, or the
// decode error that stopped the source.
func (s *Source) Next() (Point, error) {
	if s.err != nil {
		return Point{}, s.err
	}

	if s.state == stateStart {
		if err := s.seekLocations(); err != nil {
			s.err = err
			return Point{}, err
		}
		s.state = stateInArray
	}

	if !s.iter.ReadArray() {
		if s.iter.Error != nil {
			s.err = fmt.Errorf("%w: reading locations array after %d records: %v", ErrMalformedInput, s.index, s.iter.Error)
			return Point{}, s.err
		}
		s.err = s.finish()
		return Point{}, s.err
	}

	p, err := s.readPoint()
	if err != nil {
		s.err = err
		return Point{}, err
	}
	s.index++
	return p, nil
}

// All adapts Next to a range-over-func sequence. A failed sequence yields a
// single error as its last element.
func (s *Source) All() iter.Seq2[Point, error] {
	return func(yield func(Point, error) bool) {
		for {
			p, err := s.Next()
			if errors.Is(err, ErrEndOfInput) {
				return
			}
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// Count is the number of points decoded so far.
func (s *Source) Count() int {
	return s.index
}

// seekLocations advances the iterator to the start of the locations array.
func (s *Source) seekLocations() error {
	if next := s.iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return fmt.Errorf("%w: top-level value must be an object", ErrMalformedInput)
	}
	for field := s.iter.ReadObject(); field != ""; field = s.iter.ReadObject() {
		if field != fieldLocations {
			s.iter.Skip()
			if s.iter.Error != nil {
				return fmt.Errorf("%w: skipping %q: %v", ErrMalformedInput, field, s.iter.Error)
			}
			continue
		}
		if next := s.iter.WhatIsNext(); next != jsoniter.ArrayValue {
			return fmt.Errorf("%w: %q must be an array", ErrMalformedInput, fieldLocations)
		}
		return nil
	}
	if s.iter.Error != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, s.iter.Error)
	}
	return ErrMissingLocations
}

// finish reads the rest of the top-level object so that a truncated document
// is reported instead of treated as a clean end of input.
func (s *Source) finish() error {
	s.state = stateDone
	for field := s.iter.ReadObject(); field != ""; field = s.iter.ReadObject() {
		s.iter.Skip()
	}
	if s.iter.Error != nil {
		return fmt.Errorf("%w: after locations array: %v", ErrMalformedInput, s.iter.Error)
	}
	return ErrEndOfInput
}

func (s *Source) readPoint() (Point, error) {
	if next := s.iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return Point{}, recordError(s.index, "", "expected an object")
	}

	var p Point
	var hasLat, hasLng, hasTimestamp bool
	for field := s.iter.ReadObject(); field != ""; field = s.iter.ReadObject() {
		switch field {
		case fieldLatitudeE7:
			if err := s.readInt32(field, &p.LatitudeE7); err != nil {
				return Point{}, err
			}
			hasLat = true
		case fieldLongitudeE7:
			if err := s.readInt32(field, &p.LongitudeE7); err != nil {
				return Point{}, err
			}
			hasLng = true
		case fieldTimestamp:
			if next := s.iter.WhatIsNext(); next != jsoniter.StringValue {
				return Point{}, recordError(s.index, field, "expected a string")
			}
			p.Timestamp = s.iter.ReadString()
			hasTimestamp = true
		default:
			s.iter.Skip()
		}
		if s.iter.Error != nil {
			return Point{}, recordError(s.index, field, "%v", s.iter.Error)
		}
	}
	if s.iter.Error != nil {
		return Point{}, recordError(s.index, "", "%v", s.iter.Error)
	}

	switch {
	case !hasLat:
		return Point{}, recordError(s.index, fieldLatitudeE7, "missing")
	case !hasLng:
		return Point{}, recordError(s.index, fieldLongitudeE7, "missing")
	case !hasTimestamp:
		return Point{}, recordError(s.index, fieldTimestamp, "missing")
	case len(p.Timestamp) < MinTimestampLen:
		return Point{}, recordError(s.index, fieldTimestamp, "%q is shorter than %d characters", p.Timestamp, MinTimestampLen)
	}
	return p, nil
}

func (s *Source) readInt32(field string, dst *int32) error {
	if next := s.iter.WhatIsNext(); next != jsoniter.NumberValue {
		return recordError(s.index, field, "expected an integer")
	}
	*dst = s.iter.ReadInt32()
	return nil
}
