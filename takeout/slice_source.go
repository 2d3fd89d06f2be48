package takeout

// SliceSource serves points from memory through the same Next contract as
// Source.
type SliceSource struct {
	points []Point
	pos    int
}

func NewSliceSource(points ...Point) *SliceSource {
	return &SliceSource{points: points}
}

func (s *SliceSource) Next() (Point, error) {
	if s.pos >= len(s.points) {
		return Point{}, ErrEndOfInput
	}
	p := s.points[s.pos]
	s.pos++
	return p, nil
}
