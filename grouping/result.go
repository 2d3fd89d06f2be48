package grouping

import (
	"slices"

	"locsplit.dev/locsplit/takeout"
	"locsplit.dev/locsplit/util/iteru"
)

// SegmentSummary describes one closed document.
type SegmentSummary struct {
	Key   string
	URI   string
	Count int
}

// Result is the outcome of a completed run.
type Result struct {
	// Segments in closing order.
	Segments []SegmentSummary
	// Sample holds the first written points up to the configured cap.
	Sample []takeout.Point
	// Filtered counts points excluded by the accepted years.
	Filtered int
}

// Total is the number of points written across all segments.
func (r *Result) Total() int {
	return iteru.Reduce(func(sum int, s SegmentSummary) int {
		return sum + s.Count
	}, 0, slices.Values(r.Segments))
}
