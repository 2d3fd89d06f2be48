// Package takeout decodes location-history exports as a lazy stream of points.
package takeout

import "strconv"

// E7 is the fixed-point scale of exported coordinates.
const E7 = 10_000_000

// MinTimestampLen is the shortest timestamp that still carries a year-month
// prefix.
const MinTimestampLen = 7

// Point is a single decoded location record.
type Point struct {
	LatitudeE7  int32
	LongitudeE7 int32
	// Timestamp is kept verbatim, for example "2013-04-15T10:00:00Z".
	Timestamp string
}

// Latitude in decimal degrees.
func (p Point) Latitude() float64 {
	return float64(p.LatitudeE7) / E7
}

// Longitude in decimal degrees.
func (p Point) Longitude() float64 {
	return float64(p.LongitudeE7) / E7
}

// Year returns the first 4 characters of the timestamp.
func (p Point) Year() string {
	return p.Timestamp[:4]
}

// YearMonth returns the first 7 characters of the timestamp.
func (p Point) YearMonth() string {
	return p.Timestamp[:7]
}

func (p Point) String() string {
	return p.Timestamp + " " +
		strconv.FormatFloat(p.Longitude(), 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Latitude(), 'f', -1, 64)
}
