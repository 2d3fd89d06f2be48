package grouping

import (
	"fmt"

	"locsplit.dev/locsplit/takeout"
)

// KeyFunc derives the group key of a point from its timestamp prefix.
type KeyFunc func(takeout.Point) string

var (
	// Year groups points by the first 4 characters of their timestamp.
	Year KeyFunc = takeout.Point.Year
	// YearMonth groups points by the first 7 characters of their timestamp.
	YearMonth KeyFunc = takeout.Point.YearMonth
)

// ParseKeyFunc resolves a --group-by value.
func ParseKeyFunc(name string) (KeyFunc, error) {
	switch name {
	case "year":
		return Year, nil
	case "month", "year-month":
		return YearMonth, nil
	default:
		return nil, fmt.Errorf("unknown grouping %q, want year or month", name)
	}
}
