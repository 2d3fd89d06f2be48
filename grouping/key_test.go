package grouping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"locsplit.dev/locsplit/grouping"
	"locsplit.dev/locsplit/takeout"
)

func TestKeyFuncs(t *testing.T) {
	p := takeout.Point{Timestamp: "2013-04-15T10:00:00Z"}
	assert.Equal(t, "2013", grouping.Year(p))
	assert.Equal(t, "2013-04", grouping.YearMonth(p))
}

func TestParseKeyFunc(t *testing.T) {
	p := takeout.Point{Timestamp: "2013-04-15T10:00:00Z"}
	for name, want := range map[string]string{"year": "2013", "month": "2013-04", "year-month": "2013-04"} {
		f, err := grouping.ParseKeyFunc(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f(p), name)
	}

	_, err := grouping.ParseKeyFunc("week")
	assert.Error(t, err)
}
