package iteru_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"locsplit.dev/locsplit/util/iteru"
)

func TestReduce(t *testing.T) {
	sum := iteru.Reduce(func(acc, v int) int { return acc + v }, 10, slices.Values([]int{1, 2, 3}))
	assert.Equal(t, 16, sum)
}

func TestCollect2(t *testing.T) {
	keys, values := iteru.Collect2(slices.All([]string{"a", "b"}))
	assert.Equal(t, []int{0, 1}, keys)
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestMap(t *testing.T) {
	lengths := slices.Collect(iteru.Map(slices.Values([]string{"2013", "2013-04"}), func(s string) int {
		return len(s)
	}))
	assert.Equal(t, []int{4, 7}, lengths)

	// Stops early without panicking.
	for range iteru.Map(maps.Keys(map[int]bool{1: true, 2: true}), func(v int) int { return v }) {
		break
	}
}
