package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTheme(t *testing.T) {
	ids := ForTheme("trans-joy")
	assert.NotEmpty(t, ids)
	assert.Equal(t, int64(265451), ids[0])

	assert.Nil(t, ForTheme("cooking-shows"))

	// Returned slice is a copy; mutating it must not poison the table.
	ids[0] = 1
	again := ForTheme("trans-joy")
	assert.Equal(t, int64(265451), again[0])
}

func TestPrimary(t *testing.T) {
	id, ok := Primary("queer-joy")
	assert.True(t, ok)
	assert.Equal(t, int64(250606), id)

	_, ok = Primary("unknown-slug")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	assert.Equal(t, "", Filter(nil))
	assert.Equal(t, "99", Filter([]int64{99}))
	assert.Equal(t, "1|2|3", Filter([]int64{1, 2, 3}))

	// TMDB caps OR-able keyword terms, so the filter keeps at most five.
	got := Filter([]int64{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, "1|2|3|4|5", got)
}
