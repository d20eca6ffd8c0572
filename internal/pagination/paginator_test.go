package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumPages(t *testing.T) {
	p := New(10)
	assert.Equal(t, 1, p.NumPages(0))
	assert.Equal(t, 1, p.NumPages(10))
	assert.Equal(t, 2, p.NumPages(11))
	assert.Equal(t, 3, p.NumPages(25))
}

func TestWindowClamps(t *testing.T) {
	p := New(10)
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"2", 2},
		{" 3 ", 3},
		{"3", 3},
		{"4", 3},
		{"999999", 3},
		{"99999999999999999999", 3},
		{"+99999999999999999999", 3},
		{"-99999999999999999999", 1},
	}
	for _, tc := range cases {
		w := p.Window(tc.raw, 25)
		assert.Equal(t, tc.want, w.Number, "raw=%q", tc.raw)
		assert.Equal(t, 3, w.NumPages)
	}
}

func TestWindowOffsets(t *testing.T) {
	w := New(10).Window("3", 25)
	assert.Equal(t, 20, w.Offset())
	assert.Equal(t, 10, w.Limit())

	empty := New(10).Window("5", 0)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 0, empty.Offset())
}

func TestPageNavigation(t *testing.T) {
	p := New(2)
	first := NewPage(p.Window("1", 5), []int{1, 2})
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())
	assert.Equal(t, 1, first.StartIndex())
	assert.Equal(t, 2, first.EndIndex())

	last := NewPage(p.Window("9", 5), []int{5})
	assert.Equal(t, 3, last.Number)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 2, last.PreviousNumber())
	assert.Equal(t, 5, last.StartIndex())
	assert.Equal(t, 5, last.EndIndex())

	none := NewPage(p.Window("", 0), []int(nil))
	assert.False(t, none.HasOtherPages())
	assert.Equal(t, 0, none.StartIndex())
}

func TestNewClampsSize(t *testing.T) {
	assert.Equal(t, 1, New(0).PerPage)
	assert.Equal(t, 1, Paginator{}.Window("1", 3).PerPage)
}
