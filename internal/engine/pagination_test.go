package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
		hasPrev  bool
		hasNext  bool
	}{
		{"first page", 0, 3, []int{1, 2, 3}, false, true},
		{"middle page", 1, 3, []int{4, 5, 6}, true, true},
		{"last short page", 2, 3, []int{7}, true, false},
		{"page size covers all", 0, 10, []int{1, 2, 3, 4, 5, 6, 7}, false, false},
		{"negative page clamps to first", -4, 3, []int{1, 2, 3}, false, true},
		{"past the end clamps to last", 99, 3, []int{7}, true, false},
		{"zero page size treated as one", 0, 0, []int{1}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hasPrev, hasNext := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.hasPrev, hasPrev, "hasPrev")
			assert.Equal(t, tt.hasNext, hasNext, "hasNext")
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, hasPrev, hasNext := Paginate([]int{}, 0, 5)
	assert.Empty(t, got)
	assert.False(t, hasPrev)
	assert.False(t, hasNext)
}

// Walking every page in order must reproduce the original slice exactly.
func TestPaginateCoversAllItems(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var collected []int
	for page := 0; ; page++ {
		pageItems, _, hasNext := Paginate(items, page, 5)
		collected = append(collected, pageItems...)
		if !hasNext {
			break
		}
	}
	assert.Equal(t, items, collected)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(10, -1, 3))
	assert.Equal(t, 2, ClampPage(10, 2, 3))
	assert.Equal(t, 3, ClampPage(10, 50, 3))
	assert.Equal(t, 0, ClampPage(0, 5, 3))
}
