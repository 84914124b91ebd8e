package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestNewSlicesEveryPageExactlyOnce(t *testing.T) {
	for _, n := range []int{0, 1, 5, 20, 21, 100} {
		for _, size := range []int{1, 3, 7, 20} {
			totalPages := (n + size - 1) / size

			var seen []int
			for page := 1; page <= totalPages; page++ {
				p, err := New(sequence(n), page, size, "/api/v1/movies")
				require.NoError(t, err)

				expectedLen := size
				if remaining := n - (page-1)*size; remaining < size {
					expectedLen = remaining
				}
				assert.Len(t, p.Results, expectedLen,
					"n=%d size=%d page=%d", n, size, page)
				assert.Equal(t, int64(n), p.Count)
				assert.Equal(t, page, p.CurrentPage)

				seen = append(seen, p.Results...)
			}

			// Concatenating all pages reproduces the sequence with no
			// duplicates and no gaps.
			assert.Equal(t, sequence(n), append([]int{}, seen...),
				"n=%d size=%d", n, size)
		}
	}
}

func TestNewNavigationLinks(t *testing.T) {
	const n, size = 25, 10 // 3 pages

	first, err := New(sequence(n), 1, size, "/api/v1/movies")
	require.NoError(t, err)
	require.NotNil(t, first.Next)
	assert.Equal(t, "/api/v1/movies?page=2&limit=10", *first.Next)
	assert.Nil(t, first.Previous)

	middle, err := New(sequence(n), 2, size, "/api/v1/movies")
	require.NoError(t, err)
	require.NotNil(t, middle.Next)
	require.NotNil(t, middle.Previous)
	assert.Equal(t, "/api/v1/movies?page=3&limit=10", *middle.Next)
	assert.Equal(t, "/api/v1/movies?page=1&limit=10", *middle.Previous)

	last, err := New(sequence(n), 3, size, "/api/v1/movies")
	require.NoError(t, err)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "/api/v1/movies?page=2&limit=10", *last.Previous)
}

func TestNewPageBeyondEnd(t *testing.T) {
	p, err := New(sequence(10), 5, 10, "/api/v1/movies")
	require.NoError(t, err)

	assert.Empty(t, p.Results)
	assert.Nil(t, p.Next)
	assert.Equal(t, int64(10), p.Count)
}

func TestNewRejectsInvalidWindow(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := New(sequence(10), 1, size, "/api/v1/movies")
		assert.Error(t, err, fmt.Sprintf("size=%d", size))
	}

	_, err := New(sequence(10), 0, 10, "/api/v1/movies")
	assert.Error(t, err)
}

func TestNewFromCount(t *testing.T) {
	results := []string{"f", "g", "h"}
	p, err := NewFromCount(results, 23, 2, 5, "/api/v1/series")
	require.NoError(t, err)

	assert.Equal(t, int64(23), p.Count)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, results, p.Results)
	require.NotNil(t, p.Next)
	assert.Equal(t, "/api/v1/series?page=3&limit=5", *p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "/api/v1/series?page=1&limit=5", *p.Previous)

	_, err = NewFromCount(results, 23, 2, 0, "/api/v1/series")
	assert.Error(t, err)
}
