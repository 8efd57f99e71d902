package websearch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResults(n int) []Result {
	results := make([]Result, n)
	for i := range results {
		results[i] = Result{
			Title:   fmt.Sprintf("result %d", i),
			Snippet: "snippet",
			Link:    fmt.Sprintf("https://example.uk/%d", i),
		}
	}
	return results
}

func TestPaginatorEmpty(t *testing.T) {
	p := NewPaginator(nil)
	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 1, p.Page())
	assert.Empty(t, p.Current())
	assert.False(t, p.Next())
	assert.False(t, p.Prev())
}

func TestPaginatorPaging(t *testing.T) {
	p := NewPaginator(makeResults(25))
	assert.Equal(t, 3, p.TotalPages())

	page := p.Current()
	require.Len(t, page, 10)
	assert.Equal(t, "result 0", page[0].Title)

	require.True(t, p.Next())
	page = p.Current()
	require.Len(t, page, 10)
	assert.Equal(t, "result 10", page[0].Title)

	require.True(t, p.Next())
	page = p.Current()
	require.Len(t, page, 5)
	assert.Equal(t, "result 20", page[0].Title)

	assert.False(t, p.Next())
	assert.Equal(t, 3, p.Page())

	require.True(t, p.Prev())
	assert.Equal(t, 2, p.Page())
}

func TestPaginatorExactMultiple(t *testing.T) {
	p := NewPaginator(makeResults(20))
	assert.Equal(t, 2, p.TotalPages())

	require.True(t, p.Next())
	assert.Len(t, p.Current(), 10)
	assert.False(t, p.Next())
}
