package websearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeQuery(t *testing.T) {
	assert.Equal(t, "electronics refund", ComposeQuery("electronics", "refund", ""))
	assert.Equal(t, "electronics refund kettle", ComposeQuery("electronics", "refund", " kettle "))
}

func TestSweep(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if strings.Contains(query, "broken") {
			if strings.HasPrefix(r.URL.Path, "/html/") {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"RelatedTopics": []}`))
			return
		}
		page := fmt.Sprintf(`<html><body><div class="result">
			<a class="result__title">hit for %s</a>
			<a class="result__snippet">snippet</a>
			<a class="result__url" href="https://example.uk/hit">example.uk/hit</a>
		</div></body></html>`, query)
		w.Write([]byte(page))
	}))

	queries := []string{"refund rights", "broken query", "warranty period"}
	out, err := searcher.Sweep(context.Background(), queries, 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Outcomes line up with the input order.
	assert.Equal(t, "refund rights", out[0].Query)
	require.NoError(t, out[0].Err)
	require.Len(t, out[0].Results, 1)
	assert.Contains(t, out[0].Results[0].Title, "refund rights")

	assert.Equal(t, "broken query", out[1].Query)
	assert.ErrorIs(t, out[1].Err, ErrNoResults)

	require.NoError(t, out[2].Err)
	assert.Len(t, out[2].Results, 1)
}

func TestSweepNoQueries(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.NotFoundHandler())

	out, err := searcher.Sweep(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestQuickQueriesNonEmpty(t *testing.T) {
	require.NotEmpty(t, QuickQueries)
	for _, q := range QuickQueries {
		assert.NotEmpty(t, strings.TrimSpace(q))
	}
}
