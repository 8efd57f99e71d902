package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="https://www.gov.uk/accepting-returns">Accepting returns and giving refunds</a></h2>
  <a class="result__snippet">Customers have the right to a refund for faulty goods.</a>
  <a class="result__url" href="https://www.gov.uk/accepting-returns">gov.uk/accepting-returns</a>
</div>
<div class="result">
  <h2 class="result__title"><a class="result__a" href="https://www.which.co.uk/consumer-rights">Consumer Rights Act explained</a></h2>
  <a class="result__snippet">Goods must be of satisfactory quality and fit for purpose.</a>
  <a class="result__url" href="https://www.which.co.uk/consumer-rights">which.co.uk/consumer-rights</a>
</div>
</body></html>`

func newTestSearcher(t *testing.T, handler http.Handler) (*Searcher, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	searcher, err := NewSearcher(NewConfig(
		WithHTMLEndpoint(server.URL+"/html/"),
		WithLiteEndpoint(server.URL+"/lite/"),
		WithTimeout(5*time.Second),
	))
	require.NoError(t, err)
	return searcher, server
}

func TestBuildQuery(t *testing.T) {
	query := BuildQuery("  refund faulty kettle ")
	assert.Equal(t, fmt.Sprintf("refund faulty kettle %d site:.uk", time.Now().Year()), query)
}

func TestSearchParsesResultsPage(t *testing.T) {
	var gotQuery string
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsPage))
	}))

	results, err := searcher.Search(context.Background(), "refund faulty kettle")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Accepting returns and giving refunds", results[0].Title)
	assert.Equal(t, "Customers have the right to a refund for faulty goods.", results[0].Snippet)
	assert.Equal(t, "https://www.gov.uk/accepting-returns", results[0].Link)

	assert.Contains(t, gotQuery, "refund faulty kettle")
	assert.Contains(t, gotQuery, "site:.uk")
	assert.Contains(t, gotQuery, strconv.Itoa(time.Now().Year()))
}

func TestSearchEmptyQuery(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.NotFoundHandler())

	_, err := searcher.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchAccessRestricted(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := searcher.Search(context.Background(), "refund")
	assert.ErrorIs(t, err, ErrAccessRestricted)
}

func TestSearchFallsBackToLiteEndpoint(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/html/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{"RelatedTopics": [
			{"Text": "Consumer Rights Act 2015. UK law on goods and services.", "FirstURL": "https://example.uk/cra"},
			{"Text": "", "FirstURL": "https://example.uk/skipped"},
			{"Text": "Chargeback. A card refund mechanism.", "FirstURL": "https://example.uk/chargeback"}
		]}`))
	}))

	results, err := searcher.Search(context.Background(), "consumer rights")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Consumer Rights Act 2015", results[0].Title)
	assert.Equal(t, "Consumer Rights Act 2015. UK law on goods and services.", results[0].Snippet)
	assert.Equal(t, "https://example.uk/cra", results[0].Link)
	assert.Equal(t, "Chargeback", results[1].Title)
}

func TestSearchFallsBackWhenPageHasNoResults(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/html/") {
			w.Write([]byte(`<html><body><div class="no-results">nothing</div></body></html>`))
			return
		}
		w.Write([]byte(`{"RelatedTopics": [{"Text": "Warranty basics. What a warranty covers.", "FirstURL": "https://example.uk/warranty"}]}`))
	}))

	results, err := searcher.Search(context.Background(), "warranty")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Warranty basics", results[0].Title)
}

func TestSearchNoResultsAnywhere(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/html/") {
			w.Write([]byte(`<html><body></body></html>`))
			return
		}
		w.Write([]byte(`{"RelatedTopics": []}`))
	}))

	_, err := searcher.Search(context.Background(), "obscure query")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchRelayPrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	// The relay sees the full upstream URL appended to its own.
	searcher, err := NewSearcher(NewConfig(
		WithRelayPrefix(server.URL+"/relay/"),
		WithHTTPClient(server.Client()),
	))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "refund")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Contains(t, gotPath, "/relay/https://html.duckduckgo.com/html/")
}

func TestSearchContextCancelled(t *testing.T) {
	searcher, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := searcher.Search(ctx, "refund")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(WithHTMLEndpoint(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithLiteEndpoint("  "))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithTimeout(0))
	assert.Error(t, cfg.Validate())

	assert.NoError(t, DefaultConfig().Validate())
}
