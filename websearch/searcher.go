package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	acceptHTML = "text/html"
	acceptJSON = "application/json"
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Searcher queries the public web for consumer-rights information.
// It is safe for concurrent use.
type Searcher struct {
	cfg    *Config
	client *http.Client
	logger *slog.Logger
}

// NewSearcher creates a Searcher from the config.
func NewSearcher(cfg *Config) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{
		cfg:    cfg,
		client: cfg.httpClient(),
		logger: slog.Default().With("component", "websearch"),
	}, nil
}

// BuildQuery scopes the free-text query to the current year and to UK
// sites.
func BuildQuery(query string) string {
	return fmt.Sprintf("%s %d %s", strings.TrimSpace(query), time.Now().Year(), SiteScope)
}

// Search runs the scoped query against the HTML endpoint, falling back
// to the instant-answer endpoint when the HTML page yields nothing.
// A restricted-access response from the relay surfaces as
// ErrAccessRestricted.
func (s *Searcher) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	full := BuildQuery(query)
	s.logger.Debug("searching", "query", full)

	results, err := s.searchHTML(ctx, full)
	if err == nil && len(results) > 0 {
		return results, nil
	}
	if err != nil {
		if errors.Is(err, ErrAccessRestricted) || ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("primary search failed, trying fallback", "error", err)
	}

	results, err = s.searchLite(ctx, full)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func (s *Searcher) searchHTML(ctx context.Context, query string) ([]Result, error) {
	target := s.cfg.RelayPrefix + s.cfg.HTMLEndpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrAccessRestricted
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	return parseResultsPage(resp.Body)
}

// liteResponse is the subset of the instant-answer payload we read.
type liteResponse struct {
	RelatedTopics []liteTopic `json:"RelatedTopics"`
}

type liteTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

func (s *Searcher) searchLite(ctx context.Context, query string) ([]Result, error) {
	target := s.cfg.RelayPrefix + s.cfg.LiteEndpoint +
		"?q=" + url.QueryEscape(query) + "&format=json&no_html=1&skip_disambig=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrAccessRestricted
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload liteResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding fallback response: %w", err)
	}

	var results []Result
	for _, topic := range payload.RelatedTopics {
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		title, _, _ := strings.Cut(topic.Text, ".")
		results = append(results, Result{
			Title:   title,
			Snippet: topic.Text,
			Link:    topic.FirstURL,
		})
	}
	return results, nil
}
