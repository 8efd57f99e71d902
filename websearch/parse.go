package websearch

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Class names DuckDuckGo has used for organic results across layout
// revisions. Matching all of them keeps the parser working when the
// markup shifts.
var (
	resultClasses  = []string{"result", "web-result", "result__body", "zci-result"}
	titleClasses   = []string{"result__title", "result__a", "web-result__title", "zci__title"}
	snippetClasses = []string{"result__snippet", "result__a", "web-result__description", "zci__description"}
	linkClasses    = []string{"result__url", "result__a", "web-result__url", "zci__url"}
)

// parseResultsPage extracts search hits from the HTML results page.
// Entries missing a title, snippet or link are skipped.
func parseResultsPage(r io.Reader) ([]Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var results []Result
	walk(doc, func(n *html.Node) bool {
		if !hasAnyClass(n, resultClasses) {
			return true
		}
		if res, ok := extractResult(n); ok {
			results = append(results, res)
		}
		return false
	})
	return results, nil
}

func extractResult(container *html.Node) (Result, bool) {
	title := findByClass(container, titleClasses)
	snippet := findByClass(container, snippetClasses)
	link := findByClass(container, linkClasses)
	if title == nil || snippet == nil || link == nil {
		return Result{}, false
	}

	res := Result{
		Title:   strings.TrimSpace(textContent(title)),
		Snippet: strings.TrimSpace(textContent(snippet)),
		Link:    linkTarget(link),
	}
	if res.Title == "" || res.Snippet == "" || res.Link == "" {
		return Result{}, false
	}
	return res, true
}

// linkTarget prefers an href on the node or its descendants, falling
// back to the node's text, which DuckDuckGo renders as a bare URL.
func linkTarget(n *html.Node) string {
	var href string
	walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.Data == "a" {
			if v := attr(node, "href"); v != "" {
				href = v
				return false
			}
		}
		return true
	})
	if href != "" {
		return href
	}
	return strings.TrimSpace(textContent(n))
}

// findByClass returns the first descendant carrying any of the given
// classes, or nil.
func findByClass(root *html.Node, classes []string) *html.Node {
	var found *html.Node
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child, func(n *html.Node) bool {
			if found == nil && hasAnyClass(n, classes) {
				found = n
				return false
			}
			return found == nil
		})
		if found != nil {
			break
		}
	}
	return found
}

// walk visits n and its descendants in document order. The callback
// returns false to skip a node's subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func hasAnyClass(n *html.Node, classes []string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, have := range strings.Fields(attr(n, "class")) {
		for _, want := range classes {
			if have == want {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		return true
	})
	return sb.String()
}
