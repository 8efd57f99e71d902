package websearch

import "errors"

var (
	// ErrAccessRestricted is returned when the search endpoint refuses the
	// request, typically because the relay requires prior authorization.
	ErrAccessRestricted = errors.New("search endpoint restricted access; relay authorization required")

	// ErrEmptyQuery is returned when the query contains no searchable text.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrNoResults is returned when neither the primary nor the fallback
	// endpoint produced any results.
	ErrNoResults = errors.New("no search results")
)
