package websearch

// ResultsPerPage is how many hits a page of results holds.
const ResultsPerPage = 10

// Paginator slices a result set into fixed-size pages. Pages are
// numbered from 1.
type Paginator struct {
	results []Result
	page    int
}

// NewPaginator creates a Paginator positioned on the first page.
func NewPaginator(results []Result) *Paginator {
	return &Paginator{results: results, page: 1}
}

// TotalPages reports how many pages the result set spans. An empty set
// has one empty page.
func (p *Paginator) TotalPages() int {
	if len(p.results) == 0 {
		return 1
	}
	return (len(p.results) + ResultsPerPage - 1) / ResultsPerPage
}

// Page reports the current page number.
func (p *Paginator) Page() int {
	return p.page
}

// Current returns the results on the current page.
func (p *Paginator) Current() []Result {
	start := (p.page - 1) * ResultsPerPage
	if start >= len(p.results) {
		return nil
	}
	end := start + ResultsPerPage
	if end > len(p.results) {
		end = len(p.results)
	}
	return p.results[start:end]
}

// Next advances to the next page. It reports whether the position
// moved.
func (p *Paginator) Next() bool {
	if p.page >= p.TotalPages() {
		return false
	}
	p.page++
	return true
}

// Prev moves back to the previous page. It reports whether the
// position moved.
func (p *Paginator) Prev() bool {
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}
