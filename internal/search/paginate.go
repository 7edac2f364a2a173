package search

import "thrift-deals-service/internal/domain"

// Pager materializes a Result incrementally in fixed-size pages, the way
// the "Load More Deals" button walks a result set.
type Pager struct {
	result *Result
	size   int
	cursor int
}

// NewPager wraps a result with the engine's configured page size.
func (e *Engine) NewPager(r *Result) *Pager {
	return &Pager{result: r, size: e.opts.PageSize}
}

// Reset rewinds the pager to the start of the result set.
func (p *Pager) Reset() {
	p.cursor = 0
}

// LoadMore materializes the next page and advances the cursor by the
// number of items actually returned, which is less than the page size on
// the final page. The second return reports whether more items remain.
// Calling past the end is a no-op that reports false.
func (p *Pager) LoadMore() ([]domain.ProductView, bool) {
	views := p.result.Page(p.cursor, p.size)
	p.cursor += len(views)
	return views, p.cursor < p.result.Len()
}

// Cursor returns the count of items materialized so far.
func (p *Pager) Cursor() int { return p.cursor }

// Total returns the size of the underlying result set.
func (p *Pager) Total() int { return p.result.Len() }
