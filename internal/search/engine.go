package search

import (
	"strings"
	"sync/atomic"
	"time"

	"thrift-deals-service/internal/domain"
)

// ProductSource supplies the current product snapshot. The catalog
// package implements it; tests use a fixed slice.
type ProductSource interface {
	Products() []domain.Product
}

// Options tunes the engine. Zero values fall back to the production
// site's behavior: 12 results per page, 5 minute cache, 6 suggestions
// for queries of at least 2 characters.
type Options struct {
	PageSize        int
	CacheTTL        time.Duration
	CacheMaxEntries int
	SuggestLimit    int
	SuggestMinLen   int
}

func (o *Options) applyDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 12
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = 5 * time.Minute
	}
	if o.CacheMaxEntries == 0 {
		o.CacheMaxEntries = 256
	}
	if o.SuggestLimit <= 0 {
		o.SuggestLimit = 6
	}
	if o.SuggestMinLen <= 0 {
		o.SuggestMinLen = 2
	}
}

// Engine is the in-memory product search engine: relevance scoring,
// facet filtering, sorting, result caching and pagination over the
// catalog snapshot. All methods are safe for concurrent use.
type Engine struct {
	source ProductSource
	opts   Options
	cache  *resultCache
	now    func() time.Time

	scans atomic.Int64 // full catalog scans, observed by cache tests
}

// New creates an Engine over the given product source.
func New(source ProductSource, opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{
		source: source,
		opts:   opts,
		cache:  newResultCache(opts.CacheTTL, opts.CacheMaxEntries),
		now:    time.Now,
	}
}

// PageSize returns the configured pagination size.
func (e *Engine) PageSize() int { return e.opts.PageSize }

// Result is an ordered, filtered result set. It is immutable once
// built; pagination slices it without recomputation.
type Result struct {
	Query   string
	SortKey SortKey
	engine  *Engine
	items   []scored
}

// Search runs the full pipeline: score (unless the query is empty),
// filter, sort, with a cache in front. An empty query includes every
// product, subject to facet filters only.
func (e *Engine) Search(query string, filters Filters, key SortKey) *Result {
	cacheKey := query + "|" + filters.key() + "|" + string(key)
	if items, ok := e.cache.get(cacheKey); ok {
		return &Result{Query: query, SortKey: key, engine: e, items: items}
	}

	items := e.scan(query, filters)
	sortScored(items, key)
	e.cache.put(cacheKey, items)

	return &Result{Query: query, SortKey: key, engine: e, items: items}
}

// scan walks the catalog once, scoring and filtering in a single pass.
func (e *Engine) scan(query string, filters Filters) []scored {
	e.scans.Add(1)
	// A query of nothing but whitespace has zero terms and must behave
	// like the empty query: include everything.
	hasQuery := len(strings.Fields(query)) > 0

	products := e.source.Products()
	items := make([]scored, 0, len(products))
	for i := range products {
		p := &products[i]

		score := 0
		if hasQuery {
			score = Score(p, query)
			if score == 0 {
				continue
			}
		}
		if !filters.Match(p) {
			continue
		}

		info := ParsePrice(p.Price)
		items = append(items, scored{
			product:  *p,
			score:    score,
			price:    info.Current,
			discount: info.Discount,
			rating:   ExtractRating(p.Rating),
			postedAt: ParsePostedDate(p.PostedDate).UnixNano(),
		})
	}
	return items
}

// Len returns the total number of matching products.
func (r *Result) Len() int { return len(r.items) }

// Page materializes up to size product views starting at offset. Out of
// range requests return an empty slice, never an error.
func (r *Result) Page(offset, size int) []domain.ProductView {
	if offset < 0 || size <= 0 || offset >= len(r.items) {
		return []domain.ProductView{}
	}
	end := offset + size
	if end > len(r.items) {
		end = len(r.items)
	}
	now := r.engine.now()
	views := make([]domain.ProductView, 0, end-offset)
	for _, item := range r.items[offset:end] {
		views = append(views, NewProductView(item.product, now))
	}
	return views
}

// Suggest returns the top-scored products for a partial query, for the
// type-ahead dropdown. Suggestions are relevance-only: active facet
// filters do not narrow them. Queries shorter than the configured
// minimum yield nil.
func (e *Engine) Suggest(query string) []domain.ProductView {
	if len([]rune(query)) < e.opts.SuggestMinLen {
		return nil
	}

	items := e.scan(query, Filters{})
	sortScored(items, SortRelevance)
	if len(items) > e.opts.SuggestLimit {
		items = items[:e.opts.SuggestLimit]
	}

	now := e.now()
	views := make([]domain.ProductView, 0, len(items))
	for _, item := range items {
		views = append(views, NewProductView(item.product, now))
	}
	return views
}

// InvalidateCache drops all cached results. The catalog refresher calls
// this after swapping in a new snapshot.
func (e *Engine) InvalidateCache() {
	e.cache.purge()
}
