package search

import (
	"sort"
	"strings"

	"thrift-deals-service/internal/domain"
)

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortRelevance    SortKey = "relevance"
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortDiscountDesc SortKey = "discount-desc"
	SortRatingDesc   SortKey = "rating-desc"
	SortNewest       SortKey = "newest"
)

// ParseSortKey maps a request parameter to a SortKey. The legacy aliases
// from the site's sort dropdown (price-low, price-high, discount, rating)
// are accepted for compatibility with old bookmarked URLs.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return SortRelevance, true
	case "price-asc", "price-low":
		return SortPriceAsc, true
	case "price-desc", "price-high":
		return SortPriceDesc, true
	case "discount-desc", "discount":
		return SortDiscountDesc, true
	case "rating-desc", "rating":
		return SortRatingDesc, true
	case "newest":
		return SortNewest, true
	}
	return "", false
}

// scored pairs a product with its relevance score and the parsed numeric
// fields the sorter needs, so sorting never re-runs the regexes. It holds
// a copy of the record: cached results must stay valid across catalog
// refreshes.
type scored struct {
	product  domain.Product
	score    int
	price    int
	discount int
	rating   float64
	postedAt int64 // unix nanos; 0 for unparseable dates
}

// sortScored orders in place. sort.SliceStable keeps ties in pre-sort
// array order; the browser original leaned on Array.prototype.sort which
// gives no such guarantee, so this is a deliberate determinism fix.
func sortScored(items []scored, key SortKey) {
	var less func(a, b scored) bool
	switch key {
	case SortRelevance:
		less = func(a, b scored) bool { return a.score > b.score }
	case SortPriceAsc:
		less = func(a, b scored) bool { return a.price < b.price }
	case SortPriceDesc:
		less = func(a, b scored) bool { return a.price > b.price }
	case SortDiscountDesc:
		less = func(a, b scored) bool { return a.discount > b.discount }
	case SortRatingDesc:
		less = func(a, b scored) bool { return a.rating > b.rating }
	case SortNewest:
		less = func(a, b scored) bool { return a.postedAt > b.postedAt }
	default:
		return // unknown key keeps input order
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
