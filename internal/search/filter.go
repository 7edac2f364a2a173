package search

import (
	"fmt"
	"sort"
	"strings"

	"thrift-deals-service/internal/domain"
)

// Filters is the active facet set. Nil pointers mean "not set"; a bound
// of 0 is still a bound. All facets are independent and AND-combined.
type Filters struct {
	Categories  []string
	MinPrice    *int
	MaxPrice    *int
	MinDiscount *int
	MinRating   *float64
}

// Match reports whether a product survives every active facet. Numeric
// fields that fail to parse count as 0, so they drop out of any positive
// minimum bound; that is deliberate, not an error path.
func (f Filters) Match(p *domain.Product) bool {
	// Category matching is a substring check, not equality: filtering
	// "home" also matches "Home & Kitchen". The production site relied
	// on this for category naming variants, so it is kept even though
	// it looks like a bug ("home" would also catch "homeware").
	if len(f.Categories) > 0 && !f.hasWildcard() {
		category := strings.ToLower(p.Category)
		matched := false
		for _, c := range f.Categories {
			if strings.Contains(category, strings.ToLower(c)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := ExtractPrice(p.Price)
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}

	if f.MinDiscount != nil {
		if ParsePrice(p.Price).Discount < *f.MinDiscount {
			return false
		}
	}

	if f.MinRating != nil {
		if ExtractRating(p.Rating) < *f.MinRating {
			return false
		}
	}

	return true
}

func (f Filters) hasWildcard() bool {
	for _, c := range f.Categories {
		if strings.EqualFold(c, "all") {
			return true
		}
	}
	return false
}

// key serializes the filter set deterministically for cache keying.
// Categories are lowered and sorted so {a,b} and {b,a} share an entry.
func (f Filters) key() string {
	cats := make([]string, len(f.Categories))
	for i, c := range f.Categories {
		cats[i] = strings.ToLower(c)
	}
	sort.Strings(cats)

	var b strings.Builder
	b.WriteString("cats=")
	b.WriteString(strings.Join(cats, ","))
	writeIntBound(&b, "minp", f.MinPrice)
	writeIntBound(&b, "maxp", f.MaxPrice)
	writeIntBound(&b, "mind", f.MinDiscount)
	if f.MinRating != nil {
		fmt.Fprintf(&b, ";minr=%g", *f.MinRating)
	} else {
		b.WriteString(";minr=")
	}
	return b.String()
}

func writeIntBound(b *strings.Builder, name string, v *int) {
	if v != nil {
		fmt.Fprintf(b, ";%s=%d", name, *v)
	} else {
		fmt.Fprintf(b, ";%s=", name)
	}
}
