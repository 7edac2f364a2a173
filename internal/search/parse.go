package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"thrift-deals-service/internal/domain"
)

// Catalog records carry prices and ratings as loose display strings
// ("₹1,499 ₹2,999", "(4.5)"). All scraping of numbers out of those
// strings lives here; callers never inline the regexes. Unparseable
// values degrade to zero, never to an error, so one malformed record
// cannot take down a listing.

var (
	priceRe  = regexp.MustCompile(`₹\s*([0-9][0-9,]*)`)
	ratingRe = regexp.MustCompile(`\(([0-9]+(?:\.[0-9]+)?)\)`)
)

// PriceInfo is the parsed form of a price string. Current and Original
// are rupee amounts; Discount is a whole percentage, 0 when the string
// carries no struck-through original price.
type PriceInfo struct {
	Current         int
	Original        int
	CurrentDisplay  string
	OriginalDisplay string
	Discount        int
}

// ParsePrice scrapes up to two currency-prefixed numbers out of a price
// string. The first is the current price, the second the original; a
// discount is only computed when the original is strictly higher.
func ParsePrice(price string) PriceInfo {
	matches := priceRe.FindAllStringSubmatch(price, 2)
	if len(matches) == 0 {
		display := price
		if fields := strings.Fields(price); len(fields) > 0 {
			display = fields[0]
		}
		return PriceInfo{CurrentDisplay: display}
	}

	info := PriceInfo{
		Current:        parseAmount(matches[0][1]),
		CurrentDisplay: strings.TrimSpace(matches[0][0]),
	}
	if len(matches) > 1 {
		original := parseAmount(matches[1][1])
		if original > info.Current {
			info.Original = original
			info.OriginalDisplay = strings.TrimSpace(matches[1][0])
			info.Discount = int(((original-info.Current)*100 + original/2) / original)
		}
	}
	return info
}

func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// ExtractPrice returns the current numeric price, or 0 when none can be
// parsed.
func ExtractPrice(price string) int {
	return ParsePrice(price).Current
}

// ExtractRating pulls the parenthesized decimal out of a rating string
// like "4.5 ★★★★½ (4.5)". Returns 0 when absent or malformed.
func ExtractRating(rating string) float64 {
	m := ratingRe.FindStringSubmatch(rating)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePostedDate accepts RFC3339 or bare dates; the zero time stands in
// for anything unparseable so bad records sort as oldest.
func ParsePostedDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NewProductView computes the display fields for one product: parsed
// prices, discount percent, a star string for the rating and the "new"
// badge for items posted within the last day.
func NewProductView(p domain.Product, now time.Time) domain.ProductView {
	info := ParsePrice(p.Price)
	rating := ExtractRating(p.Rating)
	posted := ParsePostedDate(p.PostedDate)

	return domain.ProductView{
		Product:         p,
		CurrentPrice:    info.CurrentDisplay,
		OriginalPrice:   info.OriginalDisplay,
		DiscountPercent: info.Discount,
		RatingValue:     rating,
		Stars:           starString(rating),
		IsNew:           !posted.IsZero() && now.Sub(posted) < 24*time.Hour,
	}
}

func starString(rating float64) string {
	full := int(rating)
	if full > 5 {
		full = 5
	}
	half := rating-float64(full) >= 0.5 && full < 5
	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if half {
		b.WriteRune('½')
	}
	for i := 0; i < empty; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}
