package search

import (
	"strings"

	"thrift-deals-service/internal/domain"
)

// Score computes the relevance of a product for a free-text query. The
// query is split on whitespace; each term that appears (case-insensitive)
// anywhere in title, category, description or brand contributes a base
// weight of 1, plus 3 for a title hit and 2 for a category hit. A zero
// score on a non-empty query means "exclude". An empty query scores 0 for
// everything; callers must treat that as "include all", not "exclude".
func Score(p *domain.Product, query string) int {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	category := strings.ToLower(p.Category)
	haystack := strings.Join([]string{
		title, category, strings.ToLower(p.Description), strings.ToLower(p.Brand),
	}, " ")

	score := 0
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			continue
		}
		if strings.Contains(title, term) {
			score += 3
		}
		if strings.Contains(category, term) {
			score += 2
		}
		score++
	}
	return score
}
