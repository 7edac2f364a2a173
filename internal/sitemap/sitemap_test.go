package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrift-deals-service/internal/domain"
)

var testNow = time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)

func generate(t *testing.T, products []domain.Product) urlSet {
	t.Helper()
	out, err := Generate("https://thriftzone.example", products, testNow)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), xml.Header), "output starts with the XML declaration")

	var set urlSet
	require.NoError(t, xml.Unmarshal(out, &set))
	return set
}

func TestGenerate_StaticPages(t *testing.T) {
	set := generate(t, nil)

	require.Len(t, set.URLs, len(staticPages))
	assert.Equal(t, "https://thriftzone.example/", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	assert.Equal(t, "2025-08-16", set.URLs[0].LastMod)
}

func TestGenerate_ProductEntries(t *testing.T) {
	set := generate(t, []domain.Product{
		{ID: "p1", Title: "Wireless Earbuds", PostedDate: "2025-08-10"},
		{ID: "p2", Title: "Yoga Mat", PostedDate: "garbled"},
		{Title: "No ID, no entry"},
	})

	require.Len(t, set.URLs, len(staticPages)+2, "a product without an id is skipped")

	p1 := set.URLs[len(staticPages)]
	assert.Equal(t, "https://thriftzone.example/product.html?id=p1", p1.Loc)
	assert.Equal(t, "2025-08-10", p1.LastMod, "posted date becomes lastmod")
	assert.Equal(t, "0.6", p1.Priority)

	p2 := set.URLs[len(staticPages)+1]
	assert.Equal(t, "2025-08-16", p2.LastMod, "unparseable posted date falls back to today")
}
