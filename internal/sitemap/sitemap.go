// Package sitemap renders a sitemap.xml for the deals site: the static
// landing pages plus one entry per catalog product. It replaces the
// regenerate-on-publish script the site previously ran out of band.
package sitemap

import (
	"encoding/xml"
	"time"

	"thrift-deals-service/internal/domain"
	"thrift-deals-service/internal/search"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is a single sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// staticPages are the site's fixed pages, highest priority first.
var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "daily", "1.0"},
	{"/deals/", "hourly", "0.9"},
	{"/coupons/", "daily", "0.8"},
	{"/community/", "daily", "0.7"},
	{"/wishlist/", "weekly", "0.5"},
}

// Generate renders the sitemap for baseURL over the given products.
// Product entries use the posted date as lastmod when it parses, so
// unchanged deals keep a stable sitemap between regenerations.
func Generate(baseURL string, products []domain.Product, now time.Time) ([]byte, error) {
	today := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: xmlns}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + page.path,
			LastMod:    today,
			ChangeFreq: page.changeFreq,
			Priority:   page.priority,
		})
	}

	for _, p := range products {
		if p.ID == "" {
			continue
		}
		lastMod := today
		if posted := search.ParsePostedDate(p.PostedDate); !posted.IsZero() {
			lastMod = posted.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + "/product.html?id=" + p.ID,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
