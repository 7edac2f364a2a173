package domain

// Product is a raw catalog record as scraped into products.json.
// Price and Rating arrive as loose display strings ("₹1,499 ₹2,999",
// "(4.5)") and are parsed on demand by the search package; all fields
// are read-only to the rest of the service.
type Product struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Price         string `json:"price"`
	Rating        string `json:"rating,omitempty"`
	PostedDate    string `json:"posted_date,omitempty"`
	AffiliateLink string `json:"affiliate_link,omitempty"`
	Image         string `json:"image,omitempty"`
	Description   string `json:"description,omitempty"`
	Brand         string `json:"brand,omitempty"`
}

// ProductView is a Product enriched with the computed display fields the
// renderer consumes: parsed prices, discount percentage, a star string
// for the rating and a "new" badge for recent postings.
type ProductView struct {
	Product
	CurrentPrice    string  `json:"current_price"`
	OriginalPrice   string  `json:"original_price,omitempty"`
	DiscountPercent int     `json:"discount_percent"`
	RatingValue     float64 `json:"rating_value"`
	Stars           string  `json:"stars"`
	IsNew           bool    `json:"is_new"`
}
