package coupon

import (
	"time"

	"thrift-deals-service/internal/domain"
)

// DefaultCoupons is the board's seed data, carried over from the site's
// published offers. Expiries are relative to startup so the seed board
// is never uniformly dead; nyk-1 is seeded already expired to exercise
// the countdown styling.
func DefaultCoupons() []domain.Coupon {
	now := time.Now().UTC()
	return []domain.Coupon{
		{
			ID:          "amz-1",
			Store:       "Amazon",
			Title:       "Great Indian Festival: Up To 80% Off + Extra 10%",
			Description: "Get additional 10% instant discount on HDFC cards. Lowest prices of the year!",
			Code:        "FESTIVAL80",
			Type:        "code",
			Discount:    "80% OFF",
			Badge:       "hot",
			UsedCount:   324,
			Expiry:      now.AddDate(0, 0, 12),
			Link:        "https://amazon.in",
			Featured:    true,
		},
		{
			ID:          "amz-2",
			Store:       "Amazon",
			Title:       "PC & Gaming Accessories: Up To 80% Off",
			Description: "Shop gaming keyboards, mouse, headsets, and more at unbeatable prices.",
			Code:        "GAMING80",
			Type:        "code",
			Discount:    "80% OFF",
			Badge:       "trending",
			UsedCount:   3003,
			Expiry:      now.AddDate(0, 0, 27),
			Link:        "https://amazon.in",
		},
		{
			ID:          "amz-3",
			Store:       "Amazon",
			Title:       "Smartphones: Up To 50% Off + Bank Discounts",
			Description: "Latest smartphones from Samsung, OnePlus, Xiaomi & more with exchange offers.",
			Type:        "deal",
			Discount:    "50% OFF",
			Badge:       "limited",
			UsedCount:   1725,
			Expiry:      now.AddDate(0, 0, 49),
			Link:        "https://amazon.in",
		},
		{
			ID:          "flp-1",
			Store:       "Flipkart",
			Title:       "Big Billion Days: Upto 90% Off on Everything",
			Description: "Biggest sale of the year! Extra discounts on credit cards + exchange offers.",
			Code:        "BIGBILLION",
			Type:        "code",
			Discount:    "90% OFF",
			Badge:       "hot",
			UsedCount:   5421,
			Expiry:      now.AddDate(0, 0, 6),
			Link:        "https://flipkart.com",
			Featured:    true,
		},
		{
			ID:          "flp-2",
			Store:       "Flipkart",
			Title:       "Fashion Carnival: Min 50% Off on Top Brands",
			Description: "Nike, Adidas, Puma, Levi's and more at half price or better.",
			Code:        "FASHION50",
			Type:        "code",
			Discount:    "50% OFF",
			Badge:       "trending",
			UsedCount:   2190,
			Expiry:      now.AddDate(0, 0, 42),
			Link:        "https://flipkart.com",
		},
		{
			ID:          "myn-1",
			Store:       "Myntra",
			Title:       "End of Reason Sale: Flat 60% Off Sitewide",
			Description: "Every brand, every style. Extra 10% off on first app order.",
			Code:        "EORS60",
			Type:        "code",
			Discount:    "60% OFF",
			Badge:       "hot",
			UsedCount:   4102,
			Expiry:      now.AddDate(0, 0, 57),
			Link:        "https://myntra.com",
			Featured:    true,
		},
		{
			ID:          "ajio-1",
			Store:       "Ajio",
			Title:       "Big Bold Sale: 50-90% Off Everything",
			Description: "Top fashion brands at throwaway prices. Free shipping above ₹1,199.",
			Code:        "BOLD90",
			Type:        "code",
			Discount:    "90% OFF",
			Badge:       "limited",
			UsedCount:   987,
			Expiry:      now.AddDate(0, 0, 9),
			Link:        "https://ajio.com",
		},
		{
			ID:          "nyk-1",
			Store:       "Nykaa",
			Title:       "Pink Friday Sale: Up To 70% Off Beauty",
			Description: "Makeup, skincare and fragrances from top beauty brands.",
			Type:        "deal",
			Discount:    "70% OFF",
			Badge:       "trending",
			UsedCount:   1560,
			Expiry:      now.AddDate(0, 0, -2),
			Link:        "https://nykaa.com",
		},
	}
}
