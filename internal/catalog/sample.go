package catalog

import (
	"time"

	"thrift-deals-service/internal/domain"
)

// SampleProducts is the embedded fallback dataset used when the real
// catalog cannot be loaded. It mirrors the handful of placeholder deals
// the site shipped for the same purpose.
func SampleProducts() []domain.Product {
	posted := time.Now().UTC().Format(time.RFC3339)
	return []domain.Product{
		{
			ID:          "sample-1",
			Title:       "Sample Smartphone - Latest Model with Amazing Features",
			Category:    "Electronics",
			Price:       "₹15,999 ₹25,999",
			Rating:      "(4.2)",
			PostedDate:  posted,
			Description: "High-quality smartphone with excellent camera",
		},
		{
			ID:          "sample-2",
			Title:       "Trendy Fashion T-Shirt - Premium Cotton Fabric",
			Category:    "Fashion",
			Price:       "₹999 ₹1,999",
			Rating:      "(4.5)",
			PostedDate:  posted,
			Description: "Comfortable and stylish t-shirt for daily wear",
		},
		{
			ID:          "sample-3",
			Title:       "Home Decor Item - Modern Design for Living Room",
			Category:    "Home",
			Price:       "₹2,499 ₹4,999",
			Rating:      "(4.0)",
			PostedDate:  posted,
			Description: "Beautiful home decor to enhance your living space",
		},
		{
			ID:          "sample-4",
			Title:       "Gaming Headset - High Quality Audio Experience",
			Category:    "Gaming",
			Price:       "₹3,499 ₹5,999",
			Rating:      "(4.6)",
			PostedDate:  posted,
			Description: "Professional gaming headset with surround sound",
		},
		{
			ID:          "sample-5",
			Title:       "Fitness Tracker - Smart Watch with Health Monitor",
			Category:    "Sports",
			Price:       "₹8,999 ₹12,999",
			Rating:      "(4.3)",
			PostedDate:  posted,
			Description: "Advanced fitness tracker with heart rate monitoring",
		},
	}
}
