package domain

import "time"

// Wishlist is a named collection of saved products owned by one user.
// ShareToken makes the list reachable through a public share link.
type Wishlist struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	ShareToken string    `json:"share_token"`
	ItemCount  int       `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WishlistItem is a product snapshot saved into a wishlist. The catalog
// record may change or disappear between visits, so the fields needed to
// render the saved card are copied at add time.
type WishlistItem struct {
	ID            string    `json:"id"`
	WishlistID    string    `json:"wishlist_id"`
	ProductID     string    `json:"product_id"`
	Title         string    `json:"title"`
	Price         string    `json:"price"`
	Image         string    `json:"image,omitempty"`
	AffiliateLink string    `json:"affiliate_link,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}
