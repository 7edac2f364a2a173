package domain

import "time"

// Coupon is an offer published on the coupon board. Code is empty for
// plain deals that only need the outbound link.
type Coupon struct {
	ID          string    `json:"id"`
	Store       string    `json:"store"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code,omitempty"`
	Type        string    `json:"type"` // "code" or "deal"
	Discount    string    `json:"discount"`
	Badge       string    `json:"badge,omitempty"` // "hot", "trending", "limited"
	UsedCount   int64     `json:"used_count"`
	Expiry      time.Time `json:"expiry"`
	Link        string    `json:"link,omitempty"`
	Featured    bool      `json:"featured"`
}

// CouponView adds the computed countdown fields shown on the board.
type CouponView struct {
	Coupon
	UsedDisplay  string `json:"used_display"`
	ExpiresIn    string `json:"expires_in"`
	IsExpired    bool   `json:"is_expired"`
	ExpiringSoon bool   `json:"expiring_soon"`
}
