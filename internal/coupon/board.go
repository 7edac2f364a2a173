package coupon

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"thrift-deals-service/internal/domain"
)

// ErrCouponNotFound is returned when a code has no coupon on the board.
var ErrCouponNotFound = errors.New("coupon: not found")

// expiringSoonWindow is how close to expiry a coupon gets the
// "expiring soon" treatment on the board.
const expiringSoonWindow = 7 * 24 * time.Hour

// Board is the in-memory coupon board. Coupons are seeded at startup;
// the only mutation is the used counter bumped on each code copy.
type Board struct {
	mu      sync.RWMutex
	coupons []domain.Coupon
	now     func() time.Time
}

// NewBoard creates a board over the given coupons, or the built-in set
// when nil.
func NewBoard(coupons []domain.Coupon) *Board {
	if coupons == nil {
		coupons = DefaultCoupons()
	}
	owned := make([]domain.Coupon, len(coupons))
	copy(owned, coupons)
	return &Board{coupons: owned, now: time.Now}
}

// ListParams narrows and orders the board listing.
type ListParams struct {
	Store      string // exact store match, case-insensitive; empty for all
	Search     string // substring over title, description and code
	Sort       string // "popular", "expiry" or "" for featured-first
	ActiveOnly bool   // drop expired coupons
}

// List returns the coupons matching params, with countdown fields
// computed against the current time.
func (b *Board) List(params ListParams) []domain.CouponView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	now := b.now()
	search := strings.ToLower(strings.TrimSpace(params.Search))

	matched := make([]domain.Coupon, 0, len(b.coupons))
	for _, c := range b.coupons {
		if params.Store != "" && !strings.EqualFold(c.Store, params.Store) {
			continue
		}
		if params.ActiveOnly && now.After(c.Expiry) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(c.Title + " " + c.Description + " " + c.Code)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		matched = append(matched, c)
	}

	switch params.Sort {
	case "popular":
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].UsedCount > matched[j].UsedCount
		})
	case "expiry":
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Expiry.Before(matched[j].Expiry)
		})
	default:
		// Featured coupons first, most used within each group.
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].Featured != matched[j].Featured {
				return matched[i].Featured
			}
			return matched[i].UsedCount > matched[j].UsedCount
		})
	}

	views := make([]domain.CouponView, 0, len(matched))
	for _, c := range matched {
		views = append(views, b.view(c, now))
	}
	return views
}

// Copy records a code copy, bumping the used counter, and returns the
// refreshed coupon view.
func (b *Board) Copy(code string) (domain.CouponView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.coupons {
		if strings.EqualFold(b.coupons[i].Code, code) && b.coupons[i].Code != "" {
			b.coupons[i].UsedCount++
			return b.view(b.coupons[i], b.now()), nil
		}
	}
	return domain.CouponView{}, ErrCouponNotFound
}

// Stores lists the distinct store names on the board, for the tab bar.
func (b *Board) Stores() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[string]bool)
	stores := make([]string, 0)
	for _, c := range b.coupons {
		key := strings.ToLower(c.Store)
		if !seen[key] {
			seen[key] = true
			stores = append(stores, c.Store)
		}
	}
	sort.Strings(stores)
	return stores
}

func (b *Board) view(c domain.Coupon, now time.Time) domain.CouponView {
	expired := now.After(c.Expiry)
	return domain.CouponView{
		Coupon:       c,
		UsedDisplay:  humanize.Comma(c.UsedCount) + " used",
		ExpiresIn:    humanize.RelTime(c.Expiry, now, "past expiry", "left"),
		IsExpired:    expired,
		ExpiringSoon: !expired && c.Expiry.Sub(now) <= expiringSoonWindow,
	}
}
